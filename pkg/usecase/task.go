package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindverse-hq/taskdeck/pkg/domain/interfaces"
	"github.com/mindverse-hq/taskdeck/pkg/domain/model"
	"github.com/mindverse-hq/taskdeck/pkg/domain/types"
	"github.com/mindverse-hq/taskdeck/pkg/utils/logging"
)

// TaskUseCase implements the task board operations. Reads are open to any
// authenticated principal; create, update and delete are privileged.
type TaskUseCase struct {
	uc *UseCases
}

func newTaskUseCase(uc *UseCases) *TaskUseCase {
	return &TaskUseCase{uc: uc}
}

// CreateTaskInput carries the fields of a new task
type CreateTaskInput struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Status      types.TaskStatus `json:"progressStatus"`
	Index       int              `json:"index"`
	DueDate     *time.Time       `json:"dueDate"`
	Assignees   []types.UserID   `json:"assignTo"`
}

// Create stores a new task. Name and status are required. When no assignees
// are supplied the creator becomes the sole assignee so that every task has at
// least one owner.
func (x *TaskUseCase) Create(ctx context.Context, input *CreateTaskInput) (*model.Task, error) {
	principal, err := requirePrivileged(ctx)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		ID:          types.NewTaskID(),
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
		Index:       input.Index,
		DueDate:     input.DueDate,
		Assignees:   input.Assignees,
	}
	if len(task.Assignees) == 0 {
		task.Assignees = []types.UserID{principal.ID}
	}

	if err := task.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, err.Error())
	}

	created, err := x.uc.repo.Task().Create(ctx, task)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create task")
	}

	logging.From(ctx).Info("task created",
		"task_id", created.ID,
		"name", created.Name,
		"created_by", principal.ID,
	)

	return created, nil
}

// List returns all tasks in board order
func (x *TaskUseCase) List(ctx context.Context) ([]*model.Task, error) {
	if _, err := requireAuthenticated(ctx); err != nil {
		return nil, err
	}

	tasks, err := x.uc.repo.Task().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tasks")
	}
	return tasks, nil
}

// Get returns a single task by ID
func (x *TaskUseCase) Get(ctx context.Context, id types.TaskID) (*model.Task, error) {
	if _, err := requireAuthenticated(ctx); err != nil {
		return nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "task ID is required")
	}

	task, err := x.uc.repo.Task().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrTaskNotFound, "task not found", goerr.V(TaskIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get task", goerr.V(TaskIDKey, id))
	}
	return task, nil
}

// UpdateStatus moves a task between board columns. Any authenticated principal
// may change the status, and any of the three statuses can follow any other.
func (x *TaskUseCase) UpdateStatus(ctx context.Context, id types.TaskID, status types.TaskStatus) (*model.Task, error) {
	principal, err := requireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "task ID is required")
	}
	if !status.IsValid() {
		return nil, goerr.Wrap(ErrInvalidInput, "status must be one of ToDo, InProgress, Done",
			goerr.V("status", status))
	}

	task, err := x.uc.repo.Task().UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrTaskNotFound, "task not found", goerr.V(TaskIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to update task status", goerr.V(TaskIDKey, id))
	}

	logging.From(ctx).Info("task status updated",
		"task_id", id,
		"status", status,
		"updated_by", principal.ID,
	)

	return task, nil
}

// Update overwrites the supplied fields of an existing task
func (x *TaskUseCase) Update(ctx context.Context, id types.TaskID, update *model.TaskUpdate) (*model.Task, error) {
	principal, err := requirePrivileged(ctx)
	if err != nil {
		return nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "task ID is required")
	}
	if update.Name != nil && *update.Name == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "task name cannot be cleared")
	}
	if update.Status != nil && !update.Status.IsValid() {
		return nil, goerr.Wrap(ErrInvalidInput, "status must be one of ToDo, InProgress, Done",
			goerr.V("status", *update.Status))
	}

	task, err := x.uc.repo.Task().Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrTaskNotFound, "task not found", goerr.V(TaskIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to update task", goerr.V(TaskIDKey, id))
	}

	logging.From(ctx).Info("task updated",
		"task_id", id,
		"updated_by", principal.ID,
	)

	return task, nil
}

// Delete removes a task from the board
func (x *TaskUseCase) Delete(ctx context.Context, id types.TaskID) error {
	principal, err := requirePrivileged(ctx)
	if err != nil {
		return err
	}
	if err := id.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidInput, "task ID is required")
	}

	if err := x.uc.repo.Task().Delete(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrTaskNotFound, "task not found", goerr.V(TaskIDKey, id))
		}
		return goerr.Wrap(err, "failed to delete task", goerr.V(TaskIDKey, id))
	}

	logging.From(ctx).Info("task deleted",
		"task_id", id,
		"deleted_by", principal.ID,
	)

	return nil
}
