package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindverse-hq/taskdeck/pkg/domain/interfaces"
	"github.com/mindverse-hq/taskdeck/pkg/domain/model"
	"github.com/mindverse-hq/taskdeck/pkg/domain/types"
)

type taskRepository struct {
	mu    sync.RWMutex
	tasks map[types.TaskID]*model.Task
}

func newTaskRepository() *taskRepository {
	return &taskRepository{
		tasks: make(map[types.TaskID]*model.Task),
	}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := task.Clone()
	if created.ID == "" {
		created.ID = types.NewTaskID()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.tasks[created.ID] = created
	return created.Clone(), nil
}

func (r *taskRepository) Get(ctx context.Context, id types.TaskID) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, exists := r.tasks[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "task not found", goerr.V("id", id))
	}

	return task.Clone(), nil
}

func (r *taskRepository) List(ctx context.Context) ([]*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		result = append(result, task.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Index != result[j].Index {
			return result[i].Index < result[j].Index
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id types.TaskID, status types.TaskStatus) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, exists := r.tasks[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "task not found", goerr.V("id", id))
	}

	task.Status = status
	task.UpdatedAt = time.Now().UTC()

	return task.Clone(), nil
}

func (r *taskRepository) Update(ctx context.Context, id types.TaskID, update *model.TaskUpdate) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.tasks[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "task not found", goerr.V("id", id))
	}

	// Apply to a copy so a failed update leaves the stored task untouched
	task := stored.Clone()
	if err := update.Apply(task); err != nil {
		return nil, err
	}
	task.UpdatedAt = time.Now().UTC()

	r.tasks[id] = task
	return task.Clone(), nil
}

func (r *taskRepository) Delete(ctx context.Context, id types.TaskID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tasks[id]; !exists {
		return goerr.Wrap(interfaces.ErrNotFound, "task not found", goerr.V("id", id))
	}

	delete(r.tasks, id)
	return nil
}
