package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindverse-hq/taskdeck/pkg/domain/interfaces"
	"github.com/mindverse-hq/taskdeck/pkg/domain/model"
	"github.com/mindverse-hq/taskdeck/pkg/domain/types"
	"github.com/mindverse-hq/taskdeck/pkg/utils/safe"
)

type taskRepository struct {
	db *sql.DB
}

func encodeAssignees(assignees []types.UserID) (string, error) {
	if assignees == nil {
		assignees = []types.UserID{}
	}
	raw, err := json.Marshal(assignees)
	if err != nil {
		return "", goerr.Wrap(err, "failed to encode assignees")
	}
	return string(raw), nil
}

func scanTask(scan func(dest ...any) error) (*model.Task, error) {
	var task model.Task
	var assigneesRaw string
	var dueDate sql.NullString
	var createdAt, updatedAt string

	if err := scan(&task.ID, &task.Name, &task.Description, &task.Status,
		&task.Index, &dueDate, &assigneesRaw, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(assigneesRaw), &task.Assignees); err != nil {
		return nil, goerr.Wrap(err, "failed to decode assignees", goerr.V("id", task.ID))
	}
	if dueDate.Valid {
		due, err := time.Parse(time.RFC3339, dueDate.String)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse due date", goerr.V("id", task.ID))
		}
		task.DueDate = &due
	}

	var err error
	if task.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, goerr.Wrap(err, "failed to parse created_at", goerr.V("id", task.ID))
	}
	if task.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, goerr.Wrap(err, "failed to parse updated_at", goerr.V("id", task.ID))
	}

	return &task, nil
}

func dueDateParam(due *time.Time) any {
	if due == nil {
		return nil
	}
	return due.UTC().Format(time.RFC3339)
}

const taskColumns = "id, name, description, status, idx, due_date, assignees, created_at, updated_at"

func (r *taskRepository) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	created := task.Clone()
	if created.ID == "" {
		created.ID = types.NewTaskID()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	assignees, err := encodeAssignees(created.Assignees)
	if err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		created.ID.String(), created.Name, created.Description, created.Status.String(),
		created.Index, dueDateParam(created.DueDate), assignees,
		created.CreatedAt.Format(time.RFC3339Nano), created.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to insert task", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *taskRepository) Get(ctx context.Context, id types.TaskID) (*model.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id.String())

	task, err := scanTask(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "task not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get task", goerr.V("id", id))
	}

	return task, nil
}

func (r *taskRepository) List(ctx context.Context) ([]*model.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks ORDER BY idx, created_at`)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tasks")
	}
	defer safe.Close(ctx, rows)

	var tasks []*model.Task
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan task")
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate tasks")
	}

	return tasks, nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id types.TaskID, status types.TaskStatus) (*model.Task, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?`,
		status.String(), time.Now().UTC().Format(time.RFC3339Nano), id.String())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update task status", goerr.V("id", id))
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "task not found", goerr.V("id", id))
	}

	return r.Get(ctx, id)
}

func (r *taskRepository) Update(ctx context.Context, id types.TaskID, update *model.TaskUpdate) (*model.Task, error) {
	task, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := update.Apply(task); err != nil {
		return nil, err
	}
	task.UpdatedAt = time.Now().UTC()

	assignees, err := encodeAssignees(task.Assignees)
	if err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE tasks SET name = ?, description = ?, status = ?, idx = ?,
			due_date = ?, assignees = ?, updated_at = ? WHERE id = ?`,
		task.Name, task.Description, task.Status.String(), task.Index,
		dueDateParam(task.DueDate), assignees,
		task.UpdatedAt.Format(time.RFC3339Nano), id.String())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update task", goerr.V("id", id))
	}

	return task, nil
}

func (r *taskRepository) Delete(ctx context.Context, id types.TaskID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id.String())
	if err != nil {
		return goerr.Wrap(err, "failed to delete task", goerr.V("id", id))
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return goerr.Wrap(interfaces.ErrNotFound, "task not found", goerr.V("id", id))
	}

	return nil
}
