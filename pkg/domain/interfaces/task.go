package interfaces

import (
	"context"

	"github.com/mindverse-hq/taskdeck/pkg/domain/model"
	"github.com/mindverse-hq/taskdeck/pkg/domain/types"
)

// TaskRepository defines the interface for Task data access. Concurrent
// updates to the same task follow last-write-wins; no optimistic concurrency
// token is kept.
type TaskRepository interface {
	// Create stores a new task. ID and timestamps are assigned by the
	// repository when not already set.
	Create(ctx context.Context, task *model.Task) (*model.Task, error)

	// Get retrieves a task by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id types.TaskID) (*model.Task, error)

	// List retrieves all tasks ordered by board index, then creation time.
	List(ctx context.Context) ([]*model.Task, error)

	// UpdateStatus sets the status unconditionally; any of the three enum
	// values is accepted regardless of the prior status.
	UpdateStatus(ctx context.Context, id types.TaskID, status types.TaskStatus) (*model.Task, error)

	// Update overwrites the supplied fields of an existing task.
	Update(ctx context.Context, id types.TaskID, update *model.TaskUpdate) (*model.Task, error)

	// Delete removes a task by ID. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id types.TaskID) error
}
