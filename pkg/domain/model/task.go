package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindverse-hq/taskdeck/pkg/domain/types"
)

// Task represents a trackable unit of work on the board
type Task struct {
	ID          types.TaskID     `json:"id" firestore:"id"`
	Name        string           `json:"name" firestore:"name"`
	Description string           `json:"description,omitempty" firestore:"description"`
	Status      types.TaskStatus `json:"progressStatus" firestore:"status"`
	Index       int              `json:"index" firestore:"index"`
	DueDate     *time.Time       `json:"dueDate,omitempty" firestore:"dueDate"`
	Assignees   []types.UserID   `json:"assignTo" firestore:"assignees"`
	CreatedAt   time.Time        `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt" firestore:"updatedAt"`
}

// Validate checks the creation invariants: name and a valid status are
// required. Assignees may be empty here; the usecase layer fills in the
// creator before the task is stored.
func (t *Task) Validate() error {
	if t.Name == "" {
		return goerr.New("task name is required")
	}
	if !t.Status.IsValid() {
		return goerr.New("task status is required and must be one of ToDo, InProgress, Done",
			goerr.V("status", t.Status))
	}
	return nil
}

// Clone returns a deep copy of the task
func (t *Task) Clone() *Task {
	copied := *t
	if t.Assignees != nil {
		copied.Assignees = make([]types.UserID, len(t.Assignees))
		copy(copied.Assignees, t.Assignees)
	}
	if t.DueDate != nil {
		due := *t.DueDate
		copied.DueDate = &due
	}
	return &copied
}

// TaskUpdate carries the fields of a full task update. Nil pointers mean the
// field is left unchanged (last write wins on the fields that are supplied).
type TaskUpdate struct {
	Name        *string
	Description *string
	Status      *types.TaskStatus
	Index       *int
	DueDate     *time.Time
	Assignees   []types.UserID
}

// Apply overwrites the supplied fields on the task
func (u *TaskUpdate) Apply(t *Task) error {
	if u.Name != nil {
		if *u.Name == "" {
			return goerr.New("task name cannot be cleared")
		}
		t.Name = *u.Name
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Status != nil {
		if !u.Status.IsValid() {
			return goerr.New("invalid task status", goerr.V("status", *u.Status))
		}
		t.Status = *u.Status
	}
	if u.Index != nil {
		t.Index = *u.Index
	}
	if u.DueDate != nil {
		due := *u.DueDate
		t.DueDate = &due
	}
	if u.Assignees != nil {
		t.Assignees = make([]types.UserID, len(u.Assignees))
		copy(t.Assignees, u.Assignees)
	}
	return nil
}
