package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mindverse-hq/taskdeck/pkg/domain/model"
	"github.com/mindverse-hq/taskdeck/pkg/domain/model/auth"
	"github.com/mindverse-hq/taskdeck/pkg/domain/types"
	"github.com/mindverse-hq/taskdeck/pkg/repository/memory"
	"github.com/mindverse-hq/taskdeck/pkg/usecase"
)

func leadContext() context.Context {
	return auth.ContextWith(context.Background(), &auth.Principal{
		ID:       "lead-1",
		Username: "alice",
		Email:    "alice@example.com",
		IsLead:   true,
	})
}

func hrContext() context.Context {
	return auth.ContextWith(context.Background(), &auth.Principal{
		ID:       "hr-1",
		Username: "heidi",
		Email:    "heidi@example.com",
		IsHR:     true,
	})
}

func memberContext() context.Context {
	return auth.ContextWith(context.Background(), &auth.Principal{
		ID:       "member-1",
		Username: "bob",
		Email:    "bob@example.com",
	})
}

func TestTaskCreate(t *testing.T) {
	uc := usecase.New(memory.New())

	t.Run("creates task with supplied fields", func(t *testing.T) {
		task, err := uc.Task.Create(leadContext(), &usecase.CreateTaskInput{
			Name:        "Prepare onboarding",
			Description: "New hire starts Monday",
			Status:      types.TaskStatusInProgress,
			Assignees:   []types.UserID{"member-1", "member-2"},
		})
		gt.NoError(t, err).Required()

		gt.String(t, task.ID.String()).NotEqual("")
		gt.Value(t, task.Name).Equal("Prepare onboarding")
		gt.Value(t, task.Status).Equal(types.TaskStatusInProgress)
		gt.Array(t, task.Assignees).Length(2)
		gt.Bool(t, task.CreatedAt.IsZero()).False()
	})

	t.Run("defaults assignee to the creator", func(t *testing.T) {
		task, err := uc.Task.Create(leadContext(), &usecase.CreateTaskInput{
			Name:   "Unassigned work",
			Status: types.TaskStatusToDo,
		})
		gt.NoError(t, err).Required()

		gt.Array(t, task.Assignees).Length(1)
		gt.Value(t, task.Assignees[0]).Equal(types.UserID("lead-1"))
	})

	t.Run("HR can create tasks", func(t *testing.T) {
		task, err := uc.Task.Create(hrContext(), &usecase.CreateTaskInput{
			Name:   "Review compensation",
			Status: types.TaskStatusToDo,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, task.Assignees[0]).Equal(types.UserID("hr-1"))
	})

	t.Run("regular member cannot create tasks", func(t *testing.T) {
		_, err := uc.Task.Create(memberContext(), &usecase.CreateTaskInput{
			Name: "Should fail",
		})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrPermissionDenied)).True()
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		_, err := uc.Task.Create(context.Background(), &usecase.CreateTaskInput{
			Name: "Should fail",
		})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrNotAuthenticated)).True()
	})

	t.Run("empty name is invalid", func(t *testing.T) {
		_, err := uc.Task.Create(leadContext(), &usecase.CreateTaskInput{
			Status: types.TaskStatusToDo,
		})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidInput)).True()
	})

	t.Run("missing status is invalid", func(t *testing.T) {
		_, err := uc.Task.Create(leadContext(), &usecase.CreateTaskInput{
			Name: "No status supplied",
		})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidInput)).True()
	})

	t.Run("unknown status is invalid", func(t *testing.T) {
		_, err := uc.Task.Create(leadContext(), &usecase.CreateTaskInput{
			Name:   "Bad status",
			Status: types.TaskStatus("Blocked"),
		})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidInput)).True()
	})
}

func TestTaskListAndGet(t *testing.T) {
	uc := usecase.New(memory.New())
	ctx := leadContext()

	created, err := uc.Task.Create(ctx, &usecase.CreateTaskInput{
		Name:   "Visible to everyone",
		Status: types.TaskStatusToDo,
	})
	gt.NoError(t, err).Required()

	t.Run("member can list tasks", func(t *testing.T) {
		tasks, err := uc.Task.List(memberContext())
		gt.NoError(t, err).Required()
		gt.Array(t, tasks).Length(1)
	})

	t.Run("member can get a task", func(t *testing.T) {
		task, err := uc.Task.Get(memberContext(), created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, task.Name).Equal("Visible to everyone")
	})

	t.Run("unknown ID returns not found", func(t *testing.T) {
		_, err := uc.Task.Get(ctx, types.NewTaskID())
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrTaskNotFound)).True()
	})

	t.Run("unauthenticated list is rejected", func(t *testing.T) {
		_, err := uc.Task.List(context.Background())
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrNotAuthenticated)).True()
	})
}

func TestTaskUpdateStatus(t *testing.T) {
	uc := usecase.New(memory.New())
	ctx := leadContext()

	created, err := uc.Task.Create(ctx, &usecase.CreateTaskInput{
		Name:   "Movable",
		Status: types.TaskStatusToDo,
	})
	gt.NoError(t, err).Required()

	t.Run("member can move a task between columns", func(t *testing.T) {
		task, err := uc.Task.UpdateStatus(memberContext(), created.ID, types.TaskStatusDone)
		gt.NoError(t, err).Required()
		gt.Value(t, task.Status).Equal(types.TaskStatusDone)
	})

	t.Run("re-applying the same status is idempotent", func(t *testing.T) {
		first, err := uc.Task.UpdateStatus(memberContext(), created.ID, types.TaskStatusDone)
		gt.NoError(t, err).Required()
		second, err := uc.Task.UpdateStatus(memberContext(), created.ID, types.TaskStatusDone)
		gt.NoError(t, err).Required()
		gt.Value(t, second.Status).Equal(first.Status)
		gt.Value(t, second.Name).Equal(first.Name)
		gt.Array(t, second.Assignees).Length(len(first.Assignees))
	})

	t.Run("any transition is allowed, including backwards", func(t *testing.T) {
		task, err := uc.Task.UpdateStatus(memberContext(), created.ID, types.TaskStatusToDo)
		gt.NoError(t, err).Required()
		gt.Value(t, task.Status).Equal(types.TaskStatusToDo)
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		_, err := uc.Task.UpdateStatus(ctx, created.ID, types.TaskStatus("Archived"))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidInput)).True()
	})

	t.Run("unknown task returns not found", func(t *testing.T) {
		_, err := uc.Task.UpdateStatus(ctx, types.NewTaskID(), types.TaskStatusDone)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrTaskNotFound)).True()
	})
}

func TestTaskUpdate(t *testing.T) {
	uc := usecase.New(memory.New())
	ctx := leadContext()

	created, err := uc.Task.Create(ctx, &usecase.CreateTaskInput{
		Name:        "Original",
		Description: "before",
		Status:      types.TaskStatusToDo,
	})
	gt.NoError(t, err).Required()

	t.Run("overwrites supplied fields only", func(t *testing.T) {
		name := "Renamed"
		task, err := uc.Task.Update(ctx, created.ID, &model.TaskUpdate{
			Name: &name,
		})
		gt.NoError(t, err).Required()

		gt.Value(t, task.Name).Equal("Renamed")
		gt.Value(t, task.Description).Equal("before")
	})

	t.Run("member cannot update", func(t *testing.T) {
		name := "Hijacked"
		_, err := uc.Task.Update(memberContext(), created.ID, &model.TaskUpdate{Name: &name})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrPermissionDenied)).True()
	})

	t.Run("name cannot be cleared", func(t *testing.T) {
		empty := ""
		_, err := uc.Task.Update(ctx, created.ID, &model.TaskUpdate{Name: &empty})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidInput)).True()
	})
}

func TestTaskDelete(t *testing.T) {
	uc := usecase.New(memory.New())
	ctx := leadContext()

	created, err := uc.Task.Create(ctx, &usecase.CreateTaskInput{
		Name:   "Disposable",
		Status: types.TaskStatusToDo,
	})
	gt.NoError(t, err).Required()

	t.Run("member cannot delete", func(t *testing.T) {
		err := uc.Task.Delete(memberContext(), created.ID)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrPermissionDenied)).True()
	})

	t.Run("lead can delete", func(t *testing.T) {
		gt.NoError(t, uc.Task.Delete(ctx, created.ID))

		_, err := uc.Task.Get(ctx, created.ID)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrTaskNotFound)).True()
	})

	t.Run("deleting twice returns not found", func(t *testing.T) {
		err := uc.Task.Delete(ctx, created.ID)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrTaskNotFound)).True()
	})
}
