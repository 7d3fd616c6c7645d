package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mindverse-hq/taskdeck/pkg/domain/interfaces"
	"github.com/mindverse-hq/taskdeck/pkg/domain/model"
	"github.com/mindverse-hq/taskdeck/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type taskRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newTaskRepository(client *firestore.Client) *taskRepository {
	return &taskRepository{client: client}
}

func (r *taskRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_tasks"
	}
	return "tasks"
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	created := task.Clone()
	if created.ID == "" {
		created.ID = types.NewTaskID()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.client.Collection(r.collection()).Doc(created.ID.String()).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create task", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *taskRepository) Get(ctx context.Context, id types.TaskID) (*model.Task, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "task not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get task", goerr.V("id", id))
	}

	var task model.Task
	if err := docSnap.DataTo(&task); err != nil {
		return nil, goerr.Wrap(err, "failed to decode task", goerr.V("id", id))
	}

	return &task, nil
}

func (r *taskRepository) List(ctx context.Context) ([]*model.Task, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var tasks []*model.Task
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate tasks")
		}

		var task model.Task
		if err := docSnap.DataTo(&task); err != nil {
			return nil, goerr.Wrap(err, "failed to decode task", goerr.V("doc_id", docSnap.Ref.ID))
		}

		tasks = append(tasks, &task)
	}

	// Board ordering; sorted client-side to avoid a composite index requirement
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Index != tasks[j].Index {
			return tasks[i].Index < tasks[j].Index
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})

	return tasks, nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id types.TaskID, taskStatus types.TaskStatus) (*model.Task, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "status", Value: taskStatus.String()},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "task not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to update task status", goerr.V("id", id))
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

	// Whole-document write: last write wins per the storage contract
	if _, err := r.client.Collection(r.collection()).Doc(id.String()).Set(ctx, task); err != nil {
		return nil, goerr.Wrap(err, "failed to update task", goerr.V("id", id))
	}

	return task, nil
}

func (r *taskRepository) Delete(ctx context.Context, id types.TaskID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(interfaces.ErrNotFound, "task not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check task existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete task", goerr.V("id", id))
	}

	return nil
}
