package firestore

import (
	"context"
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

type meetingRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newMeetingRepository(client *firestore.Client) *meetingRepository {
	return &meetingRepository{client: client}
}

func (r *meetingRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_meetings"
	}
	return "meetings"
}

func (r *meetingRepository) Create(ctx context.Context, meeting *model.Meeting) (*model.Meeting, error) {
	created := *meeting
	if created.ID == "" {
		created.ID = types.NewMeetingID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	if _, err := r.client.Collection(r.collection()).Doc(created.ID.String()).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create meeting record", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *meetingRepository) Get(ctx context.Context, id types.MeetingID) (*model.Meeting, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "meeting not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get meeting", goerr.V("id", id))
	}

	var meeting model.Meeting
	if err := docSnap.DataTo(&meeting); err != nil {
		return nil, goerr.Wrap(err, "failed to decode meeting", goerr.V("id", id))
	}

	return &meeting, nil
}

func (r *meetingRepository) List(ctx context.Context) ([]*model.Meeting, error) {
	iter := r.client.Collection(r.collection()).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var meetings []*model.Meeting
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate meetings")
		}

		var meeting model.Meeting
		if err := docSnap.DataTo(&meeting); err != nil {
			return nil, goerr.Wrap(err, "failed to decode meeting", goerr.V("doc_id", docSnap.Ref.ID))
		}

		meetings = append(meetings, &meeting)
	}

	return meetings, nil
}
