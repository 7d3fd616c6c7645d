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

type meetingRepository struct {
	mu       sync.RWMutex
	meetings map[types.MeetingID]*model.Meeting
}

func newMeetingRepository() *meetingRepository {
	return &meetingRepository{
		meetings: make(map[types.MeetingID]*model.Meeting),
	}
}

func copyMeeting(m *model.Meeting) *model.Meeting {
	copied := *m
	if m.Recipients != nil {
		copied.Recipients = make([]model.UserRef, len(m.Recipients))
		copy(copied.Recipients, m.Recipients)
	}
	return &copied
}

func (r *meetingRepository) Create(ctx context.Context, meeting *model.Meeting) (*model.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyMeeting(meeting)
	if created.ID == "" {
		created.ID = types.NewMeetingID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.meetings[created.ID] = created
	return copyMeeting(created), nil
}

func (r *meetingRepository) Get(ctx context.Context, id types.MeetingID) (*model.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meeting, exists := r.meetings[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "meeting not found", goerr.V("id", id))
	}

	return copyMeeting(meeting), nil
}

func (r *meetingRepository) List(ctx context.Context) ([]*model.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Meeting, 0, len(r.meetings))
	for _, meeting := range r.meetings {
		result = append(result, copyMeeting(meeting))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}
