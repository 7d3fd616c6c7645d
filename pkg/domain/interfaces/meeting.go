package interfaces

import (
	"context"

	"github.com/mindverse-hq/taskdeck/pkg/domain/model"
	"github.com/mindverse-hq/taskdeck/pkg/domain/types"
)

// MeetingRepository defines the interface for the meeting audit trail.
// Records are written once when a meeting is scheduled and never mutated.
type MeetingRepository interface {
	// Create stores the record of a scheduling decision.
	Create(ctx context.Context, meeting *model.Meeting) (*model.Meeting, error)

	// Get retrieves a meeting record by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id types.MeetingID) (*model.Meeting, error)

	// List retrieves all meeting records, newest first.
	List(ctx context.Context) ([]*model.Meeting, error)
}
