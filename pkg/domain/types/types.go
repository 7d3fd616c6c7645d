package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// TaskID represents a unique identifier for a task
type TaskID string

// NewTaskID generates a new random TaskID
func NewTaskID() TaskID {
	return TaskID(uuid.NewString())
}

// Validate checks if the TaskID is valid
func (x TaskID) Validate() error {
	if x == "" {
		return goerr.New("task ID cannot be empty")
	}
	return nil
}

// String returns the string representation of TaskID
func (x TaskID) String() string {
	return string(x)
}

// UserID represents a unique identifier for a user. Users are owned by the
// external user-management service; this system only carries references.
type UserID string

// Validate checks if the UserID is valid
func (x UserID) Validate() error {
	if x == "" {
		return goerr.New("user ID cannot be empty")
	}
	return nil
}

// String returns the string representation of UserID
func (x UserID) String() string {
	return string(x)
}

// MeetingID represents a unique identifier for a scheduled meeting
type MeetingID string

// NewMeetingID generates a new random MeetingID
func NewMeetingID() MeetingID {
	return MeetingID(uuid.NewString())
}

// Validate checks if the MeetingID is valid
func (x MeetingID) Validate() error {
	if x == "" {
		return goerr.New("meeting ID cannot be empty")
	}
	return nil
}

// String returns the string representation of MeetingID
func (x MeetingID) String() string {
	return string(x)
}
