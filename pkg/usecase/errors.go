package usecase

import "errors"

// Sentinel errors for the use case layer. The HTTP controller maps these to
// status codes; everything else is a server-side failure.
var (
	// Not found
	ErrTaskNotFound    = errors.New("task not found")
	ErrMeetingNotFound = errors.New("meeting not found")

	// Authorization
	ErrNotAuthenticated = errors.New("authentication required")
	ErrPermissionDenied = errors.New("permission denied")

	// Validation
	ErrInvalidInput    = errors.New("invalid input")
	ErrTaskAlreadyDone = errors.New("cannot schedule meeting for completed tasks")
)

// Context keys for error values
const (
	TaskIDKey    = "task_id"
	MeetingIDKey = "meeting_id"
	UserIDKey    = "user_id"
)
