package interfaces

import "errors"

// ErrNotFound is returned by every repository backend when the referenced
// entity does not exist. Callers distinguish it from storage failures with
// errors.Is.
var ErrNotFound = errors.New("not found")

// Repository defines the interface for data persistence
type Repository interface {
	Task() TaskRepository
	Meeting() MeetingRepository

	Close() error
}
