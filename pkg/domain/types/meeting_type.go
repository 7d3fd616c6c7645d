package types

import "fmt"

// MeetingType determines how the join link of a meeting is built
type MeetingType string

const (
	// MeetingTypeExternal uses an externally hosted conferencing room
	MeetingTypeExternal MeetingType = "external"
	// MeetingTypeInternal uses a link under the application's own base URL
	MeetingTypeInternal MeetingType = "internal"
)

// IsValid checks if the meeting type is valid
func (t MeetingType) IsValid() bool {
	switch t {
	case MeetingTypeExternal, MeetingTypeInternal:
		return true
	default:
		return false
	}
}

// Normalize returns the meeting type, treating empty as MeetingTypeInternal
func (t MeetingType) Normalize() MeetingType {
	if t == "" {
		return MeetingTypeInternal
	}
	return t
}

// String returns the string representation of the meeting type
func (t MeetingType) String() string {
	return string(t)
}

// ParseMeetingType parses a string into a MeetingType, empty defaults to internal
func ParseMeetingType(s string) (MeetingType, error) {
	t := MeetingType(s).Normalize()
	if !t.IsValid() {
		return "", fmt.Errorf("invalid meeting type: %s", s)
	}
	return t, nil
}
