package mail

import (
	"fmt"
	"strings"

	"github.com/mindverse-hq/taskdeck/pkg/domain/model"
	"github.com/mindverse-hq/taskdeck/pkg/domain/types"
)

// Invitation renders the personalized email for one recipient of a scheduled
// meeting.
func Invitation(meeting *model.Meeting, recipient model.UserRef) *Message {
	name := recipient.Username
	if name == "" {
		name = recipient.Email
	}

	var joinLine string
	if meeting.Type.Normalize() == types.MeetingTypeExternal {
		joinLine = fmt.Sprintf("Join the video conference: %s", meeting.JoinURL)
	} else {
		joinLine = fmt.Sprintf("Open the meeting room in the workspace: %s", meeting.JoinURL)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", name)
	fmt.Fprintf(&b, "You are invited to %q, scheduled for the task %q.\n\n", meeting.Title, meeting.TaskName)
	fmt.Fprintf(&b, "When:     %s at %s (%d minutes)\n", meeting.Date, meeting.Time, meeting.Duration)
	fmt.Fprintf(&b, "Organizer: %s\n", meeting.OrganizerName)
	if meeting.Agenda != "" {
		fmt.Fprintf(&b, "Agenda:\n%s\n", meeting.Agenda)
	}
	fmt.Fprintf(&b, "\n%s\n", joinLine)

	return &Message{
		To:      recipient.Email,
		ToName:  name,
		Subject: fmt.Sprintf("Meeting invitation: %s", meeting.Title),
		Body:    b.String(),
	}
}
