package model

import (
	"time"

	"github.com/mindverse-hq/taskdeck/pkg/domain/types"
)

// Meeting is the descriptor of a scheduled meeting. It is assembled per
// schedule request and also stored as the audit record of the scheduling
// decision. Delivery outcome is not part of the record: whether invitations
// arrived does not change the fact that the meeting was scheduled.
type Meeting struct {
	ID            types.MeetingID   `json:"id" firestore:"id"`
	TaskID        types.TaskID      `json:"taskId" firestore:"taskId"`
	TaskName      string            `json:"taskName" firestore:"taskName"`
	Title         string            `json:"meetingTitle" firestore:"title"`
	Date          string            `json:"meetingDate" firestore:"date"`
	Time          string            `json:"meetingTime" firestore:"time"`
	Duration      int               `json:"duration" firestore:"duration"`
	Agenda        string            `json:"agenda,omitempty" firestore:"agenda"`
	Type          types.MeetingType `json:"meetingType" firestore:"type"`
	JoinURL       string            `json:"joinUrl" firestore:"joinUrl"`
	OrganizerID   types.UserID      `json:"organizerId" firestore:"organizerId"`
	OrganizerName string            `json:"organizerName" firestore:"organizerName"`
	Recipients    []UserRef         `json:"recipients" firestore:"recipients"`
	CreatedAt     time.Time         `json:"createdAt" firestore:"createdAt"`
}
