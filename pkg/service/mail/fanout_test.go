package mail_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/mindverse-hq/taskdeck/pkg/domain/model"
	"github.com/mindverse-hq/taskdeck/pkg/domain/types"
	"github.com/mindverse-hq/taskdeck/pkg/service/mail"
)

type recordingClient struct {
	mu       sync.Mutex
	sent     []*mail.Message
	failAddr map[string]bool
}

func (c *recordingClient) Send(ctx context.Context, msg *mail.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failAddr[msg.To] {
		return goerr.New("smtp: 550 mailbox unavailable", goerr.V("to", msg.To))
	}
	c.sent = append(c.sent, msg)
	return nil
}

func testMeeting(meetingType types.MeetingType) *model.Meeting {
	return &model.Meeting{
		ID:            types.MeetingID("m1"),
		TaskID:        types.TaskID("t1"),
		TaskName:      "Design Review",
		Title:         "Kickoff Meeting - Design Review",
		Date:          "2026-09-02",
		Time:          "10:00",
		Duration:      45,
		Agenda:        "Scope, roles, timeline",
		Type:          meetingType,
		JoinURL:       "https://app.example.com/meetings/m1",
		OrganizerName: "lead",
	}
}

func recipients(n int) []model.UserRef {
	users := []model.UserRef{
		{ID: "u1", Username: "alice", Email: "alice@example.com"},
		{ID: "u2", Username: "bob", Email: "bob@example.com"},
		{ID: "u3", Username: "carol", Email: "carol@example.com"},
	}
	return users[:n]
}

func TestFanout_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("all recipients delivered", func(t *testing.T) {
		client := &recordingClient{}
		fanout := mail.NewFanout(client)

		report := fanout.Send(ctx, testMeeting(types.MeetingTypeInternal), recipients(3))

		gt.Number(t, report.Attempted).Equal(3)
		gt.Number(t, report.Succeeded).Equal(3)
		gt.Array(t, report.Failures).Length(0)
		gt.Value(t, report.Status).Equal(model.DeliveryStatusDelivered)
		gt.Array(t, client.sent).Length(3)
	})

	t.Run("one failing recipient does not block the others", func(t *testing.T) {
		client := &recordingClient{failAddr: map[string]bool{"bob@example.com": true}}
		fanout := mail.NewFanout(client)

		report := fanout.Send(ctx, testMeeting(types.MeetingTypeInternal), recipients(3))

		gt.Number(t, report.Attempted).Equal(3)
		gt.Number(t, report.Succeeded).Equal(2)
		gt.Array(t, report.Failures).Length(1)
		gt.Value(t, report.Failures[0].Recipient).Equal("bob@example.com")
		gt.String(t, report.Failures[0].Reason).Contains("550")
		gt.Value(t, report.Status).Equal(model.DeliveryStatusPartial)
	})

	t.Run("unconfigured transport reports zero attempts", func(t *testing.T) {
		fanout := mail.NewFanout(nil)

		report := fanout.Send(ctx, testMeeting(types.MeetingTypeInternal), recipients(3))

		gt.Number(t, report.Attempted).Equal(0)
		gt.Number(t, report.Succeeded).Equal(0)
		gt.Value(t, report.Status).Equal(model.DeliveryStatusSkipped)
	})

	t.Run("all recipients failing reports failed", func(t *testing.T) {
		client := &recordingClient{failAddr: map[string]bool{
			"alice@example.com": true,
			"bob@example.com":   true,
		}}
		fanout := mail.NewFanout(client)

		report := fanout.Send(ctx, testMeeting(types.MeetingTypeInternal), recipients(2))

		gt.Number(t, report.Succeeded).Equal(0)
		gt.Array(t, report.Failures).Length(2)
		gt.Value(t, report.Status).Equal(model.DeliveryStatusFailed)
	})

	t.Run("recipient without address is a failure, not a crash", func(t *testing.T) {
		client := &recordingClient{}
		fanout := mail.NewFanout(client)

		report := fanout.Send(ctx, testMeeting(types.MeetingTypeInternal), []model.UserRef{
			{ID: "u9", Username: "ghost"},
		})

		gt.Number(t, report.Attempted).Equal(1)
		gt.Number(t, report.Succeeded).Equal(0)
		gt.Array(t, report.Failures).Length(1)
		gt.Value(t, report.Failures[0].Recipient).Equal("ghost")
	})

	t.Run("no recipients", func(t *testing.T) {
		client := &recordingClient{}
		fanout := mail.NewFanout(client)

		report := fanout.Send(ctx, testMeeting(types.MeetingTypeInternal), nil)

		gt.Number(t, report.Attempted).Equal(0)
		gt.Value(t, report.Status).Equal(model.DeliveryStatusEmpty)
	})
}

func TestInvitation(t *testing.T) {
	t.Run("personalized body embeds meeting details", func(t *testing.T) {
		msg := mail.Invitation(testMeeting(types.MeetingTypeInternal), model.UserRef{
			Username: "alice", Email: "alice@example.com",
		})

		gt.Value(t, msg.To).Equal("alice@example.com")
		gt.String(t, msg.Subject).Contains("Kickoff Meeting - Design Review")
		gt.String(t, msg.Body).Contains("Hi alice,")
		gt.String(t, msg.Body).Contains("2026-09-02 at 10:00 (45 minutes)")
		gt.String(t, msg.Body).Contains("lead")
		gt.String(t, msg.Body).Contains("Scope, roles, timeline")
	})

	t.Run("join link wording differs by meeting type", func(t *testing.T) {
		internal := mail.Invitation(testMeeting(types.MeetingTypeInternal), recipients(1)[0])
		gt.String(t, internal.Body).Contains("Open the meeting room in the workspace:")

		external := mail.Invitation(testMeeting(types.MeetingTypeExternal), recipients(1)[0])
		gt.String(t, external.Body).Contains("Join the video conference:")
		gt.Bool(t, strings.Contains(external.Body, "Open the meeting room")).False()
	})
}
