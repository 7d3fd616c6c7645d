package slackbot

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindverse-hq/taskdeck/pkg/domain/model"
	"github.com/slack-go/slack"
)

// Service announces scheduled meetings to a team channel. Announcements are
// best-effort: they run detached from the request and never change the
// outcome of a schedule call.
type Service interface {
	AnnounceMeeting(ctx context.Context, meeting *model.Meeting) error
}

type client struct {
	api       *slack.Client
	channelID string
}

var _ Service = &client{}

// New creates a Slack announcement service posting to the given channel
func New(token, channelID string) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channelID == "" {
		return nil, goerr.New("Slack channel ID is required")
	}

	return &client{
		api:       slack.New(token),
		channelID: channelID,
	}, nil
}

func (c *client) AnnounceMeeting(ctx context.Context, meeting *model.Meeting) error {
	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, meeting.Title, false, false),
		),
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType,
				fmt.Sprintf("*Task:* %s\n*When:* %s at %s (%d min)\n*Organizer:* %s\n<%s|Join>",
					meeting.TaskName, meeting.Date, meeting.Time, meeting.Duration,
					meeting.OrganizerName, meeting.JoinURL),
				false, false),
			nil, nil,
		),
	}

	fallback := fmt.Sprintf("Meeting scheduled: %s (%s at %s)", meeting.Title, meeting.Date, meeting.Time)

	_, _, err := c.api.PostMessageContext(ctx, c.channelID,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(fallback, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to announce meeting",
			goerr.V("channel", c.channelID),
			goerr.V("meeting_id", meeting.ID))
	}

	return nil
}
