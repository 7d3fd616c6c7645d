package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/mindverse-hq/taskdeck/pkg/service/slackbot"
	"github.com/mindverse-hq/taskdeck/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Slack holds CLI flags for the meeting announcement channel
type Slack struct {
	botToken  string
	channelID string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack bot token for meeting announcements (announcements are disabled when unset)",
			Category:    "Slack",
			Sources:     cli.EnvVars("TASKDECK_SLACK_BOT_TOKEN"),
			Destination: &s.botToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel-id",
			Usage:       "Slack channel ID to announce scheduled meetings in",
			Category:    "Slack",
			Sources:     cli.EnvVars("TASKDECK_SLACK_CHANNEL_ID"),
			Destination: &s.channelID,
		},
	}
}

// Configure builds the announcement service, or nil when not configured
func (s *Slack) Configure() (slackbot.Service, error) {
	if s.botToken == "" {
		return nil, nil
	}
	if s.channelID == "" {
		return nil, goerr.New("slack-channel-id is required when slack-bot-token is set")
	}

	svc, err := slackbot.New(s.botToken, s.channelID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize slack service")
	}

	logging.Default().Info("Slack announcements enabled", "channel_id", s.channelID)
	return svc, nil
}
