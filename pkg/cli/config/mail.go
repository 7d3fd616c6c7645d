package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/mindverse-hq/taskdeck/pkg/service/mail"
	"github.com/mindverse-hq/taskdeck/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Mail holds CLI flags for the SMTP invitation transport
type Mail struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// Flags returns CLI flags for mail configuration
func (m *Mail) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "smtp-host",
			Usage:       "SMTP host for meeting invitations (invitations are skipped when unset)",
			Category:    "Mail",
			Sources:     cli.EnvVars("TASKDECK_SMTP_HOST"),
			Destination: &m.host,
		},
		&cli.IntFlag{
			Name:        "smtp-port",
			Usage:       "SMTP port",
			Category:    "Mail",
			Sources:     cli.EnvVars("TASKDECK_SMTP_PORT"),
			Destination: &m.port,
		},
		&cli.StringFlag{
			Name:        "smtp-username",
			Usage:       "SMTP username",
			Category:    "Mail",
			Sources:     cli.EnvVars("TASKDECK_SMTP_USERNAME"),
			Destination: &m.username,
		},
		&cli.StringFlag{
			Name:        "smtp-password",
			Usage:       "SMTP password",
			Category:    "Mail",
			Sources:     cli.EnvVars("TASKDECK_SMTP_PASSWORD"),
			Destination: &m.password,
		},
		&cli.StringFlag{
			Name:        "mail-from",
			Usage:       "Sender address for meeting invitations",
			Category:    "Mail",
			Sources:     cli.EnvVars("TASKDECK_MAIL_FROM"),
			Destination: &m.from,
		},
	}
}

// Configure builds the invitation fan-out. Without an SMTP host the fan-out
// runs with a nil transport and reports skipped deliveries instead of failing.
func (m *Mail) Configure() (*mail.Fanout, error) {
	if m.host == "" {
		logging.Default().Warn("SMTP not configured, meeting invitations will be skipped")
		return mail.NewFanout(nil), nil
	}

	client, err := mail.New(mail.Config{
		Host:     m.host,
		Port:     m.port,
		Username: m.username,
		Password: m.password,
		From:     m.from,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize mail client")
	}

	logging.Default().Info("Mail transport enabled", "host", m.host, "from", m.from)
	return mail.NewFanout(client), nil
}
