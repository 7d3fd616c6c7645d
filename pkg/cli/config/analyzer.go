package config

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindverse-hq/taskdeck/pkg/service/analyzer"
	"github.com/mindverse-hq/taskdeck/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Analyzer holds CLI flags for the external analysis process
type Analyzer struct {
	command string
	timeout time.Duration
}

// Flags returns CLI flags for analyzer configuration
func (a *Analyzer) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "analyzer-command",
			Usage:       "Command line of the analysis process, e.g. 'python3 scripts/meeting_api.py' (analysis is disabled when unset)",
			Category:    "Analyzer",
			Sources:     cli.EnvVars("TASKDECK_ANALYZER_COMMAND"),
			Destination: &a.command,
		},
		&cli.DurationFlag{
			Name:        "analyzer-timeout",
			Usage:       "Deadline for a single analysis call",
			Category:    "Analyzer",
			Value:       analyzer.DefaultTimeout,
			Sources:     cli.EnvVars("TASKDECK_ANALYZER_TIMEOUT"),
			Destination: &a.timeout,
		},
	}
}

// Configure builds the subprocess analyzer. Returns nil when no command is
// configured; the analyze endpoint then reports the capability as missing.
func (a *Analyzer) Configure() (analyzer.Service, error) {
	if a.command == "" {
		logging.Default().Warn("Analyzer command not configured, task analysis is disabled")
		return nil, nil
	}

	svc, err := analyzer.New(strings.Fields(a.command), analyzer.WithTimeout(a.timeout))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize analyzer")
	}

	logging.Default().Info("Analyzer enabled", "command", a.command, "timeout", a.timeout)
	return svc, nil
}
