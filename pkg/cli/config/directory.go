package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/mindverse-hq/taskdeck/pkg/service/directory"
	"github.com/mindverse-hq/taskdeck/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Directory holds the CLI flag for the external user-management service
type Directory struct {
	baseURL string
}

// Flags returns CLI flags for directory configuration
func (d *Directory) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "directory-url",
			Usage:       "Base URL of the user-management service for assignee resolution (unresolved IDs are kept as bare references when unset)",
			Sources:     cli.EnvVars("TASKDECK_DIRECTORY_URL"),
			Destination: &d.baseURL,
		},
	}
}

// Configure builds the directory client, or nil when not configured
func (d *Directory) Configure() (directory.Service, error) {
	if d.baseURL == "" {
		return nil, nil
	}

	svc, err := directory.New(d.baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize directory client")
	}

	logging.Default().Info("User directory enabled", "url", d.baseURL)
	return svc, nil
}
