package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	domainConfig "github.com/mindverse-hq/taskdeck/pkg/domain/model/config"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// App holds the CLI flag for the optional TOML application config
type App struct {
	path string
}

// appConfigFile is the TOML layout of the application config file
type appConfigFile struct {
	Meeting domainConfig.MeetingConfig `toml:"meeting"`
}

// Flags returns CLI flags for the application config
func (a *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to TOML application config (built-in defaults are used when unset)",
			Sources:     cli.EnvVars("TASKDECK_CONFIG"),
			Destination: &a.path,
		},
	}
}

// Configure loads the meeting settings from the TOML file, filling omitted
// fields with the built-in defaults.
func (a *App) Configure() (*domainConfig.MeetingConfig, error) {
	cfg := domainConfig.DefaultMeetingConfig()
	if a.path == "" {
		return cfg, nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", a.path))
	}

	var file appConfigFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", a.path))
	}

	if file.Meeting.ExternalBase != "" {
		cfg.ExternalBase = file.Meeting.ExternalBase
	}
	if file.Meeting.InternalPath != "" {
		cfg.InternalPath = file.Meeting.InternalPath
	}
	if file.Meeting.DefaultDuration != 0 {
		cfg.DefaultDuration = file.Meeting.DefaultDuration
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V("path", a.path))
	}

	return cfg, nil
}
