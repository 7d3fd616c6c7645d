package config

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindverse-hq/taskdeck/pkg/domain/types"
)

// MeetingConfig holds the deterministic link-building rules and defaults for
// scheduled meetings. Loaded from the optional TOML application config.
type MeetingConfig struct {
	// ExternalBase is the conferencing host for externally hosted meetings.
	// The room is derived from the meeting ID, so the link is reproducible.
	ExternalBase string `toml:"external_base"`

	// InternalPath is the path under the application base URL for internally
	// hosted meetings.
	InternalPath string `toml:"internal_path"`

	// DefaultDuration is applied when a schedule request omits the duration
	// (minutes).
	DefaultDuration int `toml:"default_duration"`
}

// DefaultMeetingConfig returns the built-in meeting settings
func DefaultMeetingConfig() *MeetingConfig {
	return &MeetingConfig{
		ExternalBase:    "https://meet.jit.si",
		InternalPath:    "/meetings",
		DefaultDuration: 30,
	}
}

// Validate checks if the MeetingConfig is usable
func (c *MeetingConfig) Validate() error {
	if c.ExternalBase == "" {
		return goerr.New("meeting external_base is required")
	}
	if !strings.HasPrefix(c.ExternalBase, "http://") && !strings.HasPrefix(c.ExternalBase, "https://") {
		return goerr.New("meeting external_base must be an absolute URL", goerr.V("external_base", c.ExternalBase))
	}
	if !strings.HasPrefix(c.InternalPath, "/") {
		return goerr.New("meeting internal_path must start with '/'", goerr.V("internal_path", c.InternalPath))
	}
	if c.DefaultDuration <= 0 {
		return goerr.New("meeting default_duration must be positive", goerr.V("default_duration", c.DefaultDuration))
	}
	return nil
}

// JoinURL builds the deterministic join link for a meeting
func (c *MeetingConfig) JoinURL(meetingType types.MeetingType, id types.MeetingID, baseURL string) string {
	if meetingType.Normalize() == types.MeetingTypeExternal {
		return strings.TrimSuffix(c.ExternalBase, "/") + "/" + id.String()
	}
	return strings.TrimSuffix(baseURL, "/") + c.InternalPath + "/" + id.String()
}
