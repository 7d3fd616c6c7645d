package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindverse-hq/taskdeck/pkg/domain/interfaces"
	"github.com/mindverse-hq/taskdeck/pkg/domain/model/auth"
	"github.com/mindverse-hq/taskdeck/pkg/domain/model/config"
	"github.com/mindverse-hq/taskdeck/pkg/service/analyzer"
	"github.com/mindverse-hq/taskdeck/pkg/service/directory"
	"github.com/mindverse-hq/taskdeck/pkg/service/mail"
	"github.com/mindverse-hq/taskdeck/pkg/service/slackbot"
)

type UseCases struct {
	repo       interfaces.Repository
	analyzer   analyzer.Service
	fanout     *mail.Fanout
	directory  directory.Service
	slack      slackbot.Service
	baseURL    string
	meetingCfg *config.MeetingConfig

	Task    *TaskUseCase
	Meeting *MeetingUseCase
}

type Option func(*UseCases)

// WithAnalyzer injects the external analysis capability
func WithAnalyzer(svc analyzer.Service) Option {
	return func(uc *UseCases) {
		uc.analyzer = svc
	}
}

// WithFanout injects the invitation fan-out
func WithFanout(fanout *mail.Fanout) Option {
	return func(uc *UseCases) {
		uc.fanout = fanout
	}
}

// WithDirectory injects the user-management lookup
func WithDirectory(svc directory.Service) Option {
	return func(uc *UseCases) {
		uc.directory = svc
	}
}

// WithSlack injects the optional meeting announcement channel
func WithSlack(svc slackbot.Service) Option {
	return func(uc *UseCases) {
		uc.slack = svc
	}
}

// WithBaseURL sets the application base URL used for internal meeting links
func WithBaseURL(baseURL string) Option {
	return func(uc *UseCases) {
		uc.baseURL = baseURL
	}
}

// WithMeetingConfig overrides the meeting link/default settings
func WithMeetingConfig(cfg *config.MeetingConfig) Option {
	return func(uc *UseCases) {
		uc.meetingCfg = cfg
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.fanout == nil {
		uc.fanout = mail.NewFanout(nil)
	}
	if uc.meetingCfg == nil {
		uc.meetingCfg = config.DefaultMeetingConfig()
	}

	uc.Task = newTaskUseCase(uc)
	uc.Meeting = newMeetingUseCase(uc)

	return uc
}

// requireAuthenticated returns the principal attached to the request context
func requireAuthenticated(ctx context.Context) (*auth.Principal, error) {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(ErrNotAuthenticated, "no principal attached to request")
	}
	return principal, nil
}

// requirePrivileged is the permission gate: only principals carrying the Lead
// or HR capability may redefine work or schedule meetings.
func requirePrivileged(ctx context.Context) (*auth.Principal, error) {
	principal, err := requireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	if !principal.IsPrivileged() {
		return nil, goerr.Wrap(ErrPermissionDenied, "lead or HR role required",
			goerr.V(UserIDKey, principal.ID))
	}
	return principal, nil
}
