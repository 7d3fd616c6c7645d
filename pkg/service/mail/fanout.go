package mail

import (
	"context"

	"github.com/mindverse-hq/taskdeck/pkg/domain/model"
	"github.com/mindverse-hq/taskdeck/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxConcurrency caps simultaneous sends so a large assignee list
// cannot overwhelm the SMTP transport.
const DefaultMaxConcurrency = 10

// Fanout delivers a meeting invitation to every recipient concurrently and
// aggregates the per-recipient outcomes. One recipient's failure never
// prevents delivery to the others.
type Fanout struct {
	client         Client
	maxConcurrency int
}

// FanoutOption is a functional option for Fanout configuration
type FanoutOption func(*Fanout)

// WithMaxConcurrency overrides the concurrent send cap
func WithMaxConcurrency(n int) FanoutOption {
	return func(f *Fanout) {
		if n > 0 {
			f.maxConcurrency = n
		}
	}
}

// NewFanout creates a fan-out over the given transport. A nil client means
// the delivery credential is not configured: Send then reports zero attempts
// instead of failing each recipient.
func NewFanout(client Client, opts ...FanoutOption) *Fanout {
	f := &Fanout{
		client:         client,
		maxConcurrency: DefaultMaxConcurrency,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Send dispatches one personalized invitation per recipient and blocks until
// every attempt has resolved. Recipients without an email address are counted
// as failures rather than silently skipped.
func (f *Fanout) Send(ctx context.Context, meeting *model.Meeting, recipients []model.UserRef) *model.DeliveryReport {
	report := &model.DeliveryReport{
		Failures: []model.DeliveryFailure{},
	}

	if f.client == nil {
		report.Status = model.DeliveryStatusSkipped
		logging.From(ctx).Warn("mail transport not configured, skipping invitations",
			"meeting_id", meeting.ID,
			"recipients", len(recipients))
		return report
	}

	if len(recipients) == 0 {
		report.Resolve()
		return report
	}

	report.Attempted = len(recipients)
	results := make([]error, len(recipients))

	var eg errgroup.Group
	eg.SetLimit(f.maxConcurrency)

	for i, recipient := range recipients {
		eg.Go(func() error {
			if recipient.Email == "" {
				results[i] = errEmptyAddress(recipient)
				return nil
			}
			results[i] = f.client.Send(ctx, Invitation(meeting, recipient))
			return nil
		})
	}

	// Join barrier: the report is complete only once all attempts resolved.
	// Worker funcs never return an error, so Wait cannot fail.
	_ = eg.Wait()

	for i, err := range results {
		if err != nil {
			report.Failures = append(report.Failures, model.DeliveryFailure{
				Recipient: recipientLabel(recipients[i]),
				Reason:    err.Error(),
			})
			continue
		}
		report.Succeeded++
	}

	report.Resolve()

	logging.From(ctx).Info("meeting invitations dispatched",
		"meeting_id", meeting.ID,
		"attempted", report.Attempted,
		"succeeded", report.Succeeded,
		"status", report.Status)

	return report
}

type emptyAddressError struct {
	username string
}

func (e *emptyAddressError) Error() string {
	return "recipient has no email address: " + e.username
}

func errEmptyAddress(recipient model.UserRef) error {
	return &emptyAddressError{username: recipient.Username}
}

func recipientLabel(recipient model.UserRef) string {
	if recipient.Email != "" {
		return recipient.Email
	}
	return recipient.Username
}
