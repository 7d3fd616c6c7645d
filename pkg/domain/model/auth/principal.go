package auth

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindverse-hq/taskdeck/pkg/domain/model"
	"github.com/mindverse-hq/taskdeck/pkg/domain/types"
)

// Principal is the authenticated identity attached to an inbound request by
// the external auth collaborator. Role flags model the capability set: a
// principal carrying Lead or HR may perform privileged operations.
type Principal struct {
	ID       types.UserID
	Username string
	Email    string
	IsLead   bool
	IsHR     bool
}

// IsPrivileged reports whether the principal may perform privileged actions
// (task create/update/delete, meeting analysis and scheduling). The single
// predicate keeps the capability check in one place.
func (p *Principal) IsPrivileged() bool {
	return p.IsLead || p.IsHR
}

// UserRef returns the principal as a read-only user reference
func (p *Principal) UserRef() model.UserRef {
	return model.UserRef{
		ID:       p.ID,
		Username: p.Username,
		Email:    p.Email,
		IsLead:   p.IsLead,
		IsHR:     p.IsHR,
	}
}

// NewDevPrincipal fabricates a privileged principal for no-auth development
// mode.
func NewDevPrincipal(uid string) *Principal {
	return &Principal{
		ID:       types.UserID(uid),
		Username: "dev",
		Email:    "dev@localhost",
		IsLead:   true,
	}
}

type ctxKey struct{}

// ContextWith returns a context carrying the principal
func ContextWith(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext extracts the principal from the context
func FromContext(ctx context.Context) (*Principal, error) {
	p, ok := ctx.Value(ctxKey{}).(*Principal)
	if !ok || p == nil {
		return nil, goerr.New("no principal in context")
	}
	return p, nil
}
