package directory

import (
	"context"

	"github.com/mindverse-hq/taskdeck/pkg/domain/model"
	"github.com/mindverse-hq/taskdeck/pkg/domain/types"
)

// Service resolves user references from the external user-management
// collaborator. Users are read-only here: this system never creates or
// mutates them.
type Service interface {
	// Resolve returns the references it can find, keyed by user ID. Unknown
	// IDs are simply absent from the result; resolution failures for
	// individual users are not errors.
	Resolve(ctx context.Context, ids []types.UserID) (map[types.UserID]model.UserRef, error)
}
