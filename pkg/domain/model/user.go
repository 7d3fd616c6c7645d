package model

import "github.com/mindverse-hq/taskdeck/pkg/domain/types"

// UserRef is a read-only reference to a user owned by the external
// user-management service. Role flags travel with the reference so the
// permission gate never needs a lookup.
type UserRef struct {
	ID       types.UserID `json:"id"`
	Username string       `json:"username"`
	Email    string       `json:"email"`
	IsLead   bool         `json:"isLead"`
	IsHR     bool         `json:"isHR"`
}
