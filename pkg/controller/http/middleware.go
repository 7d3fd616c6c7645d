package http

import (
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindverse-hq/taskdeck/pkg/domain/model/auth"
	"github.com/mindverse-hq/taskdeck/pkg/domain/types"
	"github.com/mindverse-hq/taskdeck/pkg/utils/errutil"
)

// Identity headers attached by the upstream auth collaborator
const (
	headerUserID   = "X-Auth-User-Id"
	headerUsername = "X-Auth-Username"
	headerEmail    = "X-Auth-Email"
	headerRoles    = "X-Auth-Roles"
)

// principalMiddleware extracts the authenticated principal from the identity
// headers set by the upstream auth layer. Requests without an identity get
// 401. When noAuthUID is set, every request runs as a fabricated privileged
// principal instead (development mode only).
func principalMiddleware(noAuthUID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if noAuthUID != "" {
				ctx := auth.ContextWith(r.Context(), auth.NewDevPrincipal(noAuthUID))
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			uid := r.Header.Get(headerUserID)
			if uid == "" {
				errutil.HandleHTTP(r.Context(), w,
					goerr.New("authentication required"), http.StatusUnauthorized)
				return
			}

			principal := &auth.Principal{
				ID:       types.UserID(uid),
				Username: r.Header.Get(headerUsername),
				Email:    r.Header.Get(headerEmail),
			}
			for _, role := range strings.Split(r.Header.Get(headerRoles), ",") {
				switch strings.ToLower(strings.TrimSpace(role)) {
				case "lead":
					principal.IsLead = true
				case "hr":
					principal.IsHR = true
				}
			}

			ctx := auth.ContextWith(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
