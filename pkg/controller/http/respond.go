package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindverse-hq/taskdeck/pkg/usecase"
	"github.com/mindverse-hq/taskdeck/pkg/utils/errutil"
	"github.com/mindverse-hq/taskdeck/pkg/utils/logging"
)

func respondJSON(ctx context.Context, w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.From(ctx).Error("failed to encode response", "error", err.Error())
	}
}

// handleError maps use case failures to HTTP status codes. Anything without a
// known sentinel is a server-side failure.
func handleError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrTaskAlreadyDone):
		// The message is part of the API contract
		errutil.HandleHTTP(ctx, w,
			goerr.New("Cannot schedule meeting for completed tasks"), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidInput):
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrNotAuthenticated):
		errutil.HandleHTTP(ctx, w, err, http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPermissionDenied):
		errutil.HandleHTTP(ctx, w, err, http.StatusForbidden)
	case errors.Is(err, usecase.ErrTaskNotFound), errors.Is(err, usecase.ErrMeetingNotFound):
		errutil.HandleHTTP(ctx, w, err, http.StatusNotFound)
	default:
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(usecase.ErrInvalidInput, "invalid JSON body")
	}
	return nil
}
