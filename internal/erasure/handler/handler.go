// Package handler exposes account erasure over HTTP. Erasure is strictly
// self-service: the target is always the authenticated user.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vorsorge/internal/erasure"
	id "vorsorge/pkg/domain"
	dErrors "vorsorge/pkg/domain-errors"
	"vorsorge/pkg/platform/httputil"
	"vorsorge/pkg/requestcontext"
)

// Service defines the interface for account erasure exposed over HTTP.
type Service interface {
	EraseAccount(ctx context.Context, userID id.UserID) (*erasure.Report, error)
}

// Handler wires the account erasure endpoint to the erasure service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an erasure handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the erasure endpoint on the router. The router is expected
// to run RequireAuth for this group.
func (h *Handler) Register(r chi.Router) {
	r.Delete("/account", h.HandleEraseAccount)
}

// HandleEraseAccount handles DELETE /v1/account requests. The report is
// returned for partial failures too: the caller (and the operator reading
// the body) needs to know exactly what was and was not removed.
func (h *Handler) HandleEraseAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	report, err := h.service.EraseAccount(ctx, userID)

	var partial *erasure.PartialFailureError
	switch {
	case err == nil:
		httputil.WriteJSON(w, http.StatusOK, FromReport(report))

	case errors.As(err, &partial):
		h.logger.ErrorContext(ctx, "account erasure partially failed",
			"request_id", requestID,
			"user_id", userID,
			"stage", partial.Stage,
			"error", partial.Cause,
		)
		httputil.WriteJSON(w, statusForPartialFailure(partial), FromReport(report))

	default:
		if dErrors.Is(err, dErrors.CodeConflict) {
			h.logger.InfoContext(ctx, "account erasure already in progress",
				"request_id", requestID,
				"user_id", userID,
			)
		} else {
			h.logger.ErrorContext(ctx, "account erasure failed to start",
				"request_id", requestID,
				"user_id", userID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
	}
}

// statusForPartialFailure distinguishes the two terminal partial failures. A
// surviving identity after a purge is an upstream failure worth a 502; a
// purge leftover is our own storage failing.
func statusForPartialFailure(partial *erasure.PartialFailureError) int {
	if partial.Stage == erasure.StageDeletingIdentity {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
