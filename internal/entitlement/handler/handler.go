package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	id "vorsorge/pkg/domain"
	dErrors "vorsorge/pkg/domain-errors"
	"vorsorge/pkg/platform/httputil"
	"vorsorge/pkg/requestcontext"
)

// Service defines the interface for billing operations exposed over HTTP.
type Service interface {
	CreatePortalSession(ctx context.Context, userID id.UserID) (string, error)
}

// Handler wires billing endpoints to the entitlement service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a billing handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts billing endpoints on the router. The router is expected to
// run RequireAuth for this group.
func (h *Handler) Register(r chi.Router) {
	r.Post("/billing/portal", h.HandleCreatePortalSession)
}

// PortalSessionResponse is the HTTP response for POST /v1/billing/portal.
type PortalSessionResponse struct {
	URL string `json:"url"`
}

// HandleCreatePortalSession handles POST /v1/billing/portal requests.
func (h *Handler) HandleCreatePortalSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	url, err := h.service.CreatePortalSession(ctx, userID)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			h.logger.InfoContext(ctx, "portal session requested without billing customer",
				"request_id", requestID,
				"user_id", userID,
			)
		} else {
			h.logger.ErrorContext(ctx, "failed to create billing portal session",
				"request_id", requestID,
				"user_id", userID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, &PortalSessionResponse{URL: url})
}
