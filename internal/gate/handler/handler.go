package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vorsorge/internal/gate"
	id "vorsorge/pkg/domain"
	dErrors "vorsorge/pkg/domain-errors"
	"vorsorge/pkg/platform/httputil"
	"vorsorge/pkg/requestcontext"
)

// Service defines the interface for gate operations.
type Service interface {
	Evaluate(ctx context.Context, userID id.UserID, capability gate.Capability) gate.Decision
}

// Handler wires the gate endpoint to the gate service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a gate handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the gate endpoint on the router. The router is expected to
// run RequireAuth for this group.
func (h *Handler) Register(r chi.Router) {
	r.Post("/gate/evaluate", h.HandleEvaluate)
}

// HandleEvaluate handles POST /v1/gate/evaluate requests. The gate never
// errors: every resolver failure is already folded into the decision, so the
// response is always 200 with a typed outcome.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	decision := h.service.Evaluate(ctx, userID, req.ParsedCapability())

	httputil.WriteJSON(w, http.StatusOK, FromDecision(decision))
}
