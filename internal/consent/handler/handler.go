package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	consentModel "vorsorge/internal/consent/models"
	"vorsorge/internal/platform/metrics"
	"vorsorge/internal/policy"
	id "vorsorge/pkg/domain"
	dErrors "vorsorge/pkg/domain-errors"
	"vorsorge/pkg/platform/httputil"
	"vorsorge/pkg/requestcontext"
)

// Service defines the interface for consent operations.
type Service interface {
	RecordConsents(ctx context.Context, userID id.UserID, acceptances []consentModel.Acceptance) ([]*consentModel.ConsentRecord, error)
	HasRequiredConsents(ctx context.Context, userID id.UserID, version id.DocumentVersion, required []id.ConsentCategory) (bool, error)
	MissingCategories(ctx context.Context, userID id.UserID, version id.DocumentVersion, required []id.ConsentCategory) ([]id.ConsentCategory, error)
	List(ctx context.Context, userID id.UserID) ([]*consentModel.ConsentRecord, error)
}

// Handler wires consent endpoints to the consent service.
type Handler struct {
	service Service
	policy  policy.Policy
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New constructs a consent handler with its dependencies.
func New(service Service, policy policy.Policy, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		policy:  policy,
		logger:  logger,
		metrics: metrics,
	}
}

// Register mounts consent endpoints on the router. The router is expected to
// run RequireAuth for this group.
func (h *Handler) Register(r chi.Router) {
	r.Post("/consents", h.HandleRecordConsents)
	r.Get("/consents", h.HandleListConsents)
	r.Get("/consents/status", h.HandleConsentStatus)
}

// HandleRecordConsents handles POST /v1/consents requests.
func (h *Handler) HandleRecordConsents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[RecordConsentsRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	records, err := h.service.RecordConsents(ctx, userID, req.ParsedAcceptances())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to record consents",
			"request_id", requestID,
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.IncrementConsentsRecorded(len(records))
	}
	h.logger.InfoContext(ctx, "consents recorded",
		"request_id", requestID,
		"user_id", userID,
		"count", len(records),
	)

	httputil.WriteJSON(w, http.StatusCreated, &RecordConsentsResponse{Recorded: FromRecords(records)})
}

// HandleListConsents handles GET /v1/consents requests.
func (h *Handler) HandleListConsents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	records, err := h.service.List(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list consents",
			"request_id", requestID,
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &ListConsentsResponse{Consents: FromRecords(records)})
}

// HandleConsentStatus handles GET /v1/consents/status requests. It reports
// whether the user satisfies the active policy and which categories are
// missing, so the client can render a targeted re-consent prompt.
func (h *Handler) HandleConsentStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	version := h.policy.CurrentVersion()
	required := h.policy.RequiredCategories()

	satisfied, err := h.service.HasRequiredConsents(ctx, userID, version, required)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to check consent status",
			"request_id", requestID,
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	var missing []id.ConsentCategory
	if !satisfied {
		missing, err = h.service.MissingCategories(ctx, userID, version, required)
		if err != nil {
			h.logger.ErrorContext(ctx, "failed to resolve missing categories",
				"request_id", requestID,
				"user_id", userID,
				"error", err,
			)
			httputil.WriteError(w, err)
			return
		}
	}

	httputil.WriteJSON(w, http.StatusOK, FromStatus(version, satisfied, missing))
}
