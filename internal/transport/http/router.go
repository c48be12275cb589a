// Package httptransport assembles the HTTP surface: middleware chain, health
// and metrics endpoints, and the authenticated /v1 API group.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	consenthandler "vorsorge/internal/consent/handler"
	entitlementhandler "vorsorge/internal/entitlement/handler"
	erasurehandler "vorsorge/internal/erasure/handler"
	gatehandler "vorsorge/internal/gate/handler"
	"vorsorge/internal/platform/metrics"
	"vorsorge/internal/platform/middleware"
	"vorsorge/pkg/platform/httputil"
)

// Dependencies carries everything the router mounts. All fields are
// required except Metrics.
type Dependencies struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	JWTValidator   middleware.JWTValidator
	RequestTimeout time.Duration

	Consent     *consenthandler.Handler
	Entitlement *entitlementhandler.Handler
	Gate        *gatehandler.Handler
	Erasure     *erasurehandler.Handler
}

// NewRouter builds the full application router. Everything under /v1
// requires a valid bearer token; health and metrics stay open.
func NewRouter(deps Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Latency(deps.Metrics))

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(deps.RequestTimeout))
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.RequireAuth(deps.JWTValidator, deps.Logger))

		deps.Consent.Register(r)
		deps.Entitlement.Register(r)
		deps.Gate.Register(r)
		deps.Erasure.Register(r)
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
