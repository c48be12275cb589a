// Command server runs the account entitlement and compliance service: the
// consent ledger, feature gate, billing portal bridge, and account erasure
// behind one authenticated HTTP API.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	stripesdk "github.com/stripe/stripe-go/v76"

	consenthandler "vorsorge/internal/consent/handler"
	consentservice "vorsorge/internal/consent/service"
	consentstore "vorsorge/internal/consent/store"
	"vorsorge/internal/entitlement"
	entitlementhandler "vorsorge/internal/entitlement/handler"
	"vorsorge/internal/entitlement/stripe"
	"vorsorge/internal/erasure"
	erasurehandler "vorsorge/internal/erasure/handler"
	"vorsorge/internal/erasure/lock"
	erasurestore "vorsorge/internal/erasure/store"
	"vorsorge/internal/gate"
	gatehandler "vorsorge/internal/gate/handler"
	"vorsorge/internal/identity"
	jwttoken "vorsorge/internal/jwt_token"
	"vorsorge/internal/platform/config"
	"vorsorge/internal/platform/httpserver"
	"vorsorge/internal/platform/logger"
	"vorsorge/internal/platform/metrics"
	platformredis "vorsorge/internal/platform/redis"
	"vorsorge/internal/policy"
	httptransport "vorsorge/internal/transport/http"
	"vorsorge/pkg/platform/audit"
	pstrings "vorsorge/pkg/platform/strings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx := context.Background()

	pol, err := policy.FromConfig(cfg.LegalDocumentVersion,
		pstrings.DedupeAndTrimLower(cfg.LegalRequiredCategories))
	if err != nil {
		return err
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return err
	}

	redisClient, err := platformredis.New(cfg.Redis())
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	stripesdk.Key = cfg.StripeAPIKey

	m := metrics.New()
	audits := audit.NewPostgresStore(db)

	consents := consentservice.NewService(consentstore.NewPostgres(db), audits, log)

	billing := entitlement.NewService(stripe.NewBilling(), cfg.BillingPortalReturnURL, log)

	gates := gate.NewService(billing, consents, pol, log, m)

	var locker erasure.Locker
	if redisClient != nil {
		locker = lock.NewRedisLock(redisClient.Client, cfg.ErasureLockTTL)
	} else {
		log.Warn("redis not configured, erasure lock is process-local")
		locker = lock.NewInMemoryLock()
	}
	eraser := erasure.NewService(
		erasurestore.NewPostgresPurger(db),
		identity.NewClient(cfg.IdentityAdminURL, cfg.IdentityAdminKey),
		locker,
		audits,
		log,
		m,
	)

	jwts := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)

	router := httptransport.NewRouter(httptransport.Dependencies{
		Logger:         log,
		Metrics:        m,
		JWTValidator:   jwttoken.NewJWTServiceAdapter(jwts),
		RequestTimeout: cfg.RequestTimeout,
		Consent:        consenthandler.New(consents, pol, log, m),
		Entitlement:    entitlementhandler.New(billing, log),
		Gate:           gatehandler.New(gates, log),
		Erasure:        erasurehandler.New(eraser, log),
	})

	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", "addr", cfg.Addr, "env", cfg.AppEnv,
			"policy_version", pol.CurrentVersion().String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
