package gate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"vorsorge/internal/platform/metrics"
	"vorsorge/internal/policy"
	id "vorsorge/pkg/domain"
	"vorsorge/pkg/requestcontext"
)

// resolveTimeout bounds one gating decision; a slow resolver degrades to
// Unknown instead of blocking the request.
const resolveTimeout = 5 * time.Second

// EntitlementResolver answers the paid-access question.
type EntitlementResolver interface {
	IsPaid(ctx context.Context, userID id.UserID) (bool, error)
}

// ConsentChecker answers the required-consent question against the consent
// ledger.
type ConsentChecker interface {
	HasRequiredConsents(ctx context.Context, userID id.UserID, version id.DocumentVersion, required []id.ConsentCategory) (bool, error)
	MissingCategories(ctx context.Context, userID id.UserID, version id.DocumentVersion, required []id.ConsentCategory) ([]id.ConsentCategory, error)
}

// Service evaluates capabilities by gathering both resolvers in parallel and
// handing the answers to the pure rules in Decide.
type Service struct {
	entitlement EntitlementResolver
	consents    ConsentChecker
	policy      policy.Policy
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

func NewService(
	entitlement EntitlementResolver,
	consents ConsentChecker,
	policy policy.Policy,
	logger *slog.Logger,
	metrics *metrics.Metrics,
) *Service {
	return &Service{
		entitlement: entitlement,
		consents:    consents,
		policy:      policy,
		logger:      logger,
		metrics:     metrics,
	}
}

// Evaluate resolves the capability for the user. It always returns a
// Decision: resolver failures become OutcomeUnknown, caller cancellation
// becomes OutcomePending. It performs no side effects beyond logging and
// metrics.
func (s *Service) Evaluate(ctx context.Context, userID id.UserID, capability Capability) Decision {
	evaluatedAt := requestcontext.Now(ctx)

	r := s.gather(ctx, userID, capability)
	decision := Decide(capability, r, evaluatedAt)

	if s.metrics != nil {
		s.metrics.IncrementGateDecision(string(decision.Outcome))
	}
	s.logger.InfoContext(ctx, "gate decision",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", userID,
		"paid_required", capability.Paid,
		"consents_required", len(capability.Consents),
		"outcome", decision.Outcome,
		"reason", decision.Reason,
	)

	return decision
}

// gather runs both resolvers concurrently with a shared timeout. Resolver
// errors are recorded per answer, not returned: the errgroup only carries
// the fan-out, never a short-circuit.
func (s *Service) gather(ctx context.Context, userID id.UserID, capability Capability) resolved {
	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	var r resolved

	if capability.Paid {
		g.Go(func() error {
			paid, err := s.entitlement.IsPaid(gctx, userID)
			r.paid = paid
			r.paidErr = err
			if err != nil {
				s.logger.WarnContext(gctx, "entitlement resolver failed",
					"user_id", userID,
					"error", err,
				)
			}
			return nil
		})
	}

	if len(capability.Consents) > 0 {
		g.Go(func() error {
			version := s.policy.CurrentVersion()
			satisfied, err := s.consents.HasRequiredConsents(gctx, userID, version, capability.Consents)
			if err != nil {
				r.consentErr = err
				s.logger.WarnContext(gctx, "consent resolver failed",
					"user_id", userID,
					"error", err,
				)
				return nil
			}
			r.consentSatisfied = satisfied
			if satisfied {
				return nil
			}
			missing, err := s.consents.MissingCategories(gctx, userID, version, capability.Consents)
			if err != nil {
				// The denial itself is established; fall back to the full
				// required set rather than degrading to Unknown.
				r.missingConsents = capability.Consents
				return nil
			}
			r.missingConsents = missing
			return nil
		})
	}

	_ = g.Wait()

	if err := ctx.Err(); err != nil && errors.Is(err, context.Canceled) {
		r.cancelled = true
	}
	return r
}
