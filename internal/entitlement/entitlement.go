// Package entitlement resolves whether a user currently holds paid access.
//
// Entitlement is a point-in-time read against the external billing
// collaborator. Nothing is cached across calls: subscription state changes
// out-of-band (webhooks, dunning, manual refunds), so every gating decision
// re-resolves.
package entitlement

import (
	"context"
	"errors"
	"log/slog"

	id "vorsorge/pkg/domain"
	dErrors "vorsorge/pkg/domain-errors"
	"vorsorge/pkg/platform/circuit"
	"vorsorge/pkg/platform/sentinel"
)

// Billing is the external billing collaborator.
//
// GetCustomerID returns sentinel.ErrNotFound when the user has no billing
// customer on file; that is a confirmed "not entitled", not a failure. Any
// other error means the collaborator could not answer.
type Billing interface {
	GetCustomerID(ctx context.Context, userID id.UserID) (string, error)
	IsSubscribed(ctx context.Context, customerID string) (bool, error)
	CreateBillingPortalSession(ctx context.Context, customerID, returnURL string) (string, error)
}

// Service resolves entitlement and creates billing portal sessions.
//
// A circuit breaker tracks consecutive billing failures. Calls are never
// skipped while the circuit is open (the collaborator must be probed to
// recover); the breaker exists so a sustained outage is logged as one state
// transition instead of a line per request.
type Service struct {
	billing   Billing
	returnURL string
	logger    *slog.Logger
	breaker   *circuit.Breaker
}

func NewService(billing Billing, returnURL string, logger *slog.Logger) *Service {
	return &Service{
		billing:   billing,
		returnURL: returnURL,
		logger:    logger,
		breaker:   circuit.New("billing"),
	}
}

func (s *Service) recordBillingFailure(ctx context.Context) {
	if _, change := s.breaker.RecordFailure(); change.Opened {
		s.logger.ErrorContext(ctx, "billing circuit opened",
			"breaker", s.breaker.Name(),
		)
	}
}

func (s *Service) recordBillingSuccess(ctx context.Context) {
	if _, change := s.breaker.RecordSuccess(); change.Closed {
		s.logger.InfoContext(ctx, "billing circuit closed",
			"breaker", s.breaker.Name(),
		)
	}
}

// IsPaid reports whether the user holds an active subscription.
//
// Fail-closed: when billing cannot be reached the result is false together
// with a CodeUnavailable error, so callers can distinguish "confirmed not
// entitled" (false, nil) from "unknown, try again" (false, error).
func (s *Service) IsPaid(ctx context.Context, userID id.UserID) (bool, error) {
	if userID.IsNil() {
		return false, dErrors.New(dErrors.CodeBadRequest, "user ID required")
	}

	customerID, err := s.billing.GetCustomerID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			// No customer record means the user never subscribed.
			s.recordBillingSuccess(ctx)
			return false, nil
		}
		s.recordBillingFailure(ctx)
		s.logger.WarnContext(ctx, "billing unreachable, failing closed",
			"user_id", userID,
			"error", err,
		)
		return false, dErrors.Wrap(err, dErrors.CodeUnavailable, "billing lookup failed")
	}

	subscribed, err := s.billing.IsSubscribed(ctx, customerID)
	if err != nil {
		s.recordBillingFailure(ctx)
		s.logger.WarnContext(ctx, "billing unreachable, failing closed",
			"user_id", userID,
			"error", err,
		)
		return false, dErrors.Wrap(err, dErrors.CodeUnavailable, "billing lookup failed")
	}
	s.recordBillingSuccess(ctx)
	return subscribed, nil
}

// CreatePortalSession returns a billing portal URL for the user to manage
// their subscription. Users without a billing customer get CodeNotFound so
// the client can route them to checkout instead.
func (s *Service) CreatePortalSession(ctx context.Context, userID id.UserID) (string, error) {
	if userID.IsNil() {
		return "", dErrors.New(dErrors.CodeBadRequest, "user ID required")
	}

	customerID, err := s.billing.GetCustomerID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", dErrors.New(dErrors.CodeNotFound, "no billing customer on file")
		}
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "billing lookup failed")
	}

	url, err := s.billing.CreateBillingPortalSession(ctx, customerID, s.returnURL)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to create billing portal session")
	}
	return url, nil
}
