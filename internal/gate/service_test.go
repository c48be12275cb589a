package gate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"vorsorge/internal/gate/mocks"
	"vorsorge/internal/policy"
	id "vorsorge/pkg/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/gate-mocks.go -package=mocks EntitlementResolver,ConsentChecker
type GateServiceSuite struct {
	suite.Suite
	service     *Service
	entitlement *mocks.MockEntitlementResolver
	consents    *mocks.MockConsentChecker
	ctx         context.Context
	userID      id.UserID
}

func TestGateServiceSuite(t *testing.T) {
	suite.Run(t, new(GateServiceSuite))
}

func (s *GateServiceSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.T().Cleanup(ctrl.Finish)
	s.entitlement = mocks.NewMockEntitlementResolver(ctrl)
	s.consents = mocks.NewMockConsentChecker(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	pol, err := policy.New("2026-02", []id.ConsentCategory{
		id.ConsentCategoryAGB,
		id.ConsentCategoryAVV,
		id.ConsentCategoryB2BConfirm,
	})
	s.Require().NoError(err)

	s.service = NewService(s.entitlement, s.consents, pol, logger, nil)
	s.ctx = context.Background()
	s.userID = id.UserID(uuid.New())
}

func (s *GateServiceSuite) TestEvaluatePaidCapability() {
	s.Run("allowed with an active subscription", func() {
		s.entitlement.EXPECT().IsPaid(gomock.Any(), s.userID).Return(true, nil)

		decision := s.service.Evaluate(s.ctx, s.userID, Capability{Paid: true})
		s.Equal(OutcomeAllowed, decision.Outcome)
	})

	s.Run("paywall denial without a billing customer", func() {
		// Confirmed not-entitled: resolver reports false with no error.
		s.entitlement.EXPECT().IsPaid(gomock.Any(), s.userID).Return(false, nil)

		decision := s.service.Evaluate(s.ctx, s.userID, Capability{Paid: true})
		s.Equal(OutcomeDeniedPaywall, decision.Outcome)
		s.Equal(ReasonSubscriptionRequired, decision.Reason)
	})

	s.Run("unknown when billing is unreachable, never allowed", func() {
		s.entitlement.EXPECT().IsPaid(gomock.Any(), s.userID).
			Return(false, errors.New("billing lookup failed"))

		decision := s.service.Evaluate(s.ctx, s.userID, Capability{Paid: true})
		s.Equal(OutcomeUnknown, decision.Outcome)
		s.Equal(ReasonResolverFailure, decision.Reason)
	})
}

func (s *GateServiceSuite) TestEvaluateConsentCapability() {
	required := []id.ConsentCategory{
		id.ConsentCategoryAVV,
		id.ConsentCategoryAGB,
		id.ConsentCategoryB2BConfirm,
	}

	s.Run("names the missing categories on denial", func() {
		// User accepted avv and agb at 2026-02 but not b2b_confirm.
		s.consents.EXPECT().HasRequiredConsents(gomock.Any(), s.userID, id.DocumentVersion("2026-02"), required).
			Return(false, nil)
		s.consents.EXPECT().MissingCategories(gomock.Any(), s.userID, id.DocumentVersion("2026-02"), required).
			Return([]id.ConsentCategory{id.ConsentCategoryB2BConfirm}, nil)

		decision := s.service.Evaluate(s.ctx, s.userID, Capability{Consents: required})
		s.Equal(OutcomeDeniedConsent, decision.Outcome)
		s.Equal([]id.ConsentCategory{id.ConsentCategoryB2BConfirm}, decision.MissingConsents)
	})

	s.Run("allowed when every category is satisfied", func() {
		s.consents.EXPECT().HasRequiredConsents(gomock.Any(), s.userID, id.DocumentVersion("2026-02"), required).
			Return(true, nil)

		decision := s.service.Evaluate(s.ctx, s.userID, Capability{Consents: required})
		s.Equal(OutcomeAllowed, decision.Outcome)
	})

	s.Run("unknown when the ledger is unreachable", func() {
		s.consents.EXPECT().HasRequiredConsents(gomock.Any(), s.userID, id.DocumentVersion("2026-02"), required).
			Return(false, errors.New("failed to check consents"))

		decision := s.service.Evaluate(s.ctx, s.userID, Capability{Consents: required})
		s.Equal(OutcomeUnknown, decision.Outcome)
	})

	s.Run("denial falls back to the full required set if the missing lookup fails", func() {
		s.consents.EXPECT().HasRequiredConsents(gomock.Any(), s.userID, id.DocumentVersion("2026-02"), required).
			Return(false, nil)
		s.consents.EXPECT().MissingCategories(gomock.Any(), s.userID, id.DocumentVersion("2026-02"), required).
			Return(nil, errors.New("failed to list consents"))

		decision := s.service.Evaluate(s.ctx, s.userID, Capability{Consents: required})
		s.Equal(OutcomeDeniedConsent, decision.Outcome)
		s.Equal(required, decision.MissingConsents)
	})
}

func (s *GateServiceSuite) TestEvaluateCombinedCapability() {
	required := []id.ConsentCategory{id.ConsentCategoryAGB}

	s.Run("consent denial outranks paywall denial", func() {
		s.entitlement.EXPECT().IsPaid(gomock.Any(), s.userID).Return(false, nil)
		s.consents.EXPECT().HasRequiredConsents(gomock.Any(), s.userID, id.DocumentVersion("2026-02"), required).
			Return(false, nil)
		s.consents.EXPECT().MissingCategories(gomock.Any(), s.userID, id.DocumentVersion("2026-02"), required).
			Return(required, nil)

		decision := s.service.Evaluate(s.ctx, s.userID, Capability{Paid: true, Consents: required})
		s.Equal(OutcomeDeniedConsent, decision.Outcome)
	})

	s.Run("both satisfied is allowed", func() {
		s.entitlement.EXPECT().IsPaid(gomock.Any(), s.userID).Return(true, nil)
		s.consents.EXPECT().HasRequiredConsents(gomock.Any(), s.userID, id.DocumentVersion("2026-02"), required).
			Return(true, nil)

		decision := s.service.Evaluate(s.ctx, s.userID, Capability{Paid: true, Consents: required})
		s.Equal(OutcomeAllowed, decision.Outcome)
	})
}

func (s *GateServiceSuite) TestEvaluateCancelled() {
	ctx, cancel := context.WithCancel(s.ctx)

	s.entitlement.EXPECT().IsPaid(gomock.Any(), s.userID).
		DoAndReturn(func(ctx context.Context, _ id.UserID) (bool, error) {
			cancel()
			<-ctx.Done()
			return false, ctx.Err()
		})

	decision := s.service.Evaluate(ctx, s.userID, Capability{Paid: true})
	s.Equal(OutcomePending, decision.Outcome)
	s.Equal(ReasonCancelled, decision.Reason)
}

func (s *GateServiceSuite) TestEvaluateNoRequirements() {
	decision := s.service.Evaluate(s.ctx, s.userID, Capability{})
	s.Equal(OutcomeAllowed, decision.Outcome)
}
