package entitlement

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"vorsorge/internal/entitlement/mocks"
	id "vorsorge/pkg/domain"
	dErrors "vorsorge/pkg/domain-errors"
	"vorsorge/pkg/platform/sentinel"
)

//go:generate mockgen -source=entitlement.go -destination=mocks/billing-mocks.go -package=mocks Billing
type EntitlementSuite struct {
	suite.Suite
	service *Service
	billing *mocks.MockBilling
	ctx     context.Context
	userID  id.UserID
}

func TestEntitlementSuite(t *testing.T) {
	suite.Run(t, new(EntitlementSuite))
}

func (s *EntitlementSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.T().Cleanup(ctrl.Finish)
	s.billing = mocks.NewMockBilling(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewService(s.billing, "https://app.example.com/account", logger)
	s.ctx = context.Background()
	s.userID = id.UserID(uuid.New())
}

func (s *EntitlementSuite) TestIsPaid() {
	s.Run("true for an active subscription", func() {
		s.billing.EXPECT().GetCustomerID(gomock.Any(), s.userID).Return("cus_123", nil)
		s.billing.EXPECT().IsSubscribed(gomock.Any(), "cus_123").Return(true, nil)

		paid, err := s.service.IsPaid(s.ctx, s.userID)
		s.Require().NoError(err)
		s.True(paid)
	})

	s.Run("false without error when no customer exists", func() {
		s.billing.EXPECT().GetCustomerID(gomock.Any(), s.userID).Return("", sentinel.ErrNotFound)

		paid, err := s.service.IsPaid(s.ctx, s.userID)
		s.Require().NoError(err)
		s.False(paid)
	})

	s.Run("false without error for a lapsed subscription", func() {
		s.billing.EXPECT().GetCustomerID(gomock.Any(), s.userID).Return("cus_123", nil)
		s.billing.EXPECT().IsSubscribed(gomock.Any(), "cus_123").Return(false, nil)

		paid, err := s.service.IsPaid(s.ctx, s.userID)
		s.Require().NoError(err)
		s.False(paid)
	})

	s.Run("fails closed when the customer lookup is unreachable", func() {
		s.billing.EXPECT().GetCustomerID(gomock.Any(), s.userID).
			Return("", errors.New("connection refused"))

		paid, err := s.service.IsPaid(s.ctx, s.userID)
		s.Require().Error(err)
		s.False(paid)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})

	s.Run("fails closed when the subscription lookup is unreachable", func() {
		s.billing.EXPECT().GetCustomerID(gomock.Any(), s.userID).Return("cus_123", nil)
		s.billing.EXPECT().IsSubscribed(gomock.Any(), "cus_123").
			Return(false, errors.New("connection refused"))

		paid, err := s.service.IsPaid(s.ctx, s.userID)
		s.Require().Error(err)
		s.False(paid)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})

	s.Run("rejects nil user", func() {
		_, err := s.service.IsPaid(s.ctx, id.UserID{})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *EntitlementSuite) TestCreatePortalSession() {
	s.Run("returns the portal URL", func() {
		s.billing.EXPECT().GetCustomerID(gomock.Any(), s.userID).Return("cus_123", nil)
		s.billing.EXPECT().CreateBillingPortalSession(gomock.Any(), "cus_123", "https://app.example.com/account").
			Return("https://billing.stripe.com/p/session_abc", nil)

		url, err := s.service.CreatePortalSession(s.ctx, s.userID)
		s.Require().NoError(err)
		s.Equal("https://billing.stripe.com/p/session_abc", url)
	})

	s.Run("not found when no customer exists", func() {
		s.billing.EXPECT().GetCustomerID(gomock.Any(), s.userID).Return("", sentinel.ErrNotFound)

		_, err := s.service.CreatePortalSession(s.ctx, s.userID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("unavailable when portal creation fails", func() {
		s.billing.EXPECT().GetCustomerID(gomock.Any(), s.userID).Return("cus_123", nil)
		s.billing.EXPECT().CreateBillingPortalSession(gomock.Any(), "cus_123", gomock.Any()).
			Return("", errors.New("stripe 503"))

		_, err := s.service.CreatePortalSession(s.ctx, s.userID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}
