package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"vorsorge/internal/gate"
	"vorsorge/internal/gate/handler/mocks"
	id "vorsorge/pkg/domain"
	"vorsorge/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/gate-handler-mocks.go -package=mocks Service
type GateHandlerSuite struct {
	suite.Suite
	handler *Handler
	service *mocks.MockService
	userID  id.UserID
}

func TestGateHandlerSuite(t *testing.T) {
	suite.Run(t, new(GateHandlerSuite))
}

func (s *GateHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.T().Cleanup(ctrl.Finish)
	s.service = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.handler = New(s.service, logger)
	s.userID = id.UserID(uuid.New())
}

func (s *GateHandlerSuite) post(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/v1/gate/evaluate", bytes.NewReader([]byte(body)))
	return req.WithContext(requestcontext.WithUserID(req.Context(), s.userID))
}

func (s *GateHandlerSuite) TestHandleEvaluate() {
	evaluatedAt := time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)

	s.Run("returns the decision with missing consents", func() {
		s.service.EXPECT().Evaluate(
			gomock.Any(),
			s.userID,
			gate.Capability{Paid: true, Consents: []id.ConsentCategory{
				id.ConsentCategoryAGB,
				id.ConsentCategoryAVV,
				id.ConsentCategoryB2BConfirm,
			}},
		).Return(gate.Decision{
			Outcome:         gate.OutcomeDeniedConsent,
			Reason:          gate.ReasonConsentRequired,
			MissingConsents: []id.ConsentCategory{id.ConsentCategoryB2BConfirm},
			EvaluatedAt:     evaluatedAt,
		})

		w := httptest.NewRecorder()
		s.handler.HandleEvaluate(w, s.post(`{"paid":true,"consents":["agb","avv","b2b_confirm"]}`))

		s.Equal(http.StatusOK, w.Code, w.Body.String())
		var resp EvaluateResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.Equal("denied_consent", resp.Outcome)
		s.Equal([]string{"b2b_confirm"}, resp.MissingConsents)
	})

	s.Run("allowed decision omits missing consents", func() {
		s.service.EXPECT().Evaluate(gomock.Any(), s.userID, gate.Capability{Paid: true, Consents: []id.ConsentCategory{}}).
			Return(gate.Decision{
				Outcome:     gate.OutcomeAllowed,
				Reason:      gate.ReasonAllChecksPassed,
				EvaluatedAt: evaluatedAt,
			})

		w := httptest.NewRecorder()
		s.handler.HandleEvaluate(w, s.post(`{"paid":true}`))

		s.Equal(http.StatusOK, w.Code, w.Body.String())
		var raw map[string]any
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &raw))
		s.Equal("allowed", raw["outcome"])
		_, present := raw["missing_consents"]
		s.False(present)
	})

	s.Run("rejects an empty capability", func() {
		w := httptest.NewRecorder()
		s.handler.HandleEvaluate(w, s.post(`{}`))

		s.Equal(http.StatusBadRequest, w.Code, w.Body.String())
	})

	s.Run("rejects an unknown consent category", func() {
		w := httptest.NewRecorder()
		s.handler.HandleEvaluate(w, s.post(`{"consents":["newsletter"]}`))

		s.Equal(http.StatusBadRequest, w.Code, w.Body.String())
	})

	s.Run("rejects unauthenticated requests", func() {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/gate/evaluate", bytes.NewReader([]byte(`{"paid":true}`)))
		s.handler.HandleEvaluate(w, req)

		s.Equal(http.StatusUnauthorized, w.Code)
	})
}
