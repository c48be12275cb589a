package gate

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	id "vorsorge/pkg/domain"
)

func TestDecide(t *testing.T) {
	now := time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)
	errResolver := errors.New("resolver failed")

	tests := []struct {
		name        string
		capability  Capability
		resolved    resolved
		wantOutcome Outcome
		wantReason  Reason
		wantMissing []id.ConsentCategory
	}{
		{
			name:        "no requirements is trivially allowed",
			capability:  Capability{},
			resolved:    resolved{},
			wantOutcome: OutcomeAllowed,
			wantReason:  ReasonAllChecksPassed,
		},
		{
			name:        "paid capability with active subscription",
			capability:  Capability{Paid: true},
			resolved:    resolved{paid: true},
			wantOutcome: OutcomeAllowed,
			wantReason:  ReasonAllChecksPassed,
		},
		{
			name:        "paid capability without subscription",
			capability:  Capability{Paid: true},
			resolved:    resolved{paid: false},
			wantOutcome: OutcomeDeniedPaywall,
			wantReason:  ReasonSubscriptionRequired,
		},
		{
			name:        "paid capability with unreachable billing fails closed",
			capability:  Capability{Paid: true},
			resolved:    resolved{paidErr: errResolver},
			wantOutcome: OutcomeUnknown,
			wantReason:  ReasonResolverFailure,
		},
		{
			name:       "consent capability with missing categories",
			capability: Capability{Consents: []id.ConsentCategory{id.ConsentCategoryAGB, id.ConsentCategoryAVV, id.ConsentCategoryB2BConfirm}},
			resolved: resolved{
				consentSatisfied: false,
				missingConsents:  []id.ConsentCategory{id.ConsentCategoryB2BConfirm},
			},
			wantOutcome: OutcomeDeniedConsent,
			wantReason:  ReasonConsentRequired,
			wantMissing: []id.ConsentCategory{id.ConsentCategoryB2BConfirm},
		},
		{
			name:        "consent capability satisfied",
			capability:  Capability{Consents: []id.ConsentCategory{id.ConsentCategoryAGB}},
			resolved:    resolved{consentSatisfied: true},
			wantOutcome: OutcomeAllowed,
			wantReason:  ReasonAllChecksPassed,
		},
		{
			name:        "consent resolver failure fails closed",
			capability:  Capability{Consents: []id.ConsentCategory{id.ConsentCategoryAGB}},
			resolved:    resolved{consentErr: errResolver},
			wantOutcome: OutcomeUnknown,
			wantReason:  ReasonResolverFailure,
		},
		{
			name:       "consent denial outranks paywall denial",
			capability: Capability{Paid: true, Consents: []id.ConsentCategory{id.ConsentCategoryAGB}},
			resolved: resolved{
				paid:             false,
				consentSatisfied: false,
				missingConsents:  []id.ConsentCategory{id.ConsentCategoryAGB},
			},
			wantOutcome: OutcomeDeniedConsent,
			wantReason:  ReasonConsentRequired,
			wantMissing: []id.ConsentCategory{id.ConsentCategoryAGB},
		},
		{
			name:       "definite consent denial stands when billing failed",
			capability: Capability{Paid: true, Consents: []id.ConsentCategory{id.ConsentCategoryAGB}},
			resolved: resolved{
				paidErr:          errResolver,
				consentSatisfied: false,
				missingConsents:  []id.ConsentCategory{id.ConsentCategoryAGB},
			},
			wantOutcome: OutcomeDeniedConsent,
			wantReason:  ReasonConsentRequired,
			wantMissing: []id.ConsentCategory{id.ConsentCategoryAGB},
		},
		{
			name:       "definite paywall denial stands when consent resolver failed",
			capability: Capability{Paid: true, Consents: []id.ConsentCategory{id.ConsentCategoryAGB}},
			resolved: resolved{
				paid:       false,
				consentErr: errResolver,
			},
			wantOutcome: OutcomeDeniedPaywall,
			wantReason:  ReasonSubscriptionRequired,
		},
		{
			name:       "satisfied consent with billing failure is unknown",
			capability: Capability{Paid: true, Consents: []id.ConsentCategory{id.ConsentCategoryAGB}},
			resolved: resolved{
				paidErr:          errResolver,
				consentSatisfied: true,
			},
			wantOutcome: OutcomeUnknown,
			wantReason:  ReasonResolverFailure,
		},
		{
			name:        "cancellation wins over everything",
			capability:  Capability{Paid: true},
			resolved:    resolved{paid: true, cancelled: true},
			wantOutcome: OutcomePending,
			wantReason:  ReasonCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Decide(tt.capability, tt.resolved, now)

			assert.Equal(t, tt.wantOutcome, decision.Outcome)
			assert.Equal(t, tt.wantReason, decision.Reason)
			assert.Equal(t, tt.wantMissing, decision.MissingConsents)
			assert.Equal(t, now, decision.EvaluatedAt)
		})
	}
}
