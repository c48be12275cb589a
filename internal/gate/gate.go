// Package gate is the reusable decision point in front of paid and
// compliance-gated features. It composes the entitlement resolver and the
// consent ledger into a single typed decision; it never performs side
// effects and never propagates resolver errors to callers.
package gate

import (
	"time"

	id "vorsorge/pkg/domain"
)

// Capability describes what a gated action requires.
type Capability struct {
	// Paid requires an active subscription.
	Paid bool
	// Consents lists the consent categories that must be satisfied at the
	// current legal document version. Empty means no consent requirement.
	Consents []id.ConsentCategory
}

// Outcome is the gate's verdict.
type Outcome string

const (
	OutcomeAllowed       Outcome = "allowed"
	OutcomeDeniedPaywall Outcome = "denied_paywall"
	OutcomeDeniedConsent Outcome = "denied_consent"
	// OutcomePending means the caller abandoned the request before both
	// resolvers answered.
	OutcomePending Outcome = "pending"
	// OutcomeUnknown means a required resolver failed; the caller may retry.
	OutcomeUnknown Outcome = "unknown"
)

// Reason explains the outcome to the client so it can render the right
// remediation path.
type Reason string

const (
	ReasonAllChecksPassed      Reason = "all_checks_passed"
	ReasonSubscriptionRequired Reason = "subscription_required"
	ReasonConsentRequired      Reason = "consent_required"
	ReasonCancelled            Reason = "cancelled"
	ReasonResolverFailure      Reason = "resolver_failure"
)

// Decision is the evaluated result for one capability.
type Decision struct {
	Outcome Outcome
	Reason  Reason
	// MissingConsents is populated only for OutcomeDeniedConsent.
	MissingConsents []id.ConsentCategory
	EvaluatedAt     time.Time
}

// resolved holds the gathered resolver answers. Errors are carried alongside
// values instead of short-circuiting: the rules need to know which resolver
// failed to pick between a definite denial and Unknown.
type resolved struct {
	paid    bool
	paidErr error

	consentSatisfied bool
	missingConsents  []id.ConsentCategory
	consentErr       error

	cancelled bool
}
