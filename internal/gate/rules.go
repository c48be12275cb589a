package gate

import "time"

// Decide applies the gating rules to already-resolved inputs.
// This is pure domain logic - no I/O, no side effects.
//
// Rule priority:
//  1. Caller cancellation - nothing was fully resolved
//  2. Consent denial - compliance outranks commerce, and a definite consent
//     denial stands even if the entitlement resolver failed
//  3. Paywall denial - definite even if the consent resolver failed, since
//     an unpaid user is denied either way
//  4. Resolver failure - fail closed as Unknown, never Allowed
func Decide(capability Capability, r resolved, evaluatedAt time.Time) Decision {
	if r.cancelled {
		return Decision{Outcome: OutcomePending, Reason: ReasonCancelled, EvaluatedAt: evaluatedAt}
	}

	needsConsent := len(capability.Consents) > 0

	if needsConsent && r.consentErr == nil && !r.consentSatisfied {
		return Decision{
			Outcome:         OutcomeDeniedConsent,
			Reason:          ReasonConsentRequired,
			MissingConsents: r.missingConsents,
			EvaluatedAt:     evaluatedAt,
		}
	}

	if capability.Paid && r.paidErr == nil && !r.paid {
		return Decision{Outcome: OutcomeDeniedPaywall, Reason: ReasonSubscriptionRequired, EvaluatedAt: evaluatedAt}
	}

	if (needsConsent && r.consentErr != nil) || (capability.Paid && r.paidErr != nil) {
		return Decision{Outcome: OutcomeUnknown, Reason: ReasonResolverFailure, EvaluatedAt: evaluatedAt}
	}

	return Decision{Outcome: OutcomeAllowed, Reason: ReasonAllChecksPassed, EvaluatedAt: evaluatedAt}
}
