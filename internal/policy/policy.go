// Package policy declares which consent categories are mandatory for the
// currently published legal document version.
//
// The policy is an immutable value built once at startup. Changing legal
// text means deploying a new version and mandatory set; because consent
// satisfaction checks are scoped to the exact version, a deploy implicitly
// forces affected users to re-consent. There are no mutation operations.
package policy

import (
	id "vorsorge/pkg/domain"
	dErrors "vorsorge/pkg/domain-errors"
)

// Policy is the process-wide legal requirement declaration.
type Policy struct {
	version  id.DocumentVersion
	required []id.ConsentCategory
}

// New constructs a Policy.
// Invariant: the mandatory set is non-empty and free of duplicates.
func New(version id.DocumentVersion, required []id.ConsentCategory) (Policy, error) {
	if version.IsNil() {
		return Policy{}, dErrors.New(dErrors.CodeValidation, "policy version is required")
	}
	if len(required) == 0 {
		return Policy{}, dErrors.New(dErrors.CodeValidation, "policy requires at least one mandatory category")
	}
	seen := make(map[id.ConsentCategory]bool, len(required))
	deduped := make([]id.ConsentCategory, 0, len(required))
	for _, c := range required {
		if !c.IsValid() {
			return Policy{}, dErrors.New(dErrors.CodeValidation, "unknown category in policy: "+c.String())
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		deduped = append(deduped, c)
	}
	return Policy{version: version, required: deduped}, nil
}

// FromConfig parses the raw configuration values into a Policy.
func FromConfig(rawVersion string, rawCategories []string) (Policy, error) {
	version, err := id.ParseDocumentVersion(rawVersion)
	if err != nil {
		return Policy{}, dErrors.Wrap(err, dErrors.CodeValidation, "invalid policy version")
	}
	categories := make([]id.ConsentCategory, 0, len(rawCategories))
	for _, raw := range rawCategories {
		c, err := id.ParseConsentCategory(raw)
		if err != nil {
			return Policy{}, dErrors.Wrap(err, dErrors.CodeValidation, "invalid policy category")
		}
		categories = append(categories, c)
	}
	return New(version, categories)
}

// CurrentVersion returns the active legal document version.
func (p Policy) CurrentVersion() id.DocumentVersion {
	return p.version
}

// RequiredCategories returns a copy of the mandatory set so callers cannot
// mutate the policy.
func (p Policy) RequiredCategories() []id.ConsentCategory {
	return append([]id.ConsentCategory{}, p.required...)
}
