package domain

import dErrors "vorsorge/pkg/domain-errors"

// ConsentCategory is a domain value that identifies which legal document a
// user accepted.
// Invariant: the value must be one of the supported consent categories.
//
// Usage: construct via ParseConsentCategory at trust boundaries to enforce
// the allowlist; direct casting bypasses validation.
type ConsentCategory string

// Supported consent categories. These mirror the legal documents presented
// during onboarding.
const (
	// ConsentCategoryAGB covers the general terms of service.
	ConsentCategoryAGB ConsentCategory = "agb"
	// ConsentCategoryAVV covers the data processing agreement required for
	// business accounts.
	ConsentCategoryAVV ConsentCategory = "avv"
	// ConsentCategoryB2BConfirm is the user's confirmation that the account
	// is operated in a business capacity.
	ConsentCategoryB2BConfirm ConsentCategory = "b2b_confirm"
	// ConsentCategoryMarketing covers optional product communication.
	ConsentCategoryMarketing ConsentCategory = "marketing"
)

// validConsentCategories is the single source of truth for valid categories.
var validConsentCategories = map[ConsentCategory]bool{
	ConsentCategoryAGB:        true,
	ConsentCategoryAVV:        true,
	ConsentCategoryB2BConfirm: true,
	ConsentCategoryMarketing:  true,
}

// ParseConsentCategory constructs a ConsentCategory from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported;
// no other errors are expected.
func ParseConsentCategory(s string) (ConsentCategory, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "category cannot be empty")
	}
	c := ConsentCategory(s)
	if !c.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid category")
	}
	return c, nil
}

// IsValid checks if the category is one of the supported enum values.
func (c ConsentCategory) IsValid() bool {
	return validConsentCategories[c]
}

// String returns the string representation of the category.
func (c ConsentCategory) String() string {
	return string(c)
}
