package domain

import (
	"regexp"

	dErrors "vorsorge/pkg/domain-errors"
)

// DocumentVersion identifies a published revision of the legal documents,
// e.g. "2026-02". Consent satisfaction is scoped to an exact version: a
// record accepted under one version never counts toward a newer one.
type DocumentVersion string

// versionPattern matches the YYYY-MM publication scheme used for legal
// document revisions.
var versionPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ParseDocumentVersion validates and returns a DocumentVersion.
func ParseDocumentVersion(s string) (DocumentVersion, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "document version cannot be empty")
	}
	if !versionPattern.MatchString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "document version must use the YYYY-MM scheme")
	}
	return DocumentVersion(s), nil
}

// String returns the string representation of the version.
func (v DocumentVersion) String() string {
	return string(v)
}

// IsNil returns true if the version is empty.
func (v DocumentVersion) IsNil() bool {
	return v == ""
}
