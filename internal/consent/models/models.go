package models

import (
	"time"

	"github.com/mssola/useragent"

	id "vorsorge/pkg/domain"
)

// ConsentRecord is one append-only ledger entry: the user accepted one legal
// document category at one document version.
//
// Invariant: the triple (UserID, Category, DocumentVersion) is unique in the
// ledger. Re-recording the same triple is a no-op, never a duplicate and
// never an error. The storage layer enforces this with a unique constraint;
// the satisfaction count check in the service is unsound without it.
//
// Records are never mutated and never deleted except as part of full account
// erasure.
type ConsentRecord struct {
	ID              id.ConsentID
	UserID          id.UserID
	Category        id.ConsentCategory
	DocumentVersion id.DocumentVersion
	RecordedAt      time.Time
	// UserAgent is the normalized client identification captured at
	// acceptance time, kept for audit purposes.
	UserAgent string
}

// Acceptance is one (category, version) pair the user accepted.
type Acceptance struct {
	Category        id.ConsentCategory `json:"category"`
	DocumentVersion id.DocumentVersion `json:"document_version"`
}

// NormalizeUserAgent reduces a raw User-Agent header to a short
// browser/platform label for storage. Raw UA strings are high-entropy and
// not needed for the audit trail.
func NormalizeUserAgent(raw string) string {
	if raw == "" {
		return "unknown"
	}
	ua := useragent.New(raw)
	name, version := ua.Browser()
	if name == "" {
		return "unknown"
	}
	label := name
	if version != "" {
		label += " " + version
	}
	if os := ua.OS(); os != "" {
		label += " (" + os + ")"
	}
	return label
}
