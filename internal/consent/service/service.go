// Package service implements the consent ledger operations: idempotent
// batch recording of acceptances and version-scoped satisfaction checks.
package service

import (
	"context"
	"log/slog"

	"vorsorge/internal/consent/models"
	id "vorsorge/pkg/domain"
	dErrors "vorsorge/pkg/domain-errors"
	"vorsorge/pkg/platform/audit"
	"vorsorge/pkg/requestcontext"
)

// Store persists consent ledger entries.
//
// SaveBatch must be atomic from the caller's perspective: either every
// record in the batch is durable (pre-existing triples silently skipped) or
// the whole batch failed. CountMatching relies on the storage-level unique
// constraint on (user_id, category, document_version); without it the count
// could double-count a category and overstate satisfaction.
type Store interface {
	SaveBatch(ctx context.Context, records []*models.ConsentRecord) error
	CountMatching(ctx context.Context, userID id.UserID, version id.DocumentVersion, categories []id.ConsentCategory) (int, error)
	ListByUser(ctx context.Context, userID id.UserID) ([]*models.ConsentRecord, error)
}

// Service persists consent decisions and provides version-scoped checks. It
// keeps orchestration out of handlers and domain logic thin.
type Service struct {
	store  Store
	audits audit.Store
	logger *slog.Logger
}

func NewService(store Store, audits audit.Store, logger *slog.Logger) *Service {
	return &Service{store: store, audits: audits, logger: logger}
}

// RecordConsents idempotently persists one ledger entry per acceptance.
// Duplicate triples, whether inside the batch or against stored records, are
// no-ops. On any persistence failure the caller must treat the whole batch
// as not committed; there is no partial-success reporting.
func (s *Service) RecordConsents(ctx context.Context, userID id.UserID, acceptances []models.Acceptance) ([]*models.ConsentRecord, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user ID required")
	}
	if len(acceptances) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "consents array must not be empty")
	}
	for _, a := range acceptances {
		if !a.Category.IsValid() {
			return nil, dErrors.New(dErrors.CodeBadRequest, "invalid category: "+a.Category.String())
		}
		if a.DocumentVersion.IsNil() {
			return nil, dErrors.New(dErrors.CodeBadRequest, "document version required")
		}
	}

	now := requestcontext.Now(ctx)
	userAgent := models.NormalizeUserAgent(requestcontext.UserAgent(ctx))

	// Dedupe inside the batch so one statement never inserts the same triple
	// twice.
	seen := make(map[models.Acceptance]bool, len(acceptances))
	records := make([]*models.ConsentRecord, 0, len(acceptances))
	for _, a := range acceptances {
		if seen[a] {
			continue
		}
		seen[a] = true
		records = append(records, &models.ConsentRecord{
			ID:              id.NewConsentID(),
			UserID:          userID,
			Category:        a.Category,
			DocumentVersion: a.DocumentVersion,
			RecordedAt:      now,
			UserAgent:       userAgent,
		})
	}

	if err := s.store.SaveBatch(ctx, records); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record consents")
	}

	for _, record := range records {
		if err := s.audits.Append(ctx, audit.Event{
			Timestamp: now,
			UserID:    userID,
			Action:    audit.ActionConsentRecorded,
			Subject:   record.Category.String() + "@" + record.DocumentVersion.String(),
			RequestID: requestcontext.RequestID(ctx),
		}); err != nil {
			// The ledger entry itself is the legally binding record; a failed
			// audit append is logged, not fatal.
			s.logger.ErrorContext(ctx, "failed to append consent audit event",
				"error", err,
				"user_id", userID.String(),
			)
		}
	}

	return records, nil
}

// HasRequiredConsents reports whether a ledger entry exists for every
// required category at exactly the given document version.
//
// Implemented as a cardinality check: the count of matching rows must reach
// the size of the required set. Correct only because the storage layer
// guarantees triple uniqueness.
func (s *Service) HasRequiredConsents(ctx context.Context, userID id.UserID, version id.DocumentVersion, required []id.ConsentCategory) (bool, error) {
	if userID.IsNil() {
		return false, dErrors.New(dErrors.CodeBadRequest, "user ID required")
	}
	if version.IsNil() {
		return false, dErrors.New(dErrors.CodeBadRequest, "document version required")
	}
	if len(required) == 0 {
		return true, nil
	}

	deduped := dedupeCategories(required)
	count, err := s.store.CountMatching(ctx, userID, version, deduped)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check consents")
	}
	return count >= len(deduped), nil
}

// MissingCategories returns the required categories that have no ledger
// entry at the given version, for rendering a re-consent prompt.
func (s *Service) MissingCategories(ctx context.Context, userID id.UserID, version id.DocumentVersion, required []id.ConsentCategory) ([]id.ConsentCategory, error) {
	records, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list consents")
	}
	accepted := make(map[id.ConsentCategory]bool, len(records))
	for _, r := range records {
		if r.DocumentVersion == version {
			accepted[r.Category] = true
		}
	}
	var missing []id.ConsentCategory
	for _, c := range dedupeCategories(required) {
		if !accepted[c] {
			missing = append(missing, c)
		}
	}
	return missing, nil
}

// List returns the user's full consent history, all versions included.
func (s *Service) List(ctx context.Context, userID id.UserID) ([]*models.ConsentRecord, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user ID required")
	}
	records, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list consents")
	}
	return records, nil
}

func dedupeCategories(categories []id.ConsentCategory) []id.ConsentCategory {
	seen := make(map[id.ConsentCategory]bool, len(categories))
	out := make([]id.ConsentCategory, 0, len(categories))
	for _, c := range categories {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
