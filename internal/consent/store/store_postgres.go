package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"vorsorge/internal/consent/models"
	id "vorsorge/pkg/domain"
)

// PostgresStore persists the consent ledger in PostgreSQL.
//
// The consent_records table carries a UNIQUE constraint on
// (user_id, category, document_version); see migrations/0001_init.sql. The
// duplicate-ignoring insert and the cardinality check in the service are
// both built on that constraint.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed consent store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// SaveBatch inserts the batch in a single statement. Triples that already
// exist are skipped via ON CONFLICT DO NOTHING, so re-recording is a no-op.
// A single statement keeps the batch all-or-nothing without an explicit
// transaction.
func (s *PostgresStore) SaveBatch(ctx context.Context, records []*models.ConsentRecord) error {
	if len(records) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(records))
	userIDs := make([]uuid.UUID, len(records))
	categories := make([]string, len(records))
	versions := make([]string, len(records))
	recordedAts := make([]time.Time, len(records))
	userAgents := make([]string, len(records))
	for i, r := range records {
		ids[i] = uuid.UUID(r.ID)
		userIDs[i] = uuid.UUID(r.UserID)
		categories[i] = r.Category.String()
		versions[i] = r.DocumentVersion.String()
		recordedAts[i] = r.RecordedAt.UTC()
		userAgents[i] = r.UserAgent
	}

	// Batch insert using unnest for O(1) round trips instead of O(n).
	query := `
		INSERT INTO consent_records (id, user_id, category, document_version, recorded_at, user_agent)
		SELECT unnest($1::uuid[]), unnest($2::uuid[]), unnest($3::text[]),
		       unnest($4::text[]), unnest($5::timestamptz[]), unnest($6::text[])
		ON CONFLICT (user_id, category, document_version) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		pq.Array(ids),
		pq.Array(userIDs),
		pq.Array(categories),
		pq.Array(versions),
		pq.Array(recordedAts),
		pq.Array(userAgents),
	)
	if err != nil {
		return fmt.Errorf("save consent batch: %w", err)
	}
	return nil
}

// CountMatching counts ledger entries for the user at exactly the given
// version within the given category set. Uniqueness of the triple makes
// this a count of distinct satisfied categories.
func (s *PostgresStore) CountMatching(ctx context.Context, userID id.UserID, version id.DocumentVersion, categories []id.ConsentCategory) (int, error) {
	if len(categories) == 0 {
		return 0, nil
	}
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.String()
	}

	var count int
	query := `
		SELECT COUNT(*) FROM consent_records
		WHERE user_id = $1 AND document_version = $2 AND category = ANY($3)
	`
	err := s.db.QueryRowContext(ctx, query, uuid.UUID(userID), version.String(), pq.Array(names)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count matching consents: %w", err)
	}
	return count, nil
}

// ListByUser returns the user's ledger entries, newest first.
func (s *PostgresStore) ListByUser(ctx context.Context, userID id.UserID) ([]*models.ConsentRecord, error) {
	query := `
		SELECT id, user_id, category, document_version, recorded_at, user_agent
		FROM consent_records
		WHERE user_id = $1
		ORDER BY recorded_at DESC, category
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list consents: %w", err)
	}
	defer rows.Close()

	var records []*models.ConsentRecord
	for rows.Next() {
		var (
			record     models.ConsentRecord
			recordID   uuid.UUID
			ownerID    uuid.UUID
			category   string
			docVersion string
		)
		if err := rows.Scan(&recordID, &ownerID, &category, &docVersion, &record.RecordedAt, &record.UserAgent); err != nil {
			return nil, fmt.Errorf("scan consent record: %w", err)
		}
		record.ID = id.ConsentID(recordID)
		record.UserID = id.UserID(ownerID)
		record.Category = id.ConsentCategory(category)
		record.DocumentVersion = id.DocumentVersion(docVersion)
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate consent records: %w", err)
	}
	return records, nil
}
