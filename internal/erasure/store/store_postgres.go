// Package store implements the owned-data purgers used by account erasure.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"vorsorge/internal/erasure"
	id "vorsorge/pkg/domain"
)

// deleteStatements whitelists the purgeable tables. Collection names never
// reach SQL as strings; an unknown collection is a programming error.
var deleteStatements = map[erasure.Collection]string{
	erasure.CollectionPensionPlans:         `DELETE FROM pension_plans WHERE user_id = $1`,
	erasure.CollectionScenarioInputs:       `DELETE FROM scenario_inputs WHERE user_id = $1`,
	erasure.CollectionCalculationSnapshots: `DELETE FROM calculation_snapshots WHERE user_id = $1`,
	erasure.CollectionConsentRecords:       `DELETE FROM consent_records WHERE user_id = $1`,
	erasure.CollectionUserPreferences:      `DELETE FROM user_preferences WHERE user_id = $1`,
}

// PostgresPurger deletes owned records collection by collection.
type PostgresPurger struct {
	db *sql.DB
}

// NewPostgresPurger constructs a PostgreSQL-backed purger.
func NewPostgresPurger(db *sql.DB) *PostgresPurger {
	return &PostgresPurger{db: db}
}

// Purge deletes all of the user's rows in one collection and reports how
// many were removed. Zero rows is success, not an error; erasure must be
// idempotent per collection.
func (p *PostgresPurger) Purge(ctx context.Context, collection erasure.Collection, userID id.UserID) (int, error) {
	query, ok := deleteStatements[collection]
	if !ok {
		return 0, fmt.Errorf("unknown owned collection %q", collection)
	}

	res, err := p.db.ExecContext(ctx, query, uuid.UUID(userID))
	if err != nil {
		return 0, fmt.Errorf("purge %s: %w", collection, err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge %s: %w", collection, err)
	}
	return int(deleted), nil
}
