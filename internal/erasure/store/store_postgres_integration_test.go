//go:build integration

package store_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"vorsorge/internal/erasure"
	"vorsorge/internal/erasure/store"
	id "vorsorge/pkg/domain"
	"vorsorge/pkg/testutil/containers"
)

type PostgresPurgerSuite struct {
	suite.Suite
	db     *sql.DB
	purger *store.PostgresPurger
}

func TestPostgresPurgerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresPurgerSuite))
}

func (s *PostgresPurgerSuite) SetupSuite() {
	mgr := containers.GetManager()
	pg := mgr.GetPostgres(s.T())
	s.db = pg.DB
	s.purger = store.NewPostgresPurger(s.db)
}

func (s *PostgresPurgerSuite) SetupTest() {
	pg := containers.GetManager().GetPostgres(s.T())
	err := pg.TruncateTables(context.Background(),
		"pension_plans", "scenario_inputs", "calculation_snapshots",
		"consent_records", "user_preferences",
	)
	s.Require().NoError(err)
}

func (s *PostgresPurgerSuite) seedUser(ctx context.Context, userID id.UserID) {
	uid := uuid.UUID(userID)

	for i := 0; i < 2; i++ {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO pension_plans (id, user_id, name) VALUES ($1, $2, $3)`,
			uuid.New(), uid, "plan")
		s.Require().NoError(err)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scenario_inputs (id, user_id) VALUES ($1, $2)`,
		uuid.New(), uid)
	s.Require().NoError(err)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO calculation_snapshots (id, user_id) VALUES ($1, $2)`,
		uuid.New(), uid)
	s.Require().NoError(err)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO consent_records (id, user_id, category, document_version, recorded_at) VALUES ($1, $2, 'agb', '2026-02', now())`,
		uuid.New(), uid)
	s.Require().NoError(err)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO user_preferences (user_id) VALUES ($1)`,
		uid)
	s.Require().NoError(err)
}

func (s *PostgresPurgerSuite) countRows(ctx context.Context, table string, userID id.UserID) int {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM `+table+` WHERE user_id = $1`, uuid.UUID(userID)).Scan(&count)
	s.Require().NoError(err)
	return count
}

func (s *PostgresPurgerSuite) TestPurgeRemovesOnlyTargetUser() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())
	otherID := id.UserID(uuid.New())
	s.seedUser(ctx, userID)
	s.seedUser(ctx, otherID)

	for _, collection := range erasure.OwnedCollections() {
		deleted, err := s.purger.Purge(ctx, collection, userID)
		s.Require().NoError(err)
		s.Positive(deleted, "collection %s", collection)
		s.Zero(s.countRows(ctx, string(collection), userID))
	}

	// The other user's data must be untouched.
	for _, collection := range erasure.OwnedCollections() {
		s.Positive(s.countRows(ctx, string(collection), otherID), "collection %s", collection)
	}
}

func (s *PostgresPurgerSuite) TestPurgeReportsDeletedCount() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())
	s.seedUser(ctx, userID)

	deleted, err := s.purger.Purge(ctx, erasure.CollectionPensionPlans, userID)
	s.Require().NoError(err)
	s.Equal(2, deleted)
}

func (s *PostgresPurgerSuite) TestPurgeIsIdempotent() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())

	deleted, err := s.purger.Purge(ctx, erasure.CollectionPensionPlans, userID)
	s.Require().NoError(err)
	s.Zero(deleted)
}

func (s *PostgresPurgerSuite) TestPurgeRejectsUnknownCollection() {
	ctx := context.Background()

	_, err := s.purger.Purge(ctx, erasure.Collection("audit_events"), id.UserID(uuid.New()))
	s.Error(err)
}
