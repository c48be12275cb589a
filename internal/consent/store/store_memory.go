package store

import (
	"context"
	"sort"
	"sync"

	"vorsorge/internal/consent/models"
	id "vorsorge/pkg/domain"
)

type tripleKey struct {
	userID   id.UserID
	category id.ConsentCategory
	version  id.DocumentVersion
}

// InMemoryStore keeps the ledger in a map keyed by the unique triple, which
// enforces the same uniqueness invariant as the Postgres constraint.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[tripleKey]*models.ConsentRecord
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[tripleKey]*models.ConsentRecord)}
}

func (s *InMemoryStore) SaveBatch(_ context.Context, records []*models.ConsentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		key := tripleKey{userID: r.UserID, category: r.Category, version: r.DocumentVersion}
		if _, exists := s.records[key]; exists {
			continue
		}
		clone := *r
		s.records[key] = &clone
	}
	return nil
}

func (s *InMemoryStore) CountMatching(_ context.Context, userID id.UserID, version id.DocumentVersion, categories []id.ConsentCategory) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, c := range categories {
		if _, ok := s.records[tripleKey{userID: userID, category: c, version: version}]; ok {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID id.UserID) ([]*models.ConsentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var records []*models.ConsentRecord
	for key, r := range s.records {
		if key.userID == userID {
			clone := *r
			records = append(records, &clone)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].RecordedAt.Equal(records[j].RecordedAt) {
			return records[i].RecordedAt.After(records[j].RecordedAt)
		}
		return records[i].Category < records[j].Category
	})
	return records, nil
}

// DeleteByUser removes every ledger entry for the user. Used only by account
// erasure through the in-memory purger.
func (s *InMemoryStore) DeleteByUser(_ context.Context, userID id.UserID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for key := range s.records {
		if key.userID == userID {
			delete(s.records, key)
			deleted++
		}
	}
	return deleted, nil
}
