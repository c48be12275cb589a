package store

import (
	"context"
	"sync"

	"vorsorge/internal/erasure"
	id "vorsorge/pkg/domain"
)

// InMemoryPurger holds per-collection row counts in memory. Suitable for
// tests and local runs; production uses PostgresPurger.
type InMemoryPurger struct {
	mu       sync.Mutex
	rows     map[erasure.Collection]map[id.UserID]int
	failures map[erasure.Collection]error
}

func NewInMemoryPurger() *InMemoryPurger {
	return &InMemoryPurger{
		rows:     make(map[erasure.Collection]map[id.UserID]int),
		failures: make(map[erasure.Collection]error),
	}
}

// Seed records count rows for the user in a collection.
func (p *InMemoryPurger) Seed(collection erasure.Collection, userID id.UserID, count int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rows[collection] == nil {
		p.rows[collection] = make(map[id.UserID]int)
	}
	p.rows[collection][userID] = count
}

// FailWith makes every purge of the collection return err.
func (p *InMemoryPurger) FailWith(collection erasure.Collection, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failures[collection] = err
}

func (p *InMemoryPurger) Purge(_ context.Context, collection erasure.Collection, userID id.UserID) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.failures[collection]; err != nil {
		return 0, err
	}
	deleted := p.rows[collection][userID]
	if p.rows[collection] != nil {
		delete(p.rows[collection], userID)
	}
	return deleted, nil
}

// Count reports the rows left for the user in a collection.
func (p *InMemoryPurger) Count(collection erasure.Collection, userID id.UserID) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rows[collection][userID]
}
