package lock

import (
	"context"
	"sync"

	id "vorsorge/pkg/domain"
	"vorsorge/pkg/platform/sentinel"
)

// InMemoryLock serializes erasure within a single process. Suitable for
// tests and local runs; production uses RedisLock.
type InMemoryLock struct {
	mu   sync.Mutex
	held map[id.UserID]bool
}

func NewInMemoryLock() *InMemoryLock {
	return &InMemoryLock{held: make(map[id.UserID]bool)}
}

func (l *InMemoryLock) Acquire(_ context.Context, userID id.UserID) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[userID] {
		return nil, sentinel.ErrConflict
	}
	l.held[userID] = true

	release := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, userID)
	}
	return release, nil
}
