//go:build integration

package lock_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"vorsorge/internal/erasure/lock"
	id "vorsorge/pkg/domain"
	"vorsorge/pkg/platform/sentinel"
	"vorsorge/pkg/testutil/containers"
)

type RedisLockSuite struct {
	suite.Suite
	redis *containers.RedisContainer
}

func TestRedisLockSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisLockSuite))
}

func (s *RedisLockSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
}

func (s *RedisLockSuite) SetupTest() {
	ctx := context.Background()
	err := s.redis.FlushAll(ctx)
	s.Require().NoError(err)
}

func (s *RedisLockSuite) TestAcquireRelease() {
	ctx := context.Background()
	l := lock.NewRedisLock(s.redis.Client, time.Minute)
	userID := id.UserID(uuid.New())

	release, err := l.Acquire(ctx, userID)
	s.Require().NoError(err)

	_, err = l.Acquire(ctx, userID)
	s.ErrorIs(err, sentinel.ErrConflict)

	release()

	release2, err := l.Acquire(ctx, userID)
	s.Require().NoError(err)
	release2()
}

func (s *RedisLockSuite) TestConcurrentAcquire() {
	ctx := context.Background()
	l := lock.NewRedisLock(s.redis.Client, time.Minute)
	userID := id.UserID(uuid.New())
	const goroutines = 30

	var wg sync.WaitGroup
	var acquired atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Acquire(ctx, userID); err == nil {
				acquired.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), acquired.Load(), "exactly one concurrent acquire may win")
}

func (s *RedisLockSuite) TestStaleReleaseDoesNotUnlockSuccessor() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())

	shortLock := lock.NewRedisLock(s.redis.Client, 50*time.Millisecond)
	staleRelease, err := shortLock.Acquire(ctx, userID)
	s.Require().NoError(err)

	// Let the first holder's TTL lapse, then hand the lock to a successor.
	time.Sleep(100 * time.Millisecond)

	l := lock.NewRedisLock(s.redis.Client, time.Minute)
	release, err := l.Acquire(ctx, userID)
	s.Require().NoError(err)
	defer release()

	// The stale holder's release must not free the successor's lock.
	staleRelease()

	_, err = l.Acquire(ctx, userID)
	s.ErrorIs(err, sentinel.ErrConflict)
}
