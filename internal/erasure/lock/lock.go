// Package lock serializes account erasure per user. Two concurrent runs
// racing on identity deletion would double-fire irreversible side effects,
// so acquiring the lock is a hard precondition for starting a run.
package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	id "vorsorge/pkg/domain"
	"vorsorge/pkg/platform/sentinel"
)

const erasureLockKeyPrefix = "erasure:lock:"

// releaseScript deletes the lock only if this holder still owns it, so a
// slow run whose lock expired cannot release a successor's lock.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLock is a Redis-backed per-user lock shared across instances. The TTL
// bounds how long a crashed run can block a retry.
type RedisLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLock constructs a Redis-backed erasure lock.
func NewRedisLock(client *redis.Client, ttl time.Duration) *RedisLock {
	return &RedisLock{
		client: client,
		ttl:    ttl,
	}
}

// Acquire takes the user's lock with SET NX. Returns sentinel.ErrConflict
// when another run holds it. The returned release function is safe to call
// after the TTL expired.
func (l *RedisLock) Acquire(ctx context.Context, userID id.UserID) (func(), error) {
	key := erasureLockKeyPrefix + userID.String()
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire erasure lock: %w", err)
	}
	if !ok {
		return nil, sentinel.ErrConflict
	}

	release := func() {
		// Release must survive caller cancellation like the run itself.
		ctx := context.WithoutCancel(ctx)
		_, _ = releaseScript.Run(ctx, l.client, []string{key}, token).Result()
	}
	return release, nil
}
