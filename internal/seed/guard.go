package seed

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/semaphore"
)

const LockKey = "tournaments:seed:lock"

// Guard serializes seeding. Acquire reports false when another holder is
// seeding and the caller should not insert anything.
type Guard interface {
	Acquire(ctx context.Context) (release func(), ok bool, err error)
}

// LocalGuard serializes seeding inside one process. Waiters block until the
// holder is done, then see a populated collection.
type LocalGuard struct {
	sem *semaphore.Weighted
}

func NewLocalGuard() *LocalGuard {
	return &LocalGuard{sem: semaphore.NewWeighted(1)}
}

func (g *LocalGuard) Acquire(ctx context.Context) (func(), bool, error) {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return nil, false, err
	}
	return func() { g.sem.Release(1) }, true, nil
}

// RedisGuard is a marker key shared by every instance. It expires on its own
// so a crashed holder cannot block seeding forever.
type RedisGuard struct {
	rdb   *redis.Client
	owner string
	ttl   time.Duration
}

func NewRedisGuard(rdb *redis.Client, owner string, ttl time.Duration) *RedisGuard {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisGuard{rdb: rdb, owner: owner, ttl: ttl}
}

func (g *RedisGuard) Acquire(ctx context.Context) (func(), bool, error) {
	ok, err := g.rdb.SetNX(ctx, LockKey, g.owner, g.ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = g.rdb.Del(ctx, LockKey).Err()
	}

	return release, true, nil
}
