package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

var ErrLocked = errors.New("lock already held")

// SendLock is a SETNX lock in redis. With a nil client every Acquire succeeds,
// which is right for a single process.
type SendLock struct {
	rdb *redis.Client
}

func NewSendLock(rdb *redis.Client) *SendLock {
	return &SendLock{rdb: rdb}
}

// Acquire takes key for ttl. It returns ErrLocked when someone else holds it.
func (l *SendLock) Acquire(ctx context.Context, key string, ttl time.Duration) error {
	if l == nil || l.rdb == nil {
		return nil
	}
	// Gunakan SETNX untuk mendapatkan lock
	ok, err := l.rdb.SetNX(ctx, key, "locked", ttl).Result()
	if err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLocked, key)
	}
	return nil
}

// Release deletes key.
func (l *SendLock) Release(ctx context.Context, key string) error {
	if l == nil || l.rdb == nil {
		return nil
	}
	if _, err := l.rdb.Del(ctx, key).Result(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}
