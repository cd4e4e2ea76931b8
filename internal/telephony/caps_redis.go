package telephony

import (
	"context"
	"time"

	"salesops-platform/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// RedisCapAcquirer enforces per-caller active-call caps with the shared Lua
// counter scripts. Slot TTL bounds how long a leaked slot can linger when a
// terminal status webhook is never delivered.

type RedisCapAcquirer struct {
	rdb   *redis.Client
	limit int
	ttl   time.Duration
}

func NewRedisCapAcquirer(rdb *redis.Client, limit int, ttl time.Duration) *RedisCapAcquirer {
	if limit <= 0 {
		limit = 1
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &RedisCapAcquirer{rdb: rdb, limit: limit, ttl: ttl}
}

func capKey(callerID string) string {
	return "telephony:active_calls:" + callerID
}

func (a *RedisCapAcquirer) Acquire(ctx context.Context, callerID string) (bool, error) {
	return utils.AcquireConcurrencyCap(ctx, a.rdb, capKey(callerID), a.limit, a.ttl)
}

func (a *RedisCapAcquirer) Release(ctx context.Context, callerID string) error {
	return utils.ReleaseConcurrencyCap(ctx, a.rdb, capKey(callerID))
}
