package dialer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisListCache stores calling lists as JSON under a per-rep key.
//
// TTL-based invalidation only; the list is cheap to regenerate, so there is
// no explicit purge when prospects change.

type RedisListCache struct {
	rdb *redis.Client
}

func NewRedisListCache(rdb *redis.Client) *RedisListCache {
	return &RedisListCache{rdb: rdb}
}

func cacheKey(fieldRepID string) string {
	return "dialer:call_list:" + fieldRepID
}

func (c *RedisListCache) Get(ctx context.Context, fieldRepID string) (CallListResponse, bool, error) {
	if c.rdb == nil {
		return CallListResponse{}, false, errors.New("dialer: redis client is nil")
	}
	raw, err := c.rdb.Get(ctx, cacheKey(fieldRepID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return CallListResponse{}, false, nil
		}
		return CallListResponse{}, false, err
	}
	var resp CallListResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		// treat poison entries as a miss
		return CallListResponse{}, false, nil
	}
	return resp, true, nil
}

func (c *RedisListCache) Set(ctx context.Context, fieldRepID string, resp CallListResponse, ttl time.Duration) error {
	if c.rdb == nil {
		return errors.New("dialer: redis client is nil")
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, cacheKey(fieldRepID), raw, ttl).Err()
}
