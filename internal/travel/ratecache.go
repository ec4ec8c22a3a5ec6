package travel

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateKeyPrefix = "globemate:rates:"

// RedisRateCache keeps rate tables in Redis with a TTL. Cache errors are
// logged and treated as misses.
type RedisRateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRateCache wraps an existing Redis client.
func NewRedisRateCache(client *redis.Client, ttl time.Duration) *RedisRateCache {
	return &RedisRateCache{client: client, ttl: ttl}
}

// Get returns the cached table for base.
func (c *RedisRateCache) Get(ctx context.Context, base string) (map[string]float64, bool) {
	data, err := c.client.Get(ctx, rateKeyPrefix+base).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("rate cache read failed", "base", base, "error", err)
		}
		return nil, false
	}
	var rates map[string]float64
	if err := json.Unmarshal(data, &rates); err != nil {
		slog.Warn("rate cache entry corrupt", "base", base, "error", err)
		return nil, false
	}
	return rates, true
}

// Set stores the table for base.
func (c *RedisRateCache) Set(ctx context.Context, base string, rates map[string]float64) {
	data, err := json.Marshal(rates)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, rateKeyPrefix+base, data, c.ttl).Err(); err != nil {
		slog.Warn("rate cache write failed", "base", base, "error", err)
	}
}
