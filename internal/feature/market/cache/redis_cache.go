package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"trading_monitor/internal/feature/market/domain/entity"
)

// RedisCandleCache fronts the synthesizer with a shared Redis cache, so
// multiple processes serving the same dashboard reuse one generated series.
// It implements the decorator pattern: the same GetOrCompute contract as
// MemoryCache, with Redis's own key expiry standing in for the write-time
// sweep. Redis failures are never surfaced; the cache degrades to plain
// generation.
type RedisCandleCache struct {
	inner     Synthesizer
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewRedisCandleCache decorates a Synthesizer with Redis caching.
// If ttl is 0, it defaults to DefaultTTL. If namespace is empty, it uses
// "market".
func NewRedisCandleCache(rdb *redis.Client, ttl time.Duration, inner Synthesizer, namespace string) *RedisCandleCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = "market"
	}
	return &RedisCandleCache{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// GetOrCompute returns the cached series when present, otherwise generates,
// stores with the TTL and returns the fresh series.
func (c *RedisCandleCache) GetOrCompute(ctx context.Context, symbol, timeframe string, count int) []entity.Candle {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Generate(symbol, timeframe, count)
	}

	key := c.namespace + ":" + cacheKey(symbol, timeframe, count)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Candle
		if err := json.Unmarshal(b, &out); err == nil {
			return out
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to generation
	out := c.inner.Generate(symbol, timeframe, count)

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out
}
