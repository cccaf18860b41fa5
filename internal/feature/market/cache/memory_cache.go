// Package cache provides caching implementations for the candle synthesizer.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"trading_monitor/internal/feature/market/domain/entity"
)

// DefaultTTL is the freshness window for a generated series.
const DefaultTTL = 15 * time.Second

// sweepFactor: entries older than sweepFactor×TTL are removed on write.
const sweepFactor = 5

// Synthesizer abstracts the candle generator the cache fronts.
// Following Go convention: interfaces are defined by the consumer (cache),
// not the provider (usecase).
type Synthesizer interface {
	Generate(symbol, timeframe string, count int) []entity.Candle
}

// MemoryCache is an in-process time-bucketed cache keyed by the exact
// (symbol, timeframe, count) tuple. A hit within the TTL returns the stored
// series unchanged, stale final-bar timestamp included; entries are never
// re-stamped on read. Eviction is amortized: every write sweeps entries older
// than sweepFactor×TTL, so no background timer is needed.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	inner   Synthesizer
	ttl     time.Duration
	now     func() time.Time
}

type memoryEntry struct {
	at      time.Time
	candles []entity.Candle
}

// NewMemoryCache creates a MemoryCache in front of inner. If ttl is 0 or
// negative it defaults to DefaultTTL; a nil now uses time.Now.
func NewMemoryCache(inner Synthesizer, ttl time.Duration, now func() time.Time) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		inner:   inner,
		ttl:     ttl,
		now:     now,
	}
}

// GetOrCompute returns the cached series for the key when fresh, otherwise
// invokes the synthesizer, stores the result and returns it. The whole
// get/compute/store sequence runs under the cache mutex, so concurrent
// requests never observe a partially written entry. The context parameter is
// unused here; it exists so the Redis-backed implementation can share the
// same call shape.
func (c *MemoryCache) GetOrCompute(_ context.Context, symbol, timeframe string, count int) []entity.Candle {
	key := cacheKey(symbol, timeframe, count)

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if e, ok := c.entries[key]; ok && now.Sub(e.at) < c.ttl {
		return e.candles
	}

	out := c.inner.Generate(symbol, timeframe, count)
	c.entries[key] = memoryEntry{at: now, candles: out}
	c.sweep(now)

	return out
}

// Len returns the number of live entries, for tests and diagnostics.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// sweep removes every entry whose age exceeds sweepFactor×TTL.
// Caller holds the mutex.
func (c *MemoryCache) sweep(now time.Time) {
	for k, e := range c.entries {
		if now.Sub(e.at) > c.ttl*sweepFactor {
			delete(c.entries, k)
		}
	}
}

// cacheKey builds the entry key from the exact request tuple.
func cacheKey(symbol, timeframe string, count int) string {
	return fmt.Sprintf("%s:%s:%d", symbol, timeframe, count)
}
