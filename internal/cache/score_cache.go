// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package cache

import (
	"math"
	"sync/atomic"

	"github.com/tomtom215/propertyrank/internal/metrics"
	"github.com/tomtom215/propertyrank/internal/models"
)

// MemoryScoreCache is an in-process ScoreCache backed by an LRU.
//
// At capacity, storing a new key evicts exactly one entry: the one least
// recently read or written.
type MemoryScoreCache struct {
	lru    *LRU[models.ScoreVector]
	closed atomic.Bool
}

// NewMemoryScoreCache creates a MemoryScoreCache sized by cfg.
func NewMemoryScoreCache(cfg Config) *MemoryScoreCache {
	opts := []LRUOption{
		WithRemovalHook(func(_ string, reason RemovalReason) {
			switch reason {
			case RemovedEvicted:
				metrics.ScoreCacheEvictions.Inc()
			case RemovedExpired:
				metrics.ScoreCacheExpirations.Inc()
			}
		}),
	}
	if cfg.Now != nil {
		opts = append(opts, WithClock(cfg.Now))
	}

	return &MemoryScoreCache{
		lru: NewLRU[models.ScoreVector](cfg.MaxEntries, cfg.TTL, opts...),
	}
}

// Lookup implements ScoreCache.
func (c *MemoryScoreCache) Lookup(key string) (models.ScoreVector, bool) {
	if c.closed.Load() {
		return models.ScoreVector{}, false
	}

	v, ok := c.lru.Get(key)
	if ok {
		metrics.ScoreCacheHits.Inc()
	} else {
		metrics.ScoreCacheMisses.Inc()
	}
	return v, ok
}

// Store implements ScoreCache.
func (c *MemoryScoreCache) Store(key string, v models.ScoreVector) {
	if c.closed.Load() {
		return
	}
	c.lru.Add(key, v)
	metrics.ScoreCacheSize.Set(float64(c.lru.Len()))
}

// Stats implements ScoreCache.
func (c *MemoryScoreCache) Stats() Stats {
	s := c.lru.Stats()
	return Stats{
		Size:           s.Size,
		ActiveEntries:  s.Active,
		ExpiredEntries: s.Expired,
		Capacity:       c.lru.Capacity(),
		TTLSeconds:     c.lru.TTL().Seconds(),
		Hits:           s.Hits,
		Misses:         s.Misses,
		Evictions:      s.Evictions,
		HitRate:        math.Round(hitRate(s.Hits, s.Misses)*100) / 100,
		Enabled:        !c.closed.Load(),
	}
}

// Clear implements ScoreCache.
func (c *MemoryScoreCache) Clear() {
	c.lru.Clear()
	metrics.ScoreCacheSize.Set(0)
}

// EvictExpired implements ScoreCache.
func (c *MemoryScoreCache) EvictExpired() int {
	removed := c.lru.CleanupExpired()
	metrics.ScoreCacheSize.Set(float64(c.lru.Len()))
	return removed
}

// Shutdown implements ScoreCache.
func (c *MemoryScoreCache) Shutdown() {
	c.closed.Store(true)
	c.Clear()
}

// NoopScoreCache never stores anything. Used when caching is disabled.
type NoopScoreCache struct{}

// Lookup always misses.
func (NoopScoreCache) Lookup(string) (models.ScoreVector, bool) {
	return models.ScoreVector{}, false
}

// Store discards v.
func (NoopScoreCache) Store(string, models.ScoreVector) {}

// Stats reports an empty, disabled cache.
func (NoopScoreCache) Stats() Stats {
	return Stats{}
}

// Clear is a no-op.
func (NoopScoreCache) Clear() {}

// EvictExpired removes nothing.
func (NoopScoreCache) EvictExpired() int { return 0 }

// Shutdown is a no-op.
func (NoopScoreCache) Shutdown() {}
