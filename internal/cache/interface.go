// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package cache

import (
	"time"

	"github.com/tomtom215/propertyrank/internal/models"
)

// Defaults applied when Config leaves a field zero.
const (
	DefaultMaxEntries = 1000
	DefaultTTL        = time.Hour
)

// ScoreCache memoizes score vectors by fingerprint.
// Implementations are safe for concurrent use.
//
// Usage:
//
//	c := cache.New(cache.Config{Enabled: true, MaxEntries: 1000, TTL: time.Hour})
//	defer c.Shutdown()
//
//	key := cache.Fingerprint(criteria.Key(), listing, details)
//	if v, ok := c.Lookup(key); ok {
//	    return v
//	}
//	v := scorer.Score(listing, details, criteria)
//	c.Store(key, v)
type ScoreCache interface {
	// Lookup returns the stored vector if present and not expired.
	// A hit refreshes recency.
	Lookup(key string) (models.ScoreVector, bool)

	// Store upserts the vector and resets its age.
	Store(key string, v models.ScoreVector)

	// Stats returns a snapshot of size, expiry split and counters.
	Stats() Stats

	// Clear removes every entry.
	Clear()

	// EvictExpired removes expired entries and returns how many were removed.
	EvictExpired() int

	// Shutdown drops every entry. The cache behaves as disabled afterwards.
	Shutdown()
}

// Stats describes a ScoreCache. HitRate is a percentage.
type Stats struct {
	Size           int     `json:"size"`
	ActiveEntries  int     `json:"active_entries"`
	ExpiredEntries int     `json:"expired_entries"`
	Capacity       int     `json:"capacity"`
	TTLSeconds     float64 `json:"ttl_seconds"`
	Hits           int64   `json:"hits"`
	Misses         int64   `json:"misses"`
	Evictions      int64   `json:"evictions"`
	HitRate        float64 `json:"hit_rate"`
	Enabled        bool    `json:"enabled"`
}

// Config selects and sizes the score cache.
type Config struct {
	Enabled    bool          `koanf:"enabled"`
	MaxEntries int           `koanf:"max_entries"`
	TTL        time.Duration `koanf:"ttl"`

	// Now overrides the clock. Used by tests.
	Now func() time.Time `koanf:"-"`
}

// New creates the score cache described by cfg.
// A disabled config yields a NoopScoreCache.
func New(cfg Config) ScoreCache {
	if !cfg.Enabled {
		return NoopScoreCache{}
	}
	return NewMemoryScoreCache(cfg)
}

// Compile-time interface checks
var (
	_ ScoreCache = (*MemoryScoreCache)(nil)
	_ ScoreCache = NoopScoreCache{}
)

// hitRate returns hits as a percentage of lookups.
func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}
