// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

/*
Package cache memoizes per-property score vectors.

# Overview

A recommendation request scores every listing in the store. Score vectors only
depend on (budget, minimum bedrooms, listing price and attributes), so they are
cached under a fingerprint of that tuple and reused across requests.

The package provides:
  - LRU[V]: generic least-recently-used map with TTL and O(1) operations
  - MemoryScoreCache: ScoreCache over LRU[models.ScoreVector]
  - NoopScoreCache: disabled cache, always misses
  - Fingerprint: deterministic key derivation (goccy/go-json + SHA-256)

# Expiry and Eviction

An entry is valid while now - created_at <= TTL. Expired entries are purged
lazily on Lookup, by EvictExpired, and by the cache janitor service. At
capacity, inserting a new key evicts the single least recently read entry.

# Lifecycle

The cache is constructed once at startup with New and injected into the
recommendation engine. Shutdown drops every entry; the cache then behaves as
disabled.

# Thread Safety

One mutex guards every LRU mutation. Stats are consistent snapshots taken under
the same lock.

# Metrics

MemoryScoreCache records score_cache_hits_total, score_cache_misses_total,
score_cache_evictions_total, score_cache_expirations_total and
score_cache_entries.
*/
package cache
