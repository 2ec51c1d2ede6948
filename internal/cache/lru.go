// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package cache

import (
	"sync"
	"time"
)

// RemovalReason describes why the LRU dropped an entry.
type RemovalReason int

const (
	// RemovedEvicted means the entry was the least recently used one at capacity.
	RemovedEvicted RemovalReason = iota
	// RemovedExpired means the entry outlived its TTL.
	RemovedExpired
)

// lruEntry is one node of the recency list.
type lruEntry[V any] struct {
	key       string
	value     V
	prev      *lruEntry[V]
	next      *lruEntry[V]
	createdAt time.Time
}

// LRUOption configures an LRU.
type LRUOption func(*lruOptions)

type lruOptions struct {
	now      func() time.Time
	onRemove func(key string, reason RemovalReason)
}

// WithClock replaces time.Now as the LRU's time source.
func WithClock(now func() time.Time) LRUOption {
	return func(o *lruOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithRemovalHook registers fn to be called, with the lock held, for every
// entry dropped by eviction or expiry. Clear does not invoke it.
func WithRemovalHook(fn func(key string, reason RemovalReason)) LRUOption {
	return func(o *lruOptions) {
		o.onRemove = fn
	}
}

// LRU implements a thread-safe Least Recently Used cache with TTL support.
// It provides O(1) operations for Get, Add, and eviction.
//
// Key features:
//   - O(1) Get, Add, Remove operations
//   - O(1) LRU eviction when capacity is reached
//   - TTL support with lazy expiration on Get
//   - One mutex guards every structure mutation
//
// The list uses head and tail sentinels: head.next is the most recently used
// entry, tail.prev the least recently used.
type LRU[V any] struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration
	now      func() time.Time
	onRemove func(key string, reason RemovalReason)

	items map[string]*lruEntry[V]
	head  *lruEntry[V]
	tail  *lruEntry[V]

	hits        int64
	misses      int64
	evictions   int64
	expirations int64
}

// NewLRU creates an LRU holding at most capacity entries, each valid for ttl.
func NewLRU[V any](capacity int, ttl time.Duration, opts ...LRUOption) *LRU[V] {
	if capacity <= 0 {
		capacity = DefaultMaxEntries
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	o := lruOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	c := &LRU[V]{
		capacity: capacity,
		ttl:      ttl,
		now:      o.now,
		onRemove: o.onRemove,
		items:    make(map[string]*lruEntry[V], capacity),
		head:     &lruEntry[V]{},
		tail:     &lruEntry[V]{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head

	return c
}

// Get returns the value for key if present and not expired.
// A hit moves the entry to the front; an expired entry is removed.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	entry, exists := c.items[key]
	if !exists {
		c.misses++
		return zero, false
	}

	if c.expired(entry, c.now()) {
		c.removeEntry(entry, RemovedExpired)
		c.misses++
		return zero, false
	}

	c.moveToFront(entry)
	c.hits++
	return entry.value, true
}

// Add inserts or replaces the value for key and resets its age.
// Returns the number of entries evicted to make room.
func (c *LRU[V]) Add(key string, value V) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	if entry, exists := c.items[key]; exists {
		entry.value = value
		entry.createdAt = now
		c.moveToFront(entry)
		return 0
	}

	entry := &lruEntry[V]{
		key:       key,
		value:     value,
		createdAt: now,
	}
	c.addToFront(entry)
	c.items[key] = entry

	evicted := 0
	for len(c.items) > c.capacity {
		c.evictOldest()
		evicted++
	}
	return evicted
}

// Remove deletes key. Returns true if it was present.
func (c *LRU[V]) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, exists := c.items[key]; exists {
		c.unlink(entry)
		return true
	}
	return false
}

// Len returns the number of stored entries, expired ones included.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Capacity returns the maximum number of entries.
func (c *LRU[V]) Capacity() int {
	return c.capacity
}

// TTL returns the entry lifetime.
func (c *LRU[V]) TTL() time.Duration {
	return c.ttl
}

// Clear removes all entries. Counters are preserved.
func (c *LRU[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*lruEntry[V], c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
}

// CleanupExpired removes all expired entries.
// Returns the number of entries removed.
func (c *LRU[V]) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0

	// Walk from tail (oldest) to head (newest)
	for entry := c.tail.prev; entry != c.head; {
		prev := entry.prev
		if c.expired(entry, now) {
			c.removeEntry(entry, RemovedExpired)
			removed++
		}
		entry = prev
	}

	return removed
}

// LRUStats is a point-in-time snapshot of an LRU.
type LRUStats struct {
	Size        int
	Active      int
	Expired     int
	Hits        int64
	Misses      int64
	Evictions   int64
	Expirations int64
}

// Stats returns counters and the active/expired split of stored entries.
func (c *LRU[V]) Stats() LRUStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	s := LRUStats{
		Size:        len(c.items),
		Hits:        c.hits,
		Misses:      c.misses,
		Evictions:   c.evictions,
		Expirations: c.expirations,
	}
	for entry := c.head.next; entry != c.tail; entry = entry.next {
		if c.expired(entry, now) {
			s.Expired++
		} else {
			s.Active++
		}
	}
	return s
}

// Keys returns stored keys from most to least recently used.
func (c *LRU[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.items))
	for entry := c.head.next; entry != c.tail; entry = entry.next {
		keys = append(keys, entry.key)
	}
	return keys
}

// Internal methods (must be called with lock held)

func (c *LRU[V]) expired(entry *lruEntry[V], now time.Time) bool {
	return now.Sub(entry.createdAt) > c.ttl
}

func (c *LRU[V]) addToFront(entry *lruEntry[V]) {
	entry.prev = c.head
	entry.next = c.head.next
	c.head.next.prev = entry
	c.head.next = entry
}

func (c *LRU[V]) moveToFront(entry *lruEntry[V]) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	c.addToFront(entry)
}

// unlink removes an entry from both the list and the map.
func (c *LRU[V]) unlink(entry *lruEntry[V]) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(c.items, entry.key)
}

func (c *LRU[V]) removeEntry(entry *lruEntry[V], reason RemovalReason) {
	c.unlink(entry)
	switch reason {
	case RemovedEvicted:
		c.evictions++
	case RemovedExpired:
		c.expirations++
	}
	if c.onRemove != nil {
		c.onRemove(entry.key, reason)
	}
}

func (c *LRU[V]) evictOldest() {
	oldest := c.tail.prev
	if oldest == c.head {
		return
	}
	c.removeEntry(oldest, RemovedEvicted)
}
