// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/propertyrank/internal/cache"
	"github.com/tomtom215/propertyrank/internal/models"
)

type mockEvictor struct {
	mu    sync.Mutex
	calls int
	ret   int
}

func (m *mockEvictor) EvictExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.ret
}

func (m *mockEvictor) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

var _ ExpiredEvictor = (cache.ScoreCache)(nil)

func TestNewCacheJanitorService(t *testing.T) {
	svc := NewCacheJanitorService(&mockEvictor{}, 0)
	if svc.interval != 5*time.Minute {
		t.Errorf("interval = %v, want 5m default", svc.interval)
	}
	if svc.String() != "cache-janitor" {
		t.Errorf("String() = %q, want cache-janitor", svc.String())
	}
}

func TestCacheJanitorService_Sweeps(t *testing.T) {
	ev := &mockEvictor{ret: 2}
	svc := NewCacheJanitorService(ev, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for ev.Calls() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() error = %v, want context.Canceled", err)
	}
	if ev.Calls() < 2 {
		t.Errorf("EvictExpired calls = %d, want at least 2", ev.Calls())
	}
}

func TestCacheJanitorService_EvictsExpiredEntries(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	sc := cache.New(cache.Config{Enabled: true, MaxEntries: 10, TTL: time.Minute, Now: clock})
	defer sc.Shutdown()
	sc.Store("a", testVector())
	sc.Store("b", testVector())

	mu.Lock()
	now = now.Add(2 * time.Minute)
	mu.Unlock()

	NewCacheJanitorService(sc, time.Minute).sweep()

	if got := sc.Stats().Size; got != 0 {
		t.Errorf("cache size after sweep = %d, want 0", got)
	}
}

func testVector() models.ScoreVector {
	return models.ScoreVector{PriceMatch: 30, Total: 30}
}
