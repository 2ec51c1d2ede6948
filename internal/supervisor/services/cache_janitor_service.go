// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/propertyrank/internal/logging"
)

// ExpiredEvictor removes expired entries and returns how many it removed.
// cache.ScoreCache satisfies it.
type ExpiredEvictor interface {
	EvictExpired() int
}

// CacheJanitorService periodically evicts expired score cache entries.
//
// Lookups already treat expired entries as misses; the janitor only keeps
// memory from holding entries nobody asks for again.
type CacheJanitorService struct {
	evictor  ExpiredEvictor
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCacheJanitorService creates a janitor that sweeps every interval.
// A non-positive interval uses 5 minutes.
func NewCacheJanitorService(evictor ExpiredEvictor, interval time.Duration) *CacheJanitorService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CacheJanitorService{
		evictor:  evictor,
		interval: interval,
		logger:   logging.WithComponent("cache-janitor"),
		name:     "cache-janitor",
	}
}

// Serve implements suture.Service.
func (s *CacheJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug().Dur("interval", s.interval).Msg("cache janitor started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *CacheJanitorService) sweep() {
	if n := s.evictor.EvictExpired(); n > 0 {
		s.logger.Info().Int("removed", n).Msg("evicted expired score cache entries")
	}
}

// String implements fmt.Stringer.
func (s *CacheJanitorService) String() string {
	return s.name
}
