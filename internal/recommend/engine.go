// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/propertyrank/internal/cache"
	"github.com/tomtom215/propertyrank/internal/metrics"
	"github.com/tomtom215/propertyrank/internal/models"
	"github.com/tomtom215/propertyrank/internal/scoring"
)

// Outcome labels for metrics.RecordRecommendation.
const (
	outcomeSuccess             = "success"
	outcomeInvalidCriteria     = "invalid_criteria"
	outcomeUpstreamUnavailable = "upstream_unavailable"
)

// Engine scores and ranks properties. It is safe for concurrent use.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	provider PropertyProvider
	cache    cache.ScoreCache
	scorer   *scoring.Scorer

	requestCount atomic.Int64
	errorCount   atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	cacheFaults  atomic.Int64
}

// NewEngine creates a recommendation engine. A nil cfg uses DefaultConfig
// and a nil scoreCache disables caching.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, provider PropertyProvider, scoreCache cache.ScoreCache, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if provider == nil {
		return nil, errors.New("property provider is required")
	}
	if scoreCache == nil {
		scoreCache = cache.NoopScoreCache{}
	}

	return &Engine{
		config:   cfg,
		logger:   logger.With().Str("component", "recommend").Logger(),
		provider: provider,
		cache:    scoreCache,
		scorer:   scoring.New(cfg.ReferenceYear),
	}, nil
}

// Recommend returns the best properties for c, at most MaxResults.
//
// Returns ErrInvalidCriteria for criteria that fail validation and
// ErrUpstreamUnavailable when the property set cannot be fetched or is empty.
//
//nolint:gocritic // hugeParam: criteria passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, c models.Criteria) (*Result, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if err := ValidateCriteria(c); err != nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation(outcomeInvalidCriteria, time.Since(start), 0)
		return nil, err
	}

	logger := e.logger.With().
		Int64("budget", c.UserBudget).
		Int("min_bedrooms", c.UserMinBedrooms).
		Logger()
	logger.Debug().Msg("processing recommendation request")

	props, fetchDur, err := e.fetch(ctx)
	if err != nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation(outcomeUpstreamUnavailable, time.Since(start), 0)
		logger.Warn().Err(err).Msg("recommendation aborted")
		return nil, err
	}

	scoringStart := time.Now()
	scored, info := e.scoreAll(c, props)
	scoringDur := time.Since(scoringStart)

	filtered := filter(scored, c)
	rank(filtered)
	top := filtered
	if len(top) > MaxResults {
		top = top[:MaxResults]
	}

	info.Stats = e.cache.Stats()
	total := time.Since(start)
	result := &Result{
		Recommendations: top,
		Cache:           info,
		Performance: PerformanceMetrics{
			FetchTimeMS:          millis(fetchDur),
			ScoringTimeMS:        millis(scoringDur),
			TotalTimeMS:          millis(total),
			PropertiesConsidered: len(props),
			PropertiesScored:     info.Misses,
			PropertiesFiltered:   len(filtered),
		},
	}

	metrics.RecordRecommendation(outcomeSuccess, total, len(top))
	logger.Debug().
		Int("candidates", len(props)).
		Int("cache_hits", info.Hits).
		Int("returned", len(top)).
		Dur("latency", total).
		Msg("recommendation complete")

	return result, nil
}

// ValidateCriteria reports ErrInvalidCriteria for criteria that cannot be
// scored or filtered.
//
//nolint:gocritic // hugeParam: criteria passed by value for immutability
func ValidateCriteria(c models.Criteria) error {
	if c.UserBudget <= 0 {
		return fmt.Errorf("%w: user_budget must be positive, got %d", ErrInvalidCriteria, c.UserBudget)
	}
	if c.UserMinBedrooms < 0 {
		return fmt.Errorf("%w: user_min_bedrooms must be non-negative, got %d", ErrInvalidCriteria, c.UserMinBedrooms)
	}
	if c.UserMaxCommute != nil && *c.UserMaxCommute < 0 {
		return fmt.Errorf("%w: user_max_commute must be non-negative, got %d", ErrInvalidCriteria, *c.UserMaxCommute)
	}
	if c.UserMinSchoolRating != nil && (*c.UserMinSchoolRating < 0 || *c.UserMinSchoolRating > 10) {
		return fmt.Errorf("%w: user_min_school_rating must be within 0..10, got %d", ErrInvalidCriteria, *c.UserMinSchoolRating)
	}
	return nil
}

// fetch loads the candidate set.
func (e *Engine) fetch(ctx context.Context) ([]models.Property, time.Duration, error) {
	if e.config.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.FetchTimeout)
		defer cancel()
	}

	start := time.Now()
	props, err := e.provider.AllProperties(ctx)
	dur := time.Since(start)
	if err != nil {
		return nil, dur, fmt.Errorf("%w: fetch properties: %w", ErrUpstreamUnavailable, err)
	}
	if len(props) == 0 {
		return nil, dur, fmt.Errorf("%w: no properties found", ErrUpstreamUnavailable)
	}
	return props, dur, nil
}

// scoreAll resolves a score vector for every property, from the cache when
// possible.
//
//nolint:gocritic // hugeParam: criteria passed by value for immutability
func (e *Engine) scoreAll(c models.Criteria, props []models.Property) ([]Recommendation, CacheInfo) {
	key := c.Key()
	out := make([]Recommendation, 0, len(props))
	var info CacheInfo

	for _, p := range props {
		d := p.DetailsOrDefault()
		fp := cache.Fingerprint(key, p.Listing, d)

		v, hit, faulted := e.lookup(fp)
		if faulted {
			info.Faults++
		}
		if hit {
			info.Hits++
		} else {
			info.Misses++
			v = e.scorer.Score(p.Listing, d, c)
			if e.store(fp, v) {
				info.Faults++
			}
		}

		out = append(out, Recommendation{Listing: p.Listing, Details: d, Scores: v})
	}

	e.cacheHits.Add(int64(info.Hits))
	e.cacheMisses.Add(int64(info.Misses))
	if n := info.Hits + info.Misses; n > 0 {
		info.HitRate = scoring.Round2(float64(info.Hits) / float64(n) * 100)
	}
	return out, info
}

// lookup calls the cache, converting a panic into a miss.
func (e *Engine) lookup(key string) (v models.ScoreVector, hit, faulted bool) {
	defer func() {
		if r := recover(); r != nil {
			e.recordFault("lookup", r)
			v, hit, faulted = models.ScoreVector{}, false, true
		}
	}()
	v, hit = e.cache.Lookup(key)
	return v, hit, false
}

// store calls the cache and reports whether it panicked.
func (e *Engine) store(key string, v models.ScoreVector) (faulted bool) {
	defer func() {
		if r := recover(); r != nil {
			e.recordFault("store", r)
			faulted = true
		}
	}()
	e.cache.Store(key, v)
	return false
}

func (e *Engine) recordFault(op string, r any) {
	e.cacheFaults.Add(1)
	metrics.RecommendCacheFaults.Inc()
	e.logger.Error().
		Str("operation", op).
		Interface("panic", r).
		Msg("score cache fault, scoring without cache")
}

// filter keeps properties within every hard limit of c, in order.
//
//nolint:gocritic // hugeParam: criteria passed by value for immutability
func filter(recs []Recommendation, c models.Criteria) []Recommendation {
	out := make([]Recommendation, 0, len(recs))
	for _, r := range recs {
		if r.Listing.Price > c.UserBudget {
			continue
		}
		if r.Details.Bedrooms < c.UserMinBedrooms {
			continue
		}
		if c.UserMaxCommute != nil && r.Details.CommuteTime > *c.UserMaxCommute {
			continue
		}
		if c.UserMinSchoolRating != nil && r.Details.SchoolRating < *c.UserMinSchoolRating {
			continue
		}
		out = append(out, r)
	}
	return out
}

// rank sorts by total score, highest first. Equal totals keep their order.
func rank(recs []Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Scores.Total > recs[j].Scores.Total
	})
}

// Stats returns the engine-lifetime counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:    e.requestCount.Load(),
		Errors:      e.errorCount.Load(),
		CacheHits:   e.cacheHits.Load(),
		CacheMisses: e.cacheMisses.Load(),
		CacheFaults: e.cacheFaults.Load(),
	}
}

// Cache returns the score cache the engine uses.
func (e *Engine) Cache() cache.ScoreCache {
	return e.cache
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.config
}

func millis(d time.Duration) float64 {
	return scoring.Round2(float64(d.Microseconds()) / 1000)
}
