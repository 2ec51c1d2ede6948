// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/propertyrank/internal/logging"
	"github.com/tomtom215/propertyrank/internal/metrics"
	"github.com/tomtom215/propertyrank/internal/models"
)

// BreakerConfig tunes the circuit breaker in front of the store.
type BreakerConfig struct {
	Name         string        `koanf:"name"`
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// DefaultBreakerConfig returns the production breaker settings:
// 3 probes in half-open state, 1 minute counting window, 30 second open
// period, trips at a 60% failure rate over at least 10 requests.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:         "listing-store",
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// Breaker wraps a Store with a circuit breaker and query metrics.
//
// ErrNotFound and context cancellation do not count as failures. When the
// circuit is open, calls fail fast with ErrUnavailable.
type Breaker struct {
	next Store
	cb   *gobreaker.CircuitBreaker[interface{}]
	name string
}

// NewBreaker wraps next. Zero fields of cfg take DefaultBreakerConfig values.
//
//nolint:gocritic // hugeParam: config is read once at construction
func NewBreaker(next Store, cfg BreakerConfig) *Breaker {
	def := DefaultBreakerConfig()
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = def.MaxRequests
	}
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MinRequests == 0 {
		cfg.MinRequests = def.MinRequests
	}
	if cfg.FailureRatio <= 0 || cfg.FailureRatio > 1 {
		cfg.FailureRatio = def.FailureRatio
	}

	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cfg.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= cfg.FailureRatio
			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrNotFound) ||
				errors.Is(err, context.Canceled)
		},
	})

	return &Breaker{next: next, cb: cb, name: cfg.Name}
}

// State returns the breaker state as "closed", "half-open" or "open".
func (b *Breaker) State() string {
	return stateToString(b.cb.State())
}

// execute runs fn through the breaker and records the outcome.
func (b *Breaker) execute(op string, fn func() (interface{}, error)) (interface{}, error) {
	start := time.Now()
	result, err := b.cb.Execute(fn)
	if errors.Is(err, ErrNotFound) {
		metrics.RecordStoreQuery(op, b.next.Driver(), time.Since(start), nil)
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
		return nil, err
	}
	metrics.RecordStoreQuery(op, b.next.Driver(), time.Since(start), err)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Warn().Err(err).Str("operation", op).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		counts := b.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(counts.ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return result, nil
}

// castResult type-asserts a breaker result.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// AllListings implements Store.
func (b *Breaker) AllListings(ctx context.Context) ([]models.Listing, error) {
	return castResult[[]models.Listing](b.execute("all_listings", func() (interface{}, error) {
		return b.next.AllListings(ctx)
	}))
}

// GetListing implements Store.
func (b *Breaker) GetListing(ctx context.Context, id int64) (models.Listing, error) {
	return castResult[models.Listing](b.execute("get_listing", func() (interface{}, error) {
		return b.next.GetListing(ctx, id)
	}))
}

// GetDetails implements Store.
func (b *Breaker) GetDetails(ctx context.Context, id int64) (*models.Details, error) {
	return castResult[*models.Details](b.execute("get_details", func() (interface{}, error) {
		return b.next.GetDetails(ctx, id)
	}))
}

// GetImages implements Store.
func (b *Breaker) GetImages(ctx context.Context, id int64) ([]models.Image, error) {
	return castResult[[]models.Image](b.execute("get_images", func() (interface{}, error) {
		return b.next.GetImages(ctx, id)
	}))
}

// AllProperties implements Store.
func (b *Breaker) AllProperties(ctx context.Context) ([]models.Property, error) {
	return castResult[[]models.Property](b.execute("all_properties", func() (interface{}, error) {
		return b.next.AllProperties(ctx)
	}))
}

// Search implements Store.
func (b *Breaker) Search(ctx context.Context, f Filter) ([]models.Property, error) {
	return castResult[[]models.Property](b.execute("search", func() (interface{}, error) {
		return b.next.Search(ctx, f)
	}))
}

// Distinct implements Store.
func (b *Breaker) Distinct(ctx context.Context, field string) ([]string, error) {
	return castResult[[]string](b.execute("distinct", func() (interface{}, error) {
		return b.next.Distinct(ctx, field)
	}))
}

// Counts implements Store.
func (b *Breaker) Counts(ctx context.Context) (Counts, error) {
	return castResult[Counts](b.execute("counts", func() (interface{}, error) {
		return b.next.Counts(ctx)
	}))
}

// Ping implements Store.
func (b *Breaker) Ping(ctx context.Context) error {
	_, err := b.execute("ping", func() (interface{}, error) {
		return nil, b.next.Ping(ctx)
	})
	return err
}

// UpsertListings implements Store.
func (b *Breaker) UpsertListings(ctx context.Context, listings []models.Listing) error {
	_, err := b.execute("upsert_listings", func() (interface{}, error) {
		return nil, b.next.UpsertListings(ctx, listings)
	})
	return err
}

// UpsertDetails implements Store.
func (b *Breaker) UpsertDetails(ctx context.Context, details []models.Details) error {
	_, err := b.execute("upsert_details", func() (interface{}, error) {
		return nil, b.next.UpsertDetails(ctx, details)
	})
	return err
}

// UpsertImages implements Store.
func (b *Breaker) UpsertImages(ctx context.Context, images []models.Image) error {
	_, err := b.execute("upsert_images", func() (interface{}, error) {
		return nil, b.next.UpsertImages(ctx, images)
	})
	return err
}

// Driver implements Store.
func (b *Breaker) Driver() string {
	return b.next.Driver()
}

// Close implements Store.
func (b *Breaker) Close() error {
	return b.next.Close()
}

var _ Store = (*Breaker)(nil)

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
