// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/propertyrank/internal/config"
	"github.com/tomtom215/propertyrank/internal/logging"
	"github.com/tomtom215/propertyrank/internal/store"
	"github.com/tomtom215/propertyrank/internal/store/badgerstore"
	"github.com/tomtom215/propertyrank/internal/store/sqlstore"
)

// openStore opens the configured backend, wraps it in the circuit breaker
// and loads the seed document if one is configured.
func openStore(ctx context.Context, cfg *config.Config) (*store.Breaker, error) {
	backend, err := openBackend(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	bcfg := store.DefaultBreakerConfig()
	bcfg.MaxRequests = cfg.Breaker.MaxRequests
	bcfg.Interval = cfg.Breaker.Interval
	bcfg.Timeout = cfg.Breaker.Timeout
	bcfg.MinRequests = cfg.Breaker.MinRequests
	bcfg.FailureRatio = cfg.Breaker.FailureRatio
	st := store.NewBreaker(backend, bcfg)

	if cfg.Store.SeedPath != "" {
		if _, err := store.SeedFile(ctx, st, cfg.Store.SeedPath); err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("seed store: %w", err)
		}
	}

	counts, err := st.Counts(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("Could not count store documents")
	} else {
		logging.Info().
			Str("driver", st.Driver()).
			Int("listings", counts.Listings).
			Int("details", counts.Details).
			Int("images", counts.Images).
			Msg("Listing store ready")
		if counts.Listings == 0 {
			logging.Warn().Msg("Listing store is empty; set SEED_PATH to load listings")
		}
	}
	return st, nil
}

func openBackend(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Driver {
	case config.DriverBadger:
		s, err := badgerstore.Open(badgerstore.Config{
			Path:     cfg.Path,
			InMemory: cfg.InMemory,
		})
		if err != nil {
			return nil, fmt.Errorf("open badger store: %w", err)
		}
		return s, nil

	case config.DriverSQLite, config.DriverDuckDB:
		path := cfg.Path
		if cfg.InMemory {
			path = ""
		}
		s, err := sqlstore.Open(ctx, sqlstore.Config{Driver: cfg.Driver, Path: path})
		if err != nil {
			return nil, fmt.Errorf("open %s store: %w", cfg.Driver, err)
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}
