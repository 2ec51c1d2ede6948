// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"

	_ "github.com/tomtom215/propertyrank/docs" // registers the swagger document
	"github.com/tomtom215/propertyrank/internal/api"
	"github.com/tomtom215/propertyrank/internal/cache"
	"github.com/tomtom215/propertyrank/internal/config"
	"github.com/tomtom215/propertyrank/internal/estimate"
	"github.com/tomtom215/propertyrank/internal/logging"
	"github.com/tomtom215/propertyrank/internal/metrics"
	"github.com/tomtom215/propertyrank/internal/recommend"
	"github.com/tomtom215/propertyrank/internal/supervisor"
	"github.com/tomtom215/propertyrank/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config is not available yet, so the default logger reports this.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", api.Version).
		Str("store_driver", cfg.Store.Driver).
		Bool("cache_enabled", cfg.Cache.Enabled).
		Msg("Starting PropertyRank")
	metrics.AppInfo.WithLabelValues(api.Version, runtime.Version()).Set(1)

	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows every origin (ALLOWED_ORIGINS=*)")
	}

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("PropertyRank failed")
	}
	logging.Info().Msg("PropertyRank stopped")
}

// run wires the service and blocks until a shutdown signal. Startup errors
// are returned so every deferred close has run before main exits.
func run(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open listing store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing listing store")
		}
	}()

	scoreCache := cache.New(cache.Config{
		Enabled:    cfg.Cache.Enabled,
		MaxEntries: cfg.Cache.MaxEntries,
		TTL:        cfg.Cache.TTL,
	})
	defer scoreCache.Shutdown()

	engine, err := recommend.NewEngine(&recommend.Config{
		ReferenceYear: cfg.Recommend.ReferenceYear,
		FetchTimeout:  cfg.Recommend.FetchTimeout,
	}, st, scoreCache, logging.Logger())
	if err != nil {
		return fmt.Errorf("create recommendation engine: %w", err)
	}

	handler, err := api.NewHandler(st, engine, estimate.New(cfg.Recommend.ReferenceYear))
	if err != nil {
		return fmt.Errorf("create API handler: %w", err)
	}

	mwConfig := api.DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mwConfig.RateLimitRequests = cfg.Security.RateLimitReqs
	mwConfig.RateLimitWindow = cfg.Security.RateLimitWindow
	mwConfig.RateLimitDisabled = cfg.Security.RateLimitDisabled

	server := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           api.NewRouter(handler, mwConfig).SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if cfg.Cache.Enabled && cfg.Cache.CleanupInterval > 0 {
		tree.AddDataService(services.NewCacheJanitorService(scoreCache, cfg.Cache.CleanupInterval))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	return nil
}
