// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package api

import (
	"errors"
	"time"

	"github.com/tomtom215/propertyrank/internal/cache"
	"github.com/tomtom215/propertyrank/internal/compare"
	"github.com/tomtom215/propertyrank/internal/estimate"
	"github.com/tomtom215/propertyrank/internal/logging"
	"github.com/tomtom215/propertyrank/internal/middleware"
	"github.com/tomtom215/propertyrank/internal/recommend"
	"github.com/tomtom215/propertyrank/internal/search"
	"github.com/tomtom215/propertyrank/internal/store"
)

// Version is reported by the root endpoint.
const Version = "2.0.0"

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response, error and parameter helpers
//   - handlers_properties.go: listing endpoints
//   - handlers_recommend.go: recommendation endpoint
//   - handlers_predict.go: price estimator endpoints
//   - handlers_compare.go: comparison endpoints
//   - handlers_search.go: search endpoints
//   - handlers_health.go: database, health, performance and cache admin endpoints
type Handler struct {
	store     store.Store
	engine    *recommend.Engine
	cache     cache.ScoreCache
	estimator *estimate.Estimator
	compare   *compare.Service
	search    *search.Service
	perfMon   *middleware.PerformanceMonitor
	startTime time.Time
}

// NewHandler creates an API handler. The score cache is the engine's, so
// the cache admin endpoints act on the cache recommendations use.
//
// Example:
//
//	handler, err := api.NewHandler(st, engine, estimate.New(cfg.Recommend.ReferenceYear))
//	router := api.NewRouter(handler, api.DefaultChiMiddlewareConfig())
//	http.ListenAndServe(":8000", router.SetupChi())
func NewHandler(st store.Store, engine *recommend.Engine, estimator *estimate.Estimator) (*Handler, error) {
	if st == nil {
		return nil, errors.New("listing store is required")
	}
	if engine == nil {
		return nil, errors.New("recommendation engine is required")
	}
	if estimator == nil {
		estimator = estimate.New(engine.Config().ReferenceYear)
	}

	return &Handler{
		store:     st,
		engine:    engine,
		cache:     engine.Cache(),
		estimator: estimator,
		compare:   compare.NewService(st),
		search:    search.NewService(st),
		perfMon:   middleware.NewPerformanceMonitor(1000, middleware.DefaultSlowThreshold),
		startTime: time.Now(),
	}, nil
}

// ClearCache drops every cached score vector.
func (h *Handler) ClearCache() {
	h.cache.Clear()
	logging.Info().Msg("Score cache cleared")
}
