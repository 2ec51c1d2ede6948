// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/propertyrank/internal/cache"
	"github.com/tomtom215/propertyrank/internal/logging"
	"github.com/tomtom215/propertyrank/internal/middleware"
	"github.com/tomtom215/propertyrank/internal/models"
	"github.com/tomtom215/propertyrank/internal/recommend"
	"github.com/tomtom215/propertyrank/internal/store"
)

// Health status values.
const (
	healthHealthy  = "healthy"
	healthDegraded = "degraded"
)

// DatabaseStatus describes the listing store.
type DatabaseStatus struct {
	Status      string        `json:"status"`
	Connected   bool          `json:"connected"`
	Driver      string        `json:"driver"`
	Collections *store.Counts `json:"collections,omitempty"`
	Error       string        `json:"error,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string          `json:"status"`
	Database  DatabaseStatus  `json:"database"`
	Cache     cache.Stats     `json:"cache"`
	Engine    recommend.Stats `json:"engine"`
	Uptime    float64         `json:"uptime_seconds"`
	Timestamp time.Time       `json:"timestamp"`
}

// PerformanceResponse is the body of GET /performance.
type PerformanceResponse struct {
	Status    string                     `json:"status"`
	Requests  int                        `json:"requests_in_window"`
	Endpoints []middleware.EndpointStats `json:"endpoints"`
}

// CacheStatsResponse is the body of GET /cache/stats.
type CacheStatsResponse struct {
	Status string      `json:"status"`
	Stats  cache.Stats `json:"cache_statistics"`
}

// CacheCleanupResponse is the body of POST /cache/cleanup.
type CacheCleanupResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Removed int         `json:"removed"`
	Before  cache.Stats `json:"before"`
	After   cache.Stats `json:"after"`
}

// databaseStatus pings the store and reads the collection counts.
func (h *Handler) databaseStatus(ctx context.Context) DatabaseStatus {
	ctx, cancel := context.WithTimeout(ctx, handlerTimeout)
	defer cancel()

	status := DatabaseStatus{Driver: h.store.Driver()}
	if err := h.store.Ping(ctx); err != nil {
		status.Status = "disconnected"
		status.Error = err.Error()
		return status
	}
	counts, err := h.store.Counts(ctx)
	if err != nil {
		status.Status = "disconnected"
		status.Error = err.Error()
		return status
	}
	status.Status = "connected"
	status.Connected = true
	status.Collections = &counts
	return status
}

// DatabaseStatus handles GET /database/status
//
// @Summary Listing store status
// @Description Pings the listing store and reports per-collection document counts
// @Tags Admin
// @Produce json
// @Success 200 {object} DatabaseStatus
// @Failure 503 {object} DatabaseStatus "Store unreachable"
// @Router /database/status [get]
func (h *Handler) DatabaseStatus(w http.ResponseWriter, r *http.Request) {
	status := h.databaseStatus(r.Context())
	code := http.StatusOK
	if !status.Connected {
		code = http.StatusServiceUnavailable
		logging.Warn().Str("driver", status.Driver).Str("error", sanitizeLogValue(status.Error)).Msg("Listing store unreachable")
	}
	respondJSON(w, code, &status)
}

// Health handles GET /health
//
// The status is "degraded" when the listing store is unreachable. The
// response code stays 200 so health checks can read the body.
//
// @Summary Service health
// @Description Returns store connectivity, cache statistics and engine counters
// @Tags Admin
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	db := h.databaseStatus(r.Context())
	status := healthHealthy
	if !db.Connected {
		status = healthDegraded
	}

	respondJSON(w, http.StatusOK, &HealthResponse{
		Status:    status,
		Database:  db,
		Cache:     h.cache.Stats(),
		Engine:    h.engine.Stats(),
		Uptime:    time.Since(h.startTime).Seconds(),
		Timestamp: time.Now().UTC(),
	})
}

// Performance handles GET /performance
//
// @Summary Request latency by route
// @Description Returns latency percentiles over the most recent requests, busiest route first
// @Tags Admin
// @Produce json
// @Success 200 {object} PerformanceResponse
// @Router /performance [get]
func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &PerformanceResponse{
		Status:    models.StatusSuccess,
		Requests:  h.perfMon.Len(),
		Endpoints: h.perfMon.GetStats(),
	})
}

// CacheStats handles GET /cache/stats
//
// @Summary Score cache statistics
// @Tags Admin
// @Produce json
// @Success 200 {object} CacheStatsResponse
// @Router /cache/stats [get]
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &CacheStatsResponse{
		Status: models.StatusSuccess,
		Stats:  h.cache.Stats(),
	})
}

// CacheClear handles POST /cache/clear
//
// @Summary Clear the score cache
// @Tags Admin
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Router /cache/clear [post]
func (h *Handler) CacheClear(w http.ResponseWriter, r *http.Request) {
	h.ClearCache()
	respondJSON(w, http.StatusOK, &models.MessageResponse{
		Status:  models.StatusSuccess,
		Message: "Cache cleared successfully",
	})
}

// CacheCleanup handles POST /cache/cleanup
//
// @Summary Evict expired cache entries
// @Description Removes expired score vectors and reports statistics before and after
// @Tags Admin
// @Produce json
// @Success 200 {object} CacheCleanupResponse
// @Router /cache/cleanup [post]
func (h *Handler) CacheCleanup(w http.ResponseWriter, r *http.Request) {
	before := h.cache.Stats()
	removed := h.cache.EvictExpired()
	after := h.cache.Stats()

	logging.Debug().Int("removed", removed).Msg("Expired cache entries evicted")

	respondJSON(w, http.StatusOK, &CacheCleanupResponse{
		Status:  models.StatusSuccess,
		Message: "Expired cache entries cleaned up",
		Removed: removed,
		Before:  before,
		After:   after,
	})
}
