// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package middleware

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/propertyrank/internal/logging"
)

// DefaultSlowThreshold is the latency above which a request is logged.
const DefaultSlowThreshold = time.Second

// RequestMetrics is one observed request.
type RequestMetrics struct {
	Route      string    `json:"route"`
	Method     string    `json:"method"`
	DurationMS float64   `json:"duration_ms"`
	StatusCode int       `json:"status_code"`
	Timestamp  time.Time `json:"timestamp"`
}

// EndpointStats aggregates the window for one method and route.
type EndpointStats struct {
	Endpoint     string  `json:"endpoint"`
	RequestCount int     `json:"request_count"`
	ErrorCount   int     `json:"error_count"`
	AvgDuration  float64 `json:"avg_duration_ms"`
	P50Duration  float64 `json:"p50_duration_ms"`
	P95Duration  float64 `json:"p95_duration_ms"`
	P99Duration  float64 `json:"p99_duration_ms"`
	MinDuration  float64 `json:"min_duration_ms"`
	MaxDuration  float64 `json:"max_duration_ms"`
}

// PerformanceMonitor keeps the latest requests in a fixed-size window.
// It is safe for concurrent use.
type PerformanceMonitor struct {
	mu            sync.RWMutex
	window        []RequestMetrics
	next          int
	full          bool
	slowThreshold time.Duration
	now           func() time.Time
}

// NewPerformanceMonitor creates a monitor over the last size requests.
// A non-positive size defaults to 1000 and a zero threshold to
// DefaultSlowThreshold.
func NewPerformanceMonitor(size int, slowThreshold time.Duration) *PerformanceMonitor {
	if size <= 0 {
		size = 1000
	}
	if slowThreshold <= 0 {
		slowThreshold = DefaultSlowThreshold
	}
	return &PerformanceMonitor{
		window:        make([]RequestMetrics, size),
		slowThreshold: slowThreshold,
		now:           time.Now,
	}
}

// RecordRequest adds a request to the window, replacing the oldest when full.
func (pm *PerformanceMonitor) RecordRequest(m RequestMetrics) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.window[pm.next] = m
	pm.next = (pm.next + 1) % len(pm.window)
	if pm.next == 0 {
		pm.full = true
	}
}

// Len returns the number of requests in the window.
func (pm *PerformanceMonitor) Len() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.lenLocked()
}

func (pm *PerformanceMonitor) lenLocked() int {
	if pm.full {
		return len(pm.window)
	}
	return pm.next
}

// GetStats returns per-endpoint statistics, busiest first. Ties are
// ordered by endpoint name.
func (pm *PerformanceMonitor) GetStats() []EndpointStats {
	pm.mu.RLock()
	byEndpoint := make(map[string][]RequestMetrics)
	for i := 0; i < pm.lenLocked(); i++ {
		m := pm.window[i]
		key := m.Method + " " + m.Route
		byEndpoint[key] = append(byEndpoint[key], m)
	}
	pm.mu.RUnlock()

	stats := make([]EndpointStats, 0, len(byEndpoint))
	for endpoint, ms := range byEndpoint {
		durations := make([]float64, len(ms))
		var sum float64
		errs := 0
		for i, m := range ms {
			durations[i] = m.DurationMS
			sum += m.DurationMS
			if m.StatusCode >= http.StatusInternalServerError {
				errs++
			}
		}
		sort.Float64s(durations)

		stats = append(stats, EndpointStats{
			Endpoint:     endpoint,
			RequestCount: len(durations),
			ErrorCount:   errs,
			AvgDuration:  sum / float64(len(durations)),
			P50Duration:  percentile(durations, 0.50),
			P95Duration:  percentile(durations, 0.95),
			P99Duration:  percentile(durations, 0.99),
			MinDuration:  durations[0],
			MaxDuration:  durations[len(durations)-1],
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].RequestCount != stats[j].RequestCount {
			return stats[i].RequestCount > stats[j].RequestCount
		}
		return stats[i].Endpoint < stats[j].Endpoint
	})
	return stats
}

// GetRecentMetrics returns up to n of the most recent requests, oldest first.
func (pm *PerformanceMonitor) GetRecentMetrics(n int) []RequestMetrics {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	size := pm.lenLocked()
	if n > size {
		n = size
	}
	if n <= 0 {
		return []RequestMetrics{}
	}

	out := make([]RequestMetrics, n)
	start := pm.next - n
	for i := 0; i < n; i++ {
		idx := (start + i + len(pm.window)) % len(pm.window)
		out[i] = pm.window[idx]
	}
	return out
}

// Middleware records every request and logs those slower than the threshold.
func (pm *PerformanceMonitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := pm.now()

		wrapper := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(wrapper, r)

		elapsed := pm.now().Sub(start)
		route := routeLabel(r)
		pm.RecordRequest(RequestMetrics{
			Route:      route,
			Method:     r.Method,
			DurationMS: float64(elapsed.Microseconds()) / 1000,
			StatusCode: wrapper.statusCode,
			Timestamp:  start,
		})

		if elapsed > pm.slowThreshold {
			logging.Ctx(r.Context()).Warn().
				Str("method", r.Method).
				Str("route", route).
				Dur("duration", elapsed).
				Msg("Slow request detected")
		}
	})
}

// percentile returns the nearest-rank value of a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[int(float64(len(sorted)-1)*p)]
}
