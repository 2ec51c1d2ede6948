// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package recommend

import (
	"context"

	"github.com/tomtom215/propertyrank/internal/cache"
	"github.com/tomtom215/propertyrank/internal/models"
)

// PropertyProvider supplies the candidate set. store.Store implements it.
type PropertyProvider interface {
	// AllProperties returns every listing joined with its optional details,
	// in a stable order.
	AllProperties(ctx context.Context) ([]models.Property, error)
}

// Recommendation is one ranked property.
type Recommendation struct {
	Listing models.Listing
	// Details is the detail record, or models.DefaultDetails when the
	// listing has none.
	Details models.Details
	Scores  models.ScoreVector
}

// CacheInfo reports cache activity for one request alongside the cache's
// global statistics.
type CacheInfo struct {
	Hits    int         `json:"cache_hits"`
	Misses  int         `json:"cache_misses"`
	Faults  int         `json:"cache_faults"`
	HitRate float64     `json:"hit_rate"`
	Stats   cache.Stats `json:"cache_stats"`
}

// PerformanceMetrics reports timings and candidate counts for one request.
type PerformanceMetrics struct {
	FetchTimeMS   float64 `json:"fetch_time_ms"`
	ScoringTimeMS float64 `json:"scoring_time_ms"`
	TotalTimeMS   float64 `json:"total_time_ms"`

	PropertiesConsidered int `json:"properties_considered"`
	PropertiesScored     int `json:"properties_scored"`
	PropertiesFiltered   int `json:"properties_after_filter"`
}

// Result is the outcome of a successful Recommend call.
type Result struct {
	// Recommendations holds at most MaxResults entries, best first.
	Recommendations []Recommendation
	Cache           CacheInfo
	Performance     PerformanceMetrics
}

// RecommendedProperty is the wire form of a Recommendation.
type RecommendedProperty struct {
	BasicInfo models.Listing     `json:"basic_info"`
	Details   models.Details     `json:"details"`
	Scores    models.ScoreVector `json:"scores"`
}

// Response is the /recommendations body. It is well formed for every
// outcome: on error Status is "error", TotalProperties is 0 and the list
// is empty.
type Response struct {
	Status                string                `json:"status"`
	TotalProperties       int                   `json:"total_properties"`
	RecommendedProperties []RecommendedProperty `json:"recommended_properties"`
	CacheInfo             *CacheInfo            `json:"cache_info,omitempty"`
	PerformanceMetrics    *PerformanceMetrics   `json:"performance_metrics,omitempty"`
	Error                 string                `json:"error,omitempty"`
}

// NewResponse builds the wire body for the result of Recommend.
func NewResponse(result *Result, err error) *Response {
	if err != nil || result == nil {
		resp := &Response{
			Status:                models.StatusError,
			RecommendedProperties: []RecommendedProperty{},
		}
		if err != nil {
			resp.Error = err.Error()
		}
		return resp
	}

	props := make([]RecommendedProperty, 0, len(result.Recommendations))
	for _, r := range result.Recommendations {
		props = append(props, RecommendedProperty{
			BasicInfo: r.Listing,
			Details:   r.Details,
			Scores:    r.Scores,
		})
	}

	ci := result.Cache
	pm := result.Performance
	return &Response{
		Status:                models.StatusSuccess,
		TotalProperties:       len(props),
		RecommendedProperties: props,
		CacheInfo:             &ci,
		PerformanceMetrics:    &pm,
	}
}

// Stats holds engine-lifetime counters.
type Stats struct {
	Requests    int64 `json:"requests"`
	Errors      int64 `json:"errors"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
	CacheFaults int64 `json:"cache_faults"`
}
