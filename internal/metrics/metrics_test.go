// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package metrics

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordStoreQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		driver    string
		duration  time.Duration
		err       error
	}{
		{"successful listing scan", "all_listings", "badger", 2 * time.Millisecond, nil},
		{"successful search", "search", "duckdb", 15 * time.Millisecond, nil},
		{"failed lookup", "get_listing", "sqlite3", time.Millisecond, errors.New("database is locked")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(StoreQueryErrors.WithLabelValues(tt.operation, tt.driver, errLabel(tt.err)))
			RecordStoreQuery(tt.operation, tt.driver, tt.duration, tt.err)
			after := testutil.ToFloat64(StoreQueryErrors.WithLabelValues(tt.operation, tt.driver, errLabel(tt.err)))

			want := 0.0
			if tt.err != nil {
				want = 1
			}
			if after-before != want {
				t.Errorf("error counter delta = %v, want %v", after-before, want)
			}
		})
	}
}

func errLabel(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func TestRecordStoreQuery_ErrorTruncation(t *testing.T) {
	long := strings.Repeat("x", 80)
	RecordStoreQuery("truncate", "badger", time.Millisecond, errors.New(long))

	got := testutil.ToFloat64(StoreQueryErrors.WithLabelValues("truncate", "badger", long[:50]))
	if got != 1 {
		t.Errorf("truncated label counter = %v, want 1", got)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/recommend", "200"))
	RecordAPIRequest("POST", "/recommend", StatusLabel(200), 12*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/recommend", "200"))

	if after-before != 1 {
		t.Errorf("APIRequestsTotal delta = %v, want 1", after-before)
	}
}

func TestRecordRecommendation(t *testing.T) {
	success := testutil.ToFloat64(RecommendRequests.WithLabelValues("success"))
	invalid := testutil.ToFloat64(RecommendRequests.WithLabelValues("invalid_criteria"))

	RecordRecommendation("success", 3*time.Millisecond, 3)
	RecordRecommendation("invalid_criteria", time.Millisecond, 0)

	if got := testutil.ToFloat64(RecommendRequests.WithLabelValues("success")) - success; got != 1 {
		t.Errorf("success delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(RecommendRequests.WithLabelValues("invalid_criteria")) - invalid; got != 1 {
		t.Errorf("invalid_criteria delta = %v, want 1", got)
	}

	m := &dto.Metric{}
	if err := RecommendResults.Write(m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if m.GetHistogram().GetSampleCount() == 0 {
		t.Error("RecommendResults has no observations after a successful call")
	}
}

func TestRecordSeed(t *testing.T) {
	before := testutil.ToFloat64(SeededDocuments.WithLabelValues("properties_info"))
	RecordSeed("properties_info", 7)
	if got := testutil.ToFloat64(SeededDocuments.WithLabelValues("properties_info")) - before; got != 7 {
		t.Errorf("SeededDocuments delta = %v, want 7", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	initial := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != initial+2 {
		t.Errorf("after two increments = %v, want %v", got, initial+2)
	}

	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != initial {
		t.Errorf("after lifecycle = %v, want %v", got, initial)
	}
}

func TestConcurrentMetricRecording(t *testing.T) {
	const workers = 20

	before := testutil.ToFloat64(ScoreCacheHits)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ScoreCacheHits.Inc()
			RecordAPIRequest("GET", "/properties", "200", time.Millisecond)
			TrackActiveRequest(true)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(ScoreCacheHits) - before; got != workers {
		t.Errorf("ScoreCacheHits delta = %v, want %d", got, workers)
	}
}

func TestCircuitBreakerMetrics(t *testing.T) {
	CircuitBreakerState.WithLabelValues("test-store").Set(2)
	CircuitBreakerTransitions.WithLabelValues("test-store", "closed", "open").Inc()

	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("test-store")); got != 2 {
		t.Errorf("CircuitBreakerState = %v, want 2", got)
	}
	if got := testutil.ToFloat64(CircuitBreakerTransitions.WithLabelValues("test-store", "closed", "open")); got < 1 {
		t.Errorf("CircuitBreakerTransitions = %v, want >= 1", got)
	}
}

func TestMetricGathering(t *testing.T) {
	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Fatalf("GatherAndLint() error = %v", err)
	}
	for _, p := range problems {
		if strings.HasPrefix(p.Metric, "store_") || strings.HasPrefix(p.Metric, "score_cache_") ||
			strings.HasPrefix(p.Metric, "recommend_") {
			t.Errorf("lint problem on %s: %s", p.Metric, p.Text)
		}
	}
}
