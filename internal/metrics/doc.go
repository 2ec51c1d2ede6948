// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

/*
Package metrics provides Prometheus metrics collection and export.

Every collector is registered on the default registry through promauto and is
exposed at /metrics in the Prometheus text format:

	curl http://localhost:8000/metrics

# Available Metrics

API:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests

Recommendation engine:
  - recommend_requests_total{outcome}
  - recommend_duration_seconds
  - recommend_results
  - recommend_cache_faults_total

Score cache:
  - score_cache_hits_total, score_cache_misses_total
  - score_cache_evictions_total (capacity), score_cache_expirations_total (TTL)
  - score_cache_entries

Listing store:
  - store_query_duration_seconds{operation, driver}
  - store_query_errors_total{operation, driver, error_type}
  - store_seeded_documents_total{collection}

Circuit breaker:
  - circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total{name, result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name, from_state, to_state}

# Usage

	start := time.Now()
	listings, err := st.AllListings(ctx)
	metrics.RecordStoreQuery("all_listings", "badger", time.Since(start), err)
*/
package metrics
