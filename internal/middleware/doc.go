// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

/*
Package middleware provides HTTP middleware for the API server.

Key Components:

  - RequestID: UUID request ids in the X-Request-ID header and logging context
  - PrometheusMetrics: request counts, latency and in-flight gauge
  - PerformanceMonitor: sliding-window latency percentiles per route

Middleware here has the http.HandlerFunc shape. The api package adapts it
for chi with its chiMiddleware helper:

	r.Use(chiMiddleware(middleware.PrometheusMetrics))
	r.Use(monitor.Middleware)

Metric and monitor labels use the chi route pattern ("/properties/{id}")
when one is available, so ids do not create new label values.
*/
package middleware
