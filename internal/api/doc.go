// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

/*
Package api provides the HTTP REST API for PropertyRank.

Key Components:

  - Router: chi route table and middleware stack (SetupChi)
  - Handler: request handlers over the listing store, recommendation engine,
    price estimator, comparison and search services
  - ChiMiddleware: go-chi/cors and go-chi/httprate factories
  - Response helpers: goccy/go-json encoding with an FNV-1a ETag and a
    shared error envelope

Endpoints:

  - Listings: /properties, /properties/details/all, /properties/{id},
    /properties/{id}/info, /properties/{id}/images
  - Recommendations: POST /recommend
  - Prediction: POST /predict, GET /pricedata
  - Comparison: POST /comparebyid, GET /compare/stats
  - Search: POST /findproperties, GET /search, GET /search/suggestions
  - Admin: /database/status, /health, /performance, /cache/stats,
    POST /cache/clear, POST /cache/cleanup
  - Observability and docs: /metrics, /swagger/*, /docs

Error Responses:

Endpoints other than /recommend and /predict answer failures with

	{
	  "status": "error",
	  "error": {"code": "NOT_FOUND", "message": "Property with ID 9 not found"},
	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
	}

Status codes: 400 for invalid JSON or failed validation (VALIDATION_ERROR
with per-field details), 404 for unknown ids, 503 when the listing store is
unreachable or its circuit breaker is open.

/recommend always answers with a recommendation body. Invalid criteria give
400 and an empty or unreachable store gives 200, both with status "error"
and an empty recommended_properties list.

Usage Example:

	handler, err := api.NewHandler(st, engine, estimate.New(2024))
	if err != nil {
	    return err
	}
	router := api.NewRouter(handler, &api.ChiMiddlewareConfig{
	    CORSAllowedOrigins: cfg.Security.CORSOrigins,
	    RateLimitRequests:  cfg.Security.RateLimitReqs,
	    RateLimitWindow:    cfg.Security.RateLimitWindow,
	})
	srv := &http.Server{Addr: ":8000", Handler: router.SetupChi()}

Thread Safety:

Handler and Router are safe for concurrent use once constructed.
*/
package api
