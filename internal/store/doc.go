// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

/*
Package store defines the listing store and the pieces shared by its backends.

Three collections are keyed by listing id:

  - properties_list: title, price and location (models.Listing)
  - properties_info: the attribute snapshot used for scoring (models.Details)
  - properties_images: zero or more images per listing (models.Image)

Backends live in subpackages:

  - badgerstore: embedded BadgerDB key-value store (default)
  - sqlstore: DuckDB or SQLite through database/sql

Raw seed documents may use variant field names ("beds", "num_bedrooms",
"schoolScore", ...). Normalize* maps them onto the canonical models before
anything is written, and Seed loads a JSON seed file through that path.

Breaker wraps any Store with a sony/gobreaker circuit breaker and Prometheus
query metrics. Callers treat ErrUnavailable as "store down" regardless of
backend.
*/
package store
