// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package recommend

import "errors"

var (
	// ErrInvalidCriteria is returned for criteria the caller must fix:
	// a non-positive budget, a negative bedroom or commute limit, or a
	// school-rating minimum outside 0..10.
	ErrInvalidCriteria = errors.New("invalid recommendation criteria")

	// ErrUpstreamUnavailable is returned when properties cannot be fetched
	// or the store holds none.
	ErrUpstreamUnavailable = errors.New("property data unavailable")
)
