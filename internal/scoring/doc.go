// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

// Package scoring implements the multi-factor property score.
//
// Six attributes are normalized onto a 0-100 scale and combined with fixed
// weights:
//
//	price match    0.30  100 within budget, 0 at twice the budget
//	bedroom        0.20  pass/fail against the requested minimum
//	school rating  0.15  rating x 10
//	commute        0.15  100 <= 20 min, 50 at 40 min, 0 >= 60 min
//	property age   0.10  100 <= 5 years, 60 at 20 years, 0 >= 30 years
//	amenities      0.10  share of pool, garage, garden
//
// Scoring is pure and deterministic. It never performs I/O and never fails.
package scoring
