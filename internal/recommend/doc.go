// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

// Package recommend ranks listings against a buyer's criteria.
//
// # Pipeline
//
// Each Recommend call runs the same steps:
//
//  1. Validate the criteria (ErrInvalidCriteria).
//  2. Fetch every property from the PropertyProvider (ErrUpstreamUnavailable
//     on failure or an empty store).
//  3. Substitute models.DefaultDetails for listings without a detail record.
//  4. Look up each property's score vector in the ScoreCache by fingerprint.
//  5. Score the misses with scoring.Scorer and store them.
//  6. Drop properties over budget, under the bedroom minimum, or outside the
//     optional commute and school-rating limits.
//  7. Stable-sort by total score, highest first. Ties keep fetch order.
//  8. Keep the top MaxResults.
//
// # Cache Faults
//
// A panicking cache never fails a request. The panic is recovered, logged
// and counted, and the property is scored as if it were a miss.
//
// # Usage
//
//	scoreCache := cache.New(cache.Config{Enabled: true})
//	defer scoreCache.Shutdown()
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), st, scoreCache, logger)
//	if err != nil {
//	    return err
//	}
//
//	result, err := engine.Recommend(ctx, criteria)
//	resp := recommend.NewResponse(result, err)
//
// # Thread Safety
//
// The engine is safe for concurrent use. It holds no per-request state; the
// shared cache serializes its own mutations.
package recommend
