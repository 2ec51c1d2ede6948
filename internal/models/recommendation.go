// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package models

// Criteria is a recommendation request.
//
// UserMaxCommute and UserMinSchoolRating are optional hard filters.
// PreferredAmenities is accepted but not used by scoring or filtering.
type Criteria struct {
	UserBudget          int64    `json:"user_budget" validate:"gt=0"`
	UserMinBedrooms     int      `json:"user_min_bedrooms" validate:"gte=0"`
	UserMaxCommute      *int     `json:"user_max_commute,omitempty" validate:"omitempty,gte=0"`
	UserMinSchoolRating *int     `json:"user_min_school_rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	PreferredAmenities  []string `json:"preferred_amenities,omitempty" validate:"omitempty,dive,required"`
}

// CriteriaKey is the part of Criteria that changes a score vector.
// Hard filters are not part of it: requests that differ only in
// UserMaxCommute or UserMinSchoolRating share cached vectors.
type CriteriaKey struct {
	Budget      int64 `json:"budget"`
	MinBedrooms int   `json:"min_bedrooms"`
}

// Key returns the scoring-relevant part of c.
func (c Criteria) Key() CriteriaKey {
	return CriteriaKey{Budget: c.UserBudget, MinBedrooms: c.UserMinBedrooms}
}

// ScoreVector holds the six sub-scores and their weighted total, each in [0,100]
// and rounded to two decimal places.
type ScoreVector struct {
	PriceMatch   float64 `json:"price_match_score"`
	Bedroom      float64 `json:"bedroom_score"`
	SchoolRating float64 `json:"school_rating_score"`
	Commute      float64 `json:"commute_score"`
	PropertyAge  float64 `json:"property_age_score"`
	Amenities    float64 `json:"amenities_score"`
	Total        float64 `json:"total_score"`
}
