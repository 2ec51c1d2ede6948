// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package scoring

import (
	"math"

	"github.com/tomtom215/propertyrank/internal/models"
)

// DefaultReferenceYear is the year property age is measured against.
const DefaultReferenceYear = 2024

// Weights holds the contribution of each sub-score to the total.
type Weights struct {
	PriceMatch   float64 `json:"price_match"`
	Bedroom      float64 `json:"bedroom"`
	SchoolRating float64 `json:"school_rating"`
	Commute      float64 `json:"commute"`
	PropertyAge  float64 `json:"property_age"`
	Amenities    float64 `json:"amenities"`
}

// DefaultWeights are the fixed ranking weights. They sum to 1.
var DefaultWeights = Weights{
	PriceMatch:   0.30,
	Bedroom:      0.20,
	SchoolRating: 0.15,
	Commute:      0.15,
	PropertyAge:  0.10,
	Amenities:    0.10,
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.PriceMatch + w.Bedroom + w.SchoolRating + w.Commute + w.PropertyAge + w.Amenities
}

// Scorer turns a listing, its attributes and the request criteria into a ScoreVector.
// A Scorer is immutable and safe for concurrent use.
type Scorer struct {
	referenceYear int
	weights       Weights
}

// New creates a Scorer. A zero referenceYear selects DefaultReferenceYear.
func New(referenceYear int) *Scorer {
	if referenceYear == 0 {
		referenceYear = DefaultReferenceYear
	}
	return &Scorer{
		referenceYear: referenceYear,
		weights:       DefaultWeights,
	}
}

// ReferenceYear returns the year used for the age sub-score.
func (s *Scorer) ReferenceYear() int {
	return s.referenceYear
}

// Weights returns the weights applied to the sub-scores.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score computes the six sub-scores and the weighted total.
// The total is computed from unrounded sub-scores; every returned value is
// rounded to two decimal places.
//
//nolint:gocritic // hugeParam: values are snapshots, passed by value for purity
func (s *Scorer) Score(l models.Listing, d models.Details, c models.Criteria) models.ScoreVector {
	price := PriceMatch(l.Price, c.UserBudget)
	bedroom := Bedroom(d.Bedrooms, c.UserMinBedrooms)
	school := SchoolRating(d.SchoolRating)
	commute := Commute(d.CommuteTime)
	age := PropertyAge(s.referenceYear - d.YearBuilt)
	amenities := Amenities(d)

	total := s.weights.PriceMatch*price +
		s.weights.Bedroom*bedroom +
		s.weights.SchoolRating*school +
		s.weights.Commute*commute +
		s.weights.PropertyAge*age +
		s.weights.Amenities*amenities

	return models.ScoreVector{
		PriceMatch:   Round2(price),
		Bedroom:      Round2(bedroom),
		SchoolRating: Round2(school),
		Commute:      Round2(commute),
		PropertyAge:  Round2(age),
		Amenities:    Round2(amenities),
		Total:        Round2(clamp(total)),
	}
}

// PriceMatch is 100 within budget and falls linearly to 0 at twice the budget.
// A non-positive budget scores 0.
func PriceMatch(price, budget int64) float64 {
	if budget <= 0 {
		return 0
	}
	if price <= budget {
		return 100
	}
	ratio := float64(price) / float64(budget)
	return math.Max(0, 100-(ratio-1)*100)
}

// Bedroom is a pass/fail score against the requested minimum.
func Bedroom(bedrooms, minBedrooms int) float64 {
	if bedrooms >= minBedrooms {
		return 100
	}
	return 0
}

// SchoolRating maps a 0-10 rating onto 0-100.
func SchoolRating(rating int) float64 {
	return clamp(float64(rating) / 10 * 100)
}

// Commute is 100 up to 20 minutes, 50 at 40 minutes and 0 from 60 minutes.
func Commute(minutes int) float64 {
	m := float64(minutes)
	switch {
	case m <= 20:
		return 100
	case m <= 40:
		return 100 - (m-20)/20*50
	default:
		return math.Max(0, 50-(m-40)/20*50)
	}
}

// PropertyAge is 100 up to 5 years, 60 at 20 years and 0 from 30 years.
func PropertyAge(age int) float64 {
	a := float64(age)
	switch {
	case a <= 5:
		return 100
	case a <= 20:
		return 100 - (a-5)/15*40
	default:
		return math.Max(0, 60-(a-20)/10*60)
	}
}

// Amenities scores the share of pool, garage and garden present.
//
//nolint:gocritic // hugeParam: read-only snapshot
func Amenities(d models.Details) float64 {
	return float64(d.AmenityFlags()) / 3 * 100
}

// Round2 rounds v to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}
