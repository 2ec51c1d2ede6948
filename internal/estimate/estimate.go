// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

// Package estimate predicts a listing price from its attributes with a fixed
// linear model. There is no training step; the coefficients are constants.
package estimate

import (
	"math"
	"strings"

	"github.com/tomtom215/propertyrank/internal/scoring"
)

// Property types with a price multiplier. Any other type is priced at 1.0.
const (
	TypeSingleFamily = "SFH"
	TypeTownhouse    = "Townhouse"
	TypeCondo        = "Condo"
)

// Model coefficients.
const (
	Intercept        = 50000.0
	PerBuildingSqft  = 150.0
	PerLotSqft       = 4.0
	PerBedroom       = 12000.0
	PerBathroom      = 9000.0
	PerSchoolPoint   = 7500.0
	PoolPremium      = 18000.0
	GaragePremium    = 14000.0
	DepreciationYear = 900.0
)

// Input defaults.
const (
	DefaultPropertyType = TypeSingleFamily
	DefaultLotArea      = 5000.0
	DefaultBuildingArea = 1500.0
	DefaultBedrooms     = 3
	DefaultBathrooms    = 2
	DefaultYearBuilt    = 2015
	DefaultHasPool      = false
	DefaultHasGarage    = true
	DefaultSchoolRating = 7
)

var typeMultipliers = map[string]float64{
	TypeSingleFamily: 1.00,
	TypeTownhouse:    0.92,
	TypeCondo:        0.85,
}

// Input describes the property to price. Zero numeric fields and nil flags
// take the package defaults (see WithDefaults).
type Input struct {
	PropertyType string  `json:"property_type" validate:"omitempty,max=64"`
	LotArea      float64 `json:"lot_area" validate:"gte=0,lte=10000000"`
	BuildingArea float64 `json:"building_area" validate:"gte=0,lte=1000000"`
	Bedrooms     int     `json:"bedrooms" validate:"gte=0,lte=100"`
	Bathrooms    int     `json:"bathrooms" validate:"gte=0,lte=100"`
	YearBuilt    int     `json:"year_built" validate:"omitempty,gte=1600,lte=2200"`
	HasPool      *bool   `json:"has_pool,omitempty"`
	HasGarage    *bool   `json:"has_garage,omitempty"`
	SchoolRating int     `json:"school_rating" validate:"gte=0,lte=10"`
}

// DefaultInput returns an input with every field set to its default.
func DefaultInput() Input {
	return Input{}.WithDefaults()
}

// WithDefaults returns a copy of in with zero fields replaced by defaults.
//
//nolint:gocritic // hugeParam: value receiver returns a modified copy
func (in Input) WithDefaults() Input {
	if strings.TrimSpace(in.PropertyType) == "" {
		in.PropertyType = DefaultPropertyType
	}
	if in.LotArea == 0 {
		in.LotArea = DefaultLotArea
	}
	if in.BuildingArea == 0 {
		in.BuildingArea = DefaultBuildingArea
	}
	if in.Bedrooms == 0 {
		in.Bedrooms = DefaultBedrooms
	}
	if in.Bathrooms == 0 {
		in.Bathrooms = DefaultBathrooms
	}
	if in.YearBuilt == 0 {
		in.YearBuilt = DefaultYearBuilt
	}
	if in.HasPool == nil {
		in.HasPool = boolPtr(DefaultHasPool)
	}
	if in.HasGarage == nil {
		in.HasGarage = boolPtr(DefaultHasGarage)
	}
	if in.SchoolRating == 0 {
		in.SchoolRating = DefaultSchoolRating
	}
	return in
}

// Prediction is the result of Predict.
type Prediction struct {
	PredictedPrice float64 `json:"predicted_price"`
	// Input is the input after defaults were applied.
	Input Input `json:"input_data"`
}

// ModelInfo describes the model for introspection endpoints.
type ModelInfo struct {
	Type            string             `json:"type"`
	Version         string             `json:"version"`
	Intercept       float64            `json:"intercept"`
	Coefficients    map[string]float64 `json:"coefficients"`
	TypeMultipliers map[string]float64 `json:"type_multipliers"`
	ReferenceYear   int                `json:"reference_year"`
	Features        []string           `json:"features"`
}

// Sample is a fixed input and its prediction.
type Sample struct {
	Name           string  `json:"name"`
	Input          Input   `json:"input_data"`
	PredictedPrice float64 `json:"predicted_price"`
}

// Estimator prices properties. The zero value is not usable; call New.
type Estimator struct {
	referenceYear int
}

// New creates an estimator that measures age from referenceYear.
// Zero means scoring.DefaultReferenceYear.
func New(referenceYear int) *Estimator {
	if referenceYear == 0 {
		referenceYear = scoring.DefaultReferenceYear
	}
	return &Estimator{referenceYear: referenceYear}
}

// Predict prices in after applying defaults. The result is never negative.
//
//nolint:gocritic // hugeParam: input passed by value for immutability
func (e *Estimator) Predict(in Input) Prediction {
	in = in.WithDefaults()

	price := Intercept +
		PerBuildingSqft*in.BuildingArea +
		PerLotSqft*in.LotArea +
		PerBedroom*float64(in.Bedrooms) +
		PerBathroom*float64(in.Bathrooms) +
		PerSchoolPoint*float64(in.SchoolRating) +
		PoolPremium*flag(*in.HasPool) +
		GaragePremium*flag(*in.HasGarage) -
		DepreciationYear*math.Max(0, float64(e.referenceYear-in.YearBuilt))

	price *= TypeMultiplier(in.PropertyType)

	return Prediction{
		PredictedPrice: math.Max(0, scoring.Round2(price)),
		Input:          in,
	}
}

// TypeMultiplier returns the price multiplier of a property type.
// Matching is case-insensitive.
func TypeMultiplier(propertyType string) float64 {
	for name, m := range typeMultipliers {
		if strings.EqualFold(name, strings.TrimSpace(propertyType)) {
			return m
		}
	}
	return 1.0
}

// Info returns the model description.
func (e *Estimator) Info() ModelInfo {
	multipliers := make(map[string]float64, len(typeMultipliers))
	for k, v := range typeMultipliers {
		multipliers[k] = v
	}
	return ModelInfo{
		Type:      "linear",
		Version:   "1.0",
		Intercept: Intercept,
		Coefficients: map[string]float64{
			"building_area": PerBuildingSqft,
			"lot_area":      PerLotSqft,
			"bedrooms":      PerBedroom,
			"bathrooms":     PerBathroom,
			"school_rating": PerSchoolPoint,
			"has_pool":      PoolPremium,
			"has_garage":    GaragePremium,
			"age_years":     -DepreciationYear,
		},
		TypeMultipliers: multipliers,
		ReferenceYear:   e.referenceYear,
		Features: []string{
			"property_type", "lot_area", "building_area", "bedrooms", "bathrooms",
			"year_built", "has_pool", "has_garage", "school_rating",
		},
	}
}

// Samples returns predictions for four fixed inputs.
func (e *Estimator) Samples() []Sample {
	inputs := []struct {
		name string
		in   Input
	}{
		{"default single family home", DefaultInput()},
		{"starter condo", Input{
			PropertyType: TypeCondo, LotArea: 800, BuildingArea: 850, Bedrooms: 1, Bathrooms: 1,
			YearBuilt: 2005, HasPool: boolPtr(false), HasGarage: boolPtr(false), SchoolRating: 6,
		}},
		{"family townhouse", Input{
			PropertyType: TypeTownhouse, LotArea: 2500, BuildingArea: 1800, Bedrooms: 3, Bathrooms: 3,
			YearBuilt: 2018, HasPool: boolPtr(false), HasGarage: boolPtr(true), SchoolRating: 8,
		}},
		{"large home with pool", Input{
			PropertyType: TypeSingleFamily, LotArea: 12000, BuildingArea: 3200, Bedrooms: 5, Bathrooms: 4,
			YearBuilt: 1998, HasPool: boolPtr(true), HasGarage: boolPtr(true), SchoolRating: 9,
		}},
	}

	out := make([]Sample, 0, len(inputs))
	for _, s := range inputs {
		p := e.Predict(s.in)
		out = append(out, Sample{Name: s.name, Input: p.Input, PredictedPrice: p.PredictedPrice})
	}
	return out
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func boolPtr(b bool) *bool { return &b }
