// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package estimate

import (
	"testing"
)

func TestPredict(t *testing.T) {
	t.Parallel()

	e := New(0)

	tests := []struct {
		name string
		in   Input
		want float64
	}{
		{"defaults", Input{}, 407400},
		{"explicit defaults", DefaultInput(), 407400},
		{"starter condo", Input{
			PropertyType: TypeCondo, LotArea: 800, BuildingArea: 850, Bedrooms: 1, Bathrooms: 1,
			YearBuilt: 2005, HasPool: boolPtr(false), HasGarage: boolPtr(false), SchoolRating: 6,
		}, 195160},
		{"pool adds premium", Input{HasPool: boolPtr(true)}, 407400 + PoolPremium},
		{"no garage", Input{HasGarage: boolPtr(false)}, 407400 - GaragePremium},
		{"new build has no depreciation", Input{YearBuilt: 2030}, 407400 + 8100},
		{"townhouse multiplier", Input{PropertyType: "townhouse"}, 374808},
		{"unknown type priced at 1.0", Input{PropertyType: "Houseboat"}, 407400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := e.Predict(tt.in)
			if got.PredictedPrice != tt.want {
				t.Errorf("Predict() = %v, want %v", got.PredictedPrice, tt.want)
			}
		})
	}
}

func TestPredict_NeverNegative(t *testing.T) {
	t.Parallel()

	e := New(3000)
	got := e.Predict(Input{YearBuilt: 1600, HasGarage: boolPtr(false)})
	if got.PredictedPrice != 0 {
		t.Errorf("Predict() = %v, want 0", got.PredictedPrice)
	}
}

func TestPredict_EchoesResolvedInput(t *testing.T) {
	t.Parallel()

	got := New(0).Predict(Input{Bedrooms: 4})
	in := got.Input
	if in.Bedrooms != 4 || in.Bathrooms != DefaultBathrooms || in.PropertyType != DefaultPropertyType {
		t.Errorf("Input = %+v", in)
	}
	if in.HasGarage == nil || !*in.HasGarage || in.HasPool == nil || *in.HasPool {
		t.Errorf("flags not defaulted: pool=%v garage=%v", in.HasPool, in.HasGarage)
	}
}

func TestWithDefaults_DoesNotMutate(t *testing.T) {
	t.Parallel()

	in := Input{Bedrooms: 2}
	_ = in.WithDefaults()
	if in.PropertyType != "" || in.HasGarage != nil {
		t.Errorf("WithDefaults mutated receiver: %+v", in)
	}
}

func TestTypeMultiplier(t *testing.T) {
	t.Parallel()

	tests := map[string]float64{
		"SFH":       1.0,
		"condo":     0.85,
		" Condo ":   0.85,
		"Townhouse": 0.92,
		"":          1.0,
		"Villa":     1.0,
	}
	for typ, want := range tests {
		if got := TypeMultiplier(typ); got != want {
			t.Errorf("TypeMultiplier(%q) = %v, want %v", typ, got, want)
		}
	}
}

func TestInfo(t *testing.T) {
	t.Parallel()

	info := New(2030).Info()
	if info.Type != "linear" {
		t.Errorf("Type = %q, want linear", info.Type)
	}
	if info.ReferenceYear != 2030 {
		t.Errorf("ReferenceYear = %d, want 2030", info.ReferenceYear)
	}
	if info.Intercept != Intercept || info.Coefficients["age_years"] != -DepreciationYear {
		t.Errorf("Info() = %+v", info)
	}
	if len(info.TypeMultipliers) != 3 {
		t.Errorf("TypeMultipliers = %v", info.TypeMultipliers)
	}

	info.TypeMultipliers[TypeCondo] = 5
	if TypeMultiplier(TypeCondo) != 0.85 {
		t.Error("Info() exposed the internal multiplier table")
	}
}

func TestSamples(t *testing.T) {
	t.Parallel()

	samples := New(0).Samples()
	if len(samples) != 4 {
		t.Fatalf("got %d samples, want 4", len(samples))
	}
	if samples[0].PredictedPrice != 407400 {
		t.Errorf("default sample = %v, want 407400", samples[0].PredictedPrice)
	}
	if samples[1].PredictedPrice != 195160 {
		t.Errorf("condo sample = %v, want 195160", samples[1].PredictedPrice)
	}
	for _, s := range samples {
		if s.Name == "" || s.PredictedPrice <= 0 {
			t.Errorf("sample %+v", s)
		}
	}
}
