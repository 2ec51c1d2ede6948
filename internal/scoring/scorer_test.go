// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package scoring

import (
	"math"
	"testing"

	"github.com/tomtom215/propertyrank/internal/models"
)

func TestPriceMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		price  int64
		budget int64
		want   float64
	}{
		{"below budget", 300000, 500000, 100},
		{"equal to budget", 500000, 500000, 100},
		{"one and a half times budget", 750000, 500000, 50},
		{"double budget", 1000000, 500000, 0},
		{"triple budget clamps", 1500000, 500000, 0},
		{"ten percent over", 550000, 500000, 90},
		{"zero budget", 100, 0, 0},
		{"negative budget", 100, -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := PriceMatch(tt.price, tt.budget); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PriceMatch(%d, %d) = %v, want %v", tt.price, tt.budget, got, tt.want)
			}
		})
	}
}

func TestBedroom(t *testing.T) {
	t.Parallel()

	if got := Bedroom(3, 3); got != 100 {
		t.Errorf("Bedroom(3, 3) = %v, want 100", got)
	}
	if got := Bedroom(4, 3); got != 100 {
		t.Errorf("Bedroom(4, 3) = %v, want 100", got)
	}
	if got := Bedroom(2, 3); got != 0 {
		t.Errorf("Bedroom(2, 3) = %v, want 0", got)
	}
}

func TestCommute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		minutes int
		want    float64
	}{
		{0, 100},
		{20, 100},
		{30, 75},
		{40, 50},
		{50, 25},
		{60, 0},
		{70, 0},
		{500, 0},
	}

	for _, tt := range tests {
		if got := Commute(tt.minutes); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Commute(%d) = %v, want %v", tt.minutes, got, tt.want)
		}
	}
}

func TestPropertyAge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		age  int
		want float64
	}{
		{-3, 100},
		{0, 100},
		{5, 100},
		{20, 60},
		{25, 30},
		{30, 0},
		{80, 0},
	}

	for _, tt := range tests {
		if got := PropertyAge(tt.age); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("PropertyAge(%d) = %v, want %v", tt.age, got, tt.want)
		}
	}
}

func TestSchoolRating(t *testing.T) {
	t.Parallel()

	if got := SchoolRating(7); math.Abs(got-70) > 1e-9 {
		t.Errorf("SchoolRating(7) = %v, want 70", got)
	}
	if got := SchoolRating(10); got != 100 {
		t.Errorf("SchoolRating(10) = %v, want 100", got)
	}
	if got := SchoolRating(14); got != 100 {
		t.Errorf("SchoolRating(14) = %v, want clamped 100", got)
	}
}

func TestAmenities(t *testing.T) {
	t.Parallel()

	d := models.Details{HasPool: true, HasGarden: true}
	if got := Round2(Amenities(d)); got != 66.67 {
		t.Errorf("Amenities(pool+garden) = %v, want 66.67", got)
	}
	if got := Amenities(models.Details{}); got != 0 {
		t.Errorf("Amenities(none) = %v, want 0", got)
	}
	if got := Amenities(models.Details{HasPool: true, HasGarage: true, HasGarden: true}); got != 100 {
		t.Errorf("Amenities(all) = %v, want 100", got)
	}
}

func TestScore_KnownProperty(t *testing.T) {
	t.Parallel()

	s := New(0)
	listing := models.Listing{ID: 1, Title: "Maple House", Price: 450000, Location: "Austin"}
	details := models.Details{
		ID:           1,
		Bedrooms:     3,
		Bathrooms:    2,
		SizeSqft:     1800,
		SchoolRating: 8,
		CommuteTime:  30,
		YearBuilt:    2014,
		HasGarage:    true,
	}
	criteria := models.Criteria{UserBudget: 500000, UserMinBedrooms: 3}

	got := s.Score(listing, details, criteria)

	// age 10: 100 - 5/15*40 = 86.666...
	want := models.ScoreVector{
		PriceMatch:   100,
		Bedroom:      100,
		SchoolRating: 80,
		Commute:      75,
		PropertyAge:  86.67,
		Amenities:    33.33,
		Total:        85.25,
	}

	if got != want {
		t.Errorf("Score() = %+v, want %+v", got, want)
	}
}

func TestScore_Deterministic(t *testing.T) {
	t.Parallel()

	s := New(2024)
	listing := models.Listing{ID: 9, Price: 720000}
	details := models.DefaultDetails(9)
	criteria := models.Criteria{UserBudget: 600000, UserMinBedrooms: 2}

	first := s.Score(listing, details, criteria)
	for i := 0; i < 100; i++ {
		if got := s.Score(listing, details, criteria); got != first {
			t.Fatalf("Score() not deterministic: run %d = %+v, first = %+v", i, got, first)
		}
	}
}

func TestScore_BoundsAndWeightedSum(t *testing.T) {
	t.Parallel()

	s := New(0)
	w := s.Weights()

	for price := int64(0); price <= 2500000; price += 125000 {
		for commute := 0; commute <= 90; commute += 15 {
			for year := 1950; year <= 2030; year += 8 {
				for rating := 0; rating <= 10; rating += 5 {
					d := models.Details{
						Bedrooms:     int(price/500000) + 1,
						SchoolRating: rating,
						CommuteTime:  commute,
						YearBuilt:    year,
						HasPool:      year%2 == 0,
						HasGarden:    commute%30 == 0,
					}
					c := models.Criteria{UserBudget: 800000, UserMinBedrooms: 2}
					v := s.Score(models.Listing{Price: price}, d, c)

					for name, sub := range map[string]float64{
						"price": v.PriceMatch, "bedroom": v.Bedroom, "school": v.SchoolRating,
						"commute": v.Commute, "age": v.PropertyAge, "amenities": v.Amenities,
						"total": v.Total,
					} {
						if sub < 0 || sub > 100 {
							t.Fatalf("%s score %v out of [0,100] for price=%d commute=%d year=%d", name, sub, price, commute, year)
						}
					}

					weighted := w.PriceMatch*v.PriceMatch + w.Bedroom*v.Bedroom +
						w.SchoolRating*v.SchoolRating + w.Commute*v.Commute +
						w.PropertyAge*v.PropertyAge + w.Amenities*v.Amenities
					if math.Abs(weighted-v.Total) > 0.01 {
						t.Fatalf("total %v differs from weighted sum %v by more than 0.01", v.Total, weighted)
					}
				}
			}
		}
	}
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	t.Parallel()

	if got := DefaultWeights.Sum(); math.Abs(got-1) > 1e-9 {
		t.Errorf("DefaultWeights.Sum() = %v, want 1", got)
	}
}

func TestNew_ReferenceYear(t *testing.T) {
	t.Parallel()

	if got := New(0).ReferenceYear(); got != DefaultReferenceYear {
		t.Errorf("New(0).ReferenceYear() = %d, want %d", got, DefaultReferenceYear)
	}
	if got := New(2030).ReferenceYear(); got != 2030 {
		t.Errorf("New(2030).ReferenceYear() = %d, want 2030", got)
	}
}

func TestRound2(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want float64
	}{
		{66.6666, 66.67},
		{33.3333, 33.33},
		{100, 100},
		{0, 0},
		// Exact binary ties round away from zero, not to even.
		{0.125, 0.13},
		{-0.125, -0.13},
		{0.375, 0.38},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
