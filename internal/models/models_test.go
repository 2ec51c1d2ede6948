// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package models

import (
	"reflect"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func intPtr(v int) *int { return &v }

func TestDefaultDetails(t *testing.T) {
	d := DefaultDetails(7)
	want := Details{
		ID:           7,
		Bedrooms:     2,
		Bathrooms:    1,
		SizeSqft:     1200,
		SchoolRating: 5,
		CommuteTime:  30,
		YearBuilt:    2010,
		Amenities:    []string{},
	}
	if !reflect.DeepEqual(d, want) {
		t.Errorf("DefaultDetails(7) = %+v, want %+v", d, want)
	}
}

func TestAmenityFlags(t *testing.T) {
	tests := []struct {
		name string
		d    Details
		want int
	}{
		{"none", Details{}, 0},
		{"pool", Details{HasPool: true}, 1},
		{"garage and garden", Details{HasGarage: true, HasGarden: true}, 2},
		{"all", Details{HasPool: true, HasGarage: true, HasGarden: true}, 3},
		{"amenity list ignored", Details{Amenities: []string{"gym", "sauna"}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.AmenityFlags(); got != tt.want {
				t.Errorf("AmenityFlags() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDetailsOrDefault(t *testing.T) {
	absent := Property{Listing: Listing{ID: 4}}
	if got := absent.DetailsOrDefault(); !reflect.DeepEqual(got, DefaultDetails(4)) {
		t.Errorf("DetailsOrDefault() without details = %+v", got)
	}

	d := &Details{ID: 1, Bedrooms: 5}
	present := Property{Listing: Listing{ID: 1}, Details: d}
	if got := present.DetailsOrDefault(); got.Bedrooms != 5 {
		t.Errorf("DetailsOrDefault().Bedrooms = %d, want 5", got.Bedrooms)
	}
}

func TestCriteriaKey_IgnoresHardFilters(t *testing.T) {
	base := Criteria{UserBudget: 500000, UserMinBedrooms: 3}
	filtered := base
	filtered.UserMaxCommute = intPtr(20)
	filtered.UserMinSchoolRating = intPtr(8)
	filtered.PreferredAmenities = []string{"pool"}

	if base.Key() != filtered.Key() {
		t.Errorf("Key() differs by hard filters: %+v vs %+v", base.Key(), filtered.Key())
	}

	other := base
	other.UserBudget = 500001
	if base.Key() == other.Key() {
		t.Error("Key() should differ when budget differs")
	}
}

func TestCombine(t *testing.T) {
	l := Listing{ID: 1, Title: "Maple Cottage", Price: 350000, Location: "Austin, TX"}

	t.Run("with details", func(t *testing.T) {
		d := &Details{ID: 1, Bedrooms: 3, Bathrooms: 2, HasGarage: true, Amenities: []string{"fireplace"}}
		imgs := []Image{{ID: 1, ImageURL: "https://img.example.com/1.jpg"}}

		c := Combine(l, d, imgs)
		if !c.HasDetails || c.Bedrooms != 3 || !c.HasGarage {
			t.Errorf("Combine() = %+v", c)
		}
		if c.Title != l.Title || c.Price != l.Price {
			t.Errorf("listing fields not copied: %+v", c)
		}
		if !reflect.DeepEqual(c.Amenities, []string{"fireplace"}) || len(c.Images) != 1 {
			t.Errorf("Amenities = %v, Images = %v", c.Amenities, c.Images)
		}
	})

	t.Run("without details", func(t *testing.T) {
		c := Combine(l, nil, nil)
		if c.HasDetails {
			t.Error("HasDetails = true, want false")
		}
		if c.Bedrooms != 0 {
			t.Errorf("Bedrooms = %d, want 0", c.Bedrooms)
		}
		if c.Images == nil || c.Amenities == nil {
			t.Error("Images and Amenities should be empty, not nil")
		}
	})
}

func TestWireFieldNames(t *testing.T) {
	data, err := json.Marshal(Criteria{UserBudget: 1, UserMinSchoolRating: intPtr(7)})
	if err != nil {
		t.Fatalf("Marshal(Criteria) error = %v", err)
	}
	s := string(data)
	for _, field := range []string{`"user_budget":1`, `"user_min_bedrooms":0`, `"user_min_school_rating":7`} {
		if !strings.Contains(s, field) {
			t.Errorf("Criteria JSON %s missing %s", s, field)
		}
	}
	if strings.Contains(s, "user_max_commute") {
		t.Errorf("Criteria JSON %s should omit unset user_max_commute", s)
	}

	data, err = json.Marshal(ScoreVector{PriceMatch: 90.5, Total: 61.25})
	if err != nil {
		t.Fatalf("Marshal(ScoreVector) error = %v", err)
	}
	if !strings.Contains(string(data), `"price_match_score":90.5`) || !strings.Contains(string(data), `"total_score":61.25`) {
		t.Errorf("ScoreVector JSON = %s", data)
	}
}
