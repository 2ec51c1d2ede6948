// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package store

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/propertyrank/internal/models"
)

func TestNormalizeListing(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		want    models.Listing
		wantErr bool
	}{
		{
			name: "canonical",
			doc:  Document{"id": float64(7), "title": "Loft", "price": float64(420000), "location": "Denver, CO"},
			want: models.Listing{ID: 7, Title: "Loft", Price: 420000, Location: "Denver, CO"},
		},
		{
			name: "json numbers",
			doc:  Document{"id": json.Number("8"), "title": "Flat", "price": json.Number("199999")},
			want: models.Listing{ID: 8, Title: "Flat", Price: 199999},
		},
		{
			name: "string price",
			doc:  Document{"id": "9", "price": "250000"},
			want: models.Listing{ID: 9, Price: 250000},
		},
		{
			name:    "missing id",
			doc:     Document{"title": "No id"},
			wantErr: true,
		},
		{
			name:    "fractional id",
			doc:     Document{"id": float64(1.5)},
			wantErr: true,
		},
		{
			name:    "negative id",
			doc:     Document{"id": float64(-7)},
			wantErr: true,
		},
		{
			name:    "zero id",
			doc:     Document{"id": "0"},
			wantErr: true,
		},
		{
			name:    "id beyond int64",
			doc:     Document{"id": float64(1e20)},
			wantErr: true,
		},
		{
			name:    "negative price",
			doc:     Document{"id": float64(1), "price": float64(-5)},
			wantErr: true,
		},
		{
			name:    "price beyond int64",
			doc:     Document{"id": float64(1), "price": json.Number("1e20")},
			wantErr: true,
		},
		{
			name:    "non-numeric price",
			doc:     Document{"id": float64(1), "price": "call us"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeListing(tt.doc)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDocument) {
					t.Fatalf("NormalizeListing() error = %v, want ErrInvalidDocument", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeListing() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("NormalizeListing() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalizeDetails(t *testing.T) {
	t.Run("canonical keys", func(t *testing.T) {
		got, err := NormalizeDetails(Document{
			"id": float64(1), "bedrooms": float64(4), "bathrooms": float64(3), "size_sqft": float64(2200),
			"school_rating": float64(9), "commute_time": float64(20), "year_built": float64(2018),
			"has_pool": true, "has_garage": false, "has_garden": true,
			"amenities": []any{"gym", "sauna"},
		})
		if err != nil {
			t.Fatalf("NormalizeDetails() error = %v", err)
		}
		want := models.Details{
			ID: 1, Bedrooms: 4, Bathrooms: 3, SizeSqft: 2200, SchoolRating: 9, CommuteTime: 20,
			YearBuilt: 2018, HasPool: true, HasGarden: true, Amenities: []string{"gym", "sauna"},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("NormalizeDetails() = %+v, want %+v", got, want)
		}
	})

	t.Run("variant keys", func(t *testing.T) {
		got, err := NormalizeDetails(Document{
			"id": float64(2), "beds": float64(5), "baths": float64(2), "area": float64(3000),
			"schoolScore": float64(7), "commute_minutes": float64(45), "built_year": float64(1999),
			"pool": "yes", "garage_available": float64(1), "garden": "no",
			"features": "balcony, fireplace ,",
		})
		if err != nil {
			t.Fatalf("NormalizeDetails() error = %v", err)
		}
		want := models.Details{
			ID: 2, Bedrooms: 5, Bathrooms: 2, SizeSqft: 3000, SchoolRating: 7, CommuteTime: 45,
			YearBuilt: 1999, HasPool: true, HasGarage: true, Amenities: []string{"balcony", "fireplace"},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("NormalizeDetails() = %+v, want %+v", got, want)
		}
	})

	t.Run("canonical key wins over variant", func(t *testing.T) {
		got, err := NormalizeDetails(Document{"id": float64(3), "bedrooms": float64(2), "beds": float64(6)})
		if err != nil {
			t.Fatalf("NormalizeDetails() error = %v", err)
		}
		if got.Bedrooms != 2 {
			t.Errorf("Bedrooms = %d, want 2", got.Bedrooms)
		}
	})

	t.Run("missing and null fields take defaults", func(t *testing.T) {
		got, err := NormalizeDetails(Document{"id": float64(4), "bedrooms": nil})
		if err != nil {
			t.Fatalf("NormalizeDetails() error = %v", err)
		}
		if want := models.DefaultDetails(4); !reflect.DeepEqual(got, want) {
			t.Errorf("NormalizeDetails() = %+v, want %+v", got, want)
		}
	})

	t.Run("non-numeric field rejected", func(t *testing.T) {
		_, err := NormalizeDetails(Document{"id": float64(5), "bedrooms": "lots"})
		if !errors.Is(err, ErrInvalidDocument) {
			t.Errorf("NormalizeDetails() error = %v, want ErrInvalidDocument", err)
		}
	})
}

func TestNormalizeDetails_OutOfRange(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
	}{
		{"id beyond int64", Document{"id": float64(1e20)}},
		{"negative id", Document{"id": float64(-7)}},
		{"bedrooms beyond int64", Document{"id": float64(1), "bedrooms": float64(1e20)}},
		{"bedrooms beyond int32", Document{"id": float64(1), "beds": float64(1 << 40)}},
		{"negative bathrooms", Document{"id": float64(1), "bathrooms": float64(-1)}},
		{"negative size", Document{"id": float64(1), "area": "-100"}},
		{"negative commute", Document{"id": float64(1), "commute_time": float64(-30)}},
		{"school rating above 10", Document{"id": float64(1), "school_rating": float64(15)}},
		{"school rating below 0", Document{"id": float64(1), "schoolScore": json.Number("-1")}},
		{"infinite size", Document{"id": float64(1), "size_sqft": math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NormalizeDetails(tt.doc); !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("NormalizeDetails(%v) error = %v, want ErrInvalidDocument", tt.doc, err)
			}
		})
	}

	t.Run("bounds are inclusive", func(t *testing.T) {
		got, err := NormalizeDetails(Document{"id": float64(2), "bedrooms": float64(0), "school_rating": float64(10), "commute_time": float64(0)})
		if err != nil {
			t.Fatalf("NormalizeDetails() error = %v", err)
		}
		if got.Bedrooms != 0 || got.SchoolRating != 10 || got.CommuteTime != 0 {
			t.Errorf("NormalizeDetails() = %+v, want bedrooms 0, school rating 10, commute 0", got)
		}
	})
}

func TestNormalizeImage(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		want    models.Image
		wantErr bool
	}{
		{"image_url", Document{"id": float64(1), "image_url": "https://x/1.jpg", "caption": "Front"},
			models.Image{ID: 1, ImageURL: "https://x/1.jpg", Caption: "Front"}, false},
		{"url variant", Document{"id": float64(2), "url": "https://x/2.jpg"},
			models.Image{ID: 2, ImageURL: "https://x/2.jpg"}, false},
		{"image variant", Document{"id": float64(3), "image": "https://x/3.jpg"},
			models.Image{ID: 3, ImageURL: "https://x/3.jpg"}, false},
		{"empty url", Document{"id": float64(4), "image_url": ""}, models.Image{}, true},
		{"no url", Document{"id": float64(5)}, models.Image{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeImage(tt.doc)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeImage() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeImage() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAsBool(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{true, true},
		{false, false},
		{"true", true},
		{"Yes", true},
		{"y", true},
		{"1", true},
		{"no", false},
		{"", false},
		{float64(1), true},
		{float64(0), false},
		{json.Number("2"), true},
	}

	for _, tt := range tests {
		if got := asBool(tt.in); got != tt.want {
			t.Errorf("asBool(%#v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAsInt64(t *testing.T) {
	tests := []struct {
		in     any
		want   int64
		wantOK bool
	}{
		{float64(3), 3, true},
		{float64(2.6), 3, true},
		{" 42 ", 42, true},
		{"2.4", 2, true},
		{json.Number("17"), 17, true},
		{"abc", 0, false},
		{true, 0, false},
		{float64(1e20), 0, false},
		{float64(-1e20), 0, false},
		{float64(1 << 63), 0, false},
		{float64(-(1 << 63)), math.MinInt64, true},
		{math.NaN(), 0, false},
		{json.Number("9223372036854775807"), math.MaxInt64, true},
	}

	for _, tt := range tests {
		got, ok := asInt64(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("asInt64(%#v) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
