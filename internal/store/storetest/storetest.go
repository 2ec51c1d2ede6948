// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

// Package storetest provides fixtures and a conformance suite shared by the
// store.Store implementations.
package storetest

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/tomtom215/propertyrank/internal/models"
	"github.com/tomtom215/propertyrank/internal/store"
)

// Listings is the fixture listing set. Listing 4 has no detail record.
var Listings = []models.Listing{
	{ID: 1, Title: "Maple Cottage", Price: 350000, Location: "Austin, TX"},
	{ID: 2, Title: "Harbor View Condo", Price: 520000, Location: "Seattle, WA"},
	{ID: 3, Title: "Pine Ridge Family Home", Price: 610000, Location: "Austin, TX"},
	{ID: 4, Title: "Desert Bungalow", Price: 280000, Location: "Phoenix, AZ"},
}

// Details is the fixture detail set.
var Details = []models.Details{
	{ID: 1, Bedrooms: 3, Bathrooms: 2, SizeSqft: 1600, SchoolRating: 8, CommuteTime: 25, YearBuilt: 2012,
		HasGarage: true, Amenities: []string{"fireplace"}},
	{ID: 2, Bedrooms: 2, Bathrooms: 2, SizeSqft: 1100, SchoolRating: 6, CommuteTime: 15, YearBuilt: 2019,
		HasPool: true, Amenities: []string{"gym", "doorman"}},
	{ID: 3, Bedrooms: 4, Bathrooms: 3, SizeSqft: 2400, SchoolRating: 9, CommuteTime: 40, YearBuilt: 2005,
		HasGarage: true, HasGarden: true, Amenities: []string{}},
}

// Images is the fixture image set.
var Images = []models.Image{
	{ID: 1, ImageURL: "https://img.example.com/1/front.jpg", Caption: "Front"},
	{ID: 1, ImageURL: "https://img.example.com/1/kitchen.jpg"},
	{ID: 3, ImageURL: "https://img.example.com/3/yard.jpg", Caption: "Yard"},
}

// Load writes the fixtures into st.
func Load(t *testing.T, st store.Store) {
	t.Helper()
	ctx := context.Background()
	if err := st.UpsertListings(ctx, Listings); err != nil {
		t.Fatalf("UpsertListings() error = %v", err)
	}
	if err := st.UpsertDetails(ctx, Details); err != nil {
		t.Fatalf("UpsertDetails() error = %v", err)
	}
	if err := st.UpsertImages(ctx, Images); err != nil {
		t.Fatalf("UpsertImages() error = %v", err)
	}
}

// Run exercises every store.Store operation against a fresh store from open.
func Run(t *testing.T, open func(t *testing.T) store.Store) {
	t.Helper()

	t.Run("AllListings", func(t *testing.T) {
		st := open(t)
		Load(t, st)

		got, err := st.AllListings(context.Background())
		if err != nil {
			t.Fatalf("AllListings() error = %v", err)
		}
		if !reflect.DeepEqual(got, Listings) {
			t.Errorf("AllListings() = %+v, want %+v", got, Listings)
		}
	})

	t.Run("EmptyStore", func(t *testing.T) {
		st := open(t)
		got, err := st.AllProperties(context.Background())
		if err != nil {
			t.Fatalf("AllProperties() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("AllProperties() on empty store = %d items, want 0", len(got))
		}
	})

	t.Run("GetListing", func(t *testing.T) {
		st := open(t)
		Load(t, st)

		got, err := st.GetListing(context.Background(), 2)
		if err != nil {
			t.Fatalf("GetListing(2) error = %v", err)
		}
		if got != Listings[1] {
			t.Errorf("GetListing(2) = %+v, want %+v", got, Listings[1])
		}

		_, err = st.GetListing(context.Background(), 99)
		if !errors.Is(err, store.ErrNotFound) {
			t.Errorf("GetListing(99) error = %v, want ErrNotFound", err)
		}
	})

	t.Run("GetDetails", func(t *testing.T) {
		st := open(t)
		Load(t, st)

		got, err := st.GetDetails(context.Background(), 1)
		if err != nil {
			t.Fatalf("GetDetails(1) error = %v", err)
		}
		if got == nil || !reflect.DeepEqual(*got, Details[0]) {
			t.Errorf("GetDetails(1) = %+v, want %+v", got, Details[0])
		}

		absent, err := st.GetDetails(context.Background(), 4)
		if err != nil {
			t.Fatalf("GetDetails(4) error = %v", err)
		}
		if absent != nil {
			t.Errorf("GetDetails(4) = %+v, want nil", absent)
		}
	})

	t.Run("GetImages", func(t *testing.T) {
		st := open(t)
		Load(t, st)

		got, err := st.GetImages(context.Background(), 1)
		if err != nil {
			t.Fatalf("GetImages(1) error = %v", err)
		}
		if !reflect.DeepEqual(got, Images[:2]) {
			t.Errorf("GetImages(1) = %+v, want %+v", got, Images[:2])
		}

		none, err := st.GetImages(context.Background(), 2)
		if err != nil {
			t.Fatalf("GetImages(2) error = %v", err)
		}
		if none == nil || len(none) != 0 {
			t.Errorf("GetImages(2) = %#v, want empty non-nil slice", none)
		}
	})

	t.Run("UpsertImagesReplaces", func(t *testing.T) {
		st := open(t)
		Load(t, st)

		replacement := []models.Image{{ID: 1, ImageURL: "https://img.example.com/1/new.jpg"}}
		if err := st.UpsertImages(context.Background(), replacement); err != nil {
			t.Fatalf("UpsertImages() error = %v", err)
		}
		got, err := st.GetImages(context.Background(), 1)
		if err != nil {
			t.Fatalf("GetImages(1) error = %v", err)
		}
		if !reflect.DeepEqual(got, replacement) {
			t.Errorf("GetImages(1) = %+v, want %+v", got, replacement)
		}
	})

	t.Run("AllProperties", func(t *testing.T) {
		st := open(t)
		Load(t, st)

		got, err := st.AllProperties(context.Background())
		if err != nil {
			t.Fatalf("AllProperties() error = %v", err)
		}
		if len(got) != len(Listings) {
			t.Fatalf("AllProperties() returned %d, want %d", len(got), len(Listings))
		}
		for i, p := range got {
			if p.Listing != Listings[i] {
				t.Errorf("property %d listing = %+v, want %+v", i, p.Listing, Listings[i])
			}
		}
		if got[3].Details != nil {
			t.Errorf("listing 4 details = %+v, want nil", got[3].Details)
		}
		if got[2].Details == nil || got[2].Details.Bedrooms != 4 {
			t.Errorf("listing 3 details = %+v, want bedrooms 4", got[2].Details)
		}
	})

	t.Run("Search", func(t *testing.T) {
		st := open(t)
		Load(t, st)

		tests := []struct {
			name    string
			filter  store.Filter
			wantIDs []int64
		}{
			{"no filter", store.Filter{}, []int64{1, 2, 3, 4}},
			{"location case-insensitive", store.Filter{Location: "austin"}, []int64{1, 3}},
			{"query title", store.Filter{Query: "condo"}, []int64{2}},
			{"query location", store.Filter{Query: "phoenix"}, []int64{4}},
			{"max price", store.Filter{MaxPrice: 400000}, []int64{1, 4}},
			{"min bedrooms uses defaults", store.Filter{MinBedrooms: 2}, []int64{1, 2, 3, 4}},
			{"min bedrooms 3", store.Filter{MinBedrooms: 3}, []int64{1, 3}},
			{"min bathrooms", store.Filter{MinBathrooms: 3}, []int64{3}},
			{"combined", store.Filter{Location: "Austin", MaxPrice: 600000, MinBedrooms: 3}, []int64{1}},
			{"limit", store.Filter{Limit: 2}, []int64{1, 2}},
			{"like wildcard is literal", store.Filter{Location: "%"}, []int64{}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := st.Search(context.Background(), tt.filter)
				if err != nil {
					t.Fatalf("Search() error = %v", err)
				}
				ids := make([]int64, 0, len(got))
				for _, p := range got {
					ids = append(ids, p.Listing.ID)
				}
				if !reflect.DeepEqual(ids, tt.wantIDs) {
					t.Errorf("Search(%+v) ids = %v, want %v", tt.filter, ids, tt.wantIDs)
				}
			})
		}
	})

	t.Run("Distinct", func(t *testing.T) {
		st := open(t)
		Load(t, st)

		got, err := st.Distinct(context.Background(), store.FieldLocation)
		if err != nil {
			t.Fatalf("Distinct(location) error = %v", err)
		}
		want := []string{"Austin, TX", "Phoenix, AZ", "Seattle, WA"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Distinct(location) = %v, want %v", got, want)
		}

		if _, err := st.Distinct(context.Background(), "price"); !errors.Is(err, store.ErrUnsupportedField) {
			t.Errorf("Distinct(price) error = %v, want ErrUnsupportedField", err)
		}
	})

	t.Run("Counts", func(t *testing.T) {
		st := open(t)
		Load(t, st)

		got, err := st.Counts(context.Background())
		if err != nil {
			t.Fatalf("Counts() error = %v", err)
		}
		want := store.Counts{Listings: 4, Details: 3, Images: 3}
		if got != want {
			t.Errorf("Counts() = %+v, want %+v", got, want)
		}
	})

	t.Run("UpsertOverwrites", func(t *testing.T) {
		st := open(t)
		Load(t, st)

		updated := Listings[0]
		updated.Price = 399000
		if err := st.UpsertListings(context.Background(), []models.Listing{updated}); err != nil {
			t.Fatalf("UpsertListings() error = %v", err)
		}
		got, err := st.GetListing(context.Background(), 1)
		if err != nil {
			t.Fatalf("GetListing(1) error = %v", err)
		}
		if got.Price != 399000 {
			t.Errorf("price after upsert = %d, want 399000", got.Price)
		}
		c, _ := st.Counts(context.Background())
		if c.Listings != 4 {
			t.Errorf("listing count after upsert = %d, want 4", c.Listings)
		}
	})

	t.Run("Ping", func(t *testing.T) {
		st := open(t)
		if err := st.Ping(context.Background()); err != nil {
			t.Errorf("Ping() error = %v", err)
		}
	})
}
