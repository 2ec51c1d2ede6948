// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package search

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/tomtom215/propertyrank/internal/models"
	"github.com/tomtom215/propertyrank/internal/store"
	"github.com/tomtom215/propertyrank/internal/store/badgerstore"
	"github.com/tomtom215/propertyrank/internal/store/storetest"
)

func newService(t *testing.T) (*Service, store.Store) {
	t.Helper()
	st, err := badgerstore.Open(badgerstore.Config{InMemory: true})
	if err != nil {
		t.Fatalf("badgerstore.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	storetest.Load(t, st)
	return NewService(st), st
}

func matchIDs(ms []Match) []int64 {
	out := make([]int64, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ID)
	}
	return out
}

func TestFind(t *testing.T) {
	svc, _ := newService(t)

	tests := []struct {
		name    string
		req     FindRequest
		wantIDs []int64
		wantMsg string
	}{
		{
			name:    "location and budget",
			req:     FindRequest{Location: "austin", Budget: 700000},
			wantIDs: []int64{1, 3},
			wantMsg: "Found 2 properties matching your criteria",
		},
		{
			name:    "bedroom preference",
			req:     FindRequest{Location: "Austin", Budget: 700000, Preferences: Preferences{Bedrooms: 4}},
			wantIDs: []int64{3},
			wantMsg: "Found 1 properties matching your criteria",
		},
		{
			name:    "blank location matches all within budget",
			req:     FindRequest{Location: " ", Budget: 360000},
			wantIDs: []int64{1, 4},
			wantMsg: "Found 2 properties matching your criteria",
		},
		{
			name:    "listing without details uses defaults",
			req:     FindRequest{Location: "Phoenix", Budget: 300000, Preferences: Preferences{Bedrooms: 2, Bathrooms: 1}},
			wantIDs: []int64{4},
			wantMsg: "Found 1 properties matching your criteria",
		},
		{
			name:    "nothing matches",
			req:     FindRequest{Location: "Seattle", Budget: 100},
			wantIDs: []int64{},
			wantMsg: "No properties found matching your criteria",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Find(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("Find() error = %v", err)
			}
			if ids := matchIDs(got.Properties); !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Errorf("ids = %v, want %v", ids, tt.wantIDs)
			}
			if got.TotalFound != len(tt.wantIDs) || got.Message != tt.wantMsg {
				t.Errorf("TotalFound = %d, Message = %q", got.TotalFound, got.Message)
			}
			if got.Status != models.StatusSuccess || got.SearchCriteria != tt.req {
				t.Errorf("Status = %q, SearchCriteria = %+v", got.Status, got.SearchCriteria)
			}
		})
	}
}

func TestFind_MatchFields(t *testing.T) {
	svc, _ := newService(t)

	got, err := svc.Find(context.Background(), FindRequest{Location: "Phoenix", Budget: 1000000})
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	want := Match{
		ID: 4, Title: "Desert Bungalow", Price: 280000, Location: "Phoenix, AZ",
		Bedrooms: models.DefaultBedrooms, Bathrooms: models.DefaultBathrooms,
		SizeSqft: models.DefaultSizeSqft, Amenities: []string{},
	}
	if len(got.Properties) != 1 || !reflect.DeepEqual(got.Properties[0], want) {
		t.Errorf("Properties = %+v, want [%+v]", got.Properties, want)
	}
}

func TestText(t *testing.T) {
	svc, _ := newService(t)

	tests := []struct {
		q    string
		want []int64
	}{
		{"condo", []int64{2}},
		{"TX", []int64{1, 3}},
		{"", []int64{1, 2, 3, 4}},
		{"castle", []int64{}},
	}

	for _, tt := range tests {
		got, err := svc.Text(context.Background(), tt.q)
		if err != nil {
			t.Fatalf("Text(%q) error = %v", tt.q, err)
		}
		if ids := matchIDs(got); !reflect.DeepEqual(ids, tt.want) {
			t.Errorf("Text(%q) ids = %v, want %v", tt.q, ids, tt.want)
		}
	}
}

func TestSuggestions(t *testing.T) {
	svc, _ := newService(t)

	tests := []struct {
		q    string
		want []string
	}{
		{"au", []string{"Austin, TX"}},
		{"o", []string{"Desert Bungalow", "Harbor View Condo", "Maple Cottage", "Phoenix, AZ", "Pine Ridge Family Home"}},
		{"  ", []string{}},
		{"zzz", []string{}},
	}

	for _, tt := range tests {
		got, err := svc.Suggestions(context.Background(), tt.q)
		if err != nil {
			t.Fatalf("Suggestions(%q) error = %v", tt.q, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Suggestions(%q) = %v, want %v", tt.q, got, tt.want)
		}
	}
}

func TestSuggestions_Capped(t *testing.T) {
	svc, st := newService(t)

	var extra []models.Listing
	for i := int64(0); i < 15; i++ {
		extra = append(extra, models.Listing{ID: 100 + i, Title: fmt.Sprintf("Lakeside %02d", i), Location: "Lake Town"})
	}
	if err := st.UpsertListings(context.Background(), extra); err != nil {
		t.Fatal(err)
	}

	got, err := svc.Suggestions(context.Background(), "lake")
	if err != nil {
		t.Fatalf("Suggestions() error = %v", err)
	}
	if len(got) != MaxSuggestions {
		t.Errorf("got %d suggestions, want %d", len(got), MaxSuggestions)
	}
	if got[0] != "Lake Town" {
		t.Errorf("first suggestion = %q, want Lake Town", got[0])
	}
}

type failingSearcher struct{}

func (failingSearcher) Search(context.Context, store.Filter) ([]models.Property, error) {
	return nil, store.ErrUnavailable
}

func (failingSearcher) Distinct(context.Context, string) ([]string, error) {
	return nil, store.ErrUnavailable
}

func TestService_PropagatesStoreErrors(t *testing.T) {
	svc := NewService(failingSearcher{})
	ctx := context.Background()

	if _, err := svc.Find(ctx, FindRequest{Budget: 1}); !errors.Is(err, store.ErrUnavailable) {
		t.Errorf("Find() error = %v", err)
	}
	if _, err := svc.Text(ctx, "a"); !errors.Is(err, store.ErrUnavailable) {
		t.Errorf("Text() error = %v", err)
	}
	if _, err := svc.Suggestions(ctx, "a"); !errors.Is(err, store.ErrUnavailable) {
		t.Errorf("Suggestions() error = %v", err)
	}
}
