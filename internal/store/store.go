// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package store

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/tomtom215/propertyrank/internal/models"
)

// Collection names. Both backends use them as key prefixes or table names.
const (
	CollectionListings = "properties_list"
	CollectionDetails  = "properties_info"
	CollectionImages   = "properties_images"
)

// Sentinel errors returned by every Store implementation.
var (
	// ErrNotFound is returned when a listing id does not exist.
	ErrNotFound = errors.New("property not found")

	// ErrUnavailable is returned when the store cannot be reached or the
	// circuit breaker rejected the call.
	ErrUnavailable = errors.New("listing store unavailable")

	// ErrInvalidDocument is returned by normalization for documents without
	// an integer id or with a field of the wrong shape.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store closed")

	// ErrUnsupportedField is returned by Distinct for fields other than
	// location and title.
	ErrUnsupportedField = errors.New("unsupported distinct field")
)

// Distinct fields.
const (
	FieldLocation = "location"
	FieldTitle    = "title"
)

// Store is the listing store: three related collections keyed by listing id.
//
// Read methods return listings in ascending id order. GetDetails returns
// (nil, nil) when the listing has no detail record.
type Store interface {
	AllListings(ctx context.Context) ([]models.Listing, error)
	GetListing(ctx context.Context, id int64) (models.Listing, error)
	GetDetails(ctx context.Context, id int64) (*models.Details, error)
	GetImages(ctx context.Context, id int64) ([]models.Image, error)
	AllProperties(ctx context.Context) ([]models.Property, error)
	Search(ctx context.Context, f Filter) ([]models.Property, error)
	Distinct(ctx context.Context, field string) ([]string, error)
	Counts(ctx context.Context) (Counts, error)
	Ping(ctx context.Context) error

	UpsertListings(ctx context.Context, listings []models.Listing) error
	UpsertDetails(ctx context.Context, details []models.Details) error
	// UpsertImages replaces the image set of every listing id present in images.
	UpsertImages(ctx context.Context, images []models.Image) error

	// Driver names the backend, e.g. "badger" or "sqlite3".
	Driver() string
	Close() error
}

// Counts holds the document count of each collection.
type Counts struct {
	Listings int `json:"properties_list"`
	Details  int `json:"properties_info"`
	Images   int `json:"properties_images"`
}

// Filter selects properties in Search. Zero fields do not constrain.
//
// Bedroom and bathroom minimums apply to the detail record, or to
// models.DefaultDetails when the listing has none.
type Filter struct {
	// Location matches listings whose location contains it, case-insensitively.
	Location string
	// Query matches listings whose title or location contains it, case-insensitively.
	Query        string
	MaxPrice     int64
	MinBedrooms  int
	MinBathrooms int
	// Limit caps the result size. Zero means unlimited.
	Limit int
}

// Match reports whether p satisfies f.
func (f Filter) Match(p models.Property) bool {
	l := p.Listing
	if strings.TrimSpace(f.Location) != "" && !containsFold(l.Location, f.Location) {
		return false
	}
	if strings.TrimSpace(f.Query) != "" && !containsFold(l.Title, f.Query) && !containsFold(l.Location, f.Query) {
		return false
	}
	if f.MaxPrice > 0 && l.Price > f.MaxPrice {
		return false
	}
	if f.MinBedrooms > 0 || f.MinBathrooms > 0 {
		d := p.DetailsOrDefault()
		if d.Bedrooms < f.MinBedrooms || d.Bathrooms < f.MinBathrooms {
			return false
		}
	}
	return true
}

// Apply filters properties in order and truncates to f.Limit.
func (f Filter) Apply(properties []models.Property) []models.Property {
	out := make([]models.Property, 0, len(properties))
	for _, p := range properties {
		if !f.Match(p) {
			continue
		}
		out = append(out, p)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}

// DistinctValues returns the sorted unique non-empty values of field across listings.
func DistinctValues(listings []models.Listing, field string) ([]string, error) {
	var get func(models.Listing) string
	switch field {
	case FieldLocation:
		get = func(l models.Listing) string { return l.Location }
	case FieldTitle:
		get = func(l models.Listing) string { return l.Title }
	default:
		return nil, ErrUnsupportedField
	}

	seen := make(map[string]struct{}, len(listings))
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		v := get(l)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

// Join pairs each listing with its detail record, preserving listing order.
func Join(listings []models.Listing, details map[int64]models.Details) []models.Property {
	out := make([]models.Property, 0, len(listings))
	for _, l := range listings {
		p := models.Property{Listing: l}
		if d, ok := details[l.ID]; ok {
			d := d
			p.Details = &d
		}
		out = append(out, p)
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
