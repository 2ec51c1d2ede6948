// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

// Package compare builds side-by-side comparisons of two listings.
package compare

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/tomtom215/propertyrank/internal/models"
	"github.com/tomtom215/propertyrank/internal/store"
)

// Display defaults for listings with an empty title or location.
const (
	UnknownTitle    = "Unknown Property"
	UnknownLocation = "Unknown Location"
)

// Equal is the note value when both properties tie on a feature.
const Equal = "equal"

// Features lists the attributes a comparison reports.
var Features = []string{
	"price",
	"bedrooms",
	"bathrooms",
	"size_sqft",
	"amenities",
	"school_rating",
	"commute_time",
	"garage_availability",
	"garden_availability",
	"pool_availability",
	"year_built",
}

// Reader is the part of store.Store a comparison needs.
type Reader interface {
	GetListing(ctx context.Context, id int64) (models.Listing, error)
	GetDetails(ctx context.Context, id int64) (*models.Details, error)
	Counts(ctx context.Context) (store.Counts, error)
}

// Side is one property of a comparison. Attributes of a listing without a
// detail record are zero.
type Side struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Location     string   `json:"location"`
	Price        int64    `json:"price"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	SizeSqft     int      `json:"size_sqft"`
	Amenities    []string `json:"amenities"`
	SchoolRating int      `json:"school_rating"`
	CommuteTime  int      `json:"commute_time"`
	HasGarage    bool     `json:"has_garage"`
	HasGarden    bool     `json:"has_garden"`
	HasPool      bool     `json:"has_pool"`
	YearBuilt    int      `json:"year_built"`
}

// Notes names the winner of each headline feature: a listing id as a
// string, or Equal.
type Notes struct {
	LargerProperty string `json:"larger_property"`
	MoreExpensive  string `json:"more_expensive"`
	MoreBedrooms   string `json:"more_bedrooms"`
	MoreBathrooms  string `json:"more_bathrooms"`
}

// Summary holds property2 minus property1 for each numeric feature.
type Summary struct {
	PriceDifference     int64 `json:"price_difference"`
	BedroomsDifference  int   `json:"bedrooms_difference"`
	BathroomsDifference int   `json:"bathrooms_difference"`
	SizeDifference      int   `json:"size_difference"`
	Notes               Notes `json:"comparison_notes"`
}

// Result is a complete comparison.
type Result struct {
	Status    string  `json:"status"`
	Property1 Side    `json:"property1"`
	Property2 Side    `json:"property2"`
	Summary   Summary `json:"comparison_summary"`
}

// Stats describes what comparisons cover.
type Stats struct {
	TotalPropertiesAvailable int      `json:"total_properties_available"`
	ComparisonFeatures       []string `json:"comparison_features"`
}

// NotFoundError names the listing id a comparison could not load.
// It matches store.ErrNotFound with errors.Is.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Property with ID %d not found", e.ID)
}

func (e *NotFoundError) Unwrap() error { return store.ErrNotFound }

// Service compares listings read from a store.
type Service struct {
	reader Reader
}

// NewService creates a comparison service.
func NewService(r Reader) *Service {
	return &Service{reader: r}
}

// Compare loads both listings and compares them. Returns a *NotFoundError
// when either id is missing.
func (s *Service) Compare(ctx context.Context, id1, id2 int64) (*Result, error) {
	p1, err := s.side(ctx, id1)
	if err != nil {
		return nil, err
	}
	p2, err := s.side(ctx, id2)
	if err != nil {
		return nil, err
	}

	return &Result{
		Status:    models.StatusSuccess,
		Property1: p1,
		Property2: p2,
		Summary:   Summarize(p1, p2),
	}, nil
}

// Summarize computes differences and notes for two sides.
//
//nolint:gocritic // hugeParam: sides passed by value for immutability
func Summarize(p1, p2 Side) Summary {
	return Summary{
		PriceDifference:     p2.Price - p1.Price,
		BedroomsDifference:  p2.Bedrooms - p1.Bedrooms,
		BathroomsDifference: p2.Bathrooms - p1.Bathrooms,
		SizeDifference:      p2.SizeSqft - p1.SizeSqft,
		Notes: Notes{
			LargerProperty: winner(p1.ID, p2.ID, int64(p1.SizeSqft), int64(p2.SizeSqft)),
			MoreExpensive:  winner(p1.ID, p2.ID, p1.Price, p2.Price),
			MoreBedrooms:   winner(p1.ID, p2.ID, int64(p1.Bedrooms), int64(p2.Bedrooms)),
			MoreBathrooms:  winner(p1.ID, p2.ID, int64(p1.Bathrooms), int64(p2.Bathrooms)),
		},
	}
}

// Stats reports the number of comparable listings.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	c, err := s.reader.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count listings: %w", err)
	}
	features := make([]string, len(Features))
	copy(features, Features)
	return &Stats{TotalPropertiesAvailable: c.Listings, ComparisonFeatures: features}, nil
}

func (s *Service) side(ctx context.Context, id int64) (Side, error) {
	l, err := s.reader.GetListing(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return Side{}, &NotFoundError{ID: id}
	}
	if err != nil {
		return Side{}, fmt.Errorf("get listing %d: %w", id, err)
	}
	d, err := s.reader.GetDetails(ctx, id)
	if err != nil {
		return Side{}, fmt.Errorf("get details %d: %w", id, err)
	}
	return NewSide(l, d), nil
}

// NewSide flattens a listing and its optional details.
func NewSide(l models.Listing, d *models.Details) Side {
	side := Side{
		ID:        l.ID,
		Title:     l.Title,
		Location:  l.Location,
		Price:     l.Price,
		Amenities: []string{},
	}
	if side.Title == "" {
		side.Title = UnknownTitle
	}
	if side.Location == "" {
		side.Location = UnknownLocation
	}
	if d == nil {
		return side
	}

	side.Bedrooms = d.Bedrooms
	side.Bathrooms = d.Bathrooms
	side.SizeSqft = d.SizeSqft
	side.SchoolRating = d.SchoolRating
	side.CommuteTime = d.CommuteTime
	side.HasGarage = d.HasGarage
	side.HasGarden = d.HasGarden
	side.HasPool = d.HasPool
	side.YearBuilt = d.YearBuilt
	if d.Amenities != nil {
		side.Amenities = d.Amenities
	}
	return side
}

func winner(id1, id2, v1, v2 int64) string {
	switch {
	case v1 == v2:
		return Equal
	case v1 > v2:
		return strconv.FormatInt(id1, 10)
	default:
		return strconv.FormatInt(id2, 10)
	}
}
