// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

// Package search implements filtered listing search, free-text search and
// type-ahead suggestions on top of the listing store.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tomtom215/propertyrank/internal/models"
	"github.com/tomtom215/propertyrank/internal/store"
)

// MaxSuggestions caps the suggestion list.
const MaxSuggestions = 10

// Searcher is the part of store.Store search needs.
type Searcher interface {
	Search(ctx context.Context, f store.Filter) ([]models.Property, error)
	Distinct(ctx context.Context, field string) ([]string, error)
}

// Preferences are the minimum room counts of a FindRequest.
type Preferences struct {
	Bedrooms  int `json:"bedrooms" validate:"gte=0,lte=100"`
	Bathrooms int `json:"bathrooms" validate:"gte=0,lte=100"`
}

// FindRequest is a filtered search. A blank location matches every listing.
type FindRequest struct {
	Location    string      `json:"location" validate:"max=200"`
	Budget      int64       `json:"budget" validate:"gt=0"`
	Preferences Preferences `json:"preferences"`
}

// Match is one search hit with its headline attributes.
type Match struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Price     int64    `json:"price"`
	Location  string   `json:"location"`
	Bedrooms  int      `json:"bedrooms"`
	Bathrooms int      `json:"bathrooms"`
	SizeSqft  int      `json:"size_sqft"`
	Amenities []string `json:"amenities"`
}

// FindResponse is the /findproperties body.
type FindResponse struct {
	Status         string      `json:"status"`
	TotalFound     int         `json:"total_found"`
	Properties     []Match     `json:"properties"`
	SearchCriteria FindRequest `json:"search_criteria"`
	Message        string      `json:"message"`
}

// Service runs searches against a Searcher.
type Service struct {
	searcher Searcher
}

// NewService creates a search service.
func NewService(s Searcher) *Service {
	return &Service{searcher: s}
}

// Find returns listings in req.Location within req.Budget that meet the
// bedroom and bathroom preferences. Listings without details are matched on
// models.DefaultDetails.
func (s *Service) Find(ctx context.Context, req FindRequest) (*FindResponse, error) {
	props, err := s.searcher.Search(ctx, store.Filter{
		Location:     strings.TrimSpace(req.Location),
		MaxPrice:     req.Budget,
		MinBedrooms:  req.Preferences.Bedrooms,
		MinBathrooms: req.Preferences.Bathrooms,
	})
	if err != nil {
		return nil, fmt.Errorf("find properties: %w", err)
	}

	matches := toMatches(props)
	msg := fmt.Sprintf("Found %d properties matching your criteria", len(matches))
	if len(matches) == 0 {
		msg = "No properties found matching your criteria"
	}

	return &FindResponse{
		Status:         models.StatusSuccess,
		TotalFound:     len(matches),
		Properties:     matches,
		SearchCriteria: req,
		Message:        msg,
	}, nil
}

// Text returns listings whose title or location contains q, case-insensitively.
// An empty q returns every listing.
func (s *Service) Text(ctx context.Context, q string) ([]Match, error) {
	props, err := s.searcher.Search(ctx, store.Filter{Query: strings.TrimSpace(q)})
	if err != nil {
		return nil, fmt.Errorf("search properties: %w", err)
	}
	return toMatches(props), nil
}

// Suggestions returns up to MaxSuggestions unique locations and titles
// containing q, case-insensitively, in sorted order.
func (s *Service) Suggestions(ctx context.Context, q string) ([]string, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return []string{}, nil
	}

	seen := make(map[string]struct{})
	out := []string{}
	for _, field := range []string{store.FieldLocation, store.FieldTitle} {
		values, err := s.searcher.Distinct(ctx, field)
		if err != nil {
			return nil, fmt.Errorf("distinct %s: %w", field, err)
		}
		for _, v := range values {
			if !strings.Contains(strings.ToLower(v), q) {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}

	sort.Strings(out)
	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out, nil
}

func toMatches(props []models.Property) []Match {
	out := make([]Match, 0, len(props))
	for _, p := range props {
		d := p.DetailsOrDefault()
		amenities := d.Amenities
		if amenities == nil {
			amenities = []string{}
		}
		out = append(out, Match{
			ID:        p.Listing.ID,
			Title:     p.Listing.Title,
			Price:     p.Listing.Price,
			Location:  p.Listing.Location,
			Bedrooms:  d.Bedrooms,
			Bathrooms: d.Bathrooms,
			SizeSqft:  d.SizeSqft,
			Amenities: amenities,
		})
	}
	return out
}
