// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package models

import (
	"time"
)

// Response status values shared by every endpoint.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ErrorResponse is the body returned by non-recommendation endpoints on failure.
//
// Example:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "NOT_FOUND",
//	    "message": "Property not found"
//	  },
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type ErrorResponse struct {
	Status   string    `json:"status"`
	Error    *APIError `json:"error"`
	Metadata Metadata  `json:"metadata"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError represents an error with structured details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters
//   - INVALID_CRITERIA: Recommendation criteria rejected before scoring
//   - NOT_FOUND: Resource doesn't exist
//   - STORE_UNAVAILABLE: Listing store unreachable or circuit open
//   - STORE_ERROR: Listing store query failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// PropertyListResponse is the body of GET /properties.
type PropertyListResponse struct {
	Status          string    `json:"status"`
	TotalProperties int       `json:"total_properties"`
	Properties      []Listing `json:"properties"`
}

// PropertyWithDetails pairs a listing with its detail record.
// Used by GET /properties/details/all and the recommendation response.
type PropertyWithDetails struct {
	BasicInfo Listing `json:"basic_info"`
	Details   Details `json:"details"`
}

// PropertyDetailsResponse is the body of GET /properties/details/all.
type PropertyDetailsResponse struct {
	Status          string                `json:"status"`
	TotalProperties int                   `json:"total_properties"`
	Properties      []PropertyWithDetails `json:"properties"`
}

// CombinedProperty is a listing flattened with its details and images,
// as served by GET /properties/{id}.
type CombinedProperty struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Price        int64    `json:"price"`
	Location     string   `json:"location"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	SizeSqft     int      `json:"size_sqft"`
	SchoolRating int      `json:"school_rating"`
	CommuteTime  int      `json:"commute_time"`
	YearBuilt    int      `json:"year_built"`
	HasPool      bool     `json:"has_pool"`
	HasGarage    bool     `json:"has_garage"`
	HasGarden    bool     `json:"has_garden"`
	Amenities    []string `json:"amenities"`
	Images       []Image  `json:"images"`
	HasDetails   bool     `json:"has_details"`
}

// Combine flattens a listing, its optional details and images.
// Absent details are reported as zero values with HasDetails false.
func Combine(l Listing, d *Details, images []Image) CombinedProperty {
	if images == nil {
		images = []Image{}
	}
	c := CombinedProperty{
		ID:        l.ID,
		Title:     l.Title,
		Price:     l.Price,
		Location:  l.Location,
		Amenities: []string{},
		Images:    images,
	}
	if d == nil {
		return c
	}
	c.HasDetails = true
	c.Bedrooms = d.Bedrooms
	c.Bathrooms = d.Bathrooms
	c.SizeSqft = d.SizeSqft
	c.SchoolRating = d.SchoolRating
	c.CommuteTime = d.CommuteTime
	c.YearBuilt = d.YearBuilt
	c.HasPool = d.HasPool
	c.HasGarage = d.HasGarage
	c.HasGarden = d.HasGarden
	if d.Amenities != nil {
		c.Amenities = d.Amenities
	}
	return c
}

// PropertyResponse is the body of GET /properties/{id}.
type PropertyResponse struct {
	Status   string           `json:"status"`
	Property CombinedProperty `json:"property"`
}

// PropertyInfoResponse is the body of GET /properties/{id}/info.
type PropertyInfoResponse struct {
	Status  string  `json:"status"`
	Details Details `json:"property_info"`
}

// PropertyImagesResponse is the body of GET /properties/{id}/images.
type PropertyImagesResponse struct {
	Status      string  `json:"status"`
	PropertyID  int64   `json:"property_id"`
	TotalImages int     `json:"total_images"`
	Images      []Image `json:"images"`
}

// MessageResponse is a status plus human-readable message.
type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
