// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tomtom215/propertyrank/internal/models"
	"github.com/tomtom215/propertyrank/internal/store"
)

// RootInfo is the body of GET /.
type RootInfo struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Status    string            `json:"status"`
	Endpoints map[string]string `json:"endpoints"`
	Features  []string          `json:"features"`
}

// Root handles GET /
//
// @Summary API information
// @Description Returns the API version, the endpoint map and the feature list
// @Tags Core
// @Produce json
// @Success 200 {object} RootInfo
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &RootInfo{
		Message: "Property Listing and Recommendation API",
		Version: Version,
		Status:  "running",
		Endpoints: map[string]string{
			"properties":         "/properties",
			"property_details":   "/properties/{id}",
			"property_info":      "/properties/{id}/info",
			"property_images":    "/properties/{id}/images",
			"all_details":        "/properties/details/all",
			"prediction":         "/predict",
			"recommendation":     "/recommend",
			"model_data":         "/pricedata",
			"compare":            "/comparebyid",
			"compare_stats":      "/compare/stats",
			"find_properties":    "/findproperties",
			"search":             "/search",
			"search_suggestions": "/search/suggestions",
			"database_status":    "/database/status",
			"health_check":       "/health",
			"cache_stats":        "/cache/stats",
			"cache_clear":        "/cache/clear",
			"cache_cleanup":      "/cache/cleanup",
			"metrics":            "/metrics",
			"documentation":      "/docs",
		},
		Features: []string{
			"Property listing and details",
			"Linear price estimation",
			"Weighted property recommendations",
			"Score caching",
			"Property comparison",
			"Property search",
		},
	})
}

// Properties handles GET /properties
//
// @Summary List properties
// @Description Returns every listing in ascending id order
// @Tags Properties
// @Produce json
// @Success 200 {object} models.PropertyListResponse
// @Failure 503 {object} models.ErrorResponse "Listing store unavailable"
// @Router /properties [get]
func (h *Handler) Properties(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	listings, err := h.store.AllListings(ctx)
	if err != nil {
		respondStoreError(w, err, "Properties not found")
		return
	}

	respondJSON(w, http.StatusOK, &models.PropertyListResponse{
		Status:          models.StatusSuccess,
		TotalProperties: len(listings),
		Properties:      listings,
	})
}

// PropertiesWithDetails handles GET /properties/details/all
//
// @Summary List properties with details
// @Description Returns every listing paired with its detail record. Listings without one carry the default attributes.
// @Tags Properties
// @Produce json
// @Success 200 {object} models.PropertyDetailsResponse
// @Failure 503 {object} models.ErrorResponse "Listing store unavailable"
// @Router /properties/details/all [get]
func (h *Handler) PropertiesWithDetails(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	props, err := h.store.AllProperties(ctx)
	if err != nil {
		respondStoreError(w, err, "Properties not found")
		return
	}

	out := make([]models.PropertyWithDetails, 0, len(props))
	for _, p := range props {
		out = append(out, models.PropertyWithDetails{
			BasicInfo: p.Listing,
			Details:   p.DetailsOrDefault(),
		})
	}

	respondJSON(w, http.StatusOK, &models.PropertyDetailsResponse{
		Status:          models.StatusSuccess,
		TotalProperties: len(out),
		Properties:      out,
	})
}

// Property handles GET /properties/{id}
//
// @Summary Get a property
// @Description Returns the listing flattened with its details and images
// @Tags Properties
// @Produce json
// @Param id path int true "Property id"
// @Success 200 {object} models.PropertyResponse
// @Failure 400 {object} models.ErrorResponse "Invalid id"
// @Failure 404 {object} models.ErrorResponse "Property not found"
// @Router /properties/{id} [get]
func (h *Handler) Property(w http.ResponseWriter, r *http.Request) {
	id, ok := propertyIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	listing, err := h.store.GetListing(ctx, id)
	if err != nil {
		respondStoreError(w, err, notFoundMessage(id))
		return
	}
	details, err := h.store.GetDetails(ctx, id)
	if err != nil {
		respondStoreError(w, err, notFoundMessage(id))
		return
	}
	images, err := h.store.GetImages(ctx, id)
	if err != nil {
		respondStoreError(w, err, notFoundMessage(id))
		return
	}

	respondJSON(w, http.StatusOK, &models.PropertyResponse{
		Status:   models.StatusSuccess,
		Property: models.Combine(listing, details, images),
	})
}

// PropertyInfo handles GET /properties/{id}/info
//
// @Summary Get property details
// @Description Returns the detail record of a listing
// @Tags Properties
// @Produce json
// @Param id path int true "Property id"
// @Success 200 {object} models.PropertyInfoResponse
// @Failure 404 {object} models.ErrorResponse "No detail record"
// @Router /properties/{id}/info [get]
func (h *Handler) PropertyInfo(w http.ResponseWriter, r *http.Request) {
	id, ok := propertyIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	details, err := h.store.GetDetails(ctx, id)
	if err == nil && details == nil {
		err = store.ErrNotFound
	}
	if err != nil {
		respondStoreError(w, err, fmt.Sprintf("Property info for ID %d not found", id))
		return
	}

	respondJSON(w, http.StatusOK, &models.PropertyInfoResponse{
		Status:  models.StatusSuccess,
		Details: *details,
	})
}

// PropertyImages handles GET /properties/{id}/images
//
// @Summary List property images
// @Tags Properties
// @Produce json
// @Param id path int true "Property id"
// @Success 200 {object} models.PropertyImagesResponse
// @Failure 404 {object} models.ErrorResponse "Property not found"
// @Router /properties/{id}/images [get]
func (h *Handler) PropertyImages(w http.ResponseWriter, r *http.Request) {
	id, ok := propertyIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	if _, err := h.store.GetListing(ctx, id); err != nil {
		respondStoreError(w, err, notFoundMessage(id))
		return
	}
	images, err := h.store.GetImages(ctx, id)
	if err != nil {
		respondStoreError(w, err, notFoundMessage(id))
		return
	}

	respondJSON(w, http.StatusOK, &models.PropertyImagesResponse{
		Status:      models.StatusSuccess,
		PropertyID:  id,
		TotalImages: len(images),
		Images:      images,
	})
}

func notFoundMessage(id int64) string {
	return fmt.Sprintf("Property with ID %d not found", id)
}
