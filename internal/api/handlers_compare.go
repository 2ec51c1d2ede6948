// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/propertyrank/internal/compare"
	"github.com/tomtom215/propertyrank/internal/models"
)

// CompareStatsResponse is the body of GET /compare/stats.
type CompareStatsResponse struct {
	Status string        `json:"status"`
	Stats  compare.Stats `json:"statistics"`
}

// CompareByID handles POST /comparebyid
//
// @Summary Compare two properties
// @Description Returns both properties side by side with differences (property2 minus property1) and per-feature winners
// @Tags Compare
// @Accept json
// @Produce json
// @Param request body CompareRequest true "Property ids"
// @Success 200 {object} compare.Result
// @Failure 400 {object} models.ErrorResponse "Invalid ids"
// @Failure 404 {object} models.ErrorResponse "Property not found"
// @Router /comparebyid [post]
func (h *Handler) CompareByID(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := decodeJSON(r, &req); err != nil {
		respondInvalidJSON(w, err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	result, err := h.compare.Compare(ctx, req.ID1, req.ID2)
	if err != nil {
		msg := "Property not found"
		var nf *compare.NotFoundError
		if errors.As(err, &nf) {
			msg = nf.Error()
		}
		respondStoreError(w, err, msg)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// CompareStats handles GET /compare/stats
//
// @Summary Comparison statistics
// @Tags Compare
// @Produce json
// @Success 200 {object} CompareStatsResponse
// @Failure 503 {object} models.ErrorResponse "Listing store unavailable"
// @Router /compare/stats [get]
func (h *Handler) CompareStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	stats, err := h.compare.Stats(ctx)
	if err != nil {
		respondStoreError(w, err, "Comparison statistics not available")
		return
	}

	respondJSON(w, http.StatusOK, &CompareStatsResponse{
		Status: models.StatusSuccess,
		Stats:  *stats,
	})
}
