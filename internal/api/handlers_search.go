// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/propertyrank/internal/models"
	"github.com/tomtom215/propertyrank/internal/search"
)

// SearchResponse is the body of GET /search.
type SearchResponse struct {
	Status     string         `json:"status"`
	Query      string         `json:"query"`
	TotalFound int            `json:"total_found"`
	Properties []search.Match `json:"properties"`
}

// SuggestionsResponse is the body of GET /search/suggestions.
type SuggestionsResponse struct {
	Status      string   `json:"status"`
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

// FindProperties handles POST /findproperties
//
// @Summary Find properties
// @Description Returns listings in a location within budget that meet the bedroom and bathroom preferences
// @Tags Search
// @Accept json
// @Produce json
// @Param request body search.FindRequest true "Search criteria"
// @Success 200 {object} search.FindResponse
// @Failure 400 {object} models.ErrorResponse "Invalid criteria"
// @Router /findproperties [post]
func (h *Handler) FindProperties(w http.ResponseWriter, r *http.Request) {
	var req search.FindRequest
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

	resp, err := h.search.Find(ctx, req)
	if err != nil {
		respondStoreError(w, err, "No properties found")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// Search handles GET /search
//
// @Summary Text search
// @Description Returns listings whose title or location contains q, case-insensitively
// @Tags Search
// @Produce json
// @Param q query string false "Search text"
// @Param limit query int false "Maximum results, 0 for all"
// @Success 200 {object} SearchResponse
// @Failure 400 {object} models.ErrorResponse "Invalid query"
// @Router /search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := SearchQuery{
		Q:     r.URL.Query().Get("q"),
		Limit: getIntParam(r, "limit", 0),
	}
	if apiErr := validateRequest(&q); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	matches, err := h.search.Text(ctx, q.Q)
	if err != nil {
		respondStoreError(w, err, "No properties found")
		return
	}
	if q.Limit > 0 && len(matches) > q.Limit {
		matches = matches[:q.Limit]
	}

	respondJSON(w, http.StatusOK, &SearchResponse{
		Status:     models.StatusSuccess,
		Query:      q.Q,
		TotalFound: len(matches),
		Properties: matches,
	})
}

// SearchSuggestions handles GET /search/suggestions
//
// @Summary Search suggestions
// @Description Returns up to ten sorted locations and titles containing q
// @Tags Search
// @Produce json
// @Param q query string true "Prefix or fragment"
// @Success 200 {object} SuggestionsResponse
// @Router /search/suggestions [get]
func (h *Handler) SearchSuggestions(w http.ResponseWriter, r *http.Request) {
	q := SearchQuery{Q: r.URL.Query().Get("q")}
	if apiErr := validateRequest(&q); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	suggestions, err := h.search.Suggestions(ctx, q.Q)
	if err != nil {
		respondStoreError(w, err, "No suggestions found")
		return
	}

	respondJSON(w, http.StatusOK, &SuggestionsResponse{
		Status:      models.StatusSuccess,
		Query:       q.Q,
		Suggestions: suggestions,
	})
}
