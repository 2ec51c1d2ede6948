// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tomtom215/propertyrank/internal/logging"
	"github.com/tomtom215/propertyrank/internal/models"
	"github.com/tomtom215/propertyrank/internal/recommend"
)

// Recommend handles POST /recommend
//
// The body is always a recommend.Response. Criteria that fail decoding or
// validation return 400, an empty or unreachable listing store returns 200
// with status "error".
//
// @Summary Recommend properties
// @Description Scores every listing against the criteria and returns the best three within the hard limits
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param criteria body models.Criteria true "Recommendation criteria"
// @Success 200 {object} recommend.Response
// @Failure 400 {object} recommend.Response "Invalid criteria"
// @Router /recommend [post]
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var criteria models.Criteria
	if err := decodeJSON(r, &criteria); err != nil {
		respondJSON(w, http.StatusBadRequest, recommend.NewResponse(nil, fmt.Errorf("%w: %w", recommend.ErrInvalidCriteria, err)))
		return
	}
	if apiErr := validateRequest(&criteria); apiErr != nil {
		respondJSON(w, http.StatusBadRequest, recommend.NewResponse(nil, fmt.Errorf("%w: %s", recommend.ErrInvalidCriteria, apiErr.Message)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	result, err := h.engine.Recommend(ctx, criteria)
	resp := recommend.NewResponse(result, err)

	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, resp)
	case errors.Is(err, recommend.ErrInvalidCriteria):
		respondJSON(w, http.StatusBadRequest, resp)
	case errors.Is(err, recommend.ErrUpstreamUnavailable):
		logging.Ctx(r.Context()).Warn().Str("error", sanitizeLogValue(err.Error())).Msg("Recommendation returned no candidates")
		respondJSON(w, http.StatusOK, resp)
	default:
		logging.Ctx(r.Context()).Error().Str("error", sanitizeLogValue(err.Error())).Msg("Recommendation failed")
		respondJSON(w, http.StatusInternalServerError, resp)
	}
}
