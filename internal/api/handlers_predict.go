// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package api

import (
	"net/http"

	"github.com/tomtom215/propertyrank/internal/estimate"
	"github.com/tomtom215/propertyrank/internal/models"
)

// PredictResponse is the body of POST /predict.
type PredictResponse struct {
	Status         string              `json:"status"`
	PredictedPrice float64             `json:"predicted_price"`
	Input          *estimate.Input     `json:"input_data,omitempty"`
	ModelInfo      *estimate.ModelInfo `json:"model_info,omitempty"`
	Error          string              `json:"error,omitempty"`
}

// PriceDataResponse is the body of GET /pricedata.
type PriceDataResponse struct {
	Status            string             `json:"status"`
	ModelInfo         estimate.ModelInfo `json:"model_info"`
	SamplePredictions []estimate.Sample  `json:"sample_predictions"`
}

// Predict handles POST /predict
//
// @Summary Estimate a price
// @Description Prices a property with the static linear model. Omitted fields take defaults.
// @Tags Prediction
// @Accept json
// @Produce json
// @Param input body estimate.Input true "Property attributes"
// @Success 200 {object} PredictResponse
// @Failure 400 {object} PredictResponse "Invalid input"
// @Router /predict [post]
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var in estimate.Input
	if err := decodeJSON(r, &in); err != nil {
		respondJSON(w, http.StatusBadRequest, &PredictResponse{Status: models.StatusError, Error: err.Error()})
		return
	}
	if apiErr := validateRequest(&in); apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &PredictResponse{Status: models.StatusError, Error: apiErr.Message})
		return
	}

	p := h.estimator.Predict(in)
	info := h.estimator.Info()
	respondJSON(w, http.StatusOK, &PredictResponse{
		Status:         models.StatusSuccess,
		PredictedPrice: p.PredictedPrice,
		Input:          &p.Input,
		ModelInfo:      &info,
	})
}

// PriceData handles GET /pricedata
//
// @Summary Estimator model data
// @Description Returns the model coefficients and predictions for a set of fixed sample inputs
// @Tags Prediction
// @Produce json
// @Success 200 {object} PriceDataResponse
// @Router /pricedata [get]
func (h *Handler) PriceData(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &PriceDataResponse{
		Status:            models.StatusSuccess,
		ModelInfo:         h.estimator.Info(),
		SamplePredictions: h.estimator.Samples(),
	})
}
