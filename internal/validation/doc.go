// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator is built on first use with WithRequiredStructEnabled and
// a json tag name function, so error fields read "user_budget" rather than
// "UserBudget". One custom tag is registered:
//
//   - notblank: the string is non-empty after trimming whitespace
//
// Example:
//
//	type CompareRequest struct {
//	    ID1 int64 `json:"id1" validate:"required,gt=0"`
//	    ID2 int64 `json:"id2" validate:"required,gt=0"`
//	}
//
//	if err := validation.ValidateStruct(&req); err != nil {
//	    apiErr := err.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// ToAPIError produces the VALIDATION_ERROR code with per-field details.
package validation
