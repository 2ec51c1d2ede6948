// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package api

// CompareRequest is the body of POST /comparebyid.
type CompareRequest struct {
	ID1 int64 `json:"id1" validate:"required,gt=0"`
	ID2 int64 `json:"id2" validate:"required,gt=0"`
}

// SearchQuery holds the query parameters of GET /search and GET /search/suggestions.
type SearchQuery struct {
	Q     string `json:"q" validate:"max=200"`
	Limit int    `json:"limit" validate:"min=0,max=1000"`
}
