// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

/*
Package models defines the data structures shared across PropertyRank.

Key Components:

  - Listing: basic record of the properties_list collection
  - Details: canonical properties_info record after field-name normalization
  - Image: properties_images record
  - Property: a Listing joined with its optional Details
  - Criteria, CriteriaKey: recommendation request and its score-relevant part
  - ScoreVector: six sub-scores plus weighted total
  - Response bodies for the listing endpoints and the error envelope

Models carry json tags matching the wire format. Criteria also carries
go-playground/validator tags used by the HTTP layer.
*/
package models
