// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package main

// General API information for swag.
//
// @title PropertyRank API
// @version 2.0.0
// @description Property listings, personalized recommendations, price estimation and comparison.
// @description
// @description ## Error Responses
// @description
// @description Errors use a common envelope:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "error": {
// @description     "code": "ERROR_CODE",
// @description     "message": "Human-readable error message"
// @description   }
// @description }
// @description ```
// @description
// @description ## Rate Limiting
// @description
// @description Default limit: 100 requests per minute per client IP.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/propertyrank
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /
