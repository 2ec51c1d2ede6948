// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package cache

import (
	"crypto/sha256"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/propertyrank/internal/models"
)

// keyPrefix namespaces score vector fingerprints.
const keyPrefix = "score"

// fingerprintInput is the tuple that determines a score vector.
// Field order is part of the key format; do not reorder.
type fingerprintInput struct {
	Budget       int64 `json:"b"`
	MinBedrooms  int   `json:"mb"`
	ID           int64 `json:"id"`
	Bedrooms     int   `json:"bed"`
	Bathrooms    int   `json:"bath"`
	SchoolRating int   `json:"sr"`
	CommuteTime  int   `json:"ct"`
	YearBuilt    int   `json:"yb"`
	HasPool      bool  `json:"pool"`
	HasGarage    bool  `json:"garage"`
	HasGarden    bool  `json:"garden"`
	SizeSqft     int   `json:"size"`
	Price        int64 `json:"price"`
}

// Fingerprint derives the cache key for one property under one set of criteria.
//
// Two calls return the same key exactly when the budget, minimum bedrooms,
// listing price and every scored attribute are equal. Free-text amenities,
// title and location do not affect scores and are not part of the key.
//
// Format: "score:<hex of the first 16 bytes of SHA-256>".
//
//nolint:gocritic // hugeParam: values are read-only snapshots
func Fingerprint(c models.CriteriaKey, l models.Listing, d models.Details) string {
	in := fingerprintInput{
		Budget:       c.Budget,
		MinBedrooms:  c.MinBedrooms,
		ID:           l.ID,
		Bedrooms:     d.Bedrooms,
		Bathrooms:    d.Bathrooms,
		SchoolRating: d.SchoolRating,
		CommuteTime:  d.CommuteTime,
		YearBuilt:    d.YearBuilt,
		HasPool:      d.HasPool,
		HasGarage:    d.HasGarage,
		HasGarden:    d.HasGarden,
		SizeSqft:     d.SizeSqft,
		Price:        l.Price,
	}

	data, err := json.Marshal(in)
	if err != nil {
		// Fallback to the formatted tuple
		data = []byte(fmt.Sprintf("%+v", in))
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", keyPrefix, hash[:16])
}
