// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/propertyrank/internal/scoring"
)

// MaxResults is the number of recommendations returned per request.
const MaxResults = 3

// Config contains the engine configuration.
type Config struct {
	// ReferenceYear is the year property age is measured from.
	// Zero means scoring.DefaultReferenceYear.
	ReferenceYear int `koanf:"reference_year" json:"reference_year"`

	// FetchTimeout bounds the store fetch when the caller's context has no
	// earlier deadline. Zero disables it.
	FetchTimeout time.Duration `koanf:"fetch_timeout" json:"fetch_timeout"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		ReferenceYear: scoring.DefaultReferenceYear,
		FetchTimeout:  10 * time.Second,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.ReferenceYear < 0 {
		return fmt.Errorf("reference_year must be non-negative, got %d", c.ReferenceYear)
	}
	if c.ReferenceYear > 0 && (c.ReferenceYear < 1800 || c.ReferenceYear > 3000) {
		return fmt.Errorf("reference_year %d out of range [1800, 3000]", c.ReferenceYear)
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("fetch_timeout must be non-negative, got %v", c.FetchTimeout)
	}
	return nil
}
