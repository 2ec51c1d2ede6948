// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package config

import (
	"fmt"
	"net/url"
)

// validateOriginURL validates a CORS origin: "*" or a scheme://host[:port]
// origin with no path, query or fragment.
func validateOriginURL(origin string) error {
	if origin == "*" {
		return nil
	}

	parsedURL, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("failed to parse origin %q: %w", origin, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("origin %q scheme must be http or https", origin)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("origin %q host is required", origin)
	}

	if parsedURL.Path != "" && parsedURL.Path != "/" {
		return fmt.Errorf("origin %q should not contain a path", origin)
	}

	if parsedURL.RawQuery != "" || parsedURL.Fragment != "" {
		return fmt.Errorf("origin %q should not contain a query or fragment", origin)
	}

	return nil
}
