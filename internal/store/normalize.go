// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package store

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/propertyrank/internal/models"
)

// Accepted key variants per canonical field, in lookup priority order.
var (
	bedroomKeys      = []string{"bedrooms", "num_bedrooms", "beds"}
	bathroomKeys     = []string{"bathrooms", "baths", "num_bathrooms"}
	sizeKeys         = []string{"size_sqft", "size", "area", "living_area"}
	amenityKeys      = []string{"amenities", "features", "amenity_list"}
	schoolRatingKeys = []string{"school_rating", "schoolScore", "school_rating_score"}
	commuteKeys      = []string{"commute_time", "commute_minutes"}
	garageKeys       = []string{"has_garage", "garage", "garage_available"}
	gardenKeys       = []string{"has_garden", "garden", "garden_available"}
	poolKeys         = []string{"has_pool", "pool", "pool_available"}
	yearBuiltKeys    = []string{"year_built", "built_year", "construction_year"}
	imageURLKeys     = []string{"image_url", "url", "image"}
)

// Document is a raw collection document as decoded from JSON.
type Document map[string]any

// NormalizeListing maps a raw properties_list document onto models.Listing.
func NormalizeListing(doc Document) (models.Listing, error) {
	id, err := documentID(doc)
	if err != nil {
		return models.Listing{}, err
	}

	l := models.Listing{ID: id}
	l.Title, _ = asString(doc["title"])
	l.Location, _ = asString(doc["location"])
	if v, ok := lookup(doc, "price"); ok {
		price, ok := asInt64(v)
		if !ok || price < 0 {
			return models.Listing{}, fmt.Errorf("%w: listing %d: price %v", ErrInvalidDocument, id, v)
		}
		l.Price = price
	}
	return l, nil
}

// NormalizeDetails maps a raw properties_info document onto models.Details.
// Variant key names are accepted and missing or null fields take the
// models.DefaultDetails value.
func NormalizeDetails(doc Document) (models.Details, error) {
	id, err := documentID(doc)
	if err != nil {
		return models.Details{}, err
	}

	d := models.DefaultDetails(id)
	ints := []struct {
		keys     []string
		dst      *int
		min, max int64
	}{
		{bedroomKeys, &d.Bedrooms, 0, math.MaxInt32},
		{bathroomKeys, &d.Bathrooms, 0, math.MaxInt32},
		{sizeKeys, &d.SizeSqft, 0, math.MaxInt32},
		{schoolRatingKeys, &d.SchoolRating, 0, 10},
		{commuteKeys, &d.CommuteTime, 0, math.MaxInt32},
		{yearBuiltKeys, &d.YearBuilt, math.MinInt32, math.MaxInt32},
	}
	for _, f := range ints {
		v, ok := lookup(doc, f.keys...)
		if !ok {
			continue
		}
		n, ok := asInt64(v)
		if !ok {
			return models.Details{}, fmt.Errorf("%w: details %d: %s is not a number", ErrInvalidDocument, id, f.keys[0])
		}
		if n < f.min || n > f.max {
			return models.Details{}, fmt.Errorf("%w: details %d: %s %d outside [%d, %d]",
				ErrInvalidDocument, id, f.keys[0], n, f.min, f.max)
		}
		*f.dst = int(n)
	}

	bools := []struct {
		keys []string
		dst  *bool
	}{
		{poolKeys, &d.HasPool},
		{garageKeys, &d.HasGarage},
		{gardenKeys, &d.HasGarden},
	}
	for _, f := range bools {
		if v, ok := lookup(doc, f.keys...); ok {
			*f.dst = asBool(v)
		}
	}

	if v, ok := lookup(doc, amenityKeys...); ok {
		d.Amenities = asStringSlice(v)
	}
	return d, nil
}

// NormalizeImage maps a raw properties_images document onto models.Image.
func NormalizeImage(doc Document) (models.Image, error) {
	id, err := documentID(doc)
	if err != nil {
		return models.Image{}, err
	}

	img := models.Image{ID: id}
	if v, ok := lookup(doc, imageURLKeys...); ok {
		img.ImageURL, _ = asString(v)
	}
	if img.ImageURL == "" {
		return models.Image{}, fmt.Errorf("%w: image %d has no url", ErrInvalidDocument, id)
	}
	img.Caption, _ = asString(doc["caption"])
	return img, nil
}

func documentID(doc Document) (int64, error) {
	v, ok := lookup(doc, "id")
	if !ok {
		return 0, fmt.Errorf("%w: missing id", ErrInvalidDocument)
	}
	id, ok := asInt64(v)
	if !ok || !isIntegral(v) {
		return 0, fmt.Errorf("%w: id %v is not an integer", ErrInvalidDocument, v)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: id %d is not positive", ErrInvalidDocument, id)
	}
	return id, nil
}

// lookup returns the first non-null value among keys.
func lookup(doc Document, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := doc[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		// 2^63 is exactly representable; every float64 below it converts.
		r := math.Round(n)
		if math.IsNaN(r) || r < -(1<<63) || r >= 1<<63 {
			return 0, false
		}
		return int64(r), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return asInt64(f)
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return asInt64(f)
	default:
		return 0, false
	}
}

func isIntegral(v any) bool {
	switch n := v.(type) {
	case float64:
		return n == math.Trunc(n)
	case json.Number:
		_, err := n.Int64()
		return err == nil
	case string:
		_, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return err == nil
	default:
		return true
	}
}

func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "y", "1":
			return true
		}
		return false
	default:
		n, ok := asInt64(v)
		return ok && n != 0
	}
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case nil:
		return "", false
	default:
		return fmt.Sprint(s), true
	}
}

// asStringSlice accepts a JSON array or a comma-separated string.
func asStringSlice(v any) []string {
	out := []string{}
	switch s := v.(type) {
	case []any:
		for _, item := range s {
			if str, ok := asString(item); ok && str != "" {
				out = append(out, str)
			}
		}
	case []string:
		for _, str := range s {
			if str != "" {
				out = append(out, str)
			}
		}
	case string:
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
