// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package store

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/propertyrank/internal/logging"
	"github.com/tomtom215/propertyrank/internal/metrics"
)

// seedDocument is the on-disk seed format: one array per collection.
type seedDocument struct {
	Listings []Document `json:"properties_list"`
	Details  []Document `json:"properties_info"`
	Images   []Document `json:"properties_images"`
}

// SeedResult reports how many documents were loaded and rejected.
type SeedResult struct {
	Listings int `json:"properties_list"`
	Details  int `json:"properties_info"`
	Images   int `json:"properties_images"`
	Skipped  int `json:"skipped"`
}

// Seed normalizes the documents in r and upserts them into st.
// Invalid documents are logged and skipped.
func Seed(ctx context.Context, st Store, r io.Reader) (SeedResult, error) {
	var doc seedDocument
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return SeedResult{}, fmt.Errorf("decode seed: %w", err)
	}

	var res SeedResult

	listings := normalizeAll(doc.Listings, NormalizeListing, CollectionListings, &res.Skipped)
	if err := st.UpsertListings(ctx, listings); err != nil {
		return res, fmt.Errorf("upsert listings: %w", err)
	}
	res.Listings = len(listings)

	details := normalizeAll(doc.Details, NormalizeDetails, CollectionDetails, &res.Skipped)
	if err := st.UpsertDetails(ctx, details); err != nil {
		return res, fmt.Errorf("upsert details: %w", err)
	}
	res.Details = len(details)

	images := normalizeAll(doc.Images, NormalizeImage, CollectionImages, &res.Skipped)
	if err := st.UpsertImages(ctx, images); err != nil {
		return res, fmt.Errorf("upsert images: %w", err)
	}
	res.Images = len(images)

	metrics.RecordSeed(CollectionListings, res.Listings)
	metrics.RecordSeed(CollectionDetails, res.Details)
	metrics.RecordSeed(CollectionImages, res.Images)

	return res, nil
}

// SeedFile opens path and seeds st from it.
func SeedFile(ctx context.Context, st Store, path string) (SeedResult, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return SeedResult{}, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	res, err := Seed(ctx, st, f)
	if err != nil {
		return res, err
	}

	logging.Info().
		Str("path", path).
		Int("listings", res.Listings).
		Int("details", res.Details).
		Int("images", res.Images).
		Int("skipped", res.Skipped).
		Msg("Seed data loaded")
	return res, nil
}

func normalizeAll[T any](docs []Document, normalize func(Document) (T, error), collection string, skipped *int) []T {
	out := make([]T, 0, len(docs))
	for i, d := range docs {
		v, err := normalize(d)
		if err != nil {
			logging.Warn().Err(err).Str("collection", collection).Int("index", i).Msg("Skipping invalid document")
			*skipped++
			continue
		}
		out = append(out, v)
	}
	return out
}

