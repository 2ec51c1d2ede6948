// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package models

// Listing is the basic record of the properties_list collection.
// Paired 1:1 with Details through ID.
type Listing struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Price    int64  `json:"price"`
	Location string `json:"location"`
}

// Details is the canonical shape of a properties_info document after
// field-name normalization. It is the attribute snapshot consumed by scoring.
type Details struct {
	ID           int64    `json:"id"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	SizeSqft     int      `json:"size_sqft"`
	SchoolRating int      `json:"school_rating"`
	CommuteTime  int      `json:"commute_time"`
	YearBuilt    int      `json:"year_built"`
	HasPool      bool     `json:"has_pool"`
	HasGarage    bool     `json:"has_garage"`
	HasGarden    bool     `json:"has_garden"`
	Amenities    []string `json:"amenities"`
}

// Default attribute values substituted when a listing has no detail record
// or a detail document omits a field.
const (
	DefaultBedrooms     = 2
	DefaultBathrooms    = 1
	DefaultSizeSqft     = 1200
	DefaultSchoolRating = 5
	DefaultCommuteTime  = 30
	DefaultYearBuilt    = 2010
)

// DefaultDetails returns the documented default attribute set for id.
func DefaultDetails(id int64) Details {
	return Details{
		ID:           id,
		Bedrooms:     DefaultBedrooms,
		Bathrooms:    DefaultBathrooms,
		SizeSqft:     DefaultSizeSqft,
		SchoolRating: DefaultSchoolRating,
		CommuteTime:  DefaultCommuteTime,
		YearBuilt:    DefaultYearBuilt,
		Amenities:    []string{},
	}
}

// AmenityFlags returns how many of pool, garage and garden are present.
func (d Details) AmenityFlags() int {
	n := 0
	for _, has := range []bool{d.HasPool, d.HasGarage, d.HasGarden} {
		if has {
			n++
		}
	}
	return n
}

// Image is a properties_images document. Several images may share a listing ID.
type Image struct {
	ID       int64  `json:"id"`
	ImageURL string `json:"image_url"`
	Caption  string `json:"caption,omitempty"`
}

// Property is a listing joined with its optional detail record.
type Property struct {
	Listing Listing
	Details *Details
}

// DetailsOrDefault returns the detail record, or DefaultDetails when absent.
func (p Property) DetailsOrDefault() Details {
	if p.Details == nil {
		return DefaultDetails(p.Listing.ID)
	}
	return *p.Details
}
