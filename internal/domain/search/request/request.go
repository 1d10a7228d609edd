// Package request defines the customer-facing search request and its
// validation rules.
package request

import (
	"time"

	"github.com/sevahub/panditseva/internal/domain"
	"github.com/sevahub/panditseva/internal/domain/geo"
)

// SortMode selects the result ordering.
type SortMode string

const (
	// SortRelevance orders by engine score, then rating, then completed pujas.
	SortRelevance SortMode = "relevance"
	// SortRating orders by rating descending.
	SortRating SortMode = "rating"
	// SortPriceLow orders by minimum price ascending.
	SortPriceLow SortMode = "price_low"
	// SortPriceHigh orders by minimum price descending.
	SortPriceHigh SortMode = "price_high"
	// SortDistance orders by customer distance ascending. Requires a
	// customer location; falls back to rating otherwise.
	SortDistance SortMode = "distance"
	// SortExperience orders by years of experience descending.
	SortExperience SortMode = "experience"
)

// IsValid reports whether s is a known sort mode.
func (s SortMode) IsValid() bool {
	switch s {
	case SortRelevance, SortRating, SortPriceLow, SortPriceHigh, SortDistance, SortExperience:
		return true
	}
	return false
}

// Pagination and distance defaults.
const (
	DefaultLimit         = 20
	MaxLimit             = 100
	DefaultMaxDistanceKm = 50
	MaxDistanceCapKm     = 500
)

// Request is a pandit search. Money bounds are rupees at this boundary;
// conversion to paise happens in the query compiler only.
type Request struct {
	Query          string     `json:"query"`
	PujaType       string     `json:"pujaType"`
	EventDate      string     `json:"eventDate"` // YYYY-MM-DD
	Location       *geo.Point `json:"location"`
	City           string     `json:"city"`
	SearchAllIndia bool       `json:"searchAllIndia"`
	MaxDistanceKm  float64    `json:"maxDistanceKm"`
	MinPriceRupees *float64   `json:"minPrice"`
	MaxPriceRupees *float64   `json:"maxPrice"`
	TravelMode     string     `json:"travelMode"`
	Languages      []string   `json:"languages"`
	MinRating      float64    `json:"minRating"`
	MinExperience  int        `json:"minExperienceYears"`
	Sort           SortMode   `json:"sortBy"`
	Page           int        `json:"page"`
	Limit          int        `json:"limit"`
}

// Normalize fills defaults for omitted fields using the package limits.
func (r *Request) Normalize() {
	r.NormalizeWithLimits(DefaultLimit, MaxLimit)
}

// NormalizeWithLimits is Normalize with caller-configured page sizes.
func (r *Request) NormalizeWithLimits(defaultLimit, maxLimit int) {
	if r.Sort == "" {
		r.Sort = SortRelevance
	}
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit <= 0 {
		r.Limit = defaultLimit
	}
	if r.Limit > maxLimit {
		r.Limit = maxLimit
	}
	if r.MaxDistanceKm <= 0 {
		r.MaxDistanceKm = DefaultMaxDistanceKm
	}
	if r.MaxDistanceKm > MaxDistanceCapKm {
		r.MaxDistanceKm = MaxDistanceCapKm
	}
}

// Validate rejects malformed requests before any external call.
func (r *Request) Validate() error {
	fields := map[string]string{}

	if !r.Sort.IsValid() {
		fields["sortBy"] = "unknown sort mode"
	}
	if r.EventDate != "" {
		if _, err := time.Parse(time.DateOnly, r.EventDate); err != nil {
			fields["eventDate"] = "must be YYYY-MM-DD"
		}
	}
	if r.Location != nil && !geo.ValidateCoordinates(r.Location.Lat, r.Location.Lon) {
		fields["location"] = "latitude must be in [-90,90], longitude in [-180,180]"
	}
	if r.MinRating < 0 || r.MinRating > 5 {
		fields["minRating"] = "must be in [0,5]"
	}
	if r.MinExperience < 0 {
		fields["minExperienceYears"] = "must be non-negative"
	}
	if r.MinPriceRupees != nil && *r.MinPriceRupees < 0 {
		fields["minPrice"] = "must be non-negative"
	}
	if r.MaxPriceRupees != nil && *r.MaxPriceRupees < 0 {
		fields["maxPrice"] = "must be non-negative"
	}
	if r.MinPriceRupees != nil && r.MaxPriceRupees != nil && *r.MinPriceRupees > *r.MaxPriceRupees {
		fields["maxPrice"] = "must not be below minPrice"
	}

	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}
