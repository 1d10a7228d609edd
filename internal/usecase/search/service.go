// Package search compiles customer search requests into engine queries and
// shapes the hits back into display models.
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/sevahub/panditseva/internal/db"
	"github.com/sevahub/panditseva/internal/domain"
	"github.com/sevahub/panditseva/internal/domain/geo"
	"github.com/sevahub/panditseva/internal/domain/pandit"
	"github.com/sevahub/panditseva/internal/domain/search/filter"
	"github.com/sevahub/panditseva/internal/domain/search/request"
	"github.com/sevahub/panditseva/internal/metrics"
)

const (
	// AutocompleteMaxResults is a hard cap, not a default.
	AutocompleteMaxResults = 5
	// NearbyRadiusKm is the fixed radius for the nearby lookup.
	NearbyRadiusKm = 100
	// NearbyMaxResults caps the nearby lookup page size.
	NearbyMaxResults = 50
)

// Service handles pandit search, autocomplete and nearby lookups.
type Service struct {
	repo         Repository
	defaultLimit int
	maxLimit     int
	now          func() time.Time
}

// New creates a search service. Non-positive page limits fall back to the
// request package defaults.
func New(repo Repository, defaultLimit, maxLimit int) *Service {
	if defaultLimit <= 0 {
		defaultLimit = request.DefaultLimit
	}
	if maxLimit <= 0 {
		maxLimit = request.MaxLimit
	}
	return &Service{
		repo:         repo,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Pagination describes one page of results.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// Metadata reports which filters were active for this response.
type Metadata struct {
	FiltersApplied       FiltersApplied `json:"filtersApplied"`
	SearchAllIndiaActive bool           `json:"searchAllIndiaActive"`
}

// Response is a full search answer.
type Response struct {
	Pandits        []Pandit   `json:"pandits"`
	Pagination     Pagination `json:"pagination"`
	SearchMetadata Metadata   `json:"searchMetadata"`
}

// Search runs a full filtered pandit search.
func (s *Service) Search(ctx context.Context, req *request.Request) (*Response, error) {
	req.NormalizeWithLimits(s.defaultLimit, s.maxLimit)
	if err := req.Validate(); err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("search", "invalid").Inc()
		return nil, err
	}

	query, applied, err := compile(req, s.now())
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("search", "error").Inc()
		return nil, err
	}

	page, err := s.repo.Search(ctx, query)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("search", "error").Inc()
		return nil, domain.WrapUpstream("search pandits", err)
	}

	pandits := transform(page.Hits, req.Location)
	if applied.Geo {
		pandits = withinTravelRange(pandits)
	}
	// Nationwide mode has no meaningful distance ordering; keep the
	// engine's rating order instead.
	sortMode := req.Sort
	if req.SearchAllIndia && sortMode == request.SortDistance {
		sortMode = request.SortRating
	}
	orderResults(pandits, sortMode)

	metrics.SearchRequestsTotal.WithLabelValues("search", "ok").Inc()
	return &Response{
		Pandits: pandits,
		Pagination: Pagination{
			Total:      page.Total,
			Page:       req.Page,
			Limit:      req.Limit,
			TotalPages: totalPages(page.Total, req.Limit),
		},
		SearchMetadata: Metadata{
			FiltersApplied:       applied,
			SearchAllIndiaActive: req.SearchAllIndia,
		},
	}, nil
}

// Completion is one autocomplete entry.
type Completion struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	PhotoURL string `json:"photoUrl"`
}

// Autocomplete prefix-matches verified pandit names. It never returns more
// than AutocompleteMaxResults entries regardless of the requested limit.
func (s *Service) Autocomplete(ctx context.Context, prefix string, limit int) ([]Completion, error) {
	if prefix == "" {
		return nil, domain.NewValidationError("q", "query text is required")
	}
	if limit <= 0 || limit > AutocompleteMaxResults {
		limit = AutocompleteMaxResults
	}

	verified, err := filter.NewMatch(pandit.FieldVerification, string(pandit.StateVerified))
	if err != nil {
		return nil, fmt.Errorf("compile verified filter: %w", err)
	}
	expr, err := filter.NewExpression([]filter.Condition{verified}, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("compile autocomplete filter: %w", err)
	}

	page, err := s.repo.Search(ctx, &db.SearchQuery{
		Text: &db.TextMatch{
			Fields: []string{pandit.FieldName},
			Query:  prefix,
			Prefix: true,
		},
		Filters: expr,
		Limit:   limit,
		ReturnFields: []string{
			pandit.FieldName, pandit.FieldCity, pandit.FieldPhotoURL,
		},
	})
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("autocomplete", "error").Inc()
		return nil, domain.WrapUpstream("autocomplete pandits", err)
	}

	completions := make([]Completion, 0, len(page.Hits))
	for _, hit := range page.Hits {
		completions = append(completions, Completion{
			ID:       hit.Document.ID,
			Name:     hit.Document.Name,
			City:     hit.Document.City,
			PhotoURL: hit.Document.PhotoURL,
		})
	}
	metrics.SearchRequestsTotal.WithLabelValues("autocomplete", "ok").Inc()
	return completions, nil
}

// Nearby returns verified, currently-online pandits within NearbyRadiusKm
// of the customer, closest first.
func (s *Service) Nearby(ctx context.Context, lat, lng float64, pujaType string, limit int) ([]Pandit, error) {
	if !geo.ValidateCoordinates(lat, lng) {
		return nil, domain.NewValidationError("location",
			"latitude must be in [-90,90], longitude in [-180,180]")
	}
	if limit <= 0 {
		limit = request.DefaultLimit
	}
	if limit > NearbyMaxResults {
		limit = NearbyMaxResults
	}

	verified, err := filter.NewMatch(pandit.FieldVerification, string(pandit.StateVerified))
	if err != nil {
		return nil, fmt.Errorf("compile nearby verified filter: %w", err)
	}
	online, err := filter.NewMatch(pandit.FieldOnline, "true")
	if err != nil {
		return nil, fmt.Errorf("compile nearby online filter: %w", err)
	}
	radius, err := filter.NewGeoRadius(pandit.FieldLocation, lat, lng, NearbyRadiusKm)
	if err != nil {
		return nil, fmt.Errorf("compile nearby geo filter: %w", err)
	}

	must := []filter.Condition{verified, online, radius}
	if pujaType != "" {
		cond, err := filter.NewMatch(pandit.FieldPujaTypes, pujaType)
		if err != nil {
			return nil, fmt.Errorf("compile nearby puja type filter: %w", err)
		}
		must = append(must, cond)
	}

	expr, err := filter.NewExpression(must, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("compile nearby filter expression: %w", err)
	}

	page, err := s.repo.Search(ctx, &db.SearchQuery{Filters: expr, Limit: limit})
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("nearby", "error").Inc()
		return nil, domain.WrapUpstream("nearby pandits", err)
	}

	customer := &geo.Point{Lat: lat, Lon: lng}
	pandits := transform(page.Hits, customer)
	orderResults(pandits, request.SortDistance)

	metrics.SearchRequestsTotal.WithLabelValues("nearby", "ok").Inc()
	return pandits, nil
}

func totalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
