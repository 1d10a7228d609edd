package search

import (
	"fmt"
	"time"

	"github.com/sevahub/panditseva/internal/db"
	"github.com/sevahub/panditseva/internal/domain/pandit"
	"github.com/sevahub/panditseva/internal/domain/search/filter"
	"github.com/sevahub/panditseva/internal/domain/search/request"
)

// paisePerRupee is the only place a request-side rupee amount becomes a
// stored paise amount.
const paisePerRupee = 100

// FiltersApplied records which optional filters actually made it into the
// compiled query, for response transparency.
type FiltersApplied struct {
	TextQuery     bool `json:"textQuery"`
	PujaType      bool `json:"pujaType"`
	EventDate     bool `json:"eventDate"`
	AdvanceNotice bool `json:"advanceNotice"`
	Geo           bool `json:"geo"`
	Price         bool `json:"price"`
	TravelMode    bool `json:"travelMode"`
	Languages     bool `json:"languages"`
	MinRating     bool `json:"minRating"`
	MinExperience bool `json:"minExperience"`
	OnlineBoost   bool `json:"onlineBoost"`
}

// compile translates a normalized, validated request into an engine query.
// The verified-only clause is unconditional; no request field can remove it.
func compile(req *request.Request, now time.Time) (*db.SearchQuery, FiltersApplied, error) {
	var (
		must    []filter.Condition
		should  []filter.Condition
		mustNot []filter.Condition
		applied FiltersApplied
	)

	add := func(c filter.Condition, err error) error {
		if err != nil {
			return err
		}
		must = append(must, c)
		return nil
	}

	if err := add(filter.NewMatch(pandit.FieldVerification, string(pandit.StateVerified))); err != nil {
		return nil, applied, fmt.Errorf("compile verified filter: %w", err)
	}

	if req.PujaType != "" {
		if err := add(filter.NewMatch(pandit.FieldPujaTypes, req.PujaType)); err != nil {
			return nil, applied, fmt.Errorf("compile puja type filter: %w", err)
		}
		applied.PujaType = true
	}

	if req.EventDate != "" {
		unavailable, err := filter.NewMatch(pandit.FieldUnavailable, req.EventDate)
		if err != nil {
			return nil, applied, fmt.Errorf("compile availability filter: %w", err)
		}
		mustNot = append(mustNot, unavailable)
		applied.EventDate = true

		// advance notice only constrains future events
		eventDay, _ := time.Parse(time.DateOnly, req.EventDate)
		if days := daysUntil(now, eventDay); days >= 0 {
			if err := add(filter.NewRange(pandit.FieldMinNotice, filter.Lte(float64(days)))); err != nil {
				return nil, applied, fmt.Errorf("compile notice filter: %w", err)
			}
			applied.AdvanceNotice = true
		}
	}

	if req.Location != nil && !req.SearchAllIndia {
		geoCond, err := filter.NewGeoRadius(pandit.FieldLocation,
			req.Location.Lat, req.Location.Lon, req.MaxDistanceKm)
		if err != nil {
			return nil, applied, fmt.Errorf("compile geo filter: %w", err)
		}
		must = append(must, geoCond)
		applied.Geo = true
	}

	if req.MinPriceRupees != nil || req.MaxPriceRupees != nil {
		priceRange := compilePriceRange(req.MinPriceRupees, req.MaxPriceRupees)
		if err := add(filter.NewRange(pandit.FieldMinPrice, priceRange)); err != nil {
			return nil, applied, fmt.Errorf("compile price filter: %w", err)
		}
		applied.Price = true
	}

	if req.TravelMode != "" {
		if err := add(filter.NewMatch(pandit.FieldTravelModes, req.TravelMode)); err != nil {
			return nil, applied, fmt.Errorf("compile travel mode filter: %w", err)
		}
		applied.TravelMode = true
	}

	if len(req.Languages) > 0 {
		langs, err := filter.NewMatchAny(pandit.FieldLanguages, req.Languages...)
		if err != nil {
			return nil, applied, fmt.Errorf("compile language filter: %w", err)
		}
		must = append(must, langs)
		applied.Languages = true
	}

	if req.MinRating > 0 {
		if err := add(filter.NewRange(pandit.FieldRating, filter.Gte(req.MinRating))); err != nil {
			return nil, applied, fmt.Errorf("compile rating filter: %w", err)
		}
		applied.MinRating = true
	}

	if req.MinExperience > 0 {
		if err := add(filter.NewRange(pandit.FieldExperience, filter.Gte(float64(req.MinExperience)))); err != nil {
			return nil, applied, fmt.Errorf("compile experience filter: %w", err)
		}
		applied.MinExperience = true
	}

	online, err := filter.NewMatch(pandit.FieldOnline, "true")
	if err != nil {
		return nil, applied, fmt.Errorf("compile online boost: %w", err)
	}
	should = append(should, online)
	applied.OnlineBoost = true

	expr, err := filter.NewExpression(must, should, mustNot)
	if err != nil {
		return nil, applied, fmt.Errorf("compile filter expression: %w", err)
	}

	query := &db.SearchQuery{
		Filters: expr,
		Offset:  (req.Page - 1) * req.Limit,
		Limit:   req.Limit,
	}

	if req.Query != "" {
		query.Text = &db.TextMatch{
			Fields: []string{pandit.FieldName, pandit.FieldBio},
			Query:  req.Query,
			Fuzzy:  true,
		}
		applied.TextQuery = true
	}

	applySort(query, req)
	return query, applied, nil
}

// applySort maps the sort mode onto an engine SORTBY or score ordering.
// Distance ordering cannot be expressed as a SORTBY clause, so distance mode
// fetches rating-ordered and re-sorts client-side after distances are
// computed; with no customer location it degrades to plain rating order.
func applySort(query *db.SearchQuery, req *request.Request) {
	switch req.Sort {
	case request.SortRating:
		query.SortBy = &db.Sort{Field: pandit.FieldRating, Order: db.SortDesc}
	case request.SortPriceLow:
		query.SortBy = &db.Sort{Field: pandit.FieldMinPrice, Order: db.SortAsc}
	case request.SortPriceHigh:
		query.SortBy = &db.Sort{Field: pandit.FieldMinPrice, Order: db.SortDesc}
	case request.SortExperience:
		query.SortBy = &db.Sort{Field: pandit.FieldExperience, Order: db.SortDesc}
	case request.SortDistance:
		query.SortBy = &db.Sort{Field: pandit.FieldRating, Order: db.SortDesc}
	default:
		query.WithScores = true
	}
}

func compilePriceRange(minRupees, maxRupees *float64) filter.Range {
	switch {
	case minRupees != nil && maxRupees != nil:
		return filter.Between(*minRupees*paisePerRupee, *maxRupees*paisePerRupee)
	case minRupees != nil:
		return filter.Gte(*minRupees * paisePerRupee)
	default:
		return filter.Lte(*maxRupees * paisePerRupee)
	}
}

// daysUntil counts whole calendar days from today (in UTC) to the event.
// Negative means the event date already passed.
func daysUntil(now, event time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	event = time.Date(event.Year(), event.Month(), event.Day(), 0, 0, 0, 0, time.UTC)
	return int(event.Sub(today).Hours() / 24)
}
