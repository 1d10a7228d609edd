package search

import (
	"math"
	"sort"

	"github.com/sevahub/panditseva/internal/domain/geo"
	"github.com/sevahub/panditseva/internal/domain/search/request"
	"github.com/sevahub/panditseva/internal/domain/search/result"
)

// Pandit is the display model for one search hit. Money is rupees here;
// the stored paise value is converted exactly once, in this transformer.
type Pandit struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Online           bool       `json:"online"`
	City             string     `json:"city"`
	State            string     `json:"state"`
	Location         *geo.Point `json:"location,omitempty"`
	DistanceKm       *float64   `json:"distanceKm,omitempty"`
	Rating           float64    `json:"rating"`
	ReviewCount      int        `json:"reviewCount"`
	CompletedPujas   int        `json:"completedPujas"`
	ExperienceYears  int        `json:"experienceYears"`
	PujaTypes        []string   `json:"pujaTypes"`
	Languages        []string   `json:"languages"`
	Badges           []string   `json:"badges"`
	MaxTravelKm      int        `json:"maxTravelKm"`
	TravelModes      []string   `json:"travelModes"`
	SelfDrive        bool       `json:"selfDrive"`
	MaxSelfDriveKm   int        `json:"maxSelfDriveKm"`
	MinPriceRupees   int64      `json:"minPrice"`
	SamagriAvailable bool       `json:"samagriAvailable"`
	SamagriPujaTypes []string   `json:"samagriPujaTypes"`
	Bio              string     `json:"bio"`
	MinNoticeDays    int        `json:"minNoticeDays"`
	PhotoURL         string     `json:"photoUrl"`
	Score            float64    `json:"score"`
}

// transform shapes engine hits into display models: distance when both
// coordinates are known, paise back to whole rupees, engine score attached.
func transform(hits []result.Hit, customer *geo.Point) []Pandit {
	out := make([]Pandit, 0, len(hits))
	for _, hit := range hits {
		d := hit.Document
		p := Pandit{
			ID:               d.ID,
			Name:             d.Name,
			Online:           d.Online,
			City:             d.City,
			State:            d.State,
			Location:         d.Location,
			Rating:           d.Rating,
			ReviewCount:      d.ReviewCount,
			CompletedPujas:   d.CompletedPujas,
			ExperienceYears:  d.ExperienceYears,
			PujaTypes:        d.PujaTypes,
			Languages:        d.Languages,
			Badges:           d.Badges,
			MaxTravelKm:      d.MaxTravelKm,
			TravelModes:      d.TravelModes,
			SelfDrive:        d.SelfDrive,
			MaxSelfDriveKm:   d.MaxSelfDriveKm,
			MinPriceRupees:   paiseToRupees(d.MinPricePaise),
			SamagriAvailable: d.SamagriAvailable,
			SamagriPujaTypes: d.SamagriPujaTypes,
			Bio:              d.Bio,
			MinNoticeDays:    d.MinNoticeDays,
			PhotoURL:         d.PhotoURL,
			Score:            hit.Score,
		}
		if customer != nil && d.Location != nil {
			km := geo.Distance(*customer, *d.Location)
			p.DistanceKm = &km
		}
		out = append(out, p)
	}
	return out
}

// paiseToRupees converts to whole rupees, rounding to nearest.
func paiseToRupees(paise int64) int64 {
	return int64(math.Round(float64(paise) / paisePerRupee))
}

// orderResults applies the orderings the engine cannot express itself:
// distance mode sorts by computed customer distance (unknown distances
// last), relevance mode breaks score ties by rating then completed pujas.
func orderResults(pandits []Pandit, mode request.SortMode) {
	switch mode {
	case request.SortDistance:
		sort.SliceStable(pandits, func(i, j int) bool {
			di, dj := pandits[i].DistanceKm, pandits[j].DistanceKm
			if di == nil {
				return false
			}
			if dj == nil {
				return true
			}
			return *di < *dj
		})
	case request.SortRelevance:
		sort.SliceStable(pandits, func(i, j int) bool {
			if pandits[i].Score != pandits[j].Score {
				return pandits[i].Score > pandits[j].Score
			}
			if pandits[i].Rating != pandits[j].Rating {
				return pandits[i].Rating > pandits[j].Rating
			}
			return pandits[i].CompletedPujas > pandits[j].CompletedPujas
		})
	}
}

// withinTravelRange drops pandits whose own travel limit cannot cover the
// computed customer distance. Hits with no distance pass unchanged.
func withinTravelRange(pandits []Pandit) []Pandit {
	kept := pandits[:0]
	for _, p := range pandits {
		if p.DistanceKm != nil && p.MaxTravelKm > 0 && *p.DistanceKm > float64(p.MaxTravelKm) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
