package muhurat

import (
	"fmt"
	"sort"
	"time"
)

// MaxSuggestionRangeDays bounds the day-by-day scan in SuggestDates.
const MaxSuggestionRangeDays = 365

// TimeOfDay filters suggestion windows by their start hour.
type TimeOfDay string

const (
	// AnyTime applies no window filter.
	AnyTime TimeOfDay = "any"
	// Morning keeps windows starting before 12:00.
	Morning TimeOfDay = "morning"
	// Afternoon keeps windows starting in [12:00, 16:00).
	Afternoon TimeOfDay = "afternoon"
	// Evening keeps windows starting at or after 16:00.
	Evening TimeOfDay = "evening"
)

// IsValid reports whether t is a known time-of-day preference.
func (t TimeOfDay) IsValid() bool {
	switch t {
	case AnyTime, Morning, Afternoon, Evening:
		return true
	}
	return false
}

func (t TimeOfDay) keeps(w Window) bool {
	switch t {
	case Morning:
		return w.StartHour < 12
	case Afternoon:
		return w.StartHour >= 12 && w.StartHour < 16
	case Evening:
		return w.StartHour >= 16
	}
	return true
}

// DaySummary is one calendar cell: how many of the configured rituals are
// auspicious on the date and whether any of them peaks at Excellent.
type DaySummary struct {
	Date         string `json:"date"`
	PujaCount    int    `json:"pujaCount"`
	HasExcellent bool   `json:"hasExcellent"`
}

// BuildMonth evaluates every ritual type for every day of the month.
// The result always has exactly daysIn(year, month) entries.
func BuildMonth(year int, month time.Month) []DaySummary {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := daysIn(year, month)

	out := make([]DaySummary, 0, days)
	for day := 0; day < days; day++ {
		date := first.AddDate(0, 0, day)
		summary := DaySummary{Date: date.Format(time.DateOnly)}

		for pujaType := range ruleTable {
			res := Evaluate(pujaType, date)
			if res == nil {
				continue
			}
			summary.PujaCount++
			if res.BestWindow != nil && res.BestWindow.Quality == Excellent {
				summary.HasExcellent = true
			}
		}
		out = append(out, summary)
	}
	return out
}

func daysIn(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Suggestion is one ranked auspicious date for a ritual.
type Suggestion struct {
	Date       string   `json:"date"`
	Quality    Quality  `json:"quality"`
	BestWindow Window   `json:"bestWindow"`
	Windows    []Window `json:"windows"`
	Tithi      int      `json:"tithi"`
	TithiName  string   `json:"tithiName"`
	Vara       int      `json:"vara"`
	VaraName   string   `json:"varaName"`
	Reason     string   `json:"reason"`
}

// SuggestDates scans [from, to] day by day and returns up to maxSuggestions
// auspicious dates for pujaType, filtered by time-of-day preference and
// ranked Excellent-first with window count as the tie-breaker.
// An empty result is a valid answer, not an error.
func SuggestDates(
	pujaType string, from, to time.Time,
	pref TimeOfDay, maxSuggestions int,
) []Suggestion {
	if maxSuggestions <= 0 {
		return []Suggestion{}
	}
	if !pref.IsValid() {
		pref = AnyTime
	}

	from = atMidnight(from)
	to = atMidnight(to)

	suggestions := []Suggestion{}
	for date, scanned := from, 0; !date.After(to) && scanned < MaxSuggestionRangeDays; date, scanned = date.AddDate(0, 0, 1), scanned+1 {
		res := Evaluate(pujaType, date)
		if res == nil {
			continue
		}

		kept := make([]Window, 0, len(res.Windows))
		for _, w := range res.Windows {
			if pref.keeps(w) {
				kept = append(kept, w)
			}
		}
		if len(kept) == 0 {
			continue
		}

		best := bestWindow(kept)
		suggestions = append(suggestions, Suggestion{
			Date:       res.Date,
			Quality:    best.Quality,
			BestWindow: *best,
			Windows:    kept,
			Tithi:      res.Tithi,
			TithiName:  res.TithiName,
			Vara:       res.Vara,
			VaraName:   res.VaraName,
			Reason:     suggestionReason(res, best),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		ri, rj := suggestions[i].Quality.Rank(), suggestions[j].Quality.Rank()
		if ri != rj {
			return ri < rj
		}
		return len(suggestions[i].Windows) > len(suggestions[j].Windows)
	})

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

func suggestionReason(res *Result, best *Window) string {
	return fmt.Sprintf("%s on %s (%s tithi) with an %s %s muhurat",
		res.PujaName, res.VaraName, res.TithiName, best.Quality, best.Name)
}
