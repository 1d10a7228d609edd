// Package muhurat exposes the ritual-timing calendar behind a read-through
// cache. Every answer is a pure function of its inputs, so a cached payload
// and a recomputed one are always identical.
package muhurat

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sevahub/panditseva/internal/domain"
	"github.com/sevahub/panditseva/internal/logger"
	"github.com/sevahub/panditseva/internal/muhurat"
)

const (
	minYear = 1900
	maxYear = 2100

	defaultSuggestions = 10
	maxSuggestions     = 50
)

// Service computes and caches muhurat calendars.
type Service struct {
	cache Cache
}

// New creates a muhurat service.
func New(cache Cache) *Service {
	return &Service{cache: cache}
}

// MonthlyResponse is the calendar view of one month.
type MonthlyResponse struct {
	Year  int                  `json:"year"`
	Month int                  `json:"month"`
	Days  []muhurat.DaySummary `json:"days"`
}

// Monthly returns the auspicious-day summary for every day of the month.
func (s *Service) Monthly(ctx context.Context, year, month int) (*MonthlyResponse, error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("muhurat:monthly:%04d-%02d", year, month)
	var resp MonthlyResponse
	if s.fromCache(ctx, key, &resp) {
		return &resp, nil
	}

	resp = MonthlyResponse{
		Year:  year,
		Month: month,
		Days:  muhurat.BuildMonth(year, time.Month(month)),
	}
	s.toCache(ctx, key, &resp)
	return &resp, nil
}

// DateDetail is the full muhurat picture for one date. Results holds one
// entry per ritual type that is auspicious on the date; an empty list means
// the date suits none of them.
type DateDetail struct {
	Date      string           `json:"date"`
	Tithi     int              `json:"tithi"`
	TithiName string           `json:"tithiName"`
	Vara      int              `json:"vara"`
	VaraName  string           `json:"varaName"`
	Results   []muhurat.Result `json:"results"`
}

// Date evaluates one date, either for a single ritual type or for all of
// them.
func (s *Service) Date(ctx context.Context, date, pujaType string) (*DateDetail, error) {
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return nil, domain.NewValidationError("date", "must be YYYY-MM-DD")
	}
	if err := validateYearMonth(day.Year(), int(day.Month())); err != nil {
		return nil, err
	}
	if pujaType != "" && !muhurat.KnownPujaType(pujaType) {
		return nil, domain.NewValidationError("pujaType", "unknown puja type")
	}

	key := "muhurat:date:" + date
	if pujaType != "" {
		key += ":" + pujaType
	}
	var detail DateDetail
	if s.fromCache(ctx, key, &detail) {
		return &detail, nil
	}

	detail = DateDetail{
		Date:      date,
		Tithi:     muhurat.Tithi(day),
		TithiName: muhurat.TithiName(muhurat.Tithi(day)),
		Vara:      muhurat.Vara(day),
		VaraName:  muhurat.VaraName(muhurat.Vara(day)),
		Results:   []muhurat.Result{},
	}

	types := muhurat.PujaTypes()
	if pujaType != "" {
		types = []string{pujaType}
	}
	for _, t := range types {
		if res := muhurat.Evaluate(t, day); res != nil {
			detail.Results = append(detail.Results, *res)
		}
	}

	s.toCache(ctx, key, &detail)
	return &detail, nil
}

// DateRange bounds a suggestion scan.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SuggestRequest asks for ranked auspicious dates.
type SuggestRequest struct {
	PujaType           string            `json:"pujaType"`
	DateRange          DateRange         `json:"dateRange"`
	PreferredTimeOfDay muhurat.TimeOfDay `json:"preferredTimeOfDay"`
	MaxSuggestions     int               `json:"maxSuggestions"`
}

// Suggest returns ranked auspicious dates in the requested range. An empty
// list is a valid answer.
func (s *Service) Suggest(ctx context.Context, req *SuggestRequest) ([]muhurat.Suggestion, error) {
	fields := map[string]string{}

	if !muhurat.KnownPujaType(req.PujaType) {
		fields["pujaType"] = "unknown puja type"
	}
	from, err := time.Parse(time.DateOnly, req.DateRange.From)
	if err != nil {
		fields["dateRange.from"] = "must be YYYY-MM-DD"
	}
	to, err := time.Parse(time.DateOnly, req.DateRange.To)
	if err != nil {
		fields["dateRange.to"] = "must be YYYY-MM-DD"
	}
	if len(fields) == 0 {
		if to.Before(from) {
			fields["dateRange"] = "to must not precede from"
		} else if int(to.Sub(from).Hours()/24) > muhurat.MaxSuggestionRangeDays {
			fields["dateRange"] = fmt.Sprintf("must span at most %d days", muhurat.MaxSuggestionRangeDays)
		}
	}
	if req.PreferredTimeOfDay == "" {
		req.PreferredTimeOfDay = muhurat.AnyTime
	}
	if !req.PreferredTimeOfDay.IsValid() {
		fields["preferredTimeOfDay"] = "must be any, morning, afternoon or evening"
	}
	if req.MaxSuggestions == 0 {
		req.MaxSuggestions = defaultSuggestions
	}
	if req.MaxSuggestions < 1 || req.MaxSuggestions > maxSuggestions {
		fields["maxSuggestions"] = fmt.Sprintf("must be in [1,%d]", maxSuggestions)
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationErrors(fields)
	}

	return muhurat.SuggestDates(req.PujaType, from, to, req.PreferredTimeOfDay, req.MaxSuggestions), nil
}

func validateYearMonth(year, month int) error {
	fields := map[string]string{}
	if year < minYear || year > maxYear {
		fields["year"] = fmt.Sprintf("must be in [%d,%d]", minYear, maxYear)
	}
	if month < 1 || month > 12 {
		fields["month"] = "must be in [1,12]"
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// fromCache decodes a cached payload into v. A payload that no longer
// decodes is treated as a miss and recomputed.
func (s *Service) fromCache(ctx context.Context, key string, v any) bool {
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		logger.FromContext(ctx).Warn("discarding undecodable cache payload",
			zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *Service) toCache(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		logger.FromContext(ctx).Warn("cache payload marshal failed",
			zap.String("key", key), zap.Error(err))
		return
	}
	s.cache.Set(ctx, key, string(raw))
}
