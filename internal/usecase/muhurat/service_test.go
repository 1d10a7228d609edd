package muhurat

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/sevahub/panditseva/internal/domain"
	"github.com/sevahub/panditseva/internal/muhurat"
)

func assertValidationField(t *testing.T, err error, field string) {
	t.Helper()
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := vErr.Fields[field]; !ok {
		t.Errorf("expected field %q in %v", field, vErr.Fields)
	}
}

// --- Monthly ---

func TestMonthly_HappyPath(t *testing.T) {
	svc, fc := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Monthly(ctx, 2024, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Year != 2024 || resp.Month != 6 {
		t.Errorf("unexpected header: %+v", resp)
	}
	if len(resp.Days) != 30 {
		t.Fatalf("expected 30 days, got %d", len(resp.Days))
	}
	if len(fc.sets) != 1 || fc.sets[0] != "muhurat:monthly:2024-06" {
		t.Errorf("unexpected cache writes: %v", fc.sets)
	}
}

func TestMonthly_CacheHitMatchesRecompute(t *testing.T) {
	svc, fc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Monthly(ctx, 2024, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Monthly(ctx, 2024, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("cached answer differs from computed answer")
	}
	if len(fc.sets) != 1 {
		t.Errorf("second call should hit the cache, writes: %v", fc.sets)
	}
}

func TestMonthly_UndecodableCachePayload(t *testing.T) {
	svc, fc := newTestService(t)
	fc.entries["muhurat:monthly:2024-06"] = "{not json"

	resp, err := svc.Monthly(context.Background(), 2024, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Days) != 30 {
		t.Error("corrupt payload should be recomputed")
	}
}

func TestMonthly_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Monthly(ctx, 1899, 6)
	assertValidationField(t, err, "year")

	_, err = svc.Monthly(ctx, 2101, 6)
	assertValidationField(t, err, "year")

	_, err = svc.Monthly(ctx, 2024, 13)
	assertValidationField(t, err, "month")

	_, err = svc.Monthly(ctx, 2024, 0)
	assertValidationField(t, err, "month")
}

// --- Date ---

func TestDate_AllTypes(t *testing.T) {
	svc, fc := newTestService(t)

	detail, err := svc.Date(context.Background(), "2024-06-05", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Date != "2024-06-05" {
		t.Errorf("unexpected date %q", detail.Date)
	}
	if detail.Tithi < 1 || detail.Tithi > 30 {
		t.Errorf("tithi out of range: %d", detail.Tithi)
	}
	if detail.TithiName == "" || detail.VaraName == "" {
		t.Errorf("names missing: %+v", detail)
	}
	if detail.Results == nil {
		t.Error("results must never be nil")
	}
	for _, res := range detail.Results {
		if !muhurat.KnownPujaType(res.PujaType) {
			t.Errorf("unknown puja type in results: %q", res.PujaType)
		}
	}
	if len(fc.sets) != 1 || fc.sets[0] != "muhurat:date:2024-06-05" {
		t.Errorf("unexpected cache writes: %v", fc.sets)
	}
}

func TestDate_SingleType(t *testing.T) {
	svc, fc := newTestService(t)

	detail, err := svc.Date(context.Background(), "2024-06-05", "havan")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, res := range detail.Results {
		if res.PujaType != "havan" {
			t.Errorf("unexpected puja type %q", res.PujaType)
		}
	}
	if len(fc.sets) != 1 || fc.sets[0] != "muhurat:date:2024-06-05:havan" {
		t.Errorf("unexpected cache writes: %v", fc.sets)
	}
}

func TestDate_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Date(ctx, "05-06-2024", "")
	assertValidationField(t, err, "date")

	_, err = svc.Date(ctx, "1899-06-05", "")
	assertValidationField(t, err, "year")

	_, err = svc.Date(ctx, "2024-06-05", "unknown-ritual")
	assertValidationField(t, err, "pujaType")
}

// --- Suggest ---

func TestSuggest_HappyPath(t *testing.T) {
	svc, _ := newTestService(t)

	suggestions, err := svc.Suggest(context.Background(), &SuggestRequest{
		PujaType:  "havan",
		DateRange: DateRange{From: "2024-06-01", To: "2024-06-30"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if suggestions == nil {
		t.Fatal("suggestions must never be nil")
	}
	if len(suggestions) > defaultSuggestions {
		t.Errorf("expected at most %d suggestions, got %d", defaultSuggestions, len(suggestions))
	}
	for _, s := range suggestions {
		if s.Date == "" || s.Reason == "" {
			t.Errorf("incomplete suggestion: %+v", s)
		}
	}
}

func TestSuggest_MaxSuggestionsCap(t *testing.T) {
	svc, _ := newTestService(t)

	suggestions, err := svc.Suggest(context.Background(), &SuggestRequest{
		PujaType:       "havan",
		DateRange:      DateRange{From: "2024-01-01", To: "2024-12-31"},
		MaxSuggestions: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(suggestions) > 3 {
		t.Errorf("expected at most 3 suggestions, got %d", len(suggestions))
	}
}

func TestSuggest_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Suggest(ctx, &SuggestRequest{
		PujaType:  "unknown-ritual",
		DateRange: DateRange{From: "2024-06-01", To: "2024-06-30"},
	})
	assertValidationField(t, err, "pujaType")

	_, err = svc.Suggest(ctx, &SuggestRequest{
		PujaType:  "havan",
		DateRange: DateRange{From: "not-a-date", To: "2024-06-30"},
	})
	assertValidationField(t, err, "dateRange.from")

	_, err = svc.Suggest(ctx, &SuggestRequest{
		PujaType:  "havan",
		DateRange: DateRange{From: "2024-06-30", To: "2024-06-01"},
	})
	assertValidationField(t, err, "dateRange")

	_, err = svc.Suggest(ctx, &SuggestRequest{
		PujaType:  "havan",
		DateRange: DateRange{From: "2024-01-01", To: "2025-06-01"},
	})
	assertValidationField(t, err, "dateRange")

	_, err = svc.Suggest(ctx, &SuggestRequest{
		PujaType:       "havan",
		DateRange:      DateRange{From: "2024-06-01", To: "2024-06-30"},
		MaxSuggestions: 51,
	})
	assertValidationField(t, err, "maxSuggestions")

	_, err = svc.Suggest(ctx, &SuggestRequest{
		PujaType:       "havan",
		DateRange:      DateRange{From: "2024-06-01", To: "2024-06-30"},
		MaxSuggestions: -1,
	})
	assertValidationField(t, err, "maxSuggestions")
}
