package muhurat

import (
	"testing"
	"time"
)

func TestBuildMonth_DayCounts(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		days  int
	}{
		{2024, time.February, 29}, // leap year
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.January, 31},
	}
	for _, tc := range tests {
		got := BuildMonth(tc.year, tc.month)
		if len(got) != tc.days {
			t.Errorf("BuildMonth(%d, %s) = %d entries, want %d", tc.year, tc.month, len(got), tc.days)
		}
	}
}

func TestBuildMonth_EntryShape(t *testing.T) {
	days := BuildMonth(2024, time.March)
	for i, day := range days {
		want := time.Date(2024, time.March, i+1, 0, 0, 0, 0, time.UTC).Format(time.DateOnly)
		if day.Date != want {
			t.Errorf("entry %d date = %q, want %q", i, day.Date, want)
		}
		if day.PujaCount < 0 {
			t.Errorf("entry %d pujaCount = %d, want >= 0", i, day.PujaCount)
		}
		if day.HasExcellent && day.PujaCount == 0 {
			t.Errorf("entry %d flags excellent with zero auspicious pujas", i)
		}
	}
}

func TestSuggestDates_HavanFirstQuarter(t *testing.T) {
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)

	got := SuggestDates("havan", from, to, AnyTime, 5)
	if len(got) == 0 || len(got) > 5 {
		t.Fatalf("SuggestDates(havan) = %d entries, want 1..5", len(got))
	}
	for _, s := range got {
		if s.BestWindow.Name == "" {
			t.Error("suggestion missing best window")
		}
		if s.Reason == "" {
			t.Error("suggestion missing reason")
		}
	}
}

func TestSuggestDates_NeverExceedsMax(t *testing.T) {
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)

	for _, maxN := range []int{1, 3, 10} {
		got := SuggestDates("havan", from, to, AnyTime, maxN)
		if len(got) > maxN {
			t.Errorf("maxSuggestions=%d returned %d entries", maxN, len(got))
		}
	}
}

func TestSuggestDates_ExcellentSortsFirst(t *testing.T) {
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)

	got := SuggestDates("satyanarayan", from, to, AnyTime, 50)
	seenGood := false
	for _, s := range got {
		if s.Quality == Good {
			seenGood = true
		}
		if seenGood && s.Quality == Excellent {
			t.Fatal("excellent suggestion sorted after a good one")
		}
	}
}

func TestSuggestDates_MorningFilter(t *testing.T) {
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)

	got := SuggestDates("havan", from, to, Morning, 20)
	if len(got) == 0 {
		t.Fatal("expected morning havan suggestions in Q1 2024")
	}
	for _, s := range got {
		for _, w := range s.Windows {
			if w.StartHour >= 12 {
				t.Errorf("morning filter kept window %q starting at hour %d", w.Name, w.StartHour)
			}
		}
	}
}

func TestSuggestDates_EveningOnlyRitual(t *testing.T) {
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)

	// lakshmi-puja's evening window is its excellent one
	got := SuggestDates("lakshmi-puja", from, to, Evening, 10)
	for _, s := range got {
		if s.Quality != Excellent {
			t.Errorf("evening lakshmi-puja suggestion quality = %q, want excellent", s.Quality)
		}
		if len(s.Windows) != 1 {
			t.Errorf("evening filter kept %d windows, want 1", len(s.Windows))
		}
	}
}

func TestSuggestDates_EmptyRangeIsNotError(t *testing.T) {
	// vivah is blocked through all of July
	from := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.July, 31, 0, 0, 0, 0, time.UTC)

	got := SuggestDates("vivah", from, to, AnyTime, 10)
	if len(got) != 0 {
		t.Errorf("expected no vivah suggestions inside blocked month, got %d", len(got))
	}
	if got == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestSuggestDates_UnknownTypeEmpty(t *testing.T) {
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	got := SuggestDates("bogus", from, from.AddDate(0, 1, 0), AnyTime, 5)
	if len(got) != 0 {
		t.Errorf("unknown puja type returned %d suggestions", len(got))
	}
}

func TestTimeOfDay_IsValid(t *testing.T) {
	for _, pref := range []TimeOfDay{AnyTime, Morning, Afternoon, Evening} {
		if !pref.IsValid() {
			t.Errorf("%q should be valid", pref)
		}
	}
	if TimeOfDay("night").IsValid() {
		t.Error("night should be invalid")
	}
}
