package pandit

import (
	"reflect"
	"testing"
	"time"

	"github.com/sevahub/panditseva/internal/domain/geo"
)

func TestVerificationState_IsValid(t *testing.T) {
	for _, s := range []VerificationState{StatePending, StateVerified, StateRejected, StateSuspended} {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if VerificationState("unknown").IsValid() {
		t.Error("unknown state should be invalid")
	}
	if VerificationState("").IsValid() {
		t.Error("empty state should be invalid")
	}
}

func TestFieldsRoundTrip(t *testing.T) {
	doc := Document{
		ID:                "p1",
		Name:              "Ramesh Shastri",
		VerificationState: StateVerified,
		Online:            true,
		Location:          &geo.Point{Lat: 28.6139, Lon: 77.2090},
		City:              "new delhi",
		State:             "delhi",
		Rating:            4.8,
		ReviewCount:       120,
		CompletedPujas:    340,
		ExperienceYears:   15,
		PujaTypes:         []string{"vivah", "havan"},
		Languages:         []string{"hindi", "sanskrit"},
		Badges:            []string{"top-rated"},
		MaxTravelKm:       50,
		TravelModes:       []string{"self", "customer_pickup"},
		SelfDrive:         true,
		MaxSelfDriveKm:    30,
		MinPricePaise:     250000,
		SamagriAvailable:  true,
		SamagriPujaTypes:  []string{"havan"},
		Bio:               "Vedic scholar from Varanasi.",
		UnavailableDates:  []string{"2024-06-01", "2024-06-15"},
		MinNoticeDays:     2,
		PhotoURL:          "https://cdn.example.com/p1.jpg",
		UpdatedAt:         time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC),
	}

	got := FromFields("p1", doc.Fields())

	if !reflect.DeepEqual(doc, got) {
		t.Errorf("round trip mismatch:\nin:  %+v\nout: %+v", doc, got)
	}
}

func TestFields_NilLocationOmitted(t *testing.T) {
	doc := Document{ID: "p1", Name: "Ramesh"}

	fields := doc.Fields()
	if _, ok := fields[FieldLocation]; ok {
		t.Error("nil location should not produce a location field")
	}

	got := FromFields("p1", fields)
	if got.Location != nil {
		t.Errorf("expected nil location, got %+v", got.Location)
	}
}

func TestFields_LocationIsLonLat(t *testing.T) {
	doc := Document{
		ID:       "p1",
		Location: &geo.Point{Lat: 28.6139, Lon: 77.2090},
	}

	if got := doc.Fields()[FieldLocation]; got != "77.209,28.6139" {
		t.Errorf("geo field must be lon,lat: got %q", got)
	}
}

func TestFromFields_MalformedValues(t *testing.T) {
	doc := FromFields("p1", map[string]string{
		FieldRating:      "not-a-number",
		FieldReviewCount: "many",
		FieldMinPrice:    "",
		FieldOnline:      "yes",
		FieldLocation:    "garbage",
		FieldUpdatedAt:   "-5",
	})

	if doc.Rating != 0 || doc.ReviewCount != 0 || doc.MinPricePaise != 0 {
		t.Errorf("malformed numerics should default to zero: %+v", doc)
	}
	if doc.Online {
		t.Error("non-true online flag should be false")
	}
	if doc.Location != nil {
		t.Error("malformed location should be nil")
	}
	if !doc.UpdatedAt.IsZero() {
		t.Error("non-positive timestamp should leave UpdatedAt zero")
	}
}

func TestFromFields_OutOfRangeLocation(t *testing.T) {
	doc := FromFields("p1", map[string]string{
		FieldLocation: "200,95",
	})
	if doc.Location != nil {
		t.Error("out-of-range coordinates should be dropped")
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"hindi", []string{"hindi"}},
		{"hindi,tamil", []string{"hindi", "tamil"}},
		{"hindi, tamil ,", []string{"hindi", "tamil"}},
	}
	for _, tc := range tests {
		if got := splitList(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("splitList(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
