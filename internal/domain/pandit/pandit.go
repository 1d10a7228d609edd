package pandit

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sevahub/panditseva/internal/domain/geo"
)

// VerificationState is the KYC state of a professional profile.
type VerificationState string

const (
	// StatePending means KYC review has not completed.
	StatePending VerificationState = "pending"
	// StateVerified means the profile passed KYC review.
	StateVerified VerificationState = "verified"
	// StateRejected means KYC review failed.
	StateRejected VerificationState = "rejected"
	// StateSuspended means the profile was taken down after verification.
	StateSuspended VerificationState = "suspended"
)

// IsValid reports whether s is a known verification state.
func (s VerificationState) IsValid() bool {
	switch s {
	case StatePending, StateVerified, StateRejected, StateSuspended:
		return true
	}
	return false
}

// Searchable index field names. The FT schema, the document field map and the
// query compiler all refer to these constants.
const (
	FieldName         = "name"
	FieldVerification = "verification_status"
	FieldOnline       = "online"
	FieldLocation     = "location"
	FieldCity         = "city"
	FieldState        = "state"
	FieldRating       = "rating"
	FieldReviewCount  = "review_count"
	FieldCompleted    = "completed_pujas"
	FieldExperience   = "experience_years"
	FieldPujaTypes    = "puja_types"
	FieldLanguages    = "languages"
	FieldBadges       = "badges"
	FieldMaxTravelKm  = "max_travel_km"
	FieldTravelModes  = "travel_modes"
	FieldSelfDrive    = "self_drive"
	FieldSelfDriveKm  = "max_self_drive_km"
	FieldMinPrice     = "min_price_paise"
	FieldSamagri      = "samagri_available"
	FieldSamagriTypes = "samagri_puja_types"
	FieldBio          = "bio"
	FieldUnavailable  = "unavailable_dates"
	FieldMinNotice    = "min_notice_days"
	FieldPhotoURL     = "photo_url"
	FieldUpdatedAt    = "updated_at"
)

// listSeparator is the TAG separator for multi-valued fields.
const listSeparator = ","

// Document is the denormalized search projection of one verified pandit.
// It is derived and disposable: the profile store stays authoritative and
// the document can be rebuilt at any time.
type Document struct {
	ID                string
	Name              string
	VerificationState VerificationState
	Online            bool
	Location          *geo.Point // nil when home coordinates are unknown
	City              string
	State             string
	Rating            float64
	ReviewCount       int
	CompletedPujas    int
	ExperienceYears   int
	PujaTypes         []string
	Languages         []string
	Badges            []string
	MaxTravelKm       int
	TravelModes       []string
	SelfDrive         bool
	MaxSelfDriveKm    int
	MinPricePaise     int64
	SamagriAvailable  bool
	SamagriPujaTypes  []string
	Bio               string
	UnavailableDates  []string // ISO dates, deduplicated
	MinNoticeDays     int
	PhotoURL          string
	UpdatedAt         time.Time
}

// Fields flattens the document into hash fields for indexing.
func (d *Document) Fields() map[string]string {
	m := map[string]string{
		FieldName:         d.Name,
		FieldVerification: string(d.VerificationState),
		FieldOnline:       strconv.FormatBool(d.Online),
		FieldCity:         d.City,
		FieldState:        d.State,
		FieldRating:       strconv.FormatFloat(d.Rating, 'f', -1, 64),
		FieldReviewCount:  strconv.Itoa(d.ReviewCount),
		FieldCompleted:    strconv.Itoa(d.CompletedPujas),
		FieldExperience:   strconv.Itoa(d.ExperienceYears),
		FieldPujaTypes:    strings.Join(d.PujaTypes, listSeparator),
		FieldLanguages:    strings.Join(d.Languages, listSeparator),
		FieldBadges:       strings.Join(d.Badges, listSeparator),
		FieldMaxTravelKm:  strconv.Itoa(d.MaxTravelKm),
		FieldTravelModes:  strings.Join(d.TravelModes, listSeparator),
		FieldSelfDrive:    strconv.FormatBool(d.SelfDrive),
		FieldSelfDriveKm:  strconv.Itoa(d.MaxSelfDriveKm),
		FieldMinPrice:     strconv.FormatInt(d.MinPricePaise, 10),
		FieldSamagri:      strconv.FormatBool(d.SamagriAvailable),
		FieldSamagriTypes: strings.Join(d.SamagriPujaTypes, listSeparator),
		FieldBio:          d.Bio,
		FieldUnavailable:  strings.Join(d.UnavailableDates, listSeparator),
		FieldMinNotice:    strconv.Itoa(d.MinNoticeDays),
		FieldPhotoURL:     d.PhotoURL,
		FieldUpdatedAt:    strconv.FormatInt(d.UpdatedAt.Unix(), 10),
	}
	if d.Location != nil {
		// GEO fields store "lon,lat"
		m[FieldLocation] = fmt.Sprintf("%g,%g", d.Location.Lon, d.Location.Lat)
	}
	return m
}

// FromFields rebuilds a Document from hash fields returned by the engine.
// Unknown or malformed values fall back to safe zero defaults.
func FromFields(id string, fields map[string]string) Document {
	d := Document{
		ID:                id,
		Name:              fields[FieldName],
		VerificationState: VerificationState(fields[FieldVerification]),
		Online:            fields[FieldOnline] == "true",
		City:              fields[FieldCity],
		State:             fields[FieldState],
		Rating:            parseFloat(fields[FieldRating]),
		ReviewCount:       parseInt(fields[FieldReviewCount]),
		CompletedPujas:    parseInt(fields[FieldCompleted]),
		ExperienceYears:   parseInt(fields[FieldExperience]),
		PujaTypes:         splitList(fields[FieldPujaTypes]),
		Languages:         splitList(fields[FieldLanguages]),
		Badges:            splitList(fields[FieldBadges]),
		MaxTravelKm:       parseInt(fields[FieldMaxTravelKm]),
		TravelModes:       splitList(fields[FieldTravelModes]),
		SelfDrive:         fields[FieldSelfDrive] == "true",
		MaxSelfDriveKm:    parseInt(fields[FieldSelfDriveKm]),
		MinPricePaise:     parseInt64(fields[FieldMinPrice]),
		SamagriAvailable:  fields[FieldSamagri] == "true",
		SamagriPujaTypes:  splitList(fields[FieldSamagriTypes]),
		Bio:               fields[FieldBio],
		UnavailableDates:  splitList(fields[FieldUnavailable]),
		MinNoticeDays:     parseInt(fields[FieldMinNotice]),
		PhotoURL:          fields[FieldPhotoURL],
	}
	if ts := parseInt64(fields[FieldUpdatedAt]); ts > 0 {
		d.UpdatedAt = time.Unix(ts, 0).UTC()
	}
	if raw, ok := fields[FieldLocation]; ok {
		if p := parsePoint(raw); p != nil {
			d.Location = p
		}
	}
	return d
}

func parsePoint(raw string) *geo.Point {
	lonStr, latStr, ok := strings.Cut(raw, ",")
	if !ok {
		return nil
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return nil
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return nil
	}
	if !geo.ValidateCoordinates(lat, lon) {
		return nil
	}
	return &geo.Point{Lat: lat, Lon: lon}
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, listSeparator)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
