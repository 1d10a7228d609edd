// Package profile reads the authoritative pandit data from MongoDB and
// assembles the joined projection that the indexer turns into search
// documents.
package profile

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/sevahub/panditseva/internal/domain"
	"github.com/sevahub/panditseva/internal/domain/geo"
	"github.com/sevahub/panditseva/internal/domain/pandit"
)

const (
	collProfiles    = "pandit_profiles"
	collTravel      = "travel_preferences"
	collBlocked     = "blocked_dates"
	collPricing     = "pricing"
	defaultLanguage = "hindi"
)

// Repository reads joined pandit projections from MongoDB.
type Repository struct {
	db *mongo.Database
}

// NewRepository returns a Repository over the given database handle.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{db: db}
}

// Ping verifies the MongoDB connection.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, readpref.Primary())
}

// profileRecord is the stored shape of a pandit profile.
type profileRecord struct {
	ID                string    `bson:"_id"`
	Name              string    `bson:"name"`
	VerificationState string    `bson:"verification_status"`
	Online            bool      `bson:"online"`
	Latitude          *float64  `bson:"latitude,omitempty"`
	Longitude         *float64  `bson:"longitude,omitempty"`
	City              string    `bson:"city"`
	State             string    `bson:"state"`
	Rating            float64   `bson:"rating"`
	ReviewCount       int       `bson:"review_count"`
	CompletedPujas    int       `bson:"completed_pujas"`
	ExperienceYears   int       `bson:"experience_years"`
	PujaTypes         []string  `bson:"puja_types"`
	Languages         []string  `bson:"languages"`
	Badges            []string  `bson:"badges"`
	Bio               string    `bson:"bio"`
	BlackoutDates     []string  `bson:"blackout_dates"`
	MinNoticeDays     int       `bson:"min_notice_days"`
	PhotoURL          string    `bson:"photo_url"`
	UpdatedAt         time.Time `bson:"updated_at"`
}

type travelRecord struct {
	PanditID       string   `bson:"pandit_id"`
	MaxTravelKm    int      `bson:"max_travel_km"`
	Modes          []string `bson:"modes"`
	SelfDrive      bool     `bson:"self_drive"`
	MaxSelfDriveKm int      `bson:"max_self_drive_km"`
}

type blockedRecord struct {
	PanditID string `bson:"pandit_id"`
	Date     string `bson:"date"`
}

type pricingRecord struct {
	PanditID        string `bson:"pandit_id"`
	PujaType        string `bson:"puja_type"`
	PricePaise      int64  `bson:"price_paise"`
	SamagriIncluded bool   `bson:"samagri_included"`
	Active          bool   `bson:"active"`
}

// FindProjection loads one pandit's joined projection. Missing sibling
// records (travel, pricing, blocked dates) degrade to safe defaults; a
// missing profile is domain.ErrNotFound.
func (r *Repository) FindProjection(ctx context.Context, id string) (*pandit.Document, error) {
	var prof profileRecord
	err := r.db.Collection(collProfiles).FindOne(ctx, bson.M{"_id": id}).Decode(&prof)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("pandit profile %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load pandit profile %s: %w", id, err)
	}

	var travel travelRecord
	err = r.db.Collection(collTravel).FindOne(ctx, bson.M{"pandit_id": id}).Decode(&travel)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("load travel preferences %s: %w", id, err)
	}

	blocked, err := r.findBlockedDates(ctx, id)
	if err != nil {
		return nil, err
	}

	pricing, err := r.findActivePricing(ctx, id)
	if err != nil {
		return nil, err
	}

	return buildDocument(&prof, &travel, blocked, pricing), nil
}

func (r *Repository) findBlockedDates(ctx context.Context, id string) ([]string, error) {
	cur, err := r.db.Collection(collBlocked).Find(ctx, bson.M{"pandit_id": id})
	if err != nil {
		return nil, fmt.Errorf("load blocked dates %s: %w", id, err)
	}
	defer cur.Close(ctx)

	var dates []string
	for cur.Next(ctx) {
		var rec blockedRecord
		if err := cur.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode blocked date %s: %w", id, err)
		}
		dates = append(dates, rec.Date)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate blocked dates %s: %w", id, err)
	}
	return dates, nil
}

func (r *Repository) findActivePricing(ctx context.Context, id string) ([]pricingRecord, error) {
	cur, err := r.db.Collection(collPricing).Find(ctx, bson.M{"pandit_id": id, "active": true})
	if err != nil {
		return nil, fmt.Errorf("load pricing %s: %w", id, err)
	}
	defer cur.Close(ctx)

	var recs []pricingRecord
	for cur.Next(ctx) {
		var rec pricingRecord
		if err := cur.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode pricing %s: %w", id, err)
		}
		recs = append(recs, rec)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate pricing %s: %w", id, err)
	}
	return recs, nil
}

// VerifiedIDs returns the ids of every profile currently in the verified
// state, in a stable order.
func (r *Repository) VerifiedIDs(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.M{"_id": 1})
	cur, err := r.db.Collection(collProfiles).Find(ctx,
		bson.M{"verification_status": string(pandit.StateVerified)}, opts)
	if err != nil {
		return nil, fmt.Errorf("list verified pandits: %w", err)
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var rec struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode verified pandit id: %w", err)
		}
		ids = append(ids, rec.ID)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate verified pandits: %w", err)
	}
	return ids, nil
}

// StreamVerified walks every verified profile's joined projection, calling
// fn once per pandit with either the document or the projection error. A
// single bad record never stops the walk; only a failing id stream does.
func (r *Repository) StreamVerified(ctx context.Context, fn func(id string, doc *pandit.Document, err error)) error {
	ids, err := r.VerifiedIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc, err := r.FindProjection(ctx, id)
		fn(id, doc, err)
	}
	return nil
}

// buildDocument assembles the search projection with the documented
// defaults: nil geo unless both coordinates parse, deduplicated union of
// blackout and blocked dates, price 0 without an active offering, and a
// single default language instead of none.
func buildDocument(prof *profileRecord, travel *travelRecord, blocked []string, pricing []pricingRecord) *pandit.Document {
	doc := &pandit.Document{
		ID:                prof.ID,
		Name:              prof.Name,
		VerificationState: pandit.VerificationState(prof.VerificationState),
		Online:            prof.Online,
		City:              prof.City,
		State:             prof.State,
		Rating:            prof.Rating,
		ReviewCount:       prof.ReviewCount,
		CompletedPujas:    prof.CompletedPujas,
		ExperienceYears:   prof.ExperienceYears,
		PujaTypes:         emptyIfNil(prof.PujaTypes),
		Languages:         prof.Languages,
		Badges:            emptyIfNil(prof.Badges),
		MaxTravelKm:       travel.MaxTravelKm,
		TravelModes:       emptyIfNil(travel.Modes),
		SelfDrive:         travel.SelfDrive,
		MaxSelfDriveKm:    travel.MaxSelfDriveKm,
		Bio:               prof.Bio,
		UnavailableDates:  normalizeDates(prof.BlackoutDates, blocked),
		MinNoticeDays:     prof.MinNoticeDays,
		PhotoURL:          prof.PhotoURL,
		UpdatedAt:         prof.UpdatedAt,
	}
	if len(doc.Languages) == 0 {
		doc.Languages = []string{defaultLanguage}
	}
	if prof.Latitude != nil && prof.Longitude != nil &&
		geo.ValidateCoordinates(*prof.Latitude, *prof.Longitude) {
		doc.Location = &geo.Point{Lat: *prof.Latitude, Lon: *prof.Longitude}
	}

	doc.SamagriPujaTypes = []string{}
	for _, p := range pricing {
		if doc.MinPricePaise == 0 || p.PricePaise < doc.MinPricePaise {
			doc.MinPricePaise = p.PricePaise
		}
		if p.SamagriIncluded {
			doc.SamagriAvailable = true
			doc.SamagriPujaTypes = append(doc.SamagriPujaTypes, p.PujaType)
		}
	}
	sort.Strings(doc.SamagriPujaTypes)
	return doc
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// normalizeDates unions, deduplicates and normalizes all date strings to
// YYYY-MM-DD, dropping anything that does not parse.
func normalizeDates(lists ...[]string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, list := range lists {
		for _, raw := range list {
			d, ok := normalizeDate(raw)
			if !ok {
				continue
			}
			if _, dup := seen[d]; dup {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	sort.Strings(out)
	if out == nil {
		out = []string{}
	}
	return out
}

func normalizeDate(raw string) (string, bool) {
	for _, layout := range []string{time.DateOnly, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(time.DateOnly), true
		}
	}
	// epoch seconds occasionally show up in legacy rows
	if ts, err := strconv.ParseInt(raw, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0).UTC().Format(time.DateOnly), true
	}
	return "", false
}
