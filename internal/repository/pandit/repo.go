// Package pandit persists searchable pandit documents in Redis hashes
// covered by a RediSearch index.
package pandit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sevahub/panditseva/internal/db"
	"github.com/sevahub/panditseva/internal/domain/pandit"
	"github.com/sevahub/panditseva/internal/domain/search/result"
)

const (
	// IndexName is the RediSearch index covering pandit documents.
	IndexName = "idx:pandits"
	// KeyPrefix is prepended to every pandit document key.
	KeyPrefix = "pandit:"
)

// store is the consumer interface for pandit document operations (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
}

// Repository stores and searches pandit documents.
type Repository struct {
	store store
}

// NewRepository returns a Repository backed by the given store.
func NewRepository(s store) *Repository {
	return &Repository{store: s}
}

// Key returns the Redis key for a pandit id.
func Key(id string) string {
	return KeyPrefix + id
}

// IDFromKey strips the key prefix, returning the pandit id.
func IDFromKey(key string) string {
	return strings.TrimPrefix(key, KeyPrefix)
}

// IndexDefinition describes the search schema for pandit documents.
func IndexDefinition() (*db.IndexDefinition, error) {
	return db.NewIndex(IndexName).
		Prefix(KeyPrefix).
		Text(pandit.FieldName).
		Tag(pandit.FieldVerification).
		Tag(pandit.FieldOnline).
		Geo(pandit.FieldLocation).
		Tag(pandit.FieldCity).
		Tag(pandit.FieldState).
		Numeric(pandit.FieldRating).Sortable().
		Numeric(pandit.FieldReviewCount).Sortable().
		Numeric(pandit.FieldCompleted).Sortable().
		Numeric(pandit.FieldExperience).Sortable().
		Tag(pandit.FieldPujaTypes).
		Tag(pandit.FieldLanguages).
		Tag(pandit.FieldBadges).
		Numeric(pandit.FieldMaxTravelKm).
		Tag(pandit.FieldTravelModes).
		Tag(pandit.FieldSelfDrive).
		Numeric(pandit.FieldSelfDriveKm).
		Numeric(pandit.FieldMinPrice).Sortable().
		Tag(pandit.FieldSamagri).
		Tag(pandit.FieldSamagriTypes).
		TextWithWeight(pandit.FieldBio, 0.5).
		Tag(pandit.FieldUnavailable).
		Numeric(pandit.FieldMinNotice).
		Build()
}

// EnsureIndex creates the pandit search index if it does not exist yet.
func (r *Repository) EnsureIndex(ctx context.Context) error {
	def, err := IndexDefinition()
	if err != nil {
		return fmt.Errorf("pandit index definition: %w", err)
	}
	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create pandit index: %w", err)
	}
	return nil
}

// Upsert writes the full document hash for a pandit.
func (r *Repository) Upsert(ctx context.Context, doc *pandit.Document) error {
	if doc == nil || doc.ID == "" {
		return errors.New("pandit document must have an id")
	}
	if err := r.store.HSet(ctx, Key(doc.ID), doc.Fields()); err != nil {
		return fmt.Errorf("upsert pandit %s: %w", doc.ID, err)
	}
	return nil
}

// Delete removes a pandit document. Deleting a missing document is not an
// error.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, Key(id)); err != nil {
		return fmt.Errorf("delete pandit %s: %w", id, err)
	}
	return nil
}

// Get loads a single pandit document by id.
func (r *Repository) Get(ctx context.Context, id string) (*pandit.Document, error) {
	fields, err := r.store.HGetAll(ctx, Key(id))
	if err != nil {
		return nil, fmt.Errorf("get pandit %s: %w", id, err)
	}
	if len(fields) == 0 {
		return nil, db.ErrKeyNotFound
	}
	doc := pandit.FromFields(id, fields)
	return &doc, nil
}

// Search runs the query against the pandit index and decodes each hit.
func (r *Repository) Search(ctx context.Context, query *db.SearchQuery) (*result.Page, error) {
	query.IndexName = IndexName
	res, err := r.store.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search pandits: %w", err)
	}

	page := &result.Page{
		Total: res.Total,
		Hits:  make([]result.Hit, 0, len(res.Entries)),
	}
	for _, entry := range res.Entries {
		page.Hits = append(page.Hits, result.Hit{
			Document: pandit.FromFields(IDFromKey(entry.Key), entry.Fields),
			Score:    entry.Score,
		})
	}
	return page, nil
}
