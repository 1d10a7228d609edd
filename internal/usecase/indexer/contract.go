package indexer

import (
	"context"

	"github.com/sevahub/panditseva/internal/domain/pandit"
)

// ProfileStore reads joined pandit projections from the authoritative store.
type ProfileStore interface {
	FindProjection(ctx context.Context, id string) (*pandit.Document, error)
	StreamVerified(ctx context.Context, fn func(id string, doc *pandit.Document, err error)) error
}

// Index writes pandit documents into the search engine.
type Index interface {
	Upsert(ctx context.Context, doc *pandit.Document) error
	Delete(ctx context.Context, id string) error
}
