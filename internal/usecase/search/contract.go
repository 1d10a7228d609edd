package search

import (
	"context"

	"github.com/sevahub/panditseva/internal/db"
	"github.com/sevahub/panditseva/internal/domain/search/result"
)

// Repository defines the storage contract for pandit search.
type Repository interface {
	Search(ctx context.Context, query *db.SearchQuery) (*result.Page, error)
}
