package search

import (
	"context"
	"testing"
	"time"

	"github.com/sevahub/panditseva/internal/db"
	"github.com/sevahub/panditseva/internal/domain/search/result"
)

// mockRepo implements the Repository interface for tests.
type mockRepo struct {
	searchFn func(ctx context.Context, q *db.SearchQuery) (*result.Page, error)
}

func (m *mockRepo) Search(ctx context.Context, q *db.SearchQuery) (*result.Page, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &result.Page{Hits: []result.Hit{}}, nil
}

func newTestService(t *testing.T) (*Service, *mockRepo) {
	t.Helper()
	mr := &mockRepo{}
	svc := New(mr, 0, 0)
	svc.now = func() time.Time { return testNow }
	return svc, mr
}
