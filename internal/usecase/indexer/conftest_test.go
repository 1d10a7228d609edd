package indexer

import (
	"context"
	"testing"
	"time"

	"github.com/sevahub/panditseva/internal/domain/pandit"
)

// mockProfiles implements ProfileStore for tests.
type mockProfiles struct {
	findProjectionFn func(ctx context.Context, id string) (*pandit.Document, error)
	streamVerifiedFn func(ctx context.Context, fn func(id string, doc *pandit.Document, err error)) error
}

func (m *mockProfiles) FindProjection(ctx context.Context, id string) (*pandit.Document, error) {
	if m.findProjectionFn != nil {
		return m.findProjectionFn(ctx, id)
	}
	return &pandit.Document{ID: id}, nil
}

func (m *mockProfiles) StreamVerified(ctx context.Context, fn func(id string, doc *pandit.Document, err error)) error {
	if m.streamVerifiedFn != nil {
		return m.streamVerifiedFn(ctx, fn)
	}
	return nil
}

// mockIndex implements Index for tests.
type mockIndex struct {
	upsertFn func(ctx context.Context, doc *pandit.Document) error
	deleteFn func(ctx context.Context, id string) error

	upserts []string
	deletes []string
}

func (m *mockIndex) Upsert(ctx context.Context, doc *pandit.Document) error {
	m.upserts = append(m.upserts, doc.ID)
	if m.upsertFn != nil {
		return m.upsertFn(ctx, doc)
	}
	return nil
}

func (m *mockIndex) Delete(ctx context.Context, id string) error {
	m.deletes = append(m.deletes, id)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func newTestService(t *testing.T) (*Service, *mockProfiles, *mockIndex) {
	t.Helper()
	mp := &mockProfiles{}
	mi := &mockIndex{}
	return New(mp, mi, time.Nanosecond), mp, mi
}
