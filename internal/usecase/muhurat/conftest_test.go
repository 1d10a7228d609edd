package muhurat

import (
	"context"
	"testing"
)

// fakeCache is an in-memory Cache for tests.
type fakeCache struct {
	entries map[string]string
	gets    []string
	sets    []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, bool) {
	c.gets = append(c.gets, key)
	v, ok := c.entries[key]
	return v, ok
}

func (c *fakeCache) Set(_ context.Context, key, value string) {
	c.sets = append(c.sets, key)
	c.entries[key] = value
}

func newTestService(t *testing.T) (*Service, *fakeCache) {
	t.Helper()
	fc := newFakeCache()
	return New(fc), fc
}
