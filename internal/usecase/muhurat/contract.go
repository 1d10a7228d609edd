package muhurat

import "context"

// Cache is the two-tier payload cache. Get reports a miss for every
// failure mode; Set never fails from the caller's point of view.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}
