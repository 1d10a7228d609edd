// Package cache provides a two-tier read-through cache for computed
// muhurat payloads: a volatile Redis primary and a best-effort Mongo
// audit secondary. The cache is an optimization only; every error on
// the read or write path degrades to a miss.
package cache

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/sevahub/panditseva/internal/db"
	"github.com/sevahub/panditseva/internal/metrics"
)

// TTL applies to every cached payload in the primary tier.
const TTL = 24 * time.Hour

// auditTimeout bounds the detached secondary write.
const auditTimeout = 5 * time.Second

// AuditStore is the persistent secondary tier. Writes are best effort.
type AuditStore interface {
	Record(ctx context.Context, key, value string) error
}

// Cache is safe for concurrent use.
type Cache struct {
	primary   db.KVStore
	secondary AuditStore
	logger    *zap.Logger
}

// New returns a Cache over the given tiers. secondary may be nil, which
// disables audit records.
func New(primary db.KVStore, secondary AuditStore, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{primary: primary, secondary: secondary, logger: logger}
}

// Get returns the cached payload for key. Any primary-tier error,
// including an unreachable Redis, is reported as a miss.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	value, err := c.primary.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			metrics.MuhuratCacheTotal.WithLabelValues("miss").Inc()
		} else {
			metrics.MuhuratCacheTotal.WithLabelValues("degraded").Inc()
			c.logger.Warn("cache primary unavailable, treating as miss",
				zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	metrics.MuhuratCacheTotal.WithLabelValues("hit").Inc()
	return string(value), true
}

// Set stores the payload in the primary tier and records it in the
// secondary tier without blocking the caller. Neither failure propagates.
func (c *Cache) Set(ctx context.Context, key, value string) {
	if err := c.primary.SetWithTTL(ctx, key, []byte(value), TTL); err != nil {
		c.logger.Warn("cache primary write failed",
			zap.String("key", key), zap.Error(err))
	}

	if c.secondary == nil {
		return
	}
	go func() {
		auditCtx, cancel := context.WithTimeout(context.Background(), auditTimeout)
		defer cancel()
		if err := c.secondary.Record(auditCtx, key, value); err != nil {
			c.logger.Warn("cache audit write failed",
				zap.String("key", key), zap.Error(err))
		}
	}()
}
