// Package scheduler runs the nightly full index resync.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sevahub/panditseva/internal/logger"
	"github.com/sevahub/panditseva/internal/usecase/indexer"
)

// DefaultHourUTC is the off-peak run time.
const DefaultHourUTC = 2

// runTimeout bounds one resync pass.
const runTimeout = 2 * time.Hour

// Resyncer is the indexer's full-resync entry point.
type Resyncer interface {
	ResyncAll(ctx context.Context) (*indexer.Report, error)
}

// Resync wakes once a day at a fixed UTC hour and runs a full index
// rebuild. A failed run is logged and the schedule continues.
type Resync struct {
	indexer Resyncer
	hourUTC int
	logger  *zap.Logger
	now     func() time.Time
}

// NewResync creates the daily resync worker. hourUTC outside [0,23]
// selects DefaultHourUTC.
func NewResync(idx Resyncer, hourUTC int, log *zap.Logger) *Resync {
	if hourUTC < 0 || hourUTC > 23 {
		hourUTC = DefaultHourUTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Resync{
		indexer: idx,
		hourUTC: hourUTC,
		logger:  log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Run blocks until ctx is canceled, firing one resync per day.
func (r *Resync) Run(ctx context.Context) {
	for {
		wait := r.untilNextRun()
		r.logger.Info("resync scheduled",
			zap.Duration("sleep", wait),
			zap.Int("hour_utc", r.hourUTC))

		select {
		case <-ctx.Done():
			r.logger.Info("resync scheduler stopped")
			return
		case <-time.After(wait):
		}

		r.runOnce(ctx)
	}
}

func (r *Resync) runOnce(ctx context.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("resync run panicked", zap.Any("panic", rec))
		}
	}()

	runCtx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()
	runCtx = logger.ContextWithLogger(runCtx, r.logger)

	start := r.now()
	report, err := r.indexer.ResyncAll(runCtx)
	if err != nil {
		r.logger.Error("scheduled resync failed", zap.Error(err))
		return
	}
	r.logger.Info("scheduled resync finished",
		zap.Int("success", report.Success),
		zap.Int("failed", report.Failed),
		zap.Int("total", report.Total),
		zap.Duration("duration", time.Since(start)))
}

// untilNextRun computes the sleep until the next occurrence of the
// configured hour, always in the future.
func (r *Resync) untilNextRun() time.Duration {
	now := r.now()
	next := time.Date(now.Year(), now.Month(), now.Day(), r.hourUTC, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
