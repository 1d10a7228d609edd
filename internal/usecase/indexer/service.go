// Package indexer keeps the search index consistent with the authoritative
// profile store. The verified-only invariant lives here: a profile in any
// other state has its document removed, never updated.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sevahub/panditseva/internal/domain"
	"github.com/sevahub/panditseva/internal/domain/pandit"
	"github.com/sevahub/panditseva/internal/logger"
	"github.com/sevahub/panditseva/internal/metrics"
)

// DefaultRecordDelay paces full resync writes.
const DefaultRecordDelay = 100 * time.Millisecond

// Service rebuilds search documents from profile projections.
type Service struct {
	profiles    ProfileStore
	index       Index
	recordDelay time.Duration
}

// New creates an indexer. recordDelay <= 0 selects DefaultRecordDelay.
func New(profiles ProfileStore, index Index, recordDelay time.Duration) *Service {
	if recordDelay <= 0 {
		recordDelay = DefaultRecordDelay
	}
	return &Service{profiles: profiles, index: index, recordDelay: recordDelay}
}

// IndexOne rebuilds the document for a single pandit. A profile that is not
// verified, or that no longer exists, results in the document being removed;
// removing an absent document is not an error.
func (s *Service) IndexOne(ctx context.Context, id string) error {
	doc, err := s.profiles.FindProjection(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		if err := s.index.Delete(ctx, id); err != nil {
			return fmt.Errorf("remove document for missing profile %s: %w", id, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("load projection %s: %w", id, err)
	}

	if doc.VerificationState != pandit.StateVerified {
		if err := s.index.Delete(ctx, id); err != nil {
			return fmt.Errorf("remove document for unverified profile %s: %w", id, err)
		}
		return nil
	}

	if err := s.index.Upsert(ctx, doc); err != nil {
		return fmt.Errorf("upsert document %s: %w", id, err)
	}
	return nil
}

// Report summarizes a full resync pass.
type Report struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
	Total   int `json:"total"`
}

// ResyncAll rebuilds every verified pandit's document. Individual failures
// are counted and logged but never abort the pass; the pass itself only
// fails when the profile stream cannot run at all.
func (s *Service) ResyncAll(ctx context.Context) (*Report, error) {
	log := logger.FromContext(ctx)
	start := time.Now()
	report := &Report{}

	err := s.profiles.StreamVerified(ctx, func(id string, doc *pandit.Document, err error) {
		report.Total++
		if err == nil {
			err = s.index.Upsert(ctx, doc)
		}
		if err != nil {
			report.Failed++
			metrics.ResyncDocumentsTotal.WithLabelValues("failed").Inc()
			log.Warn("resync record failed", zap.String("pandit_id", id), zap.Error(err))
		} else {
			report.Success++
			metrics.ResyncDocumentsTotal.WithLabelValues("success").Inc()
		}
		time.Sleep(s.recordDelay)
	})
	if err != nil {
		metrics.ResyncRunsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("stream verified profiles: %w", err)
	}

	metrics.ResyncRunsTotal.WithLabelValues("ok").Inc()
	metrics.ResyncDuration.Observe(time.Since(start).Seconds())
	log.Info("index resync complete",
		zap.Int("success", report.Success),
		zap.Int("failed", report.Failed),
		zap.Int("total", report.Total),
		zap.Duration("duration", time.Since(start)))
	return report, nil
}
