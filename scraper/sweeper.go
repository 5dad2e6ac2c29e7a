package scraper

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// StaleJobStore is the slice of the repository the sweeper needs.
type StaleJobStore interface {
	DeactivateStaleExternalJobs(ctx context.Context, retentionDays int32) (int64, error)
}

// Sweeper marks external jobs older than the retention window as inactive.
// Records are never physically deleted.
type Sweeper struct {
	store         StaleJobStore
	retentionDays int
}

// NewSweeper creates a sweeper with the given retention window in days.
func NewSweeper(store StaleJobStore, retentionDays int) *Sweeper {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return &Sweeper{store: store, retentionDays: retentionDays}
}

// Sweep flips is_active to false for every record past the retention window.
// Idempotent: a repeat run with no newly stale records updates zero rows.
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	count, err := s.store.DeactivateStaleExternalJobs(ctx, int32(s.retentionDays))
	if err != nil {
		return 0, fmt.Errorf("deactivating stale jobs: %w", err)
	}

	log.Info().Int64("count", count).Int("retention_days", s.retentionDays).Msg("Marked stale external jobs inactive")
	return count, nil
}
