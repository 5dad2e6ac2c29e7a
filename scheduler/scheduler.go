// Package scheduler owns the recurring scrape sweep over a fixed list of
// canned searches, plus the daily staleness sweep, with a process-wide
// at-most-one-run guard.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/jobboardhq/job-aggregator-service/common"
	"github.com/jobboardhq/job-aggregator-service/common/config"
	"github.com/jobboardhq/job-aggregator-service/common/messaging"
	"github.com/jobboardhq/job-aggregator-service/common/models"
	"github.com/jobboardhq/job-aggregator-service/common/scrape"
	"github.com/jobboardhq/job-aggregator-service/repository"
)

// maxRecordedErrors bounds the error history kept in run stats.
const maxRecordedErrors = 10

// CannedSearch is one (query, location, limit) tuple swept on every run.
type CannedSearch struct {
	Query    string
	Location string
	Limit    int
}

// DefaultSearches returns the canned searches swept on every scheduled run.
func DefaultSearches() []CannedSearch {
	return []CannedSearch{
		{Query: "software engineer", Location: "remote", Limit: 15},
		{Query: "data scientist", Location: "remote", Limit: 15},
		{Query: "product manager", Location: "remote", Limit: 15},
		{Query: "UX designer", Location: "remote", Limit: 15},
		{Query: "marketing manager", Location: "remote", Limit: 15},
		{Query: "sales representative", Location: "remote", Limit: 15},
		{Query: "customer service", Location: "remote", Limit: 15},
		{Query: "project manager", Location: "remote", Limit: 15},
		{Query: "devops engineer", Location: "remote", Limit: 15},
		{Query: "frontend developer", Location: "remote", Limit: 15},
	}
}

// JobSource aggregates scraped candidates across all external sources.
type JobSource interface {
	ScrapeAllSources(ctx context.Context, query, location string, limit int) []scrape.RawCandidate
}

// JobSink persists candidates and returns the newly inserted records.
type JobSink interface {
	SaveJobs(ctx context.Context, candidates []scrape.RawCandidate) []repository.ExternalJob
}

// StaleSweeper marks records past the retention window inactive.
type StaleSweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

// Scheduler drives the recurring scrape and staleness sweeps. A single
// instance is constructed at process start; all run state lives on it, not in
// package globals, so tests can build independent instances.
type Scheduler struct {
	aggregator JobSource
	persister  JobSink
	sweeper    StaleSweeper
	broker     *messaging.NatsBroker
	cfg        config.ScraperConfig
	searches   []CannedSearch

	mu           sync.Mutex
	cron         *cron.Cron
	initialTimer *time.Timer
	started      bool
	running      bool
	lastRun      *time.Time
	stats        models.RunStats
}

// New creates a scheduler. The broker may be nil when messaging is disabled.
func New(aggregator JobSource, persister JobSink, sweeper StaleSweeper, broker *messaging.NatsBroker, cfg config.ScraperConfig) *Scheduler {
	return &Scheduler{
		aggregator: aggregator,
		persister:  persister,
		sweeper:    sweeper,
		broker:     broker,
		cfg:        cfg,
		searches:   DefaultSearches(),
	}
}

// Start registers the recurring schedules: the scrape sweep every interval
// hours, the staleness sweep daily at 02:00 UTC, and a one-shot delayed first
// run so data is populated soon after boot.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	interval := s.cfg.ScrapeInterval
	if interval == 0 || 24%interval != 0 {
		return fmt.Errorf("%w: scrape interval %d must evenly divide 24 hours", common.ErrInvalidConfig, interval)
	}

	c := cron.New(cron.WithLocation(time.UTC))

	if _, err := c.AddFunc(fmt.Sprintf("0 */%d * * *", interval), func() {
		if err := s.runScraping(context.Background(), "scheduled"); err != nil {
			log.Warn().Err(err).Msg("Scheduled scrape tick skipped")
		}
	}); err != nil {
		return fmt.Errorf("registering scrape schedule: %w", err)
	}

	if _, err := c.AddFunc("0 2 * * *", func() {
		s.runStalenessSweep(context.Background())
	}); err != nil {
		return fmt.Errorf("registering staleness schedule: %w", err)
	}

	c.Start()
	s.cron = c

	s.initialTimer = time.AfterFunc(s.cfg.InitialRunDelay, func() {
		if err := s.runScraping(context.Background(), "initial"); err != nil {
			log.Warn().Err(err).Msg("Initial scrape run skipped")
		}
	})

	s.started = true
	log.Info().
		Uint("interval_hours", interval).
		Dur("initial_delay", s.cfg.InitialRunDelay).
		Msg("Scheduled job scraping started")
	return nil
}

// Stop cancels the recurring schedules. A scrape already in flight is allowed
// to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}
	if s.initialTimer != nil {
		s.initialTimer.Stop()
		s.initialTimer = nil
	}
	s.started = false
	log.Info().Msg("Scheduled job scraping stopped")
}

// Started reports whether the recurring schedules are registered.
func (s *Scheduler) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// TriggerManual runs one full sweep synchronously. Fails fast with
// common.ErrScrapeInProgress when a run is already in flight.
func (s *Scheduler) TriggerManual(ctx context.Context) (models.RunStats, error) {
	if err := s.runScraping(ctx, "manual"); err != nil {
		return s.statsSnapshot(), err
	}
	return s.statsSnapshot(), nil
}

// TriggerAsync starts a sweep in the background, failing fast with
// common.ErrScrapeInProgress when one is already in flight. The late-arriving
// duplicate trigger race is resolved by the run guard itself.
func (s *Scheduler) TriggerAsync() error {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	if running {
		return common.ErrScrapeInProgress
	}

	go func() {
		if err := s.runScraping(context.Background(), "manual"); err != nil {
			log.Warn().Err(err).Msg("Manual scrape trigger skipped")
		}
	}()
	return nil
}

// Status reports the current run state, cumulative stats, and the next
// scheduled run time.
func (s *Scheduler) Status() models.ScrapeStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.ScrapeStatus{
		IsRunning:        s.running,
		LastRun:          s.lastRun,
		Stats:            cloneStats(s.stats),
		NextScheduledRun: NextScheduledRun(time.Now(), int(s.cfg.ScrapeInterval)),
	}
}

// Errors returns the bounded recent error history.
func (s *Scheduler) Errors() []models.ScrapeError {
	return s.statsSnapshot().Errors
}

// tryBegin atomically moves Idle -> Scraping. Returns false when a run is
// already in flight.
func (s *Scheduler) tryBegin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return false
	}
	s.running = true
	return true
}

// runScraping executes one full sweep over the canned searches. Triggers
// arriving while a run is in flight are dropped, not queued.
func (s *Scheduler) runScraping(ctx context.Context, trigger string) error {
	if !s.tryBegin() {
		log.Info().Str("trigger", trigger).Msg("Job scraping already running, skipping")
		return common.ErrScrapeInProgress
	}

	runID := uuid.NewString()
	startedAt := time.Now().UTC()
	log.Info().Str("run_id", runID).Str("trigger", trigger).Msg("Starting job scraping sweep")

	messaging.PublishEvent(ctx, s.broker, messaging.SubjectScrapeStarted, messaging.ScrapeStartedEvent{
		RunID:     runID,
		Trigger:   trigger,
		StartedAt: startedAt,
	})

	var totalScraped, totalSaved int

	defer func() {
		// The guard must be released on every exit path or the scheduler
		// would be stuck in Scraping forever.
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("run_id", runID).Msg("Scrape sweep panicked")
			s.recordError("general", fmt.Sprintf("panic: %v", r))
		}

		now := time.Now().UTC()
		s.mu.Lock()
		s.stats.TotalScraped += totalScraped
		s.stats.TotalSaved += totalSaved
		s.stats.LastRunTime = &now
		s.lastRun = &now
		errorCount := len(s.stats.Errors)
		s.running = false
		s.mu.Unlock()

		messaging.PublishEvent(ctx, s.broker, messaging.SubjectScrapeCompleted, messaging.ScrapeCompletedEvent{
			RunID:       runID,
			Scraped:     totalScraped,
			Saved:       totalSaved,
			ErrorCount:  errorCount,
			CompletedAt: now,
		})

		log.Info().
			Str("run_id", runID).
			Dur("elapsed", now.Sub(startedAt)).
			Int("scraped", totalScraped).
			Int("saved", totalSaved).
			Msg("Job scraping sweep completed")
	}()

	for _, search := range s.searches {
		scraped, saved := s.runSearch(ctx, search)
		totalScraped += scraped
		totalSaved += saved

		// Fixed pacing between searches to avoid hammering external sites,
		// kept even after a failing search.
		select {
		case <-time.After(s.cfg.InterSearchDelay):
		case <-ctx.Done():
			s.recordError("general", ctx.Err().Error())
			return nil
		}
	}

	return nil
}

// runSearch executes a single canned search; a failure is recorded and
// contained so the sweep continues with the next pair.
func (s *Scheduler) runSearch(ctx context.Context, search CannedSearch) (scraped, saved int) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("query", search.Query).Msg("Canned search failed")
			s.recordError(search.Query, fmt.Sprintf("panic: %v", r))
		}
	}()

	log.Info().Str("query", search.Query).Str("location", search.Location).Msg("Scraping canned search")

	candidates := s.aggregator.ScrapeAllSources(ctx, search.Query, search.Location, search.Limit)
	if len(candidates) == 0 {
		return 0, 0
	}

	inserted := s.persister.SaveJobs(ctx, candidates)
	log.Info().
		Str("query", search.Query).
		Int("scraped", len(candidates)).
		Int("saved", len(inserted)).
		Msg("Canned search persisted")

	return len(candidates), len(inserted)
}

// runStalenessSweep runs the daily retention pass.
func (s *Scheduler) runStalenessSweep(ctx context.Context) {
	count, err := s.sweeper.Sweep(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Staleness sweep failed")
		s.recordError("staleness_sweep", err.Error())
		return
	}
	log.Info().Int64("count", count).Msg("Staleness sweep completed")
}

func (s *Scheduler) recordError(search, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.Errors = append(s.stats.Errors, models.ScrapeError{
		Search:    search,
		Error:     message,
		Timestamp: time.Now().UTC(),
	})
	if len(s.stats.Errors) > maxRecordedErrors {
		s.stats.Errors = s.stats.Errors[len(s.stats.Errors)-maxRecordedErrors:]
	}
}

func (s *Scheduler) statsSnapshot() models.RunStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneStats(s.stats)
}

func cloneStats(stats models.RunStats) models.RunStats {
	out := stats
	out.Errors = append([]models.ScrapeError(nil), stats.Errors...)
	return out
}

// NextScheduledRun rounds now up to the next interval-hour boundary in UTC.
// Interval boundaries are day-aligned, so midnight rollover falls out of the
// truncation.
func NextScheduledRun(now time.Time, intervalHours int) time.Time {
	if intervalHours <= 0 || 24%intervalHours != 0 {
		intervalHours = 6
	}
	interval := time.Duration(intervalHours) * time.Hour
	return now.UTC().Truncate(interval).Add(interval)
}
