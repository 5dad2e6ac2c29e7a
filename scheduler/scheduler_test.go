package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobboardhq/job-aggregator-service/common"
	"github.com/jobboardhq/job-aggregator-service/common/config"
	"github.com/jobboardhq/job-aggregator-service/common/scrape"
	"github.com/jobboardhq/job-aggregator-service/repository"
)

type fakeSource struct {
	perSearch int
	block     chan struct{}
	calls     int32
	panicOn   string
}

func (f *fakeSource) ScrapeAllSources(_ context.Context, query, _ string, _ int) []scrape.RawCandidate {
	atomic.AddInt32(&f.calls, 1)
	if f.block != nil {
		<-f.block
	}
	if f.panicOn != "" && query == f.panicOn {
		panic("source exploded")
	}

	out := make([]scrape.RawCandidate, f.perSearch)
	for i := range out {
		out[i] = scrape.RawCandidate{
			Title:       fmt.Sprintf("%s-%d", query, i),
			CompanyName: "co",
			SourceSite:  "indeed",
			JobURL:      fmt.Sprintf("https://example.com/%s/%d", query, i),
		}
	}
	return out
}

type fakeSink struct {
	savePerBatch int
}

func (f *fakeSink) SaveJobs(_ context.Context, candidates []scrape.RawCandidate) []repository.ExternalJob {
	n := f.savePerBatch
	if n > len(candidates) {
		n = len(candidates)
	}
	return make([]repository.ExternalJob, n)
}

type fakeSweep struct {
	count int64
	err   error
	calls int32
}

func (f *fakeSweep) Sweep(context.Context) (int64, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.count, f.err
}

func testConfig() config.ScraperConfig {
	return config.ScraperConfig{
		InterSearchDelay: time.Millisecond,
		RetentionDays:    30,
		ScrapeInterval:   6,
		InitialRunDelay:  time.Hour,
		DefaultLimit:     20,
	}
}

func newTestScheduler(source *fakeSource, sink *fakeSink, sweep *fakeSweep) *Scheduler {
	s := New(source, sink, sweep, nil, testConfig())
	s.searches = []CannedSearch{
		{Query: "software engineer", Location: "remote", Limit: 15},
		{Query: "data scientist", Location: "remote", Limit: 15},
		{Query: "devops engineer", Location: "remote", Limit: 15},
	}
	return s
}

func TestRunScrapingAccumulatesStats(t *testing.T) {
	source := &fakeSource{perSearch: 4}
	sink := &fakeSink{savePerBatch: 2}
	s := newTestScheduler(source, sink, &fakeSweep{})

	require.NoError(t, s.runScraping(context.Background(), "manual"))

	status := s.Status()
	assert.False(t, status.IsRunning)
	require.NotNil(t, status.LastRun)
	assert.Equal(t, 12, status.Stats.TotalScraped)
	assert.Equal(t, 6, status.Stats.TotalSaved)
	assert.Empty(t, status.Stats.Errors)
	assert.Equal(t, int32(3), atomic.LoadInt32(&source.calls))

	// A second run adds onto the cumulative counters.
	require.NoError(t, s.runScraping(context.Background(), "manual"))
	assert.Equal(t, 24, s.Status().Stats.TotalScraped)
}

func TestRunScrapingSingleFlight(t *testing.T) {
	source := &fakeSource{perSearch: 1, block: make(chan struct{})}
	s := newTestScheduler(source, &fakeSink{savePerBatch: 1}, &fakeSweep{})

	done := make(chan error, 1)
	go func() {
		done <- s.runScraping(context.Background(), "scheduled")
	}()

	require.Eventually(t, func() bool {
		return s.Status().IsRunning
	}, time.Second, time.Millisecond)

	// Concurrent triggers are dropped, not queued.
	assert.ErrorIs(t, s.runScraping(context.Background(), "manual"), common.ErrScrapeInProgress)
	assert.ErrorIs(t, s.TriggerAsync(), common.ErrScrapeInProgress)

	close(source.block)
	require.NoError(t, <-done)

	require.Eventually(t, func() bool {
		return !s.Status().IsRunning
	}, time.Second, time.Millisecond)
}

func TestRunScrapingContainsSearchFailures(t *testing.T) {
	source := &fakeSource{perSearch: 2, panicOn: "data scientist"}
	s := newTestScheduler(source, &fakeSink{savePerBatch: 2}, &fakeSweep{})

	require.NoError(t, s.runScraping(context.Background(), "manual"))

	status := s.Status()
	assert.False(t, status.IsRunning, "run guard must be released after a failing search")
	assert.Equal(t, 4, status.Stats.TotalScraped, "remaining searches still run")

	errs := status.Stats.Errors
	require.Len(t, errs, 1)
	assert.Equal(t, "data scientist", errs[0].Search)
	assert.Contains(t, errs[0].Error, "source exploded")
}

func TestErrorHistoryIsBounded(t *testing.T) {
	s := newTestScheduler(&fakeSource{}, &fakeSink{}, &fakeSweep{})

	for i := 0; i < 15; i++ {
		s.recordError(fmt.Sprintf("search-%d", i), "failed")
	}

	errs := s.Errors()
	require.Len(t, errs, maxRecordedErrors)
	assert.Equal(t, "search-5", errs[0].Search, "oldest entries are dropped first")
	assert.Equal(t, "search-14", errs[len(errs)-1].Search)
}

func TestStalenessSweepRecordsFailures(t *testing.T) {
	sweep := &fakeSweep{err: errors.New("db down")}
	s := newTestScheduler(&fakeSource{}, &fakeSink{}, sweep)

	s.runStalenessSweep(context.Background())

	errs := s.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "staleness_sweep", errs[0].Search)
}

func TestStartRejectsUnevenInterval(t *testing.T) {
	cfg := testConfig()
	cfg.ScrapeInterval = 7
	s := New(&fakeSource{}, &fakeSink{}, &fakeSweep{}, nil, cfg)

	assert.ErrorIs(t, s.Start(), common.ErrInvalidConfig)
	assert.False(t, s.Started())
}

func TestStartStop(t *testing.T) {
	s := newTestScheduler(&fakeSource{}, &fakeSink{}, &fakeSweep{})

	require.NoError(t, s.Start())
	assert.True(t, s.Started())

	// Starting twice is a no-op.
	require.NoError(t, s.Start())

	s.Stop()
	assert.False(t, s.Started())
	s.Stop()
}

func TestNextScheduledRun(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		interval int
		want     time.Time
	}{
		{
			"mid window",
			time.Date(2025, 3, 10, 4, 30, 0, 0, time.UTC),
			6,
			time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC),
		},
		{
			"on boundary rolls forward",
			time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC),
			6,
			time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
		},
		{
			"midnight rollover",
			time.Date(2025, 3, 10, 23, 15, 0, 0, time.UTC),
			6,
			time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			"invalid interval falls back to six hours",
			time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC),
			7,
			time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextScheduledRun(tt.now, tt.interval))
		})
	}
}
