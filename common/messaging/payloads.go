package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
)

// Subjects for scrape lifecycle events.
const (
	SubjectScrapeStarted   = "jobs.scrape.started"
	SubjectScrapeCompleted = "jobs.scrape.completed"
)

// ScrapeStartedEvent is published when a sweep over the canned searches begins.
type ScrapeStartedEvent struct {
	RunID     string    `json:"run_id"`
	Trigger   string    `json:"trigger"` // "scheduled", "manual", "initial"
	StartedAt time.Time `json:"started_at"`
}

// ScrapeCompletedEvent is published when a sweep finishes, including partially
// failed ones.
type ScrapeCompletedEvent struct {
	RunID       string    `json:"run_id"`
	Scraped     int       `json:"scraped"`
	Saved       int       `json:"saved"`
	ErrorCount  int       `json:"error_count"`
	CompletedAt time.Time `json:"completed_at"`
}

// PublishEvent marshals and publishes an event, logging instead of failing the
// caller. Safe on a nil broker: scraping must not depend on messaging being up.
func PublishEvent(ctx context.Context, broker *NatsBroker, subject string, event interface{}) {
	if broker == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("Failed to marshal scrape event")
		return
	}

	if err := broker.PublishSync(ctx, subject, data); err != nil {
		log.Warn().Err(err).Str("subject", subject).Msg("Failed to publish scrape event")
	}
}
