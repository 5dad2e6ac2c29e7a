package scraper

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog/log"

	"github.com/jobboardhq/job-aggregator-service/common/scrape"
	"github.com/jobboardhq/job-aggregator-service/repository"
)

// ExternalJobWriter is the slice of the repository the persister needs.
type ExternalJobWriter interface {
	CreateExternalJob(ctx context.Context, arg repository.CreateExternalJobParams) (repository.ExternalJob, error)
}

// Persister assigns stable external identifiers and upserts scraped
// candidates into the external job store, skipping records already known.
type Persister struct {
	store ExternalJobWriter
}

// NewPersister creates a persister over the given store.
func NewPersister(store ExternalJobWriter) *Persister {
	return &Persister{store: store}
}

// ExternalID derives the stable identifier for a candidate. The same listing
// re-scraped on a later run hashes to the same key, so the unique constraint
// turns re-ingestion into a no-op. Listings without a URL fall back to
// title+company within the source.
func ExternalID(c scrape.RawCandidate) string {
	key := c.SourceSite + "|" + c.JobURL
	if c.JobURL == "" {
		key = c.SourceSite + "|" + c.Title + "|" + c.CompanyName
	}
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// SaveJobs upserts a batch of candidates and returns only the newly inserted
// records. Conflicts on external_id are silently filtered; other per-record
// failures are logged and skipped without aborting the batch.
func (p *Persister) SaveJobs(ctx context.Context, candidates []scrape.RawCandidate) []repository.ExternalJob {
	var saved []repository.ExternalJob

	for _, c := range candidates {
		if c.Title == "" || c.CompanyName == "" {
			continue
		}

		job, err := p.store.CreateExternalJob(ctx, buildParams(c))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// Conflict on external_id: the listing is already known.
				log.Debug().Str("source", c.SourceSite).Str("title", c.Title).Msg("Skipping known listing")
				continue
			}
			log.Error().Err(err).Str("source", c.SourceSite).Str("title", c.Title).Msg("Failed to save scraped job")
			continue
		}
		saved = append(saved, job)
	}

	return saved
}

func buildParams(c scrape.RawCandidate) repository.CreateExternalJobParams {
	params := repository.CreateExternalJobParams{
		ID:          uuid.NewString(),
		ExternalID:  ExternalID(c),
		Title:       c.Title,
		CompanyName: c.CompanyName,
		JobUrl:      c.JobURL,
		SourceSite:  c.SourceSite,
		Description: pgtype.Text{String: c.Description, Valid: true},
		Location:    pgtype.Text{String: c.Location, Valid: true},
		PostedDate:  pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true},
		RemoteWork: pgtype.Bool{
			Bool:  scrape.DetectRemote(c.Location, c.Title, c.Description),
			Valid: true,
		},
	}

	if salary, ok := scrape.ParseSalary(c.SalaryText); ok {
		params.SalaryMin = pgtype.Float8{Float64: salary.Min, Valid: true}
		params.SalaryMax = pgtype.Float8{Float64: salary.Max, Valid: true}
		if salary.Currency != "" {
			params.SalaryCurrency = pgtype.Text{String: salary.Currency, Valid: true}
		}
	}

	if et := scrape.DetectEmploymentType(c.Title, c.Description); et != "" {
		params.EmploymentType = pgtype.Text{String: et, Valid: true}
	}

	return params
}
