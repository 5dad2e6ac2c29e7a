// Package search serves unified job search across the internal posting store
// and the aggregated external store.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jobboardhq/job-aggregator-service/common"
	"github.com/jobboardhq/job-aggregator-service/common/models"
	"github.com/jobboardhq/job-aggregator-service/repository"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// dbConn is the slice of pgxpool.Pool the service needs.
type dbConn interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Service answers unified search queries over both job stores.
type Service struct {
	conn    dbConn
	queries *repository.Queries
}

// NewService creates a search service over the shared pool and generated
// queries.
func NewService(conn dbConn, queries *repository.Queries) *Service {
	return &Service{conn: conn, queries: queries}
}

// Normalize clamps paging inputs and defaults the source type to "all".
func (p SearchParams) Normalize() SearchParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	switch common.SourceType(p.SourceType) {
	case common.SourceTypeInternal, common.SourceTypeExternal:
	default:
		p.SourceType = string(common.SourceTypeAll)
	}
	return p
}

// Normalize clamps paging inputs for the external listing.
func (p ExternalListParams) Normalize() ExternalListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

// Search runs a unified search. A page past the end of the result set returns
// an empty slice with the pagination envelope still filled in.
func (s *Service) Search(ctx context.Context, params SearchParams) ([]models.UnifiedJob, models.Pagination, error) {
	params = params.Normalize()

	countSQL, countArgs := BuildCountQuery(params)
	var total int64
	if err := s.conn.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, models.Pagination{}, fmt.Errorf("counting search results: %w", err)
	}

	searchSQL, searchArgs := BuildSearchQuery(params)
	rows, err := s.conn.Query(ctx, searchSQL, searchArgs...)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("running unified search: %w", err)
	}
	defer rows.Close()

	jobs := []models.UnifiedJob{}
	for rows.Next() {
		job, err := scanUnifiedJob(rows)
		if err != nil {
			return nil, models.Pagination{}, fmt.Errorf("scanning search row: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, models.Pagination{}, fmt.Errorf("reading search rows: %w", err)
	}

	return jobs, paginate(params.Page, params.Limit, total), nil
}

// GetByID resolves a single unified job, trying the internal store first and
// falling back to the external one. Deactivated external records resolve to
// common.ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id string) (models.UnifiedJob, error) {
	internal, err := s.queries.GetInternalJob(ctx, id)
	if err == nil {
		return fromInternal(internal), nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return models.UnifiedJob{}, fmt.Errorf("fetching internal job: %w", err)
	}

	external, err := s.queries.GetExternalJob(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.UnifiedJob{}, common.ErrNotFound
		}
		return models.UnifiedJob{}, fmt.Errorf("fetching external job: %w", err)
	}
	return FromExternal(external), nil
}

// Overview aggregates summary stats across both stores.
type Overview struct {
	Internal  repository.GetInternalJobsOverviewRow `json:"internal"`
	External  repository.GetExternalJobsOverviewRow `json:"external"`
	TotalJobs int64                                 `json:"total_jobs"`
}

// GetOverview returns combined summary stats for both job stores.
func (s *Service) GetOverview(ctx context.Context) (Overview, error) {
	internal, err := s.queries.GetInternalJobsOverview(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("fetching internal overview: %w", err)
	}
	external, err := s.queries.GetExternalJobsOverview(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("fetching external overview: %w", err)
	}

	return Overview{
		Internal:  internal,
		External:  external,
		TotalJobs: internal.TotalJobs + external.ActiveJobs,
	}, nil
}

// ListExternal returns a filtered page of active external jobs.
func (s *Service) ListExternal(ctx context.Context, params ExternalListParams) ([]repository.ExternalJob, models.Pagination, error) {
	params = params.Normalize()

	countSQL, countArgs := BuildExternalListCountQuery(params)
	var total int64
	if err := s.conn.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, models.Pagination{}, fmt.Errorf("counting external jobs: %w", err)
	}

	listSQL, listArgs := BuildExternalListQuery(params)
	rows, err := s.conn.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("listing external jobs: %w", err)
	}
	defer rows.Close()

	jobs := []repository.ExternalJob{}
	for rows.Next() {
		var j repository.ExternalJob
		if err := rows.Scan(
			&j.ID,
			&j.ExternalID,
			&j.Title,
			&j.Description,
			&j.CompanyName,
			&j.Location,
			&j.JobUrl,
			&j.SourceSite,
			&j.PostedDate,
			&j.RemoteWork,
			&j.SalaryMin,
			&j.SalaryMax,
			&j.SalaryCurrency,
			&j.EmploymentType,
			&j.IsActive,
			&j.CreatedAt,
		); err != nil {
			return nil, models.Pagination{}, fmt.Errorf("scanning external job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, models.Pagination{}, fmt.Errorf("reading external jobs: %w", err)
	}

	return jobs, paginate(params.Page, params.Limit, total), nil
}

// paginate fills the pagination envelope; Pages rounds up.
func paginate(page, limit int, total int64) models.Pagination {
	pages := (total + int64(limit) - 1) / int64(limit)
	return models.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}
}

func scanUnifiedJob(rows pgx.Rows) (models.UnifiedJob, error) {
	var (
		job            models.UnifiedJob
		description    pgtype.Text
		location       pgtype.Text
		employmentType pgtype.Text
		createdAt      time.Time
		employerID     pgtype.Text
		sourceSite     pgtype.Text
		jobURL         pgtype.Text
		remoteWork     pgtype.Bool
		salaryMin      pgtype.Float8
		salaryMax      pgtype.Float8
		salaryCurrency pgtype.Text
	)

	err := rows.Scan(
		&job.SourceType,
		&job.ID,
		&job.Title,
		&description,
		&location,
		&employmentType,
		&createdAt,
		&job.CompanyName,
		&employerID,
		&sourceSite,
		&jobURL,
		&remoteWork,
		&salaryMin,
		&salaryMax,
		&salaryCurrency,
	)
	if err != nil {
		return models.UnifiedJob{}, err
	}

	job.Description = textPtr(description)
	job.Location = textPtr(location)
	job.EmploymentType = textPtr(employmentType)
	job.CreatedAt = createdAt
	job.EmployerID = textPtr(employerID)
	job.SourceSite = textPtr(sourceSite)
	job.JobUrl = textPtr(jobURL)
	job.RemoteWork = boolPtr(remoteWork)
	job.SalaryMin = floatPtr(salaryMin)
	job.SalaryMax = floatPtr(salaryMax)
	job.SalaryCurrency = textPtr(salaryCurrency)
	return job, nil
}

func fromInternal(row repository.GetInternalJobRow) models.UnifiedJob {
	return models.UnifiedJob{
		SourceType:     string(common.SourceTypeInternal),
		ID:             row.ID,
		Title:          row.Title,
		Description:    textPtr(row.Description),
		Location:       textPtr(row.Location),
		EmploymentType: textPtr(row.EmploymentType),
		CreatedAt:      row.CreatedAt,
		CompanyName:    row.CompanyName,
		EmployerID:     &row.EmployerID,
	}
}

// FromExternal maps an external record into the unified shape.
func FromExternal(job repository.ExternalJob) models.UnifiedJob {
	site := job.SourceSite
	url := job.JobUrl
	return models.UnifiedJob{
		SourceType:     string(common.SourceTypeExternal),
		ID:             job.ID,
		Title:          job.Title,
		Description:    textPtr(job.Description),
		Location:       textPtr(job.Location),
		EmploymentType: textPtr(job.EmploymentType),
		CreatedAt:      job.CreatedAt,
		CompanyName:    job.CompanyName,
		SourceSite:     &site,
		JobUrl:         &url,
		RemoteWork:     boolPtr(job.RemoteWork),
		SalaryMin:      floatPtr(job.SalaryMin),
		SalaryMax:      floatPtr(job.SalaryMax),
		SalaryCurrency: textPtr(job.SalaryCurrency),
	}
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	return &t.String
}

func boolPtr(b pgtype.Bool) *bool {
	if !b.Valid {
		return nil
	}
	return &b.Bool
}

func floatPtr(f pgtype.Float8) *float64 {
	if !f.Valid {
		return nil
	}
	return &f.Float64
}
