package search

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobboardhq/job-aggregator-service/repository"
)

func TestFromExternal(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	job := FromExternal(repository.ExternalJob{
		ID:             "ext-1",
		Title:          "Go Developer",
		CompanyName:    "Acme",
		JobUrl:         "https://indeed.com/job/1",
		SourceSite:     "indeed",
		Description:    pgtype.Text{String: "desc", Valid: true},
		Location:       pgtype.Text{String: "Remote", Valid: true},
		RemoteWork:     pgtype.Bool{Bool: true, Valid: true},
		SalaryMin:      pgtype.Float8{Float64: 80000, Valid: true},
		SalaryMax:      pgtype.Float8{Float64: 100000, Valid: true},
		SalaryCurrency: pgtype.Text{String: "USD", Valid: true},
		CreatedAt:      created,
	})

	assert.Equal(t, "external", job.SourceType)
	assert.Equal(t, "ext-1", job.ID)
	require.NotNil(t, job.SourceSite)
	assert.Equal(t, "indeed", *job.SourceSite)
	require.NotNil(t, job.RemoteWork)
	assert.True(t, *job.RemoteWork)
	require.NotNil(t, job.SalaryMin)
	assert.Equal(t, 80000.0, *job.SalaryMin)
	assert.Nil(t, job.EmployerID, "external rows carry no employer")
	assert.Equal(t, created, job.CreatedAt)
}

func TestFromExternalNullFacets(t *testing.T) {
	job := FromExternal(repository.ExternalJob{
		ID:          "ext-2",
		Title:       "SRE",
		CompanyName: "Globex",
		JobUrl:      "https://x/2",
		SourceSite:  "linkedin",
	})

	assert.Nil(t, job.Description)
	assert.Nil(t, job.RemoteWork)
	assert.Nil(t, job.SalaryMin)
	assert.Nil(t, job.SalaryCurrency)
}

func TestFromInternal(t *testing.T) {
	row := repository.GetInternalJobRow{
		ID:          "int-1",
		EmployerID:  "emp-1",
		Title:       "Backend Engineer",
		CompanyName: "Initech",
		Location:    pgtype.Text{String: "Austin", Valid: true},
	}

	job := fromInternal(row)

	assert.Equal(t, "internal", job.SourceType)
	require.NotNil(t, job.EmployerID)
	assert.Equal(t, "emp-1", *job.EmployerID)
	assert.Nil(t, job.SourceSite, "internal rows carry no scrape facets")
	assert.Nil(t, job.JobUrl)
	assert.Nil(t, job.SalaryMin)
}
