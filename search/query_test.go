package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSearchQueryAll(t *testing.T) {
	sql, args := BuildSearchQuery(SearchParams{
		Query:      "engineer",
		Location:   "berlin",
		SourceType: "all",
		Page:       2,
		Limit:      10,
	})

	assert.Contains(t, sql, "UNION ALL")
	assert.Contains(t, sql, "ORDER BY created_at DESC")
	assert.Contains(t, sql, "is_active = true")
	assert.Contains(t, sql, "'internal' AS source_type")
	assert.Contains(t, sql, "'external' AS source_type")

	// query, location for each side, then limit and offset
	require.Len(t, args, 6)
	assert.Equal(t, "%engineer%", args[0])
	assert.Equal(t, "%berlin%", args[1])
	assert.Equal(t, 10, args[4])
	assert.Equal(t, 10, args[5], "page 2 with limit 10 starts at offset 10")
}

func TestBuildSearchQueryFacetFilters(t *testing.T) {
	sql, args := BuildSearchQuery(SearchParams{
		EmploymentType: "full-time",
		RemoteOnly:     true,
		SourceType:     "all",
		Page:           1,
		Limit:          20,
	})

	assert.Contains(t, sql, "j.employment_type = $1")
	assert.Contains(t, sql, "employment_type = $2")
	// The remote filter narrows only the external side.
	assert.Contains(t, sql, "remote_work = true")
	require.Len(t, args, 4)
	assert.Equal(t, "full-time", args[0])
	assert.Equal(t, "full-time", args[1])
}

func TestBuildSearchQuerySingleSides(t *testing.T) {
	sql, args := BuildSearchQuery(SearchParams{SourceType: "internal", Page: 1, Limit: 20})
	assert.NotContains(t, sql, "UNION ALL")
	assert.NotContains(t, sql, "external_jobs")
	assert.Len(t, args, 2)

	sql, _ = BuildSearchQuery(SearchParams{SourceType: "external", Page: 1, Limit: 20})
	assert.NotContains(t, sql, "UNION ALL")
	assert.Contains(t, sql, "FROM external_jobs")
	assert.Contains(t, sql, "is_active = true")
	assert.NotContains(t, sql, "JOIN employers")
}

func TestBuildCountQuery(t *testing.T) {
	sql, args := BuildCountQuery(SearchParams{Query: "go", SourceType: "all"})
	assert.Contains(t, sql, ") + (")
	require.Len(t, args, 2)

	sql, args = BuildCountQuery(SearchParams{SourceType: "external"})
	assert.Equal(t, "SELECT COUNT(*) FROM external_jobs\nWHERE is_active = true", sql)
	assert.Empty(t, args)
}

func TestBuildExternalListQuery(t *testing.T) {
	sql, args := BuildExternalListQuery(ExternalListParams{
		Query:      "go",
		SourceSite: "indeed",
		RemoteOnly: true,
		Page:       1,
		Limit:      20,
	})

	assert.Contains(t, sql, "is_active = true")
	assert.Contains(t, sql, "source_site = $2")
	assert.Contains(t, sql, "remote_work = true")
	assert.Contains(t, sql, "ORDER BY created_at DESC")
	require.Len(t, args, 4)
	assert.Equal(t, "indeed", args[1])
}

func TestSearchParamsNormalize(t *testing.T) {
	p := SearchParams{Page: 0, Limit: 0, SourceType: "bogus"}.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, defaultLimit, p.Limit)
	assert.Equal(t, "all", p.SourceType)

	p = SearchParams{Page: 3, Limit: 500, SourceType: "internal"}.Normalize()
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, maxLimit, p.Limit)
	assert.Equal(t, "internal", p.SourceType)
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		total     int64
		wantPages int64
	}{
		{"exact fit", 1, 10, 20, 2},
		{"rounds up", 1, 10, 15, 2},
		{"empty", 1, 10, 0, 0},
		{"single partial page", 1, 20, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := paginate(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.wantPages, got.Pages)
			assert.Equal(t, tt.total, got.Total)
		})
	}
}
