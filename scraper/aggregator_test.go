package scraper

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobboardhq/job-aggregator-service/common/scrape"
)

type stubAdapter struct {
	site    string
	fetch   func(ctx context.Context, query, location string, limit int) []scrape.RawCandidate
	gotCaps []int
}

func (s *stubAdapter) Site() string { return s.site }

func (s *stubAdapter) Fetch(ctx context.Context, query, location string, limit int) []scrape.RawCandidate {
	s.gotCaps = append(s.gotCaps, limit)
	if s.fetch == nil {
		return nil
	}
	return s.fetch(ctx, query, location, limit)
}

func candidates(site string, n int) []scrape.RawCandidate {
	out := make([]scrape.RawCandidate, n)
	for i := range out {
		out[i] = scrape.RawCandidate{
			Title:       fmt.Sprintf("job-%d", i),
			CompanyName: "co",
			SourceSite:  site,
			JobURL:      fmt.Sprintf("https://%s.example.com/%d", site, i),
		}
	}
	return out
}

func fullAdapter(site string) *stubAdapter {
	return &stubAdapter{
		site: site,
		fetch: func(_ context.Context, _, _ string, limit int) []scrape.RawCandidate {
			return candidates(site, limit)
		},
	}
}

func TestScrapeAllSourcesSplitsBudget(t *testing.T) {
	a := fullAdapter("indeed")
	b := fullAdapter("linkedin")
	c := fullAdapter("glassdoor")

	got := NewAggregator(a, b, c).ScrapeAllSources(context.Background(), "go", "remote", 10)

	// ceil(10/3) = 4 per source, truncated back to the combined budget.
	assert.Equal(t, []int{4}, a.gotCaps)
	assert.Equal(t, []int{4}, b.gotCaps)
	assert.Equal(t, []int{4}, c.gotCaps)
	assert.Len(t, got, 10)
}

func TestScrapeAllSourcesToleratesFailingSources(t *testing.T) {
	healthy := fullAdapter("indeed")
	broken := &stubAdapter{site: "linkedin"}
	panicky := &stubAdapter{
		site: "glassdoor",
		fetch: func(_ context.Context, _, _ string, _ int) []scrape.RawCandidate {
			panic("browser crashed")
		},
	}

	got := NewAggregator(healthy, broken, panicky).ScrapeAllSources(context.Background(), "go", "", 9)

	require.Len(t, got, 3)
	for _, c := range got {
		assert.Equal(t, "indeed", c.SourceSite)
	}
}

func TestScrapeAllSourcesAllFailing(t *testing.T) {
	got := NewAggregator(&stubAdapter{site: "indeed"}, &stubAdapter{site: "linkedin"}).
		ScrapeAllSources(context.Background(), "go", "", 10)
	assert.Empty(t, got)
}

func TestScrapeAllSourcesEdgeCases(t *testing.T) {
	assert.Nil(t, NewAggregator(fullAdapter("indeed")).ScrapeAllSources(context.Background(), "go", "", 0))
	assert.Nil(t, NewAggregator().ScrapeAllSources(context.Background(), "go", "", 10))
}

func TestWithSources(t *testing.T) {
	agg := NewAggregator(fullAdapter("indeed"), fullAdapter("linkedin"), fullAdapter("glassdoor"))

	assert.Equal(t, []string{"indeed", "linkedin", "glassdoor"}, agg.Sources())
	assert.Equal(t, []string{"linkedin"}, agg.WithSources([]string{"linkedin"}).Sources())

	// Empty or fully unknown selections keep the full set.
	assert.Equal(t, agg.Sources(), agg.WithSources(nil).Sources())
	assert.Equal(t, agg.Sources(), agg.WithSources([]string{"monster"}).Sources())
}
