package indeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobboardhq/job-aggregator-service/common/scrape"
)

const searchPageFixture = `<!DOCTYPE html>
<html><body>
<div class="job_seen_beacon">
  <a href="/rc/clk?jk=abc123"></a>
  <h2 class="jobTitle"><span>Senior Go Developer</span></h2>
  <span class="companyName">Acme Corp</span>
  <div class="companyLocation">Remote</div>
  <div class="salary-snippet">$120,000 - $150,000 a year</div>
  <div class="job-snippet">Build <b>backend services</b> in Go.</div>
</div>
<div class="job_seen_beacon">
  <a href="/rc/clk?jk=def456"></a>
  <h2 class="jobTitle"><span>Data Engineer</span></h2>
  <span class="companyName">Globex</span>
  <div class="companyLocation">New York, NY</div>
</div>
<div class="job_seen_beacon">
  <a href="/rc/clk?jk=ghi789"></a>
  <h2 class="jobTitle"><span>Orphan Listing</span></h2>
</div>
</body></html>`

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *Adapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	a := New(scrape.NewClient(2 * time.Second))
	a.baseURL = srv.URL
	return a
}

func TestFetchParsesListings(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "go developer", r.URL.Query().Get("q"))
		assert.Equal(t, "remote", r.URL.Query().Get("l"))
		w.Write([]byte(searchPageFixture))
	})

	jobs := a.Fetch(context.Background(), "go developer", "remote", 10)
	require.Len(t, jobs, 2, "card without company must be skipped")

	first := jobs[0]
	assert.Equal(t, "Senior Go Developer", first.Title)
	assert.Equal(t, "Acme Corp", first.CompanyName)
	assert.Equal(t, "Remote", first.Location)
	assert.Equal(t, "$120,000 - $150,000 a year", first.SalaryText)
	assert.Equal(t, "indeed", first.SourceSite)
	assert.Contains(t, first.JobURL, "/rc/clk?jk=abc123")
	assert.Contains(t, first.Description, "backend services")
	assert.NotContains(t, first.Description, "<b>")

	second := jobs[1]
	assert.Equal(t, "Data Engineer", second.Title)
	assert.Empty(t, second.SalaryText)
}

func TestFetchHonorsLimit(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchPageFixture))
	})

	jobs := a.Fetch(context.Background(), "go", "", 1)
	assert.Len(t, jobs, 1)
}

func TestFetchContainsFailures(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	jobs := a.Fetch(context.Background(), "go", "", 10)
	assert.Empty(t, jobs)
}

func TestFetchZeroLimit(t *testing.T) {
	a := New(scrape.NewClient(time.Second))
	assert.Nil(t, a.Fetch(context.Background(), "go", "", 0))
}
