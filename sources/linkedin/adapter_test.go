package linkedin

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
<div class="job-search-card">
  <a href="https://www.linkedin.com/jobs/view/1234"></a>
  <h3 class="job-search-card__title">Platform Engineer</h3>
  <h4 class="job-search-card__subtitle">Initech</h4>
  <span class="job-search-card__location">Austin, TX</span>
</div>
<div class="job-search-card">
  <a href="/jobs/view/5678"></a>
  <h3 class="job-search-card__title">SRE</h3>
  <h4 class="job-search-card__subtitle">Hooli</h4>
  <span class="job-search-card__location">Remote</span>
</div>
<div class="job-search-card">
  <h3 class="job-search-card__title">No Company Card</h3>
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
		assert.Equal(t, "devops", r.URL.Query().Get("keywords"))
		w.Write([]byte(searchPageFixture))
	})

	jobs := a.Fetch(context.Background(), "devops", "remote", 10)
	require.Len(t, jobs, 2)

	assert.Equal(t, "Platform Engineer", jobs[0].Title)
	assert.Equal(t, "Initech", jobs[0].CompanyName)
	assert.Equal(t, "linkedin", jobs[0].SourceSite)
	// Absolute hrefs pass through unchanged.
	assert.Equal(t, "https://www.linkedin.com/jobs/view/1234", jobs[0].JobURL)
	assert.Empty(t, jobs[0].Description)

	// Relative hrefs are resolved against the site base.
	assert.Equal(t, a.baseURL+"/jobs/view/5678", jobs[1].JobURL)
	assert.Equal(t, "Remote", jobs[1].Location)
}

func TestFetchContainsFailures(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	assert.Empty(t, a.Fetch(context.Background(), "devops", "", 10))
}
