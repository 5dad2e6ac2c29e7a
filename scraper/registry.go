package scraper

import (
	"github.com/jobboardhq/job-aggregator-service/common/scrape"
	"github.com/jobboardhq/job-aggregator-service/sources/glassdoor"
	"github.com/jobboardhq/job-aggregator-service/sources/indeed"
	"github.com/jobboardhq/job-aggregator-service/sources/linkedin"
)

// DefaultAdapters builds the full set of source adapters over a shared fetch
// client.
func DefaultAdapters(client *scrape.Client) []scrape.SourceAdapter {
	return []scrape.SourceAdapter{
		indeed.New(client),
		linkedin.New(client),
		glassdoor.New(client),
	}
}
