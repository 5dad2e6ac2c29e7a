package indeed

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/jobboardhq/job-aggregator-service/common/scrape"
)

const siteName = "indeed"

// Adapter scrapes Indeed search result pages.
type Adapter struct {
	client  *scrape.Client
	baseURL string
}

// New creates an Indeed source adapter using the shared fetch client.
func New(client *scrape.Client) *Adapter {
	return &Adapter{
		client:  client,
		baseURL: "https://www.indeed.com",
	}
}

// Site returns the source site tag
func (a *Adapter) Site() string {
	return siteName
}

// Fetch retrieves up to limit listings for the given query and location.
// All failures are contained: the adapter logs and returns an empty slice.
func (a *Adapter) Fetch(ctx context.Context, query, location string, limit int) []scrape.RawCandidate {
	if limit <= 0 {
		return nil
	}

	searchURL := fmt.Sprintf("%s/jobs?q=%s&l=%s", a.baseURL, url.QueryEscape(query), url.QueryEscape(location))

	doc, err := a.client.GetDocument(ctx, searchURL)
	if err != nil {
		log.Warn().Err(err).Str("source", siteName).Str("query", query).Msg("Search page fetch failed")
		return nil
	}

	return a.parseSearchPage(doc, limit)
}

// parseSearchPage extracts listings from Indeed job cards.
func (a *Adapter) parseSearchPage(doc *goquery.Document, limit int) []scrape.RawCandidate {
	var jobs []scrape.RawCandidate

	doc.Find(".job_seen_beacon").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(jobs) >= limit {
			return false
		}

		title := strings.TrimSpace(s.Find(".jobTitle span").Text())
		company := strings.TrimSpace(s.Find(".companyName").Text())
		jobLocation := strings.TrimSpace(s.Find(".companyLocation").Text())
		salary := strings.TrimSpace(s.Find(".salary-snippet").Text())

		snippet, err := s.Find(".job-snippet").Html()
		if err != nil {
			snippet = s.Find(".job-snippet").Text()
		}

		href, _ := s.Find("a").Attr("href")

		if title == "" || company == "" {
			return true
		}

		jobs = append(jobs, scrape.RawCandidate{
			Title:       title,
			CompanyName: company,
			Location:    jobLocation,
			Description: scrape.CleanDescription(snippet),
			JobURL:      a.baseURL + href,
			SourceSite:  siteName,
			SalaryText:  salary,
		})
		return true
	})

	return jobs
}
