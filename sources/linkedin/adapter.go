package linkedin

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/jobboardhq/job-aggregator-service/common/scrape"
)

const siteName = "linkedin"

// Adapter scrapes the public LinkedIn job search pages. Listing cards carry no
// description snippet, so Description is always empty for this source.
type Adapter struct {
	client  *scrape.Client
	baseURL string
}

// New creates a LinkedIn source adapter using the shared fetch client.
func New(client *scrape.Client) *Adapter {
	return &Adapter{
		client:  client,
		baseURL: "https://www.linkedin.com",
	}
}

// Site returns the source site tag
func (a *Adapter) Site() string {
	return siteName
}

// Fetch retrieves up to limit listings for the given query and location.
func (a *Adapter) Fetch(ctx context.Context, query, location string, limit int) []scrape.RawCandidate {
	if limit <= 0 {
		return nil
	}

	searchURL := fmt.Sprintf("%s/jobs/search/?keywords=%s&location=%s", a.baseURL, url.QueryEscape(query), url.QueryEscape(location))

	doc, err := a.client.GetDocument(ctx, searchURL)
	if err != nil {
		log.Warn().Err(err).Str("source", siteName).Str("query", query).Msg("Search page fetch failed")
		return nil
	}

	return a.parseSearchPage(doc, limit)
}

func (a *Adapter) parseSearchPage(doc *goquery.Document, limit int) []scrape.RawCandidate {
	var jobs []scrape.RawCandidate

	doc.Find(".job-search-card").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(jobs) >= limit {
			return false
		}

		title := strings.TrimSpace(s.Find(".job-search-card__title").Text())
		company := strings.TrimSpace(s.Find(".job-search-card__subtitle").Text())
		jobLocation := strings.TrimSpace(s.Find(".job-search-card__location").Text())
		href, _ := s.Find("a").Attr("href")

		if title == "" || company == "" {
			return true
		}

		jobURL := ""
		if href != "" {
			if strings.HasPrefix(href, "http") {
				jobURL = href
			} else {
				jobURL = a.baseURL + href
			}
		}

		jobs = append(jobs, scrape.RawCandidate{
			Title:       title,
			CompanyName: company,
			Location:    jobLocation,
			Description: "",
			JobURL:      jobURL,
			SourceSite:  siteName,
		})
		return true
	})

	return jobs
}
