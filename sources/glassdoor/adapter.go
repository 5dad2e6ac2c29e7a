package glassdoor

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog/log"

	"github.com/jobboardhq/job-aggregator-service/common/scrape"
)

const (
	siteName = "glassdoor"

	// Glassdoor renders listings client-side; give the page a moment to
	// settle after load before reading the DOM.
	waitAfterLoad = 2 * time.Second
)

// Adapter scrapes Glassdoor search pages through a headless browser, since
// the listings are JS-rendered. The rendered HTML is parsed with the same
// goquery pipeline as the plain HTTP sources.
type Adapter struct {
	client  *scrape.Client
	baseURL string

	mu      sync.Mutex
	browser *rod.Browser
}

// New creates a Glassdoor source adapter. The browser is connected lazily on
// the first fetch.
func New(client *scrape.Client) *Adapter {
	return &Adapter{
		client:  client,
		baseURL: "https://www.glassdoor.com",
	}
}

// Site returns the source site tag
func (a *Adapter) Site() string {
	return siteName
}

// Close shuts down the headless browser if one was started.
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.browser == nil {
		return nil
	}
	err := a.browser.Close()
	a.browser = nil
	return err
}

func (a *Adapter) ensureBrowser() (*rod.Browser, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.browser != nil {
		return a.browser, nil
	}

	browser := rod.New()
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connecting browser: %w", err)
	}
	a.browser = browser
	return browser, nil
}

// Fetch retrieves up to limit listings for the given query and location.
func (a *Adapter) Fetch(ctx context.Context, query, location string, limit int) []scrape.RawCandidate {
	if limit <= 0 {
		return nil
	}

	searchURL := fmt.Sprintf("%s/Job/jobs.htm?sc.keyword=%s&locKeyword=%s",
		a.baseURL, url.QueryEscape(query), url.QueryEscape(location))

	html, err := a.renderPage(ctx, searchURL)
	if err != nil {
		log.Warn().Err(err).Str("source", siteName).Str("query", query).Msg("Search page render failed")
		return nil
	}

	doc, err := a.client.ParseDocument(searchURL, html)
	if err != nil {
		log.Warn().Err(err).Str("source", siteName).Str("query", query).Msg("Search page parse failed")
		return nil
	}

	return a.parseSearchPage(doc, limit)
}

func (a *Adapter) renderPage(ctx context.Context, searchURL string) (string, error) {
	browser, err := a.ensureBrowser()
	if err != nil {
		return "", err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: searchURL})
	if err != nil {
		return "", fmt.Errorf("opening page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("waiting for page load: %w", err)
	}
	time.Sleep(waitAfterLoad)

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("reading rendered page: %w", err)
	}
	return html, nil
}

func (a *Adapter) parseSearchPage(doc *goquery.Document, limit int) []scrape.RawCandidate {
	var jobs []scrape.RawCandidate

	doc.Find(".react-job-listing").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(jobs) >= limit {
			return false
		}

		title := strings.TrimSpace(s.Find(".jobLink").Text())
		company := strings.TrimSpace(s.Find(".employerName").Text())
		jobLocation := strings.TrimSpace(s.Find(".location").Text())
		salary := strings.TrimSpace(s.Find(".salary-estimate").Text())
		href, _ := s.Find("a").Attr("href")

		if title == "" || company == "" {
			return true
		}

		jobURL := ""
		if href != "" {
			jobURL = a.baseURL + href
		}

		jobs = append(jobs, scrape.RawCandidate{
			Title:       title,
			CompanyName: company,
			Location:    jobLocation,
			Description: "",
			JobURL:      jobURL,
			SourceSite:  siteName,
			SalaryText:  salary,
		})
		return true
	})

	return jobs
}
