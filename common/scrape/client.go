package scrape

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/jobboardhq/job-aggregator-service/common/storage"
)

// maxBodyBytes caps how much of a search results page is read into memory.
const maxBodyBytes = 4 << 20

var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
}

// Client is the shared HTTP fetch helper for source adapters. It rotates user
// agents, enforces the per-source request timeout, and optionally archives raw
// result pages for scrape debugging.
type Client struct {
	http           *http.Client
	userAgents     []string
	snapshots      storage.StorageService
	snapshotBucket string
}

// NewClient creates a fetch client with the given per-request timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http:       &http.Client{Timeout: timeout},
		userAgents: defaultUserAgents,
	}
}

// WithSnapshots enables raw page archival to the given bucket. A nil service
// or empty bucket leaves archival disabled.
func (c *Client) WithSnapshots(svc storage.StorageService, bucket string) *Client {
	c.snapshots = svc
	c.snapshotBucket = bucket
	return c
}

// RandomUserAgent picks one of the rotating user agent strings.
func (c *Client) RandomUserAgent() string {
	return c.userAgents[rand.Intn(len(c.userAgents))]
}

// GetDocument fetches a URL and parses the response body as an HTML document.
func (c *Client) GetDocument(ctx context.Context, rawURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", rawURL, err)
	}

	req.Header.Set("User-Agent", c.RandomUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading body of %s: %w", rawURL, err)
	}

	c.archive(rawURL, body)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", rawURL, err)
	}
	return doc, nil
}

// ParseDocument parses pre-rendered HTML (e.g. from a headless browser) and
// archives it the same way as a plain fetch.
func (c *Client) ParseDocument(rawURL, html string) (*goquery.Document, error) {
	c.archive(rawURL, []byte(html))

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(html)))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", rawURL, err)
	}
	return doc, nil
}

// archive uploads a raw page snapshot asynchronously. Best effort: failures
// are logged, never surfaced to the scrape path.
func (c *Client) archive(rawURL string, body []byte) {
	if c.snapshots == nil || c.snapshotBucket == "" {
		return
	}

	objectName := snapshotObjectName(rawURL, time.Now().UTC())
	data := make([]byte, len(body))
	copy(data, body)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := c.snapshots.Upload(ctx, c.snapshotBucket, objectName, data, "text/html"); err != nil {
			log.Warn().Err(err).Str("url", rawURL).Msg("Failed to archive page snapshot")
		}
	}()
}

func snapshotObjectName(rawURL string, at time.Time) string {
	host := "unknown"
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = u.Host
	}
	sum := sha1.Sum([]byte(rawURL))
	return fmt.Sprintf("snapshots/%s/%s/%s.html", host, at.Format("2006-01-02"), hex.EncodeToString(sum[:8]))
}
