package scrape

import (
	"context"
)

// RawCandidate is one normalized listing parsed from an external source,
// before persistence.
type RawCandidate struct {
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	JobURL      string `json:"job_url"`
	SourceSite  string `json:"source_site"`
	SalaryText  string `json:"salary_text,omitempty"`
}

// SourceAdapter fetches and parses listings from one external job site.
//
// Fetch never returns an error: fetch and parse failures are contained inside
// the adapter, logged, and yield an empty slice, so one degraded source cannot
// abort a multi-source search. Each adapter truncates its own results to limit
// and must not request more than limit conceptual results upstream.
type SourceAdapter interface {
	// Site returns the source site tag this adapter produces
	Site() string

	// Fetch retrieves up to limit listings matching query and location
	Fetch(ctx context.Context, query, location string, limit int) []RawCandidate
}
