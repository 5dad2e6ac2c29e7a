package models

import (
	"time"
)

// ScrapeError records one failed canned search during a sweep.
type ScrapeError struct {
	Search    string    `json:"search"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// RunStats holds cumulative scrape statistics for the current process.
// Diagnostic only; reset on restart.
type RunStats struct {
	TotalScraped int           `json:"total_scraped"`
	TotalSaved   int           `json:"total_saved"`
	LastRunTime  *time.Time    `json:"last_run_time"`
	Errors       []ScrapeError `json:"errors"`
}

// ScrapeStatus is the scheduler status report.
type ScrapeStatus struct {
	IsRunning        bool       `json:"is_running"`
	LastRun          *time.Time `json:"last_run"`
	Stats            RunStats   `json:"stats"`
	NextScheduledRun time.Time  `json:"next_scheduled_run"`
}
