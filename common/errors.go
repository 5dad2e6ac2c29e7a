package common

import (
	"errors"
)

// Common error constants
var (
	// ErrScrapeInProgress is returned when a scrape run is requested while
	// another one is still in flight
	ErrScrapeInProgress = errors.New("job scraping is already running")

	// ErrInvalidConfig is returned when an invalid configuration is provided
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupportedSource is returned when an unknown source site is requested
	ErrUnsupportedSource = errors.New("unsupported source site")

	// ErrNotFound is returned when a requested record does not exist
	ErrNotFound = errors.New("record not found")
)
