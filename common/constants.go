package common

const (
	// AppName is the name of the application
	AppName = "job-aggregator-service"
)

// SourceSite identifies an external job listing website targeted by one
// source adapter.
type SourceSite string

const (
	// SourceIndeed represents the Indeed job board
	SourceIndeed SourceSite = "indeed"
	// SourceLinkedIn represents LinkedIn job search
	SourceLinkedIn SourceSite = "linkedin"
	// SourceGlassdoor represents Glassdoor job listings
	SourceGlassdoor SourceSite = "glassdoor"
)

// SourceType tags a search result with its provenance.
type SourceType string

const (
	// SourceTypeInternal marks jobs posted by employers on the platform
	SourceTypeInternal SourceType = "internal"
	// SourceTypeExternal marks jobs ingested from third-party sites
	SourceTypeExternal SourceType = "external"
	// SourceTypeAll selects both stores in unified search
	SourceTypeAll SourceType = "all"
)
