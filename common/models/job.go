package models

import (
	"time"
)

// UnifiedJob is a tagged union over internal and external job records.
// SourceType is always set; the side-specific fields are nil for the other
// side (employer_id for external rows, source_site/job_url/remote_work and
// salary fields for internal rows).
type UnifiedJob struct {
	SourceType     string    `json:"source_type"`
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    *string   `json:"description"`
	Location       *string   `json:"location"`
	EmploymentType *string   `json:"employment_type"`
	CreatedAt      time.Time `json:"created_at"`
	CompanyName    string    `json:"company_name"`
	EmployerID     *string   `json:"employer_id"`
	SourceSite     *string   `json:"source_site"`
	JobUrl         *string   `json:"job_url"`
	RemoteWork     *bool     `json:"remote_work"`
	SalaryMin      *float64  `json:"salary_min"`
	SalaryMax      *float64  `json:"salary_max"`
	SalaryCurrency *string   `json:"salary_currency"`
}

// Pagination describes a 1-based page window over a result set.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}
