package search

import (
	"fmt"
	"strings"

	"github.com/jobboardhq/job-aggregator-service/common"
)

// Both sides of the union project onto the same column list. Side-specific
// columns are padded with typed NULLs so the branches stay union-compatible.
const (
	internalSelect = `SELECT 'internal' AS source_type, j.id, j.title, j.description, j.location, j.employment_type, j.created_at,
  e.company_name, j.employer_id, NULL::text AS source_site, NULL::text AS job_url, NULL::boolean AS remote_work,
  NULL::double precision AS salary_min, NULL::double precision AS salary_max, NULL::text AS salary_currency
FROM jobs j
JOIN employers e ON j.employer_id = e.id`

	externalSelect = `SELECT 'external' AS source_type, id, title, description, location, employment_type, created_at,
  company_name, NULL::text AS employer_id, source_site, job_url, remote_work,
  salary_min, salary_max, salary_currency
FROM external_jobs`

	internalCount = `SELECT COUNT(*) FROM jobs j JOIN employers e ON j.employer_id = e.id`
	externalCount = `SELECT COUNT(*) FROM external_jobs`
)

// SearchParams is a normalized unified-search request.
type SearchParams struct {
	Query          string
	Location       string
	EmploymentType string
	RemoteOnly     bool
	SourceType     string
	Page           int
	Limit          int
}

// Offset returns the row offset for the 1-based page window.
func (p SearchParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// argList collects positional query arguments and hands out their
// placeholders.
type argList struct {
	args []any
}

func (a *argList) add(v any) string {
	a.args = append(a.args, v)
	return fmt.Sprintf("$%d", len(a.args))
}

// internalConditions returns the WHERE conditions for the internal side.
// Internal rows carry no remote facet, so the remote filter does not narrow
// this side.
func internalConditions(b *argList, p SearchParams) []string {
	var conds []string
	if p.Query != "" {
		ph := b.add("%" + p.Query + "%")
		conds = append(conds, fmt.Sprintf("(j.title ILIKE %s OR j.description ILIKE %s)", ph, ph))
	}
	if p.Location != "" {
		conds = append(conds, fmt.Sprintf("j.location ILIKE %s", b.add("%"+p.Location+"%")))
	}
	if p.EmploymentType != "" {
		conds = append(conds, fmt.Sprintf("j.employment_type = %s", b.add(p.EmploymentType)))
	}
	return conds
}

// externalConditions returns the WHERE conditions for the external side.
// Deactivated records never surface in search.
func externalConditions(b *argList, p SearchParams) []string {
	conds := []string{"is_active = true"}
	if p.Query != "" {
		ph := b.add("%" + p.Query + "%")
		conds = append(conds, fmt.Sprintf("(title ILIKE %s OR description ILIKE %s OR company_name ILIKE %s)", ph, ph, ph))
	}
	if p.Location != "" {
		conds = append(conds, fmt.Sprintf("location ILIKE %s", b.add("%"+p.Location+"%")))
	}
	if p.EmploymentType != "" {
		conds = append(conds, fmt.Sprintf("employment_type = %s", b.add(p.EmploymentType)))
	}
	if p.RemoteOnly {
		conds = append(conds, "remote_work = true")
	}
	return conds
}

func withWhere(base string, conds []string) string {
	if len(conds) == 0 {
		return base
	}
	return base + "\nWHERE " + strings.Join(conds, " AND ")
}

// BuildSearchQuery renders the paginated search statement for the requested
// source type. For "all" both sides are combined with UNION ALL and ordered
// by creation time across the union; the page window applies after the union.
func BuildSearchQuery(p SearchParams) (string, []any) {
	b := &argList{}

	var body string
	switch common.SourceType(p.SourceType) {
	case common.SourceTypeInternal:
		body = withWhere(internalSelect, internalConditions(b, p))
	case common.SourceTypeExternal:
		body = withWhere(externalSelect, externalConditions(b, p))
	default:
		internal := withWhere(internalSelect, internalConditions(b, p))
		external := withWhere(externalSelect, externalConditions(b, p))
		body = internal + "\nUNION ALL\n" + external
	}

	sql := body + "\nORDER BY created_at DESC\nLIMIT " + b.add(p.Limit) + " OFFSET " + b.add(p.Offset())
	return sql, b.args
}

// BuildCountQuery renders the matching total-count statement for the same
// filters. For "all" the two side counts are summed in a single statement.
func BuildCountQuery(p SearchParams) (string, []any) {
	b := &argList{}

	switch common.SourceType(p.SourceType) {
	case common.SourceTypeInternal:
		return withWhere(internalCount, internalConditions(b, p)), b.args
	case common.SourceTypeExternal:
		return withWhere(externalCount, externalConditions(b, p)), b.args
	default:
		internal := withWhere(internalCount, internalConditions(b, p))
		external := withWhere(externalCount, externalConditions(b, p))
		return "SELECT (" + internal + ") + (" + external + ")", b.args
	}
}

// ExternalListParams filters the external-jobs listing endpoint.
type ExternalListParams struct {
	Query          string
	Location       string
	SourceSite     string
	EmploymentType string
	RemoteOnly     bool
	Page           int
	Limit          int
}

func (p ExternalListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

func externalListConditions(b *argList, p ExternalListParams) []string {
	conds := []string{"is_active = true"}
	if p.Query != "" {
		ph := b.add("%" + p.Query + "%")
		conds = append(conds, fmt.Sprintf("(title ILIKE %s OR description ILIKE %s OR company_name ILIKE %s)", ph, ph, ph))
	}
	if p.Location != "" {
		conds = append(conds, fmt.Sprintf("location ILIKE %s", b.add("%"+p.Location+"%")))
	}
	if p.SourceSite != "" {
		conds = append(conds, fmt.Sprintf("source_site = %s", b.add(p.SourceSite)))
	}
	if p.EmploymentType != "" {
		conds = append(conds, fmt.Sprintf("employment_type = %s", b.add(p.EmploymentType)))
	}
	if p.RemoteOnly {
		conds = append(conds, "remote_work = true")
	}
	return conds
}

// BuildExternalListQuery renders the filtered external-jobs listing.
func BuildExternalListQuery(p ExternalListParams) (string, []any) {
	b := &argList{}
	base := `SELECT id, external_id, title, description, company_name, location, job_url, source_site, posted_date, remote_work, salary_min, salary_max, salary_currency, employment_type, is_active, created_at
FROM external_jobs`
	sql := withWhere(base, externalListConditions(b, p)) +
		"\nORDER BY created_at DESC\nLIMIT " + b.add(p.Limit) + " OFFSET " + b.add(p.Offset())
	return sql, b.args
}

// BuildExternalListCountQuery renders the matching count statement.
func BuildExternalListCountQuery(p ExternalListParams) (string, []any) {
	b := &argList{}
	return withWhere(externalCount, externalListConditions(b, p)), b.args
}
