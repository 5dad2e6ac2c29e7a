package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSalary(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantOk   bool
		wantMin  float64
		wantMax  float64
		wantCurr string
	}{
		{"empty", "", false, 0, 0, ""},
		{"no numbers", "Competitive salary", false, 0, 0, ""},
		{"range", "$50,000 - $70,000 a year", true, 50000, 70000, "USD"},
		{"single value", "$85,000", true, 85000, 85000, "USD"},
		{"k suffix", "$50K - $70K", true, 50000, 70000, "USD"},
		{"pounds", "£40,000 - £55,000", true, 40000, 55000, "GBP"},
		{"euros", "€60,000", true, 60000, 60000, "EUR"},
		{"reversed range", "$90,000 - $60,000", true, 60000, 90000, "USD"},
		{"decimal with k", "$52.5k", true, 52500, 52500, "USD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			salary, ok := ParseSalary(tt.input)
			require.Equal(t, tt.wantOk, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantMin, salary.Min)
			assert.Equal(t, tt.wantMax, salary.Max)
			assert.Equal(t, tt.wantCurr, salary.Currency)
		})
	}
}

func TestDetectRemote(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  bool
	}{
		{"no signal", []string{"New York, NY", "Software Engineer"}, false},
		{"remote in location", []string{"Remote"}, true},
		{"wfh", []string{"", "WFH friendly"}, true},
		{"work from home", []string{"Work From Home position"}, true},
		{"anywhere", []string{"Anywhere in the US"}, true},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectRemote(tt.texts...))
		})
	}
}

func TestDetectEmploymentType(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  string
	}{
		{"none", []string{"Software Engineer"}, ""},
		{"full time", []string{"Full-Time Software Engineer"}, "full-time"},
		{"part time", []string{"", "This is a part time role"}, "part-time"},
		{"contract", []string{"Contract Developer"}, "contract"},
		{"internship", []string{"Summer Internship"}, "internship"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectEmploymentType(tt.texts...))
		})
	}
}

func TestCleanDescription(t *testing.T) {
	got := CleanDescription("<p>We are hiring a <strong>Go developer</strong>.</p>")
	assert.Contains(t, got, "Go developer")
	assert.NotContains(t, got, "<p>")

	assert.Equal(t, "", CleanDescription(""))
	assert.Equal(t, "plain text", CleanDescription("plain text"))
}
