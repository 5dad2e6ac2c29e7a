package scrape

import (
	"regexp"
	"strconv"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/rs/zerolog/log"
)

// Salary captures the normalized salary facet parsed from free-text snippets
// like "$80,000 - $100,000 a year".
type Salary struct {
	Min      float64
	Max      float64
	Currency string
}

var salaryAmountRe = regexp.MustCompile(`([$£€])\s*([\d,]+(?:\.\d+)?)\s*([kK])?`)

var currencySymbols = map[string]string{
	"$": "USD",
	"£": "GBP",
	"€": "EUR",
}

// ParseSalary extracts a salary range from a free-text snippet. Returns false
// when no amount is present. A single amount yields Min == Max.
func ParseSalary(text string) (Salary, bool) {
	matches := salaryAmountRe.FindAllStringSubmatch(text, 2)
	if len(matches) == 0 {
		return Salary{}, false
	}

	amounts := make([]float64, 0, 2)
	currency := ""
	for _, m := range matches {
		n, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", ""), 64)
		if err != nil {
			continue
		}
		if m[3] != "" {
			n *= 1000
		}
		amounts = append(amounts, n)
		if currency == "" {
			currency = currencySymbols[m[1]]
		}
	}

	if len(amounts) == 0 {
		return Salary{}, false
	}

	s := Salary{Min: amounts[0], Max: amounts[0], Currency: currency}
	if len(amounts) > 1 {
		s.Max = amounts[1]
		if s.Max < s.Min {
			s.Min, s.Max = s.Max, s.Min
		}
	}
	return s, true
}

var remoteMarkers = []string{"remote", "work from home", "wfh", "anywhere"}

// DetectRemote reports whether any of the given text fields marks the listing
// as remote work.
func DetectRemote(texts ...string) bool {
	for _, t := range texts {
		lower := strings.ToLower(t)
		for _, marker := range remoteMarkers {
			if strings.Contains(lower, marker) {
				return true
			}
		}
	}
	return false
}

var employmentTypes = []string{"full-time", "part-time", "contract", "internship", "temporary"}

// DetectEmploymentType extracts a normalized employment type tag from listing
// text, or "" when none is recognizable.
func DetectEmploymentType(texts ...string) string {
	for _, t := range texts {
		lower := strings.ToLower(t)
		for _, et := range employmentTypes {
			if strings.Contains(lower, et) || strings.Contains(lower, strings.ReplaceAll(et, "-", " ")) {
				return et
			}
		}
	}
	return ""
}

// CleanDescription converts an HTML description snippet to plain markdown
// text. Falls back to the raw input with tags left intact when conversion
// fails; descriptions are display text, not structured data.
func CleanDescription(html string) string {
	trimmed := strings.TrimSpace(html)
	if trimmed == "" {
		return ""
	}

	converter := md.NewConverter("", true, nil)
	text, err := converter.ConvertString(trimmed)
	if err != nil {
		log.Debug().Err(err).Msg("Description conversion failed, keeping raw text")
		return trimmed
	}
	return strings.TrimSpace(text)
}
