package scraper

import (
	"context"
	"math"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/jobboardhq/job-aggregator-service/common/scrape"
)

// Aggregator fans a search out to all registered source adapters concurrently
// and merges their results under a combined result budget.
type Aggregator struct {
	adapters []scrape.SourceAdapter
}

// NewAggregator creates an aggregator over the given adapters.
func NewAggregator(adapters ...scrape.SourceAdapter) *Aggregator {
	return &Aggregator{adapters: adapters}
}

// Sources returns the site tags of all registered adapters.
func (a *Aggregator) Sources() []string {
	return lo.Map(a.adapters, func(ad scrape.SourceAdapter, _ int) string {
		return ad.Site()
	})
}

// WithSources returns an aggregator restricted to the named sites. Unknown
// names are ignored; an empty selection keeps all adapters.
func (a *Aggregator) WithSources(sites []string) *Aggregator {
	if len(sites) == 0 {
		return a
	}
	selected := lo.Filter(a.adapters, func(ad scrape.SourceAdapter, _ int) bool {
		return lo.Contains(sites, ad.Site())
	})
	if len(selected) == 0 {
		return a
	}
	return NewAggregator(selected...)
}

// ScrapeAllSources runs every adapter concurrently, each capped at
// ceil(limit/N), waits for all of them to settle, and truncates the combined
// result to limit. A failing adapter contributes an empty slice; when every
// source fails the result is empty, never an error.
func (a *Aggregator) ScrapeAllSources(ctx context.Context, query, location string, limit int) []scrape.RawCandidate {
	if limit <= 0 || len(a.adapters) == 0 {
		return nil
	}

	perSource := int(math.Ceil(float64(limit) / float64(len(a.adapters))))

	results := make([][]scrape.RawCandidate, len(a.adapters))
	var wg sync.WaitGroup

	for i, adapter := range a.adapters {
		wg.Add(1)
		go func(i int, adapter scrape.SourceAdapter) {
			defer wg.Done()
			// Adapters contain their own failures, but a panicking one must
			// not take the whole fan-out down with it.
			defer func() {
				if r := recover(); r != nil {
					log.Error().Interface("panic", r).Str("source", adapter.Site()).Msg("Source adapter panicked")
				}
			}()
			results[i] = adapter.Fetch(ctx, query, location, perSource)
		}(i, adapter)
	}

	wg.Wait()

	combined := lo.Flatten(results)
	if len(combined) > limit {
		combined = combined[:limit]
	}

	log.Info().
		Str("query", query).
		Str("location", location).
		Int("count", len(combined)).
		Msg("Multi-source scrape settled")

	return combined
}
