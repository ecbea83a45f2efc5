package analyzer

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/reeses-sketch/WTF-is-this-site/internal/types"
)

// AnalyzeBulk runs a best-effort analysis over every URL. Each URL succeeds
// or fails independently; one URL's fetch failure never aborts the batch.
// Results are collected by input position, so the returned slice always
// matches the input order. Concurrency is capped and outbound fetches are
// rate limited per the analyzer options.
func (a *Analyzer) AnalyzeBulk(ctx context.Context, urls []string) []types.BulkResult {
	results := make([]types.BulkResult, len(urls))

	var limiter *rate.Limiter
	if a.options.BulkRatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(a.options.BulkRatePerSecond), 1)
	}

	sem := make(chan struct{}, a.options.BulkConcurrency)

	var wg sync.WaitGroup

	for i, rawURL := range urls {
		wg.Go(func() {
			sem <- struct{}{}
			defer func() { <-sem }()

			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					results[i] = types.BulkResult{URL: rawURL, Error: err.Error()}
					return
				}
			}

			analysis, err := a.Analyze(ctx, rawURL)
			if err != nil {
				results[i] = types.BulkResult{URL: rawURL, Error: err.Error()}
				return
			}

			results[i] = types.BulkResult{URL: rawURL, Success: true, Analysis: analysis}
		})
	}

	wg.Wait()

	return results
}
