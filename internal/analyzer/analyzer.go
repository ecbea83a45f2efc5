// Package analyzer is the site analysis engine: a stateless pipeline that
// fetches a page once and derives technology detections, performance
// estimates, a security-header score and an SEO score from the HTML text and
// response headers.
package analyzer

import (
	"context"
	"fmt"

	"github.com/reeses-sketch/WTF-is-this-site/internal/domain"
	"github.com/reeses-sketch/WTF-is-this-site/internal/fetcher"
	"github.com/reeses-sketch/WTF-is-this-site/internal/types"
)

// PageFetcher is the outbound fetch collaborator consumed by the engine.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string, headers map[string]string) (*fetcher.PageResponse, error)
}

// Analyzer runs the analysis pipeline. It holds no mutable shared state;
// every call is independent.
type Analyzer struct {
	fetch   PageFetcher
	options *Options
}

// New creates an analyzer using the given fetch collaborator.
func New(fetch PageFetcher, opts ...Option) (*Analyzer, error) {
	if fetch == nil {
		return nil, ErrNilFetcher
	}

	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	return &Analyzer{
		fetch:   fetch,
		options: options,
	}, nil
}

// Analyze normalizes the raw URL, fetches the page once and runs all scoring
// functions against the fetched body and headers. On fetch failure the whole
// call fails with an error wrapping ErrAnalysisFailed carrying the cause; no
// partial result is returned.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) (*types.AnalysisResult, error) {
	info, err := domain.Normalize(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}

	page, err := a.fetch.FetchPage(ctx, info.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}

	return &types.AnalysisResult{
		URL:          info.URL,
		Domain:       info.Domain,
		Title:        ExtractTitle(page.Body),
		Description:  ExtractDescription(page.Body),
		Technologies: DetectTechnologies(page.Body, page.Headers),
		Headers:      page.Headers,
		StatusCode:   page.Status,
		LoadTime:     page.ElapsedMs,
		Performance:  EstimatePerformance(page.Body, page.ElapsedMs),
		Security:     ScoreSecurity(page.Headers),
		SEO:          ScoreSEO(page.Body),
	}, nil
}
