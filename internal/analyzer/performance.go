package analyzer

import (
	"strings"

	"github.com/reeses-sketch/WTF-is-this-site/internal/types"
)

// Estimation fractions of the total fetch time. These are crude stand-ins
// for real browser timing, derived only from total wall-clock latency.
const (
	ttfbFraction             = 0.3
	domContentLoadedFraction = 0.8
)

// EstimatePerformance derives performance metrics from the total fetch time
// and a static scan of the HTML. The resource count is a case-sensitive
// literal tag-name scan, not an HTML parse.
func EstimatePerformance(html string, elapsedMs int64) types.PerformanceMetrics {
	return types.PerformanceMetrics{
		TTFB:             int64(float64(elapsedMs) * ttfbFraction),
		DOMContentLoaded: int64(float64(elapsedMs) * domContentLoadedFraction),
		PageSize:         len(html),
		ResourceCount: strings.Count(html, "<script") +
			strings.Count(html, "<link") +
			strings.Count(html, "<img"),
	}
}
