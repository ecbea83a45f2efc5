// Package types holds the shared result structures produced by the site
// analysis engine and persisted by the store.
package types

// Technology is a detected piece of software or a service running on the
// analyzed site.
type Technology struct {
	// Name is the display identifier (e.g. "Nginx")
	Name string `json:"name"`
	// Category labels the technology (Web Server, CDN, Framework, ...). The
	// set is open; unrecognized categories are carried through as-is.
	Category string `json:"category"`
	// Confidence is a heuristic certainty score from 0 to 100, not a
	// probability with formal meaning.
	Confidence int `json:"confidence"`
	// Version is an optional free-text version string, empty when not
	// determinable.
	Version string `json:"version,omitempty"`
}

// PerformanceMetrics holds crude performance estimates derived from total
// fetch time and a static HTML scan, not real browser timing.
type PerformanceMetrics struct {
	// TTFB is the estimated time-to-first-byte in milliseconds.
	TTFB int64 `json:"ttfb"`
	// DOMContentLoaded is the estimated DOM-ready time in milliseconds.
	DOMContentLoaded int64 `json:"domContentLoaded"`
	// PageSize is the byte length of the fetched HTML body.
	PageSize int `json:"pageSize"`
	// ResourceCount is the number of script, link and img tags found in the
	// HTML.
	ResourceCount int `json:"resourceCount"`
}

// SecurityScore holds the security-header score with paired issues and
// recommendations.
type SecurityScore struct {
	// Score starts at 100 and is decremented by fixed penalties, floored at 0.
	Score int `json:"score"`
	// Issues lists one human-readable issue per triggered penalty, in check
	// order.
	Issues []string `json:"issues"`
	// Recommendations pairs 1:1 with Issues, in the same order.
	Recommendations []string `json:"recommendations"`
}

// SEOScore holds the SEO heuristic score with paired issues and
// recommendations.
type SEOScore struct {
	Score           int      `json:"score"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// AnalysisResult is the engine's top-level output for a single analyzed URL.
// It is a pure computed value; persistence is delegated to the store.
type AnalysisResult struct {
	// URL is the normalized URL that was fetched.
	URL string `json:"url"`
	// Domain is the hostname extracted from the normalized URL.
	Domain string `json:"domain"`
	// Title is the page title, empty when the page has none.
	Title string `json:"title,omitempty"`
	// Description is the meta description, empty when the page has none.
	Description string `json:"description,omitempty"`
	// Technologies is an unordered collection; duplicate names are permitted.
	Technologies []Technology `json:"technologies"`
	// Headers are the raw response headers as returned by the fetch, one
	// value per name.
	Headers map[string]string `json:"headers"`
	// StatusCode is the HTTP status of the fetched page.
	StatusCode int `json:"statusCode"`
	// LoadTime is the total fetch time in milliseconds.
	LoadTime int64 `json:"loadTime"`

	Performance PerformanceMetrics `json:"performance"`
	Security    SecurityScore      `json:"security"`
	SEO         SEOScore           `json:"seo"`
}

// BulkResult captures the outcome of one URL within a bulk analysis. One
// URL's failure never aborts the batch.
type BulkResult struct {
	// URL is the raw input URL as submitted.
	URL string `json:"url"`
	// Success reports whether the analysis completed.
	Success bool `json:"success"`
	// Analysis holds the result when Success is true.
	Analysis *AnalysisResult `json:"analysis,omitempty"`
	// AnalysisID references the persisted record, set by the caller after
	// storage.
	AnalysisID string `json:"analysis_id,omitempty"`
	// Error carries the failure reason when Success is false.
	Error string `json:"error,omitempty"`
}
