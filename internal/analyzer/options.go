package analyzer

// Options configures bulk analysis behavior.
type Options struct {
	// BulkConcurrency caps how many URLs are analyzed at once in a bulk run.
	BulkConcurrency int
	// BulkRatePerSecond limits outbound fetches across a bulk run. Zero
	// disables rate limiting.
	BulkRatePerSecond float64
}

// Option is a functional option for configuring the analyzer.
type Option func(*Options)

// DefaultOptions returns the default analyzer options.
func DefaultOptions() *Options {
	return &Options{
		BulkConcurrency:   4,
		BulkRatePerSecond: 5,
	}
}

// WithBulkConcurrency caps concurrent analyses in a bulk run.
func WithBulkConcurrency(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.BulkConcurrency = n
		}
	}
}

// WithBulkRate limits outbound fetches per second across a bulk run.
func WithBulkRate(perSecond float64) Option {
	return func(o *Options) {
		o.BulkRatePerSecond = perSecond
	}
}
