package fetcher

import "errors"

var (
	// ErrFetchFailed is returned when the target page cannot be reached
	ErrFetchFailed = errors.New("fetch failed")
	// ErrTooManyRedirects is returned when a request exceeds the redirect limit
	ErrTooManyRedirects = errors.New("too many redirects")
)
