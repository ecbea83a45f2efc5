package api

import "errors"

var (
	// ErrInvalidRequestBody is returned when the request body cannot be decoded
	ErrInvalidRequestBody = errors.New("invalid request body")
	// ErrURLRequired is returned when an analyze request omits the URL
	ErrURLRequired = errors.New("url required")
	// ErrURLsRequired is returned when a bulk request has no URLs
	ErrURLsRequired = errors.New("at least one url required")
	// ErrTooManyURLs is returned when a bulk request exceeds the per-job URL cap
	ErrTooManyURLs = errors.New("too many urls in one job")
	// ErrNameRequired is returned when a comparison is created without a name
	ErrNameRequired = errors.New("comparison name required")
	// ErrAnalysisIDsRequired is returned when a comparison is created without members
	ErrAnalysisIDsRequired = errors.New("at least one analysis id required")
	// ErrMultipleJSONObjects is returned when the request body contains more than one JSON object
	ErrMultipleJSONObjects = errors.New("request body must contain a single JSON object")
)
