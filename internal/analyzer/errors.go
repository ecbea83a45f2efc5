package analyzer

import "errors"

var (
	// ErrAnalysisFailed is returned when a single analysis cannot complete
	ErrAnalysisFailed = errors.New("analysis failed")
	// ErrNilFetcher is returned when the analyzer is built without a fetch collaborator
	ErrNilFetcher = errors.New("fetch collaborator is required")
)
