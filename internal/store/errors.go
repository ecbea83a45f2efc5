package store

import "errors"

var (
	// ErrAnalysisNotFound is returned when a referenced analysis record does not exist for the user
	ErrAnalysisNotFound = errors.New("analysis not found")
	// ErrComparisonNotFound is returned when a referenced comparison does not exist for the user
	ErrComparisonNotFound = errors.New("comparison not found")
)
