package domain

import "errors"

var (
	// ErrInvalidURL is returned when the provided URL cannot be parsed
	ErrInvalidURL = errors.New("invalid URL")
)
