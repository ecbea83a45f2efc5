package playground

import "errors"

var (
	// ErrNilFetcher is returned when the service is built without a fetch collaborator
	ErrNilFetcher = errors.New("fetch collaborator is required")
	// ErrNilStore is returned when the service is built without a history store
	ErrNilStore = errors.New("history store is required")
	// ErrMethodAndURLRequired is returned when a playground request omits the method or URL
	ErrMethodAndURLRequired = errors.New("method and url are required")
)
