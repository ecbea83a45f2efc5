// Package playground executes arbitrary user-composed HTTP requests and
// records them in the caller's history.
package playground

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/reeses-sketch/WTF-is-this-site/internal/fetcher"
	"github.com/reeses-sketch/WTF-is-this-site/internal/store"
)

// Request is one user-composed HTTP request.
type Request struct {
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    string            `json:"body,omitempty"`
}

// Response is the raw outcome of a playground request. Transport failures
// are reported in-band with Status 0 and the error text as Body.
type Response struct {
	Status    int               `json:"status"`
	Headers   map[string]string `json:"headers"`
	Body      string            `json:"body"`
	ElapsedMs int64             `json:"time"`
}

// ArbitraryFetcher executes a request without propagating transport errors.
type ArbitraryFetcher interface {
	FetchArbitrary(ctx context.Context, method, url string, headers map[string]string, body string) *fetcher.ArbitraryResponse
}

// HistoryStore persists executed requests.
type HistoryStore interface {
	InsertRequest(ctx context.Context, rec *store.RequestRecord) error
	ListRequests(ctx context.Context, userID string, limit int) ([]*store.RequestRecord, error)
}

// Service runs playground requests and maintains per-user history.
type Service struct {
	fetch   ArbitraryFetcher
	history HistoryStore
}

// New creates a playground service.
func New(fetch ArbitraryFetcher, history HistoryStore) (*Service, error) {
	if fetch == nil {
		return nil, ErrNilFetcher
	}
	if history == nil {
		return nil, ErrNilStore
	}

	return &Service{fetch: fetch, history: history}, nil
}

// Execute runs the request and records it in the user's history. The
// response itself never fails; only validation and history persistence can
// return an error.
func (s *Service) Execute(ctx context.Context, userID string, req Request) (*Response, error) {
	if req.Method == "" || req.URL == "" {
		return nil, ErrMethodAndURLRequired
	}

	result := s.fetch.FetchArbitrary(ctx, req.Method, req.URL, req.Headers, req.Body)

	rec := &store.RequestRecord{
		UserID:    userID,
		Method:    req.Method,
		URL:       req.URL,
		Headers:   req.Headers,
		Body:      req.Body,
		Status:    result.Status,
		Response:  result.Body,
		ElapsedMs: result.ElapsedMs,
	}

	if err := s.history.InsertRequest(ctx, rec); err != nil {
		// The request already ran; losing the history row should not fail
		// the call.
		log.Warn().Err(err).Str("url", req.URL).Msg("failed to record playground request")
	}

	return &Response{
		Status:    result.Status,
		Headers:   result.Headers,
		Body:      result.Body,
		ElapsedMs: result.ElapsedMs,
	}, nil
}

// History returns the user's recent playground requests.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]*store.RequestRecord, error) {
	return s.history.ListRequests(ctx, userID, limit)
}
