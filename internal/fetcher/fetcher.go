// Package fetcher performs the outbound HTTP requests for the analysis
// engine and the API playground.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/theopenlane/httpsling"
)

const (
	// httpRedirectLimit caps how many redirects a fetch will follow.
	httpRedirectLimit = 10
	// defaultTimeout is the default timeout for a single fetch.
	defaultTimeout = 30 * time.Second
	// defaultMaxBodyBytes caps how many response bytes are read.
	defaultMaxBodyBytes = 2 * 1024 * 1024
	// defaultUserAgent identifies the service to fetched sites.
	defaultUserAgent = "Mozilla/5.0 (compatible; WTFIsThisSite/1.0)"
)

// PageResponse is the outcome of fetching a page for analysis. A non-2xx
// status is reported, not treated as an error.
type PageResponse struct {
	// Status is the HTTP status code.
	Status int
	// Headers holds the response headers, first value per name.
	Headers map[string]string
	// Body is the response body, truncated at the configured read limit.
	Body string
	// ElapsedMs is the wall-clock fetch duration in milliseconds.
	ElapsedMs int64
}

// ArbitraryResponse is the outcome of a playground request. Failures are
// captured in-band: Status is 0 and Body carries the error text.
type ArbitraryResponse struct {
	Status    int               `json:"status"`
	Headers   map[string]string `json:"headers"`
	Body      string            `json:"body"`
	ElapsedMs int64             `json:"time"`
}

// Client fetches pages and executes arbitrary playground requests.
type Client struct {
	httpClient   *http.Client
	userAgent    string
	maxBodyBytes int64
}

// Option configures the Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithUserAgent sets the identifying user-agent for page fetches.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithMaxBodyBytes caps how many response bytes are read.
func WithMaxBodyBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// New creates a fetch client.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= httpRedirectLimit {
					return ErrTooManyRedirects
				}

				return nil
			},
		},
		userAgent:    defaultUserAgent,
		maxBodyBytes: defaultMaxBodyBytes,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchPage performs a GET against the given URL and returns the response
// along with the elapsed fetch time. Extra headers are applied on top of the
// identifying user-agent. Network, DNS and timeout failures return an error
// wrapping ErrFetchFailed; the status code is never an error by itself.
func (c *Client) FetchPage(ctx context.Context, url string, headers map[string]string) (*PageResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	elapsed := time.Since(start).Milliseconds()

	return &PageResponse{
		Status:    resp.StatusCode,
		Headers:   flattenHeaders(resp.Header),
		Body:      string(bodyBytes),
		ElapsedMs: elapsed,
	}, nil
}

// FetchArbitrary executes a playground request. It never returns an error:
// request construction and transport failures are reported with Status 0 and
// the error text in Body.
func (c *Client) FetchArbitrary(ctx context.Context, method, url string, headers map[string]string, body string) *ArbitraryResponse {
	opts := []httpsling.Option{
		httpsling.URL(url),
		httpsling.Method(strings.ToUpper(method)),
		httpsling.WithHTTPClient(c.httpClient),
	}

	for k, v := range headers {
		opts = append(opts, httpsling.Header(k, v))
	}

	if body != "" {
		opts = append(opts, httpsling.Body(strings.NewReader(body)))
	}

	requester, err := httpsling.New(opts...)
	if err != nil {
		return &ArbitraryResponse{Body: err.Error()}
	}

	start := time.Now()

	resp, err := requester.SendWithContext(ctx)
	if err != nil {
		return &ArbitraryResponse{
			Body:      err.Error(),
			ElapsedMs: time.Since(start).Milliseconds(),
		}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
	if err != nil {
		return &ArbitraryResponse{
			Body:      err.Error(),
			ElapsedMs: time.Since(start).Milliseconds(),
		}
	}

	return &ArbitraryResponse{
		Status:    resp.StatusCode,
		Headers:   flattenHeaders(resp.Header),
		Body:      string(bodyBytes),
		ElapsedMs: time.Since(start).Milliseconds(),
	}
}

// flattenHeaders keeps the first value per header name, preserving the
// canonical name casing as returned by the server.
func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		if len(values) > 0 {
			out[name] = values[0]
		}
	}

	return out
}
