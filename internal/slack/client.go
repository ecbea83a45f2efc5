// Package slack posts bulk analysis notifications to a Slack incoming
// webhook.
package slack

import (
	"net/http"
	"time"
)

// webhookTimeout bounds a single webhook delivery.
const webhookTimeout = 10 * time.Second

// Client delivers messages to one Slack incoming webhook.
type Client struct {
	webhook string
	http    *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for webhook deliveries.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a webhook client. The webhook URL is required; everything else
// has defaults.
func New(webhook string, opts ...Option) (*Client, error) {
	if webhook == "" {
		return nil, ErrMissingWebhookURL
	}

	c := &Client{
		webhook: webhook,
		http:    &http.Client{Timeout: webhookTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}
