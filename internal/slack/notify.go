package slack

import (
	"context"
	"fmt"
	"net/http"

	"github.com/samber/lo"
	"github.com/theopenlane/httpsling"

	"github.com/reeses-sketch/WTF-is-this-site/internal/store"
	"github.com/reeses-sketch/WTF-is-this-site/internal/types"
)

// Message represents a Slack webhook message payload
type Message struct {
	// Text is the fallback text for the notification
	Text string `json:"text"`
	// Blocks holds the rich layout blocks for the message
	Blocks []Block `json:"blocks,omitempty"`
}

// Block represents a Slack Block Kit block
type Block struct {
	// Type is the block type (section, divider, header, etc.)
	Type string `json:"type"`
	// Text is the text object for this block
	Text *TextObject `json:"text,omitempty"`
	// Fields holds multiple text objects for section blocks
	Fields []TextObject `json:"fields,omitempty"`
}

// TextObject represents a Slack text object
type TextObject struct {
	// Type is the text type (plain_text or mrkdwn)
	Type string `json:"type"`
	// Text is the actual text content
	Text string `json:"text"`
}

// Send delivers a message to the webhook. Slack answers 200 on success;
// anything else is treated as a delivery failure.
func (c *Client) Send(ctx context.Context, msg Message) error {
	requester, err := httpsling.New(
		httpsling.URL(c.webhook),
		httpsling.Post(),
		httpsling.JSONBody(msg),
		httpsling.WithHTTPClient(c.http),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}

	resp, err := requester.SendWithContext(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return nil
}

// NotifyBulkJobCompleted posts a summary of a finished bulk analysis job.
func (c *Client) NotifyBulkJobCompleted(ctx context.Context, job *store.JobRecord) error {
	succeeded := lo.CountBy(job.Results, func(r types.BulkResult) bool { return r.Success })
	failed := len(job.Results) - succeeded

	msg := Message{
		Text: fmt.Sprintf("Bulk analysis %s completed: %d succeeded, %d failed", job.ID, succeeded, failed),
		Blocks: []Block{
			{
				Type: "header",
				Text: &TextObject{Type: "plain_text", Text: "Bulk analysis completed"},
			},
			{
				Type: "section",
				Fields: []TextObject{
					{Type: "mrkdwn", Text: fmt.Sprintf("*Job:*\n%s", job.ID)},
					{Type: "mrkdwn", Text: fmt.Sprintf("*URLs:*\n%d", len(job.URLs))},
					{Type: "mrkdwn", Text: fmt.Sprintf("*Succeeded:*\n%d", succeeded)},
					{Type: "mrkdwn", Text: fmt.Sprintf("*Failed:*\n%d", failed)},
				},
			},
		},
	}

	return c.Send(ctx, msg)
}
