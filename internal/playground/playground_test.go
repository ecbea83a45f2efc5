package playground

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeses-sketch/WTF-is-this-site/internal/fetcher"
	"github.com/reeses-sketch/WTF-is-this-site/internal/store"
)

type fakeFetcher struct {
	response *fetcher.ArbitraryResponse
	gotURL   string
	gotBody  string
}

func (f *fakeFetcher) FetchArbitrary(_ context.Context, _, url string, _ map[string]string, body string) *fetcher.ArbitraryResponse {
	f.gotURL = url
	f.gotBody = body

	return f.response
}

func TestExecuteRecordsHistory(t *testing.T) {
	s := store.OpenMemory(t)

	fake := &fakeFetcher{response: &fetcher.ArbitraryResponse{
		Status:    200,
		Headers:   map[string]string{"Content-Type": "application/json"},
		Body:      `{"ok":true}`,
		ElapsedMs: 12,
	}}

	svc, err := New(fake, s)
	require.NoError(t, err)

	resp, err := svc.Execute(context.Background(), "user-1", Request{
		Method: "POST",
		URL:    "https://api.example.com",
		Body:   `{"a":1}`,
	})
	require.NoError(t, err)

	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, `{"ok":true}`, resp.Body)
	assert.Equal(t, "https://api.example.com", fake.gotURL)
	assert.Equal(t, `{"a":1}`, fake.gotBody)

	history, err := svc.History(context.Background(), "user-1", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "POST", history[0].Method)
	assert.Equal(t, 200, history[0].Status)
	assert.Equal(t, `{"ok":true}`, history[0].Response)
}

func TestExecuteFailureIsCapturedNotPropagated(t *testing.T) {
	s := store.OpenMemory(t)

	fake := &fakeFetcher{response: &fetcher.ArbitraryResponse{
		Status: 0,
		Body:   "dial tcp: connection refused",
	}}

	svc, err := New(fake, s)
	require.NoError(t, err)

	resp, err := svc.Execute(context.Background(), "user-1", Request{Method: "GET", URL: "http://down.example"})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Status)
	assert.Contains(t, resp.Body, "connection refused")

	history, err := svc.History(context.Background(), "user-1", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 0, history[0].Status)
}

func TestExecuteValidation(t *testing.T) {
	svc, err := New(&fakeFetcher{}, store.OpenMemory(t))
	require.NoError(t, err)

	_, err = svc.Execute(context.Background(), "user-1", Request{URL: "https://example.com"})
	require.ErrorIs(t, err, ErrMethodAndURLRequired)

	_, err = svc.Execute(context.Background(), "user-1", Request{Method: "GET"})
	require.ErrorIs(t, err, ErrMethodAndURLRequired)
}
