package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua == "" {
			t.Error("expected a user-agent header")
		}
		w.Header().Set("Server", "nginx/1.18")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html><title>hi</title></html>"))
	}))
	defer srv.Close()

	client := New()

	resp, err := client.FetchPage(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("FetchPage() error = %v", err)
	}

	if resp.Status != http.StatusOK {
		t.Errorf("Status = %d, want 200", resp.Status)
	}
	if resp.Headers["Server"] != "nginx/1.18" {
		t.Errorf("Server header = %q, want %q", resp.Headers["Server"], "nginx/1.18")
	}
	if resp.Body != "<html><title>hi</title></html>" {
		t.Errorf("Body = %q", resp.Body)
	}
	if resp.ElapsedMs < 0 {
		t.Errorf("ElapsedMs = %d, want >= 0", resp.ElapsedMs)
	}
}

func TestFetchPageNonOKStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	resp, err := New().FetchPage(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("FetchPage() error = %v", err)
	}

	if resp.Status != http.StatusInternalServerError {
		t.Errorf("Status = %d, want 500", resp.Status)
	}
}

func TestFetchPageNetworkFailure(t *testing.T) {
	client := New(WithTimeout(2 * time.Second))

	_, err := client.FetchPage(context.Background(), "http://127.0.0.1:1", nil)
	if err == nil {
		t.Fatal("expected error for unreachable host")
	}
	if !errors.Is(err, ErrFetchFailed) {
		t.Errorf("error = %v, want ErrFetchFailed", err)
	}
}

func TestFetchPageBodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		for range 100 {
			_, _ = w.Write([]byte("0123456789"))
		}
	}))
	defer srv.Close()

	resp, err := New(WithMaxBodyBytes(64)).FetchPage(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("FetchPage() error = %v", err)
	}

	if len(resp.Body) != 64 {
		t.Errorf("len(Body) = %d, want 64", len(resp.Body))
	}
}

func TestFetchArbitrary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.Header.Get("X-Custom") != "yes" {
			t.Errorf("X-Custom header = %q, want %q", r.Header.Get("X-Custom"), "yes")
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	resp := New().FetchArbitrary(context.Background(), "post", srv.URL, map[string]string{"X-Custom": "yes"}, `{"a":1}`)

	if resp.Status != http.StatusCreated {
		t.Errorf("Status = %d, want 201", resp.Status)
	}
	if resp.Body != `{"ok":true}` {
		t.Errorf("Body = %q", resp.Body)
	}
}

func TestFetchArbitraryFailureCapturedInBand(t *testing.T) {
	resp := New(WithTimeout(2*time.Second)).FetchArbitrary(context.Background(), "GET", "http://127.0.0.1:1", nil, "")

	if resp.Status != 0 {
		t.Errorf("Status = %d, want 0", resp.Status)
	}
	if resp.Body == "" {
		t.Error("Body should carry the error text")
	}
}
