package domain

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantURL    string
		wantDomain string
		wantErr    bool
	}{
		{
			name:       "bare domain gets https prefix",
			input:      "example.com",
			wantURL:    "https://example.com",
			wantDomain: "example.com",
		},
		{
			name:       "existing https scheme preserved",
			input:      "https://example.com/path",
			wantURL:    "https://example.com/path",
			wantDomain: "example.com",
		},
		{
			name:       "existing http scheme preserved",
			input:      "http://example.com",
			wantURL:    "http://example.com",
			wantDomain: "example.com",
		},
		{
			name:       "subdomain and port",
			input:      "https://app.example.co.uk:8443/dashboard",
			wantURL:    "https://app.example.co.uk:8443/dashboard",
			wantDomain: "app.example.co.uk",
		},
		{
			name:       "surrounding whitespace trimmed",
			input:      "  example.com  ",
			wantURL:    "https://example.com",
			wantDomain: "example.com",
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			input:   "   ",
			wantErr: true,
		},
		{
			name:    "not a url",
			input:   "http://[::1]:namedport",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Normalize(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Normalize(%q) expected error, got %+v", tt.input, info)
				}
				if !errors.Is(err, ErrInvalidURL) {
					t.Errorf("Normalize(%q) error = %v, want ErrInvalidURL", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize(%q) error = %v", tt.input, err)
			}
			if info.URL != tt.wantURL {
				t.Errorf("URL = %q, want %q", info.URL, tt.wantURL)
			}
			if info.Domain != tt.wantDomain {
				t.Errorf("Domain = %q, want %q", info.Domain, tt.wantDomain)
			}
		})
	}
}

func TestNormalizePublicSuffix(t *testing.T) {
	info, err := Normalize("https://app.example.co.uk")
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if info.TLD != "co.uk" {
		t.Errorf("TLD = %q, want %q", info.TLD, "co.uk")
	}
	if info.SLD != "example" {
		t.Errorf("SLD = %q, want %q", info.SLD, "example")
	}
	if info.Subdomain != "app" {
		t.Errorf("Subdomain = %q, want %q", info.Subdomain, "app")
	}
}
