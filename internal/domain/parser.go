// Package domain normalizes user-supplied URLs and extracts domain
// information from them.
package domain

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Info contains the normalized URL and parsed domain information.
type Info struct {
	// URL is the normalized URL, always carrying an http or https scheme.
	URL string `json:"url"`
	// Domain is the hostname of the normalized URL.
	Domain string `json:"domain"`
	// Subdomain is the subdomain part if present.
	Subdomain string `json:"subdomain,omitempty"`
	// TLD is the public suffix of the domain.
	TLD string `json:"tld,omitempty"`
	// SLD is the second-level domain.
	SLD string `json:"sld,omitempty"`
}

// Normalize parses a raw user-supplied URL. Inputs without an http:// or
// https:// scheme are prefixed with https:// before parsing. The hostname of
// the parsed URL becomes the domain.
func Normalize(rawURL string) (*Info, error) {
	input := strings.TrimSpace(rawURL)
	if input == "" {
		return nil, ErrInvalidURL
	}

	if !strings.HasPrefix(input, "http://") && !strings.HasPrefix(input, "https://") {
		input = "https://" + input
	}

	u, err := url.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}

	info := &Info{
		URL:    input,
		Domain: host,
	}

	// Public-suffix enrichment is best-effort; bare hosts and IP literals
	// simply skip it.
	if etld1, psErr := publicsuffix.EffectiveTLDPlusOne(host); psErr == nil {
		tld, _ := publicsuffix.PublicSuffix(host)
		info.TLD = tld
		info.SLD = strings.TrimSuffix(etld1, "."+tld)
		if etld1 != host {
			info.Subdomain = strings.TrimSuffix(host, "."+etld1)
		}
	}

	return info, nil
}
