package analyzer

import (
	"strings"

	"github.com/reeses-sketch/WTF-is-this-site/internal/types"
)

// headerRule matches a substring against a response header value.
type headerRule struct {
	header     string
	substring  string
	name       string
	category   string
	confidence int
}

// htmlRule matches any of its substrings against the page HTML.
type htmlRule struct {
	substrings []string
	name       string
	category   string
	confidence int
}

// Detection rules in fixed order. Result order is rule order, never sorted
// by confidence. Header name lookup is case-insensitive; the substring match
// itself is case-sensitive as written.
var (
	headerRules = []headerRule{
		{header: "server", substring: "nginx", name: "Nginx", category: "Web Server", confidence: 100},
		{header: "server", substring: "Apache", name: "Apache", category: "Web Server", confidence: 100},
		{header: "server", substring: "cloudflare", name: "Cloudflare", category: "CDN", confidence: 100},
	}

	htmlRules = []htmlRule{
		{substrings: []string{"_next/static", "__NEXT_DATA__"}, name: "Next.js", category: "Framework", confidence: 95},
		{substrings: []string{"react", "React"}, name: "React", category: "Library", confidence: 80},
		{substrings: []string{"vue", "Vue"}, name: "Vue.js", category: "Framework", confidence: 80},
		{substrings: []string{"angular", "ng-"}, name: "Angular", category: "Framework", confidence: 80},
		{substrings: []string{"bootstrap", "Bootstrap"}, name: "Bootstrap", category: "CSS Framework", confidence: 90},
		{substrings: []string{"tailwind", "Tailwind"}, name: "Tailwind CSS", category: "CSS Framework", confidence: 90},
		{substrings: []string{"google-analytics", "gtag"}, name: "Google Analytics", category: "Analytics", confidence: 95},
		{substrings: []string{"googletagmanager"}, name: "Google Tag Manager", category: "Analytics", confidence: 95},
		{substrings: []string{"wp-content", "wordpress"}, name: "WordPress", category: "CMS", confidence: 95},
		{substrings: []string{"shopify"}, name: "Shopify", category: "E-commerce", confidence: 95},
	}
)

// DetectTechnologies identifies technologies from the page HTML and response
// headers using literal substring rules. Every rule is evaluated
// independently, so a page can match many; duplicate names are never
// deduplicated. No version extraction is performed.
func DetectTechnologies(html string, headers map[string]string) []types.Technology {
	technologies := make([]types.Technology, 0)

	for _, rule := range headerRules {
		if strings.Contains(headerValue(headers, rule.header), rule.substring) {
			technologies = append(technologies, types.Technology{
				Name:       rule.name,
				Category:   rule.category,
				Confidence: rule.confidence,
			})
		}
	}

	for _, rule := range htmlRules {
		for _, sub := range rule.substrings {
			if strings.Contains(html, sub) {
				technologies = append(technologies, types.Technology{
					Name:       rule.name,
					Category:   rule.category,
					Confidence: rule.confidence,
				})

				break
			}
		}
	}

	return technologies
}

// headerValue looks up a header by name case-insensitively.
func headerValue(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return v
	}

	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}

	return ""
}

// headerPresent reports whether a header name exists, case-insensitively.
// An empty value still counts as present.
func headerPresent(headers map[string]string, name string) bool {
	if _, ok := headers[name]; ok {
		return true
	}

	for k := range headers {
		if strings.EqualFold(k, name) {
			return true
		}
	}

	return false
}
