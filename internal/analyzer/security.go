package analyzer

import (
	"fmt"

	"github.com/reeses-sketch/WTF-is-this-site/internal/types"
)

const (
	securityBaseScore       = 100
	missingHeaderPenalty    = 15
	poweredByHeaderPenalty  = 10
	poweredByHeaderName     = "x-powered-by"
	poweredByIssue          = "X-Powered-By header exposes server information"
	poweredByRecommendation = "Remove X-Powered-By header to hide server details"
)

// securityHeaders are checked in this fixed order; each missing header costs
// the same penalty.
var securityHeaders = []string{
	"strict-transport-security",
	"content-security-policy",
	"x-frame-options",
	"x-content-type-options",
	"referrer-policy",
	"permissions-policy",
}

// ScoreSecurity rates the response headers by presence of well-known
// security headers. Header names are matched case-insensitively. The score
// is clamped to zero only after all checks, never per-step.
func ScoreSecurity(headers map[string]string) types.SecurityScore {
	score := securityBaseScore
	issues := make([]string, 0)
	recommendations := make([]string, 0)

	for _, name := range securityHeaders {
		if !headerPresent(headers, name) {
			score -= missingHeaderPenalty
			issues = append(issues, fmt.Sprintf("Missing %s header", name))
			recommendations = append(recommendations, fmt.Sprintf("Add %s header for better security", name))
		}
	}

	if headerPresent(headers, poweredByHeaderName) {
		score -= poweredByHeaderPenalty
		issues = append(issues, poweredByIssue)
		recommendations = append(recommendations, poweredByRecommendation)
	}

	if score < 0 {
		score = 0
	}

	return types.SecurityScore{
		Score:           score,
		Issues:          issues,
		Recommendations: recommendations,
	}
}
