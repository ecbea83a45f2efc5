package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/reeses-sketch/WTF-is-this-site/internal/types"
)

const (
	seoBaseScore           = 100
	missingTitlePenalty    = 20
	missingMetaDescPenalty = 15
	missingH1Penalty       = 10
	missingViewportPenalty = 15
	altPenaltyPerImage     = 2
	altPenaltyCap          = 20
)

// Tag patterns are deliberately regex-based rather than a DOM parse: the
// scoring thresholds were tuned against pattern-match behavior, and malformed
// markup causing the occasional false negative is an accepted limitation.
var (
	titleTagPattern    = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	metaDescPattern    = regexp.MustCompile(`(?is)<meta[^>]*name\s*=\s*["']description["'][^>]*>`)
	h1TagPattern       = regexp.MustCompile(`(?is)<h1[^>]*>`)
	viewportPattern    = regexp.MustCompile(`(?is)<meta[^>]*name\s*=\s*["']viewport["'][^>]*>`)
	imgTagPattern      = regexp.MustCompile(`(?is)<img[^>]*>`)
	metaDescRevPattern = regexp.MustCompile(`(?is)<meta[^>]*content\s*=\s*["']([^"']*)["'][^>]*name\s*=\s*["']description["'][^>]*>`)
	metaDescFwdPattern = regexp.MustCompile(`(?is)<meta[^>]*name\s*=\s*["']description["'][^>]*content\s*=\s*["']([^"']*)["'][^>]*>`)
)

// ScoreSEO rates the page HTML against basic on-page SEO checks. Every check
// runs regardless of earlier results; the score is clamped to zero at the
// end.
func ScoreSEO(html string) types.SEOScore {
	score := seoBaseScore
	issues := make([]string, 0)
	recommendations := make([]string, 0)

	if !titleTagPattern.MatchString(html) {
		score -= missingTitlePenalty
		issues = append(issues, "Missing page title")
		recommendations = append(recommendations, "Add a descriptive page title")
	}

	if !metaDescPattern.MatchString(html) {
		score -= missingMetaDescPenalty
		issues = append(issues, "Missing meta description")
		recommendations = append(recommendations, "Add a meta description for better search results")
	}

	if !h1TagPattern.MatchString(html) {
		score -= missingH1Penalty
		issues = append(issues, "Missing H1 tag")
		recommendations = append(recommendations, "Add an H1 tag for better content structure")
	}

	if !viewportPattern.MatchString(html) {
		score -= missingViewportPenalty
		issues = append(issues, "Missing viewport meta tag")
		recommendations = append(recommendations, "Add viewport meta tag for mobile responsiveness")
	}

	if missing := countImagesMissingAlt(html); missing > 0 {
		penalty := missing * altPenaltyPerImage
		if penalty > altPenaltyCap {
			penalty = altPenaltyCap
		}

		score -= penalty
		issues = append(issues, fmt.Sprintf("%d images missing alt attributes", missing))
		recommendations = append(recommendations, "Add alt attributes to all images for accessibility")
	}

	if score < 0 {
		score = 0
	}

	return types.SEOScore{
		Score:           score,
		Issues:          issues,
		Recommendations: recommendations,
	}
}

// countImagesMissingAlt counts img tags without an alt= attribute substring.
func countImagesMissingAlt(html string) int {
	var missing int

	for _, tag := range imgTagPattern.FindAllString(html, -1) {
		if !strings.Contains(tag, "alt=") {
			missing++
		}
	}

	return missing
}

// ExtractTitle returns the trimmed inner text of the first title tag, or an
// empty string when the page has none.
func ExtractTitle(html string) string {
	if m := titleTagPattern.FindStringSubmatch(html); m != nil {
		return strings.TrimSpace(m[1])
	}

	return ""
}

// ExtractDescription returns the trimmed content of the first description
// meta tag, tolerating either attribute order, or an empty string when the
// page has none.
func ExtractDescription(html string) string {
	if m := metaDescFwdPattern.FindStringSubmatch(html); m != nil {
		return strings.TrimSpace(m[1])
	}

	if m := metaDescRevPattern.FindStringSubmatch(html); m != nil {
		return strings.TrimSpace(m[1])
	}

	return ""
}
