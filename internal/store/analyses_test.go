package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeses-sketch/WTF-is-this-site/internal/types"
)

func sampleResult(domain string) *types.AnalysisResult {
	return &types.AnalysisResult{
		URL:    "https://" + domain,
		Domain: domain,
		Title:  "Example",
		Technologies: []types.Technology{
			{Name: "Nginx", Category: "Web Server", Confidence: 100},
		},
		Headers:    map[string]string{"Server": "nginx"},
		StatusCode: 200,
		LoadTime:   1000,
		Performance: types.PerformanceMetrics{
			TTFB:             300,
			DOMContentLoaded: 800,
			PageSize:         1234,
			ResourceCount:    3,
		},
		Security: types.SecurityScore{Score: 10, Issues: make([]string, 6), Recommendations: make([]string, 6)},
		SEO:      types.SEOScore{Score: 100, Issues: []string{}, Recommendations: []string{}},
	}
}

func TestUpsertAnalysisInsertsNewDomain(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	rec, err := s.UpsertAnalysis(ctx, "user-1", sampleResult("example.com"))
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "user-1", rec.UserID)
	assert.Equal(t, "example.com", rec.Domain)
	assert.Equal(t, 1, rec.SearchCount)
	assert.Equal(t, "Example", rec.Title)
	require.Len(t, rec.Technologies, 1)
	assert.Equal(t, "Nginx", rec.Technologies[0].Name)
	assert.Equal(t, "nginx", rec.Headers["Server"])
	assert.Equal(t, int64(300), rec.Performance.TTFB)
}

func TestUpsertAnalysisIncrementsSearchCount(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	first, err := s.UpsertAnalysis(ctx, "user-1", sampleResult("example.com"))
	require.NoError(t, err)
	assert.Equal(t, 1, first.SearchCount)

	time.Sleep(2 * time.Millisecond)

	updated := sampleResult("example.com")
	updated.Title = "Fresh Title"

	second, err := s.UpsertAnalysis(ctx, "user-1", updated)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "re-analysis must not create a duplicate record")
	assert.Equal(t, 2, second.SearchCount)
	assert.Equal(t, "Fresh Title", second.Title)
	assert.Greater(t, second.LastAnalyzed, first.LastAnalyzed)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)

	records, err := s.ListAnalyses(ctx, "user-1", 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestUpsertAnalysisScopedPerUser(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	_, err := s.UpsertAnalysis(ctx, "user-1", sampleResult("example.com"))
	require.NoError(t, err)

	other, err := s.UpsertAnalysis(ctx, "user-2", sampleResult("example.com"))
	require.NoError(t, err)
	assert.Equal(t, 1, other.SearchCount)

	mine, err := s.ListAnalyses(ctx, "user-1", 10)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestGetAnalysisByDomainAbsent(t *testing.T) {
	s := OpenMemory(t)

	rec, err := s.GetAnalysisByDomain(context.Background(), "user-1", "nowhere.example")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestListAnalysesOrderedByLastAnalyzed(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	for _, domain := range []string{"a.example", "b.example", "c.example"} {
		_, err := s.UpsertAnalysis(ctx, "user-1", sampleResult(domain))
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	// Re-analyzing bumps a.example to the front.
	_, err := s.UpsertAnalysis(ctx, "user-1", sampleResult("a.example"))
	require.NoError(t, err)

	records, err := s.ListAnalyses(ctx, "user-1", 10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "a.example", records[0].Domain)
}
