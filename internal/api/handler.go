// Package api provides the HTTP handlers for the site analysis service.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/reeses-sketch/WTF-is-this-site/internal/auth"
	"github.com/reeses-sketch/WTF-is-this-site/internal/playground"
	"github.com/reeses-sketch/WTF-is-this-site/internal/slack"
	"github.com/reeses-sketch/WTF-is-this-site/internal/store"
	"github.com/reeses-sketch/WTF-is-this-site/internal/types"
)

// anonymousUser is the identity assigned when no authentication is
// configured or presented.
const anonymousUser = "anonymous"

// AnalyzerService is the analysis engine consumed by the handlers.
type AnalyzerService interface {
	Analyze(ctx context.Context, rawURL string) (*types.AnalysisResult, error)
	AnalyzeBulk(ctx context.Context, urls []string) []types.BulkResult
}

// Handler manages the API endpoints.
type Handler struct {
	analyzer    AnalyzerService
	store       *store.Store
	playground  *playground.Service
	notifier    *slack.Client
	maxBodySize int64
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// handleHealth returns service health status.
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   "wtf-is-this-site",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// callerID returns the authenticated user identity, or the anonymous
// fallback when the request carries none.
func callerID(ctx context.Context) string {
	if id := auth.UserID(ctx); id != "" {
		return id
	}

	return anonymousUser
}
