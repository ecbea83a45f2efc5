package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/reeses-sketch/WTF-is-this-site/internal/auth"
	"github.com/reeses-sketch/WTF-is-this-site/internal/playground"
	"github.com/reeses-sketch/WTF-is-this-site/internal/slack"
	"github.com/reeses-sketch/WTF-is-this-site/internal/store"
)

// defaultMaxBodySize caps request bodies accepted by the JSON endpoints.
const defaultMaxBodySize = 1 << 20

// RouterConfig holds the dependencies wired into the HTTP router.
type RouterConfig struct {
	// Analyzer runs single and bulk site analyses.
	Analyzer AnalyzerService
	// Store persists analyses, request history, jobs, and comparisons.
	Store *store.Store
	// Playground executes arbitrary outbound requests.
	Playground *playground.Service
	// Notifier posts bulk job summaries to Slack. Optional.
	Notifier *slack.Client
	// TokenSecret enables bearer token authentication when non-empty.
	TokenSecret string
	// MaxBodySize overrides the request body cap. Zero uses the default.
	MaxBodySize int64
}

// NewRouter creates a chi router with all endpoints and middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	h := &Handler{
		analyzer:    cfg.Analyzer,
		store:       cfg.Store,
		playground:  cfg.Playground,
		notifier:    cfg.Notifier,
		maxBodySize: cfg.MaxBodySize,
	}

	if h.maxBodySize == 0 {
		h.maxBodySize = defaultMaxBodySize
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Heartbeat("/ping"))

	if cfg.TokenSecret != "" {
		r.Use(auth.Middleware([]byte(cfg.TokenSecret)))
	}

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)

		r.Post("/analyze", h.handleAnalyze)
		r.Post("/analyze/bulk", h.handleAnalyzeBulk)

		r.Get("/analyses", h.handleListAnalyses)
		r.Get("/analyses/{domain}", h.handleGetAnalysis)

		r.Post("/playground", h.handlePlayground)
		r.Get("/playground/history", h.handlePlaygroundHistory)

		r.Route("/comparisons", func(r chi.Router) {
			r.Post("/", h.handleCreateComparison)
			r.Get("/", h.handleListComparisons)
			r.Get("/{id}", h.handleGetComparison)
			r.Delete("/{id}", h.handleDeleteComparison)
			r.Post("/{id}/sites", h.handleAddComparisonSite)
			r.Delete("/{id}/sites/{analysisID}", h.handleRemoveComparisonSite)
		})
	})

	return r
}
