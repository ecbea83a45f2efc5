package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/reeses-sketch/WTF-is-this-site/internal/store"
	"github.com/reeses-sketch/WTF-is-this-site/internal/types"
)

// maxBulkURLs caps how many URLs a single bulk job may carry.
const maxBulkURLs = 50

// AnalyzeRequest represents a single-site analysis request.
type AnalyzeRequest struct {
	// URL is the site to analyze; a missing scheme defaults to https.
	URL string `json:"url"`
}

// AnalyzeResponse wraps the stored analysis record.
type AnalyzeResponse struct {
	Success bool                  `json:"success"`
	Data    *store.AnalysisRecord `json:"data,omitempty"`
	Error   *Error                `json:"error,omitempty"`
}

// handleAnalyze fetches and scores a site, then upserts the record by
// domain for the calling user.
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req AnalyzeRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errCodeInvalidRequest, ErrInvalidRequestBody.Error())
		return
	}

	if req.URL == "" {
		respondError(w, http.StatusBadRequest, errCodeValidation, ErrURLRequired.Error())
		return
	}

	result, err := h.analyzer.Analyze(r.Context(), req.URL)
	if err != nil {
		respondError(w, http.StatusBadGateway, errCodeAnalysis, err.Error())
		return
	}

	rec, err := h.store.UpsertAnalysis(r.Context(), callerID(r.Context()), result)
	if err != nil {
		log.Error().Err(err).Str("domain", result.Domain).Msg("failed to persist analysis")
		respondError(w, http.StatusInternalServerError, errCodeInternal, "failed to persist analysis")

		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{Success: true, Data: rec})
}

// BulkAnalyzeRequest represents a bulk analysis request.
type BulkAnalyzeRequest struct {
	URLs []string `json:"urls"`
}

// BulkAnalyzeResponse wraps the completed bulk job.
type BulkAnalyzeResponse struct {
	Success bool             `json:"success"`
	Data    *store.JobRecord `json:"data,omitempty"`
	Error   *Error           `json:"error,omitempty"`
}

// handleAnalyzeBulk runs a best-effort analysis over every submitted URL.
// Individual failures are captured per URL; the job always completes.
func (h *Handler) handleAnalyzeBulk(w http.ResponseWriter, r *http.Request) {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req BulkAnalyzeRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errCodeInvalidRequest, ErrInvalidRequestBody.Error())
		return
	}

	if len(req.URLs) == 0 {
		respondError(w, http.StatusBadRequest, errCodeValidation, ErrURLsRequired.Error())
		return
	}

	if len(req.URLs) > maxBulkURLs {
		respondError(w, http.StatusBadRequest, errCodeValidation, ErrTooManyURLs.Error())
		return
	}

	userID := callerID(r.Context())

	job, err := h.store.InsertJob(r.Context(), userID, req.URLs)
	if err != nil {
		respondError(w, http.StatusInternalServerError, errCodeInternal, "failed to create job")
		return
	}

	results := h.analyzer.AnalyzeBulk(r.Context(), req.URLs)

	// Persist successful analyses and keep only the record reference in the
	// job row; failures keep their error text.
	persisted := make([]types.BulkResult, len(results))

	for i, res := range results {
		persisted[i] = types.BulkResult{URL: res.URL, Success: res.Success, Error: res.Error}

		if !res.Success {
			continue
		}

		rec, upsertErr := h.store.UpsertAnalysis(r.Context(), userID, res.Analysis)
		if upsertErr != nil {
			log.Error().Err(upsertErr).Str("url", res.URL).Msg("failed to persist bulk analysis")

			persisted[i].Success = false
			persisted[i].Error = "failed to persist analysis"

			continue
		}

		persisted[i].AnalysisID = rec.ID
	}

	completed, err := h.store.CompleteJob(r.Context(), job.ID, persisted)
	if err != nil {
		respondError(w, http.StatusInternalServerError, errCodeInternal, "failed to complete job")
		return
	}

	if h.notifier != nil {
		if notifyErr := h.notifier.NotifyBulkJobCompleted(r.Context(), completed); notifyErr != nil {
			log.Warn().Err(notifyErr).Str("job_id", completed.ID).Msg("bulk job notification failed")
		}
	}

	writeJSON(w, http.StatusOK, BulkAnalyzeResponse{Success: true, Data: completed})
}

// AnalysisListResponse wraps a user's analysis records.
type AnalysisListResponse struct {
	Success bool                    `json:"success"`
	Data    []*store.AnalysisRecord `json:"data"`
	Error   *Error                  `json:"error,omitempty"`
}

// handleListAnalyses returns the caller's analyses, most recently analyzed
// first.
func (h *Handler) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListAnalyses(r.Context(), callerID(r.Context()), queryLimit(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, errCodeInternal, "failed to list analyses")
		return
	}

	if records == nil {
		records = []*store.AnalysisRecord{}
	}

	writeJSON(w, http.StatusOK, AnalysisListResponse{Success: true, Data: records})
}

// handleGetAnalysis returns the caller's analysis for one domain.
func (h *Handler) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	domain := chi.URLParam(r, "domain")

	rec, err := h.store.GetAnalysisByDomain(r.Context(), callerID(r.Context()), domain)
	if err != nil {
		respondError(w, http.StatusInternalServerError, errCodeInternal, "failed to load analysis")
		return
	}

	if rec == nil {
		respondError(w, http.StatusNotFound, errCodeNotFound, "no analysis for domain")
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{Success: true, Data: rec})
}
