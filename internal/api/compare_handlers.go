package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/reeses-sketch/WTF-is-this-site/internal/store"
)

// ComparisonRequest creates a named comparison over existing analyses.
type ComparisonRequest struct {
	Name        string   `json:"name"`
	AnalysisIDs []string `json:"analysis_ids"`
}

// ComparisonResponse wraps a single comparison.
type ComparisonResponse struct {
	Success bool                    `json:"success"`
	Data    *store.ComparisonRecord `json:"data,omitempty"`
	Error   *Error                  `json:"error,omitempty"`
}

// ComparisonListResponse wraps the caller's comparisons.
type ComparisonListResponse struct {
	Success bool                      `json:"success"`
	Data    []*store.ComparisonRecord `json:"data"`
	Error   *Error                    `json:"error,omitempty"`
}

// ComparisonSiteRequest adds one analysis to a comparison.
type ComparisonSiteRequest struct {
	AnalysisID string `json:"analysis_id"`
}

// handleCreateComparison groups previously analyzed sites under a name.
func (h *Handler) handleCreateComparison(w http.ResponseWriter, r *http.Request) {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req ComparisonRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errCodeInvalidRequest, ErrInvalidRequestBody.Error())
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, errCodeValidation, ErrNameRequired.Error())
		return
	}

	ids := lo.Uniq(lo.Filter(req.AnalysisIDs, func(id string, _ int) bool { return id != "" }))
	if len(ids) == 0 {
		respondError(w, http.StatusBadRequest, errCodeValidation, ErrAnalysisIDsRequired.Error())
		return
	}

	rec, err := h.store.InsertComparison(r.Context(), callerID(r.Context()), req.Name, ids)
	if err != nil {
		if errors.Is(err, store.ErrAnalysisNotFound) {
			respondError(w, http.StatusNotFound, errCodeNotFound, err.Error())
			return
		}

		respondError(w, http.StatusInternalServerError, errCodeInternal, "failed to create comparison")

		return
	}

	writeJSON(w, http.StatusCreated, ComparisonResponse{Success: true, Data: rec})
}

// handleListComparisons returns the caller's comparisons without members.
func (h *Handler) handleListComparisons(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListComparisons(r.Context(), callerID(r.Context()))
	if err != nil {
		respondError(w, http.StatusInternalServerError, errCodeInternal, "failed to list comparisons")
		return
	}

	if records == nil {
		records = []*store.ComparisonRecord{}
	}

	writeJSON(w, http.StatusOK, ComparisonListResponse{Success: true, Data: records})
}

// handleGetComparison returns one comparison with its member analyses.
func (h *Handler) handleGetComparison(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.GetComparison(r.Context(), callerID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, errCodeInternal, "failed to load comparison")
		return
	}

	if rec == nil {
		respondError(w, http.StatusNotFound, errCodeNotFound, store.ErrComparisonNotFound.Error())
		return
	}

	writeJSON(w, http.StatusOK, ComparisonResponse{Success: true, Data: rec})
}

// handleAddComparisonSite adds an analysis to an existing comparison.
func (h *Handler) handleAddComparisonSite(w http.ResponseWriter, r *http.Request) {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req ComparisonSiteRequest
	if err := decodeJSONBody(r, &req); err != nil || req.AnalysisID == "" {
		respondError(w, http.StatusBadRequest, errCodeInvalidRequest, ErrInvalidRequestBody.Error())
		return
	}

	err := h.store.AddComparisonSite(r.Context(), callerID(r.Context()), chi.URLParam(r, "id"), req.AnalysisID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.respondComparison(w, r)
}

// handleRemoveComparisonSite removes an analysis from a comparison.
func (h *Handler) handleRemoveComparisonSite(w http.ResponseWriter, r *http.Request) {
	err := h.store.RemoveComparisonSite(r.Context(), callerID(r.Context()), chi.URLParam(r, "id"), chi.URLParam(r, "analysisID"))
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.respondComparison(w, r)
}

// handleDeleteComparison deletes a comparison and its membership rows.
func (h *Handler) handleDeleteComparison(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteComparison(r.Context(), callerID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// respondComparison reloads and writes the comparison addressed by the route.
func (h *Handler) respondComparison(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.GetComparison(r.Context(), callerID(r.Context()), chi.URLParam(r, "id"))
	if err != nil || rec == nil {
		respondError(w, http.StatusInternalServerError, errCodeInternal, "failed to load comparison")
		return
	}

	writeJSON(w, http.StatusOK, ComparisonResponse{Success: true, Data: rec})
}

// respondStoreError maps store sentinel errors onto API errors.
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrComparisonNotFound), errors.Is(err, store.ErrAnalysisNotFound):
		respondError(w, http.StatusNotFound, errCodeNotFound, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, errCodeInternal, err.Error())
	}
}
