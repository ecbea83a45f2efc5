package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/reeses-sketch/WTF-is-this-site/internal/playground"
	"github.com/reeses-sketch/WTF-is-this-site/internal/store"
)

// PlaygroundResponse wraps the raw response of a playground request.
type PlaygroundResponse struct {
	Success bool                 `json:"success"`
	Data    *playground.Response `json:"data,omitempty"`
	Error   *Error               `json:"error,omitempty"`
}

// handlePlayground executes an arbitrary user-composed HTTP request.
// Transport failures come back in-band with status 0; only invalid input is
// an API error.
func (h *Handler) handlePlayground(w http.ResponseWriter, r *http.Request) {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req playground.Request
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errCodeInvalidRequest, ErrInvalidRequestBody.Error())
		return
	}

	resp, err := h.playground.Execute(r.Context(), callerID(r.Context()), req)
	if err != nil {
		if errors.Is(err, playground.ErrMethodAndURLRequired) {
			respondError(w, http.StatusBadRequest, errCodeValidation, err.Error())
			return
		}

		respondError(w, http.StatusInternalServerError, errCodeInternal, err.Error())

		return
	}

	writeJSON(w, http.StatusOK, PlaygroundResponse{Success: true, Data: resp})
}

// HistoryResponse wraps the caller's playground request history.
type HistoryResponse struct {
	Success bool                   `json:"success"`
	Data    []*store.RequestRecord `json:"data"`
	Error   *Error                 `json:"error,omitempty"`
}

// handlePlaygroundHistory returns the caller's recent playground requests.
func (h *Handler) handlePlaygroundHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.playground.History(r.Context(), callerID(r.Context()), queryLimit(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, errCodeInternal, "failed to list history")
		return
	}

	if records == nil {
		records = []*store.RequestRecord{}
	}

	writeJSON(w, http.StatusOK, HistoryResponse{Success: true, Data: records})
}

// queryLimit parses the optional limit query parameter.
func queryLimit(r *http.Request) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}

	return 0
}
