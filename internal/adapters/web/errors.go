package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"inventory-manager/internal/ai"
	"inventory-manager/internal/core"
	"inventory-manager/internal/persistence"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps service errors to HTTP status codes.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrValidation):
		writeError(w, r, err.Error(), "VALIDATION_ERROR", http.StatusUnprocessableEntity)
	case errors.Is(err, core.ErrNotFound):
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
	case errors.Is(err, persistence.ErrSnapshotNotFound):
		writeError(w, r, err.Error(), "SNAPSHOT_NOT_FOUND", http.StatusNotFound)
	case errors.Is(err, core.ErrConflict):
		writeError(w, r, err.Error(), "CONFLICT", http.StatusConflict)
	case errors.Is(err, persistence.ErrDeserialization):
		writeError(w, r, err.Error(), "INVALID_SNAPSHOT", http.StatusUnprocessableEntity)
	case errors.Is(err, ai.ErrAgentUnavailable):
		writeError(w, r, err.Error(), "AGENT_UNAVAILABLE", http.StatusServiceUnavailable)
	default:
		h.log.Error("request failed", zapRequestID(r), zap.Error(err))
		writeError(w, r, "internal server error", "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}
