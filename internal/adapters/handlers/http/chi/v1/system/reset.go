package system

import (
	"encoding/json"
	"net/http"
)

// V1ResetResponse is the response to a system reset
type V1ResetResponse struct {
	Message string `json:"message"`
}

// ResetV1 wipes all records, queued messages and stored files.
func (h *HandlerV1) ResetV1(w http.ResponseWriter, r *http.Request) {
	if err := h.resetService.Reset(r.Context()); err != nil {
		h.logger.Error("error resetting system", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(V1ResetResponse{Message: "system reset"}); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}
