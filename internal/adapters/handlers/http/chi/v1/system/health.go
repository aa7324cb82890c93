package system

import (
	"encoding/json"
	"net/http"
	"time"
)

// V1HealthResponse is the response to the health probe
type V1HealthResponse struct {
	Status    string            `json:"status"`
	Services  map[string]string `json:"services"`
	Timestamp time.Time         `json:"timestamp"`
}

// HealthV1 probes the database and the message broker. Answers 200 when both
// are reachable, 503 otherwise, with a per-dependency breakdown either way.
func (h *HandlerV1) HealthV1(w http.ResponseWriter, r *http.Request) {
	resp := V1HealthResponse{
		Status:    "ok",
		Services:  map[string]string{"database": "ok", "queue": "ok"},
		Timestamp: time.Now(),
	}
	code := http.StatusOK

	if err := h.database.Ping(r.Context()); err != nil {
		h.logger.Error("database health check failed", "error", err)
		resp.Services["database"] = "down"
		resp.Status = "degraded"
		code = http.StatusServiceUnavailable
	}
	if err := h.queue.Ping(r.Context()); err != nil {
		h.logger.Error("queue health check failed", "error", err)
		resp.Services["queue"] = "down"
		resp.Status = "degraded"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}
