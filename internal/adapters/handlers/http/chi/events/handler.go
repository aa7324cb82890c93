// Package events bridges the broadcast channel to browsers over SSE
// (Server-Sent Events). Each connected client is served by its own request
// goroutine; events missed while disconnected are gone, clients reconcile by
// re-fetching the image list.
package events

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sonsonson110/image-resize-system/internal/core/port"
	"github.com/sonsonson110/image-resize-system/internal/core/service/notify"
)

const keepAliveInterval = 30 * time.Second

// Handler serves the SSE endpoint
type Handler struct {
	subscriber port.Subscriber
	logger     *slog.Logger
}

// NewHandler creates the SSE events handler
func NewHandler(subscriber port.Subscriber, logger *slog.Logger) *Handler {
	return &Handler{
		subscriber: subscriber,
		logger:     logger,
	}
}

// HandleEvents handles GET /events. It relays every thumbnail completion and
// failure notification to the client until the client disconnects.
// Format: event: completed\ndata: {json}\n\n
func (h *Handler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Subscribe before committing the response: a subscription failure must
	// still be reportable as a plain error status.
	completed, err := h.subscriber.Subscribe(ctx, notify.EventCompleted)
	if err != nil {
		h.logger.Error("error subscribing to completion events", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	failed, err := h.subscriber.Subscribe(ctx, notify.EventFailed)
	if err != nil {
		h.logger.Error("error subscribing to failure events", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	// ResponseController unwraps the logging middleware's wrapper to reach
	// the underlying http.Flusher.
	rc := http.NewResponseController(w)
	if err := rc.Flush(); err != nil {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	h.logger.Debug("sse client connected", "remote_addr", r.RemoteAddr)

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("sse client disconnected", "remote_addr", r.RemoteAddr)
			return
		case data, ok := <-completed:
			if !ok {
				return
			}
			h.send(w, rc, notify.EventCompleted, data)
		case data, ok := <-failed:
			if !ok {
				return
			}
			h.send(w, rc, notify.EventFailed, data)
		case <-ticker.C:
			fmt.Fprint(w, ": keepalive\n\n")
			_ = rc.Flush()
		}
	}
}

func (h *Handler) send(w http.ResponseWriter, rc *http.ResponseController, event string, data []byte) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	if err := rc.Flush(); err != nil {
		h.logger.Debug("error flushing sse event", "error", err)
	}
}
