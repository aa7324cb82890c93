package system

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/sonsonson110/image-resize-system/internal/core/port"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a plain function to the Pinger interface.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// HandlerV1 is the handler for v1 system routes
type HandlerV1 struct {
	resetService port.ResetService
	database     Pinger
	queue        Pinger
	logger       *slog.Logger
}

// NewSystemHandlerV1 creates HandlerV1
func NewSystemHandlerV1(resetService port.ResetService, database, queue Pinger, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		resetService: resetService,
		database:     database,
		queue:        queue,
		logger:       logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/health", h.HealthV1)
	router.Delete("/reset", h.ResetV1)

	return router
}
