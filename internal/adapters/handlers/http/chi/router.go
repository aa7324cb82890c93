package chi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sonsonson110/image-resize-system/internal/adapters/handlers/http/chi/events"
	"github.com/sonsonson110/image-resize-system/internal/adapters/handlers/http/chi/v1/image"
	"github.com/sonsonson110/image-resize-system/internal/adapters/handlers/http/chi/v1/system"
)

// NewRouter builds http.Handler with chi
func NewRouter(
	logger *slog.Logger,
	imageHandler *image.HandlerV1,
	systemHandler *system.HandlerV1,
	eventsHandler *events.Handler,
	maxRequestSize int64,
	env string,
) http.Handler {
	r := chi.NewRouter()

	//handle requestID to facilitate debug (X-Request-ID)
	//It fetches from request if exists, or creates it
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(logger, "/health"))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(maxRequestSize))

	if env != "prod" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		// SSE connections stay open indefinitely, so the request timeout only
		// wraps the plain request/response routes.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))
			r.Mount("/", imageHandler.Routes())
			r.Mount("/system", systemHandler.Routes())
		})
		r.Get("/events", eventsHandler.HandleEvents)
	})

	// Liveness only. The deep check that pings the database and the broker
	// lives at /api/v1/system/health.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:    "ok",
			Timestamp: time.Now(),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	})

	return r
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
