package image

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/sonsonson110/image-resize-system/internal/core/port"
)

// HandlerV1 is the handler for v1 image routes
type HandlerV1 struct {
	imageService port.ImageService
	fileStore    port.FileStore
	baseURL      string
	maxFileSize  int64
	logger       *slog.Logger
}

// NewImageHandlerV1 creates HandlerV1
func NewImageHandlerV1(service port.ImageService, fileStore port.FileStore, baseURL string, maxFileSize int64, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		imageService: service,
		fileStore:    fileStore,
		baseURL:      baseURL,
		maxFileSize:  maxFileSize,
		logger:       logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/upload", h.UploadImageV1)
	router.Get("/images", h.ListImagesV1)
	router.Get("/image/{storedFilename}", h.DownloadImageV1)
	router.Get("/thumbnail/{thumbnailFilename}", h.GetThumbnailV1)

	return router
}
