package producer

import (
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"

	"github.com/sonsonson110/image-resize-system/internal/config"
	"github.com/sonsonson110/image-resize-system/internal/core/domain"
	"github.com/sonsonson110/image-resize-system/internal/core/port"
)

type imageService struct {
	repo      port.ImageRepository
	queue     port.JobQueue
	fileStore port.FileStore
	uploadCfg config.UploadConfig
	queueCfg  config.RabbitMQConfig
	logger    *slog.Logger
}

// NewImageService creates the producer-side image service
func NewImageService(
	repo port.ImageRepository,
	queue port.JobQueue,
	fileStore port.FileStore,
	uploadCfg config.UploadConfig,
	queueCfg config.RabbitMQConfig,
	logger *slog.Logger,
) port.ImageService {
	return &imageService{
		repo:      repo,
		queue:     queue,
		fileStore: fileStore,
		uploadCfg: uploadCfg,
		queueCfg:  queueCfg,
		logger:    logger,
	}
}

// AllowedImageMimeTypes is a whitelist of supported image MIME types and
// their extensions. Deterministic, does not rely on OS mime databases.
var AllowedImageMimeTypes = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
	"image/webp": {".webp"},
}

func (s *imageService) validateUpload(upload port.Upload) (mimeType string, ext string, err error) {
	if upload.Content == nil || upload.Filename == "" {
		return "", "", domain.ErrNoFile
	}
	if upload.Size > s.uploadCfg.MaxFileSize {
		return "", "", fmt.Errorf("%w: %d bytes exceeds limit of %d", domain.ErrFileSizeTooBig, upload.Size, s.uploadCfg.MaxFileSize)
	}

	mimeType = extractMimeType(upload.ContentType)
	allowedExts, ok := AllowedImageMimeTypes[mimeType]
	if !ok {
		return "", "", fmt.Errorf("%w: unsupported MIME type %q", domain.ErrInvalidFileType, upload.ContentType)
	}

	ext = strings.ToLower(filepath.Ext(upload.Filename))
	for _, allowed := range allowedExts {
		if ext == allowed {
			return mimeType, ext, nil
		}
	}
	return "", "", fmt.Errorf("%w: extension %q does not match %s", domain.ErrInvalidFileType, ext, mimeType)
}

func extractMimeType(contentType string) string {
	mimeType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mimeType
}
