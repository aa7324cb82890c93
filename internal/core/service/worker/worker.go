package worker

import (
	"log/slog"

	"github.com/sonsonson110/image-resize-system/internal/config"
	"github.com/sonsonson110/image-resize-system/internal/core/port"
)

type processingService struct {
	repo      port.ImageRepository
	queue     port.JobQueue
	generator port.ThumbnailGenerator
	queueCfg  config.RabbitMQConfig
	logger    *slog.Logger
}

// NewProcessingService creates the thumbnail worker's message handler. It
// owns every status transition out of pending.
func NewProcessingService(
	repo port.ImageRepository,
	queue port.JobQueue,
	generator port.ThumbnailGenerator,
	queueCfg config.RabbitMQConfig,
	logger *slog.Logger,
) port.MessageHandler {
	return &processingService{
		repo:      repo,
		queue:     queue,
		generator: generator,
		queueCfg:  queueCfg,
		logger:    logger,
	}
}
