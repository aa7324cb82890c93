package system

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sonsonson110/image-resize-system/internal/config"
	"github.com/sonsonson110/image-resize-system/internal/core/port"
)

// ResetService wipes the pipeline back to a blank state: every record, every
// queued message and every file on disk. Meant for demos and test setups.
type ResetService struct {
	repo      port.ImageRepository
	queue     port.JobQueue
	fileStore port.FileStore
	queueCfg  config.RabbitMQConfig
	logger    *slog.Logger
}

// NewResetService creates the system reset service
func NewResetService(
	repo port.ImageRepository,
	queue port.JobQueue,
	fileStore port.FileStore,
	queueCfg config.RabbitMQConfig,
	logger *slog.Logger,
) *ResetService {
	return &ResetService{
		repo:      repo,
		queue:     queue,
		fileStore: fileStore,
		queueCfg:  queueCfg,
		logger:    logger,
	}
}

// Reset purges the queues before deleting records so no in-flight message can
// resurrect a row between the two steps.
func (s *ResetService) Reset(ctx context.Context) error {
	for _, queueName := range []string{s.queueCfg.ProcessingQueue, s.queueCfg.CompletedQueue} {
		if err := s.queue.Purge(ctx, queueName); err != nil {
			return fmt.Errorf("failed to purge queue %s: %w", queueName, err)
		}
	}

	if err := s.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to delete image records: %w", err)
	}

	if err := s.fileStore.Reset(); err != nil {
		return fmt.Errorf("failed to reset file storage: %w", err)
	}

	s.logger.Info("system reset complete")
	return nil
}
