package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sonsonson110/image-resize-system/internal/config"
	"github.com/sonsonson110/image-resize-system/internal/core/domain"
	"github.com/sonsonson110/image-resize-system/internal/core/port"
)

// Service is the time-based reconciliation pass over the status store. It
// recovers the two ways a record can get stuck: pending forever because the
// enqueue failed after the insert, and processing forever because a worker
// died without the broker redelivering.
type Service struct {
	repo      port.ImageRepository
	queue     port.JobQueue
	fileStore port.FileStore
	queueCfg  config.RabbitMQConfig
	sweepCfg  config.SweepConfig
	logger    *slog.Logger
}

// NewService creates the reconciliation sweep service
func NewService(
	repo port.ImageRepository,
	queue port.JobQueue,
	fileStore port.FileStore,
	queueCfg config.RabbitMQConfig,
	sweepCfg config.SweepConfig,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:      repo,
		queue:     queue,
		fileStore: fileStore,
		queueCfg:  queueCfg,
		sweepCfg:  sweepCfg,
		logger:    logger,
	}
}

// Run executes one reconciliation pass. Every forced action is logged.
func (s *Service) Run(ctx context.Context, now time.Time) error {
	if err := s.requeueStalePending(ctx, now.Add(-s.sweepCfg.PendingAfter)); err != nil {
		return err
	}
	return s.failStaleProcessing(ctx, now.Add(-s.sweepCfg.ProcessingAfter))
}

// requeueStalePending re-publishes a processing job for records that stayed
// pending past the threshold. Publishing the same job twice is safe: the
// worker skips records it already finished.
func (s *Service) requeueStalePending(ctx context.Context, cutoff time.Time) error {
	stale, err := s.repo.FindStale(ctx, domain.ImageStatusPending, cutoff)
	if err != nil {
		return fmt.Errorf("failed to query stale pending images: %w", err)
	}

	for _, img := range stale {
		thumbnailFilename := domain.ThumbnailName(img.StoredFilename)
		job := domain.ProcessingJob{
			ImageID:           img.ID,
			OriginalPath:      s.fileStore.OriginalPath(img.StoredFilename),
			ThumbnailPath:     s.fileStore.ThumbnailPath(thumbnailFilename),
			StoredFilename:    img.StoredFilename,
			ThumbnailFilename: thumbnailFilename,
		}
		body, err := job.Encode()
		if err != nil {
			return fmt.Errorf("failed to encode requeued job: %w", err)
		}
		if err := s.queue.Publish(ctx, s.queueCfg.ProcessingQueue, body); err != nil {
			return fmt.Errorf("failed to requeue job for image %d: %w", img.ID, err)
		}
		s.logger.Warn("re-enqueued stale pending image",
			"image_id", img.ID, "stored_filename", img.StoredFilename, "uploaded_at", img.UploadedAt)
	}
	return nil
}

// failStaleProcessing force-fails records stuck in processing past the
// threshold and still emits a completion event so subscribers hear about it.
func (s *Service) failStaleProcessing(ctx context.Context, cutoff time.Time) error {
	stale, err := s.repo.FindStale(ctx, domain.ImageStatusProcessing, cutoff)
	if err != nil {
		return fmt.Errorf("failed to query stale processing images: %w", err)
	}

	for _, img := range stale {
		message := fmt.Sprintf("processing did not finish within %s", s.sweepCfg.ProcessingAfter)
		if err := s.repo.MarkFailed(ctx, img.ID, message); err != nil {
			// A worker may have finished in the meantime; leave it be.
			s.logger.Info("skipping force-fail, record moved on", "image_id", img.ID, "error", err)
			continue
		}
		s.logger.Warn("force-failed stale processing image",
			"image_id", img.ID, "stored_filename", img.StoredFilename,
			"processing_started_at", img.ProcessingStartedAt)

		event := domain.CompletionEvent{ImageID: img.ID, Failed: true, ErrorMessage: message}
		body, err := event.Encode()
		if err != nil {
			return fmt.Errorf("failed to encode forced-failure event: %w", err)
		}
		if err := s.queue.Publish(ctx, s.queueCfg.CompletedQueue, body); err != nil {
			s.logger.Error("failed to publish forced-failure event", "image_id", img.ID, "error", err)
		}
	}
	return nil
}
