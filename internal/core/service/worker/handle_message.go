package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/sonsonson110/image-resize-system/internal/core/domain"
)

// HandleMessage processes one delivery from the processing queue. Delivery is
// at-least-once, so everything here is idempotent: a duplicate job for a
// terminal record is re-acknowledged without another resize attempt.
func (s *processingService) HandleMessage(ctx context.Context, data []byte) error {
	job, err := domain.DecodeProcessingJob(data)
	if err != nil {
		// Poison message: consumer acks and drops.
		return err
	}

	img, err := s.repo.FindByID(ctx, job.ImageID)
	if err != nil {
		if errors.Is(err, domain.ErrImageNotFound) {
			// Stale job, e.g. after a system reset. Drop it.
			s.logger.Warn("job references unknown image, dropping", "image_id", job.ImageID)
			return err
		}
		return fmt.Errorf("failed to load image %d: %w", job.ImageID, err)
	}

	if img.Status.Terminal() {
		s.logger.Info("duplicate delivery for finished image, skipping",
			"image_id", img.ID, "status", img.Status)
		return nil
	}

	if err := s.repo.MarkProcessing(ctx, img.ID); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			// Finished between the read above and this write; same skip.
			s.logger.Info("image finished concurrently, skipping", "image_id", img.ID)
			return nil
		}
		return fmt.Errorf("failed to mark image %d processing: %w", img.ID, err)
	}

	s.logger.Info("processing image", "image_id", img.ID, "source", job.OriginalPath)

	event := domain.CompletionEvent{ImageID: img.ID}
	thumbnailSize, genErr := s.generator.Generate(job.OriginalPath, job.ThumbnailPath)
	if genErr != nil {
		s.logger.Error("thumbnail generation failed", "image_id", img.ID, "error", genErr)
		if err := s.repo.MarkFailed(ctx, img.ID, genErr.Error()); err != nil {
			return fmt.Errorf("failed to mark image %d failed: %w", img.ID, err)
		}
		event.Failed = true
		event.ErrorMessage = genErr.Error()
	} else {
		if err := s.repo.MarkCompleted(ctx, img.ID, job.ThumbnailFilename, thumbnailSize); err != nil {
			return fmt.Errorf("failed to mark image %d completed: %w", img.ID, err)
		}
		event.ThumbnailFilename = job.ThumbnailFilename
		s.logger.Info("thumbnail created", "image_id", img.ID,
			"thumbnail", job.ThumbnailFilename, "size_bytes", thumbnailSize)
	}

	body, err := event.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode completion event: %w", err)
	}
	if err := s.queue.Publish(ctx, s.queueCfg.CompletedQueue, body); err != nil {
		// The status store already holds the terminal state, which is the
		// canonical answer; losing the notification only costs liveness.
		// Requeueing the job here would find a terminal record and skip,
		// so log instead of failing the delivery.
		s.logger.Error("failed to publish completion event", "image_id", img.ID, "error", err)
	}
	return nil
}
