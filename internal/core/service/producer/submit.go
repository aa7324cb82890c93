package producer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sonsonson110/image-resize-system/internal/core/domain"
	"github.com/sonsonson110/image-resize-system/internal/core/port"
)

// Submit validates and stores an upload, creates the pending record and
// enqueues the processing job. The insert and the enqueue are deliberately
// not one distributed transaction: if publishing fails the record stays
// pending, which the reconciliation sweep later recovers.
func (s *imageService) Submit(ctx context.Context, upload port.Upload) (*domain.Image, error) {
	mimeType, ext, err := s.validateUpload(upload)
	if err != nil {
		return nil, err
	}

	storedFilename := uuid.New().String() + ext
	written, err := s.fileStore.SaveOriginal(ctx, storedFilename, upload.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	img, err := s.repo.InsertPending(ctx, upload.Filename, storedFilename, written, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to create image record: %w", err)
	}

	thumbnailFilename := domain.ThumbnailName(storedFilename)
	job := domain.ProcessingJob{
		ImageID:           img.ID,
		OriginalPath:      s.fileStore.OriginalPath(storedFilename),
		ThumbnailPath:     s.fileStore.ThumbnailPath(thumbnailFilename),
		StoredFilename:    storedFilename,
		ThumbnailFilename: thumbnailFilename,
	}
	body, err := job.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode processing job: %w", err)
	}

	if err := s.queue.Publish(ctx, s.queueCfg.ProcessingQueue, body); err != nil {
		// The record is already persisted and observable as pending.
		s.logger.Error("failed to enqueue processing job, record left pending",
			"image_id", img.ID, "stored_filename", storedFilename, "error", err)
		return nil, fmt.Errorf("failed to enqueue processing job: %w", err)
	}

	s.logger.Info("processing job enqueued", "image_id", img.ID, "stored_filename", storedFilename)
	return img, nil
}
