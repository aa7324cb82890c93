package producer

import (
	"context"

	"github.com/sonsonson110/image-resize-system/internal/core/domain"
)

// GetByStoredFilename resolves an image record by its unique stored filename.
func (s *imageService) GetByStoredFilename(ctx context.Context, storedFilename string) (*domain.Image, error) {
	return s.repo.FindByStoredFilename(ctx, storedFilename)
}

// List returns all image records, newest upload first.
func (s *imageService) List(ctx context.Context) ([]domain.Image, error) {
	return s.repo.List(ctx)
}
