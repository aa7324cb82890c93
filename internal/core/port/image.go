package port

import (
	"context"
	"io"
	"time"

	"github.com/sonsonson110/image-resize-system/internal/core/domain"
)

// ImageRepository is an interface to define image record interactions.
// Every mutation enforces the lifecycle invariants atomically: the guarded
// updates refuse to move a terminal record and set each timestamp at most
// once.
type ImageRepository interface {
	InsertPending(ctx context.Context, originalFilename, storedFilename string, fileSize int64, mimeType string) (*domain.Image, error)
	FindByID(ctx context.Context, id int64) (*domain.Image, error)
	FindByStoredFilename(ctx context.Context, storedFilename string) (*domain.Image, error)
	List(ctx context.Context) ([]domain.Image, error)
	MarkProcessing(ctx context.Context, id int64) error
	MarkCompleted(ctx context.Context, id int64, thumbnailFilename string, thumbnailSize int64) error
	MarkFailed(ctx context.Context, id int64, errorMessage string) error
	FindStale(ctx context.Context, status domain.ImageStatus, before time.Time) ([]domain.Image, error)
	DeleteAll(ctx context.Context) error
}

// Upload carries a validated multipart upload into the producer.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// ImageService is an interface to define the producer-side image operations
type ImageService interface {
	Submit(ctx context.Context, upload Upload) (*domain.Image, error)
	GetByStoredFilename(ctx context.Context, storedFilename string) (*domain.Image, error)
	List(ctx context.Context) ([]domain.Image, error)
}

// ResetService is an interface to define the administrative system reset
type ResetService interface {
	Reset(ctx context.Context) error
}
