package producer_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sonsonson110/image-resize-system/internal/adapters/queue"
	"github.com/sonsonson110/image-resize-system/internal/adapters/repository"
	"github.com/sonsonson110/image-resize-system/internal/adapters/storage"
	"github.com/sonsonson110/image-resize-system/internal/config"
	"github.com/sonsonson110/image-resize-system/internal/core/domain"
	"github.com/sonsonson110/image-resize-system/internal/core/port"
	"github.com/sonsonson110/image-resize-system/internal/core/service/producer"
)

func newService(repo *repository.MockImageRepository, jobQueue *queue.MockJobQueue, fileStore *storage.MockFileStore) port.ImageService {
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return producer.NewImageService(
		repo,
		jobQueue,
		fileStore,
		config.UploadConfig{MaxFileSize: 10 << 20},
		config.RabbitMQConfig{ProcessingQueue: "thumbnail_processing", CompletedQueue: "thumbnail_completed"},
		discardLogger,
	)
}

func TestImageService_Submit_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := repository.NewMockImageRepository()
	mockQueue := queue.NewMockJobQueue()
	mockStore := storage.NewMockFileStore()
	service := newService(mockRepo, mockQueue, mockStore)

	created := &domain.Image{ID: 42, OriginalFilename: "cat.jpg", Status: domain.ImageStatusPending}

	mockStore.On("SaveOriginal", ctx, mock.AnythingOfType("string"), mock.Anything).Return(int64(2048), nil)
	mockStore.On("OriginalPath", mock.AnythingOfType("string")).Return("/uploads/originals/x.jpg")
	mockStore.On("ThumbnailPath", mock.AnythingOfType("string")).Return("/uploads/thumbnails/thumb_x.jpg")
	mockRepo.On("InsertPending", ctx, "cat.jpg", mock.AnythingOfType("string"), int64(2048), "image/jpeg").Return(created, nil)
	mockQueue.On("Publish", ctx, "thumbnail_processing", mock.Anything).Return(nil)

	// Act
	img, err := service.Submit(ctx, port.Upload{
		Filename:    "cat.jpg",
		ContentType: "image/jpeg",
		Size:        2048,
		Content:     strings.NewReader("jpeg bytes"),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(42), img.ID)
	assert.Equal(t, domain.ImageStatusPending, img.Status)
	mockRepo.AssertExpectations(t)
	mockQueue.AssertExpectations(t)
	mockStore.AssertExpectations(t)

	// The published payload is a valid processing job naming the thumbnail
	// after the stored file.
	body := mockQueue.Calls[0].Arguments.Get(2).([]byte)
	job, err := domain.DecodeProcessingJob(body)
	require.NoError(t, err)
	assert.Equal(t, int64(42), job.ImageID)
	assert.Equal(t, "thumb_"+job.StoredFilename, job.ThumbnailFilename)
}

func TestImageService_Submit_InvalidType(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := repository.NewMockImageRepository()
	mockQueue := queue.NewMockJobQueue()
	mockStore := storage.NewMockFileStore()
	service := newService(mockRepo, mockQueue, mockStore)

	// Act
	_, err := service.Submit(ctx, port.Upload{
		Filename:    "report.pdf",
		ContentType: "application/pdf",
		Size:        100,
		Content:     strings.NewReader("%PDF"),
	})

	// Assert: nothing reaches the store or the queue.
	require.ErrorIs(t, err, domain.ErrInvalidFileType)
	mockStore.AssertNotCalled(t, "SaveOriginal", mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "InsertPending", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockQueue.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestImageService_Submit_ExtensionMismatch(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service := newService(repository.NewMockImageRepository(), queue.NewMockJobQueue(), storage.NewMockFileStore())

	// Act
	_, err := service.Submit(ctx, port.Upload{
		Filename:    "cat.gif",
		ContentType: "image/jpeg",
		Size:        100,
		Content:     strings.NewReader("x"),
	})

	// Assert
	require.ErrorIs(t, err, domain.ErrInvalidFileType)
}

func TestImageService_Submit_TooLarge(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service := newService(repository.NewMockImageRepository(), queue.NewMockJobQueue(), storage.NewMockFileStore())

	// Act
	_, err := service.Submit(ctx, port.Upload{
		Filename:    "huge.png",
		ContentType: "image/png",
		Size:        11 << 20,
		Content:     strings.NewReader("x"),
	})

	// Assert
	require.ErrorIs(t, err, domain.ErrFileSizeTooBig)
}

func TestImageService_Submit_NoFile(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service := newService(repository.NewMockImageRepository(), queue.NewMockJobQueue(), storage.NewMockFileStore())

	// Act
	_, err := service.Submit(ctx, port.Upload{Filename: "", ContentType: "image/png"})

	// Assert
	require.ErrorIs(t, err, domain.ErrNoFile)
}

func TestImageService_Submit_EnqueueFailureLeavesPendingRecord(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := repository.NewMockImageRepository()
	mockQueue := queue.NewMockJobQueue()
	mockStore := storage.NewMockFileStore()
	service := newService(mockRepo, mockQueue, mockStore)

	created := &domain.Image{ID: 7, Status: domain.ImageStatusPending}
	brokerErr := errors.New("broker unreachable")

	mockStore.On("SaveOriginal", ctx, mock.AnythingOfType("string"), mock.Anything).Return(int64(1), nil)
	mockStore.On("OriginalPath", mock.AnythingOfType("string")).Return("/o")
	mockStore.On("ThumbnailPath", mock.AnythingOfType("string")).Return("/t")
	mockRepo.On("InsertPending", ctx, "cat.jpg", mock.AnythingOfType("string"), int64(1), "image/jpeg").Return(created, nil)
	mockQueue.On("Publish", ctx, "thumbnail_processing", mock.Anything).Return(brokerErr)

	// Act
	_, err := service.Submit(ctx, port.Upload{
		Filename:    "cat.jpg",
		ContentType: "image/jpeg",
		Size:        1,
		Content:     strings.NewReader("x"),
	})

	// Assert: the error surfaces but the insert already happened; the record
	// stays pending for the sweep to recover.
	require.ErrorIs(t, err, brokerErr)
	mockRepo.AssertCalled(t, "InsertPending", ctx, "cat.jpg", mock.AnythingOfType("string"), int64(1), "image/jpeg")
}
