package worker_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sonsonson110/image-resize-system/internal/adapters/queue"
	"github.com/sonsonson110/image-resize-system/internal/adapters/repository"
	"github.com/sonsonson110/image-resize-system/internal/adapters/thumbnail"
	"github.com/sonsonson110/image-resize-system/internal/config"
	"github.com/sonsonson110/image-resize-system/internal/core/domain"
	"github.com/sonsonson110/image-resize-system/internal/core/port"
	"github.com/sonsonson110/image-resize-system/internal/core/service/worker"
)

func newHandler(repo *repository.MockImageRepository, jobQueue *queue.MockJobQueue, gen *thumbnail.MockGenerator) port.MessageHandler {
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return worker.NewProcessingService(
		repo,
		jobQueue,
		gen,
		config.RabbitMQConfig{ProcessingQueue: "thumbnail_processing", CompletedQueue: "thumbnail_completed"},
		discardLogger,
	)
}

func jobPayload(t *testing.T) []byte {
	t.Helper()
	body, err := domain.ProcessingJob{
		ImageID:           42,
		OriginalPath:      "/uploads/originals/x.jpg",
		ThumbnailPath:     "/uploads/thumbnails/thumb_x.jpg",
		StoredFilename:    "x.jpg",
		ThumbnailFilename: "thumb_x.jpg",
	}.Encode()
	require.NoError(t, err)
	return body
}

func TestProcessingService_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := repository.NewMockImageRepository()
	mockQueue := queue.NewMockJobQueue()
	mockGen := thumbnail.NewMockGenerator()
	handler := newHandler(mockRepo, mockQueue, mockGen)

	mockRepo.On("FindByID", ctx, int64(42)).Return(&domain.Image{ID: 42, Status: domain.ImageStatusPending}, nil)
	mockRepo.On("MarkProcessing", ctx, int64(42)).Return(nil)
	mockGen.On("Generate", "/uploads/originals/x.jpg", "/uploads/thumbnails/thumb_x.jpg").Return(int64(512), nil)
	mockRepo.On("MarkCompleted", ctx, int64(42), "thumb_x.jpg", int64(512)).Return(nil)
	mockQueue.On("Publish", ctx, "thumbnail_completed", mock.Anything).Return(nil)

	// Act
	err := handler.HandleMessage(ctx, jobPayload(t))

	// Assert
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockGen.AssertExpectations(t)

	body := mockQueue.Calls[0].Arguments.Get(2).([]byte)
	event, err := domain.DecodeCompletionEvent(body)
	require.NoError(t, err)
	assert.Equal(t, int64(42), event.ImageID)
	assert.Equal(t, "thumb_x.jpg", event.ThumbnailFilename)
	assert.False(t, event.Failed)
}

func TestProcessingService_ResizeFailure(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := repository.NewMockImageRepository()
	mockQueue := queue.NewMockJobQueue()
	mockGen := thumbnail.NewMockGenerator()
	handler := newHandler(mockRepo, mockQueue, mockGen)

	mockRepo.On("FindByID", ctx, int64(42)).Return(&domain.Image{ID: 42, Status: domain.ImageStatusPending}, nil)
	mockRepo.On("MarkProcessing", ctx, int64(42)).Return(nil)
	mockGen.On("Generate", mock.Anything, mock.Anything).Return(int64(0), errors.New("decode error"))
	mockRepo.On("MarkFailed", ctx, int64(42), "decode error").Return(nil)
	mockQueue.On("Publish", ctx, "thumbnail_completed", mock.Anything).Return(nil)

	// Act
	err := handler.HandleMessage(ctx, jobPayload(t))

	// Assert: failure is recorded AND a failure event still goes out.
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)

	body := mockQueue.Calls[0].Arguments.Get(2).([]byte)
	event, err := domain.DecodeCompletionEvent(body)
	require.NoError(t, err)
	assert.True(t, event.Failed)
	assert.Equal(t, "decode error", event.ErrorMessage)
}

func TestProcessingService_DuplicateDeliveryForTerminalRecord(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := repository.NewMockImageRepository()
	mockQueue := queue.NewMockJobQueue()
	mockGen := thumbnail.NewMockGenerator()
	handler := newHandler(mockRepo, mockQueue, mockGen)

	mockRepo.On("FindByID", ctx, int64(42)).Return(&domain.Image{ID: 42, Status: domain.ImageStatusCompleted}, nil)

	// Act
	err := handler.HandleMessage(ctx, jobPayload(t))

	// Assert: nil means the consumer re-acks; no resize, no writes.
	require.NoError(t, err)
	mockGen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "MarkProcessing", mock.Anything, mock.Anything)
	mockQueue.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessingService_MalformedPayloadDropped(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := repository.NewMockImageRepository()
	handler := newHandler(mockRepo, queue.NewMockJobQueue(), thumbnail.NewMockGenerator())

	// Act
	err := handler.HandleMessage(ctx, []byte("{not json"))

	// Assert
	require.ErrorIs(t, err, domain.ErrMalformedMessage)
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestProcessingService_MissingRecordDropped(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := repository.NewMockImageRepository()
	handler := newHandler(mockRepo, queue.NewMockJobQueue(), thumbnail.NewMockGenerator())

	mockRepo.On("FindByID", ctx, int64(42)).Return((*domain.Image)(nil), domain.ErrImageNotFound)

	// Act
	err := handler.HandleMessage(ctx, jobPayload(t))

	// Assert: the error keeps the not-found mark so the consumer drops it.
	require.ErrorIs(t, err, domain.ErrImageNotFound)
}

func TestProcessingService_CompletionPublishFailureDoesNotFailDelivery(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := repository.NewMockImageRepository()
	mockQueue := queue.NewMockJobQueue()
	mockGen := thumbnail.NewMockGenerator()
	handler := newHandler(mockRepo, mockQueue, mockGen)

	mockRepo.On("FindByID", ctx, int64(42)).Return(&domain.Image{ID: 42, Status: domain.ImageStatusPending}, nil)
	mockRepo.On("MarkProcessing", ctx, int64(42)).Return(nil)
	mockGen.On("Generate", mock.Anything, mock.Anything).Return(int64(512), nil)
	mockRepo.On("MarkCompleted", ctx, int64(42), "thumb_x.jpg", int64(512)).Return(nil)
	mockQueue.On("Publish", ctx, "thumbnail_completed", mock.Anything).Return(errors.New("broker gone"))

	// Act
	err := handler.HandleMessage(ctx, jobPayload(t))

	// Assert: the store already holds the terminal state, so the delivery
	// is still acknowledged.
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
