package repository

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/sonsonson110/image-resize-system/internal/core/domain"
)

// MockImageRepository is a mock implementation of port.ImageRepository
type MockImageRepository struct {
	mock.Mock
}

// NewMockImageRepository creates a new MockImageRepository
func NewMockImageRepository() *MockImageRepository {
	return &MockImageRepository{}
}

func (m *MockImageRepository) InsertPending(ctx context.Context, originalFilename, storedFilename string, fileSize int64, mimeType string) (*domain.Image, error) {
	args := m.Called(ctx, originalFilename, storedFilename, fileSize, mimeType)
	return args.Get(0).(*domain.Image), args.Error(1)
}

func (m *MockImageRepository) FindByID(ctx context.Context, id int64) (*domain.Image, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Image), args.Error(1)
}

func (m *MockImageRepository) FindByStoredFilename(ctx context.Context, storedFilename string) (*domain.Image, error) {
	args := m.Called(ctx, storedFilename)
	return args.Get(0).(*domain.Image), args.Error(1)
}

func (m *MockImageRepository) List(ctx context.Context) ([]domain.Image, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Image), args.Error(1)
}

func (m *MockImageRepository) MarkProcessing(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockImageRepository) MarkCompleted(ctx context.Context, id int64, thumbnailFilename string, thumbnailSize int64) error {
	args := m.Called(ctx, id, thumbnailFilename, thumbnailSize)
	return args.Error(0)
}

func (m *MockImageRepository) MarkFailed(ctx context.Context, id int64, errorMessage string) error {
	args := m.Called(ctx, id, errorMessage)
	return args.Error(0)
}

func (m *MockImageRepository) FindStale(ctx context.Context, status domain.ImageStatus, before time.Time) ([]domain.Image, error) {
	args := m.Called(ctx, status, before)
	return args.Get(0).([]domain.Image), args.Error(1)
}

func (m *MockImageRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
