package producer

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sonsonson110/image-resize-system/internal/core/domain"
	"github.com/sonsonson110/image-resize-system/internal/core/port"
)

// MockImageService is a mock implementation of port.ImageService
type MockImageService struct {
	mock.Mock
}

// NewMockImageService creates a new MockImageService
func NewMockImageService() *MockImageService {
	return &MockImageService{}
}

func (m *MockImageService) Submit(ctx context.Context, upload port.Upload) (*domain.Image, error) {
	args := m.Called(ctx, upload)
	return args.Get(0).(*domain.Image), args.Error(1)
}

func (m *MockImageService) GetByStoredFilename(ctx context.Context, storedFilename string) (*domain.Image, error) {
	args := m.Called(ctx, storedFilename)
	return args.Get(0).(*domain.Image), args.Error(1)
}

func (m *MockImageService) List(ctx context.Context) ([]domain.Image, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Image), args.Error(1)
}
