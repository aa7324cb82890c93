package system

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockResetService is a mock implementation of port.ResetService
type MockResetService struct {
	mock.Mock
}

// NewMockResetService creates a new MockResetService
func NewMockResetService() *MockResetService {
	return &MockResetService{}
}

func (m *MockResetService) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
