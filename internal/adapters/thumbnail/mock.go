package thumbnail

import "github.com/stretchr/testify/mock"

// MockGenerator is a mock implementation of port.ThumbnailGenerator
type MockGenerator struct {
	mock.Mock
}

// NewMockGenerator creates a new MockGenerator
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

func (m *MockGenerator) Generate(srcPath, dstPath string) (int64, error) {
	args := m.Called(srcPath, dstPath)
	return args.Get(0).(int64), args.Error(1)
}
