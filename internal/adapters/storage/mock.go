package storage

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockFileStore is a mock implementation of port.FileStore
type MockFileStore struct {
	mock.Mock
}

// NewMockFileStore creates a new MockFileStore
func NewMockFileStore() *MockFileStore {
	return &MockFileStore{}
}

func (m *MockFileStore) SaveOriginal(ctx context.Context, storedFilename string, content io.Reader) (int64, error) {
	args := m.Called(ctx, storedFilename, content)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFileStore) OpenOriginal(storedFilename string) (io.ReadCloser, error) {
	args := m.Called(storedFilename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockFileStore) OpenThumbnail(thumbnailFilename string) (io.ReadCloser, error) {
	args := m.Called(thumbnailFilename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockFileStore) ThumbnailSize(thumbnailFilename string) (int64, error) {
	args := m.Called(thumbnailFilename)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFileStore) OriginalPath(storedFilename string) string {
	args := m.Called(storedFilename)
	return args.String(0)
}

func (m *MockFileStore) ThumbnailPath(thumbnailFilename string) string {
	args := m.Called(thumbnailFilename)
	return args.String(0)
}

func (m *MockFileStore) Reset() error {
	args := m.Called()
	return args.Error(0)
}
