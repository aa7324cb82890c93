package queue

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sonsonson110/image-resize-system/internal/core/port"
)

// MockJobQueue is a mock implementation of port.JobQueue
type MockJobQueue struct {
	mock.Mock
}

// NewMockJobQueue creates a new MockJobQueue
func NewMockJobQueue() *MockJobQueue {
	return &MockJobQueue{}
}

func (m *MockJobQueue) Publish(ctx context.Context, queueName string, body []byte) error {
	args := m.Called(ctx, queueName, body)
	return args.Error(0)
}

func (m *MockJobQueue) Consume(ctx context.Context, queueName string, prefetch int, handler port.MessageHandler) error {
	args := m.Called(ctx, queueName, prefetch, handler)
	return args.Error(0)
}

func (m *MockJobQueue) Purge(ctx context.Context, queueName string) error {
	args := m.Called(ctx, queueName)
	return args.Error(0)
}

func (m *MockJobQueue) Close() error {
	args := m.Called()
	return args.Error(0)
}
