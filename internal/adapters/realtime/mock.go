package realtime

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockBroadcaster is a mock implementation of port.Broadcaster
type MockBroadcaster struct {
	mock.Mock
}

// NewMockBroadcaster creates a new MockBroadcaster
func NewMockBroadcaster() *MockBroadcaster {
	return &MockBroadcaster{}
}

func (m *MockBroadcaster) Broadcast(ctx context.Context, event string, payload any) error {
	args := m.Called(ctx, event, payload)
	return args.Error(0)
}

// MockSubscriber is a mock implementation of port.Subscriber
type MockSubscriber struct {
	mock.Mock
}

// NewMockSubscriber creates a new MockSubscriber
func NewMockSubscriber() *MockSubscriber {
	return &MockSubscriber{}
}

func (m *MockSubscriber) Subscribe(ctx context.Context, event string) (<-chan []byte, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan []byte), args.Error(1)
}
