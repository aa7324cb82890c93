package notify

import (
	"log/slog"

	"github.com/sonsonson110/image-resize-system/internal/core/port"
)

// Event names carried on the real-time channel.
const (
	EventCompleted = "completed"
	EventFailed    = "failed"
)

// Notification is the payload subscribers receive. Subscribers must treat it
// as an idempotent hint: redelivery of a completion event broadcasts again.
type Notification struct {
	ID        int64  `json:"id"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Error     string `json:"error,omitempty"`
}

type notificationService struct {
	broadcaster port.Broadcaster
	baseURL     string
	logger      *slog.Logger
}

// NewNotificationService creates the completion consumer's message handler.
// It deliberately has no repository dependency: the consumer only fans
// events out and never touches the status store.
func NewNotificationService(broadcaster port.Broadcaster, baseURL string, logger *slog.Logger) port.MessageHandler {
	return &notificationService{
		broadcaster: broadcaster,
		baseURL:     baseURL,
		logger:      logger,
	}
}
