package notify

import (
	"context"
	"fmt"

	"github.com/sonsonson110/image-resize-system/internal/core/domain"
)

// HandleMessage turns one completion event into a broadcast. Returning nil
// only after the broadcast call came back keeps the ack-after-broadcast
// ordering: a crash in between redelivers the event and broadcasts again,
// which subscribers tolerate.
func (s *notificationService) HandleMessage(ctx context.Context, data []byte) error {
	event, err := domain.DecodeCompletionEvent(data)
	if err != nil {
		// Poison message: consumer acks and drops.
		return err
	}

	if event.Failed {
		notification := Notification{ID: event.ImageID, Error: event.ErrorMessage}
		if err := s.broadcaster.Broadcast(ctx, EventFailed, notification); err != nil {
			return fmt.Errorf("failed to broadcast failure for image %d: %w", event.ImageID, err)
		}
		s.logger.Info("broadcast failure notification", "image_id", event.ImageID)
		return nil
	}

	notification := Notification{
		ID:        event.ImageID,
		Thumbnail: s.baseURL + "/thumbnail/" + event.ThumbnailFilename,
	}
	if err := s.broadcaster.Broadcast(ctx, EventCompleted, notification); err != nil {
		return fmt.Errorf("failed to broadcast completion for image %d: %w", event.ImageID, err)
	}
	s.logger.Info("broadcast completion notification",
		"image_id", event.ImageID, "thumbnail", event.ThumbnailFilename)
	return nil
}
