package port

import "context"

// Broadcaster is an interface to define the real-time notification channel.
// Broadcast delivers to every currently-connected subscriber, fire and
// forget: no acknowledgment, no persistence, no per-subscriber guarantee.
// The canonical answer to "was this image processed" is always the status
// store, never this channel.
type Broadcaster interface {
	Broadcast(ctx context.Context, event string, payload any) error
}

// Subscriber is an interface to define live subscription to broadcast
// events, used by the SSE bridge. Messages published before Subscribe
// returns are never delivered retroactively.
type Subscriber interface {
	Subscribe(ctx context.Context, event string) (<-chan []byte, error)
}
