package port

import "context"

// MessageHandler is an interface to define queue message handling.
// Returning nil acknowledges the message. Returning an error that wraps
// domain.ErrMalformedMessage or domain.ErrImageNotFound also acknowledges:
// such messages can never become processable, so redelivering them is
// pointless (poison-message policy). Any other error leaves the message
// unacknowledged for redelivery.
type MessageHandler interface {
	HandleMessage(ctx context.Context, data []byte) error
}

// JobQueue is an interface to define the durable work queue between the
// producer, the worker and the completion consumer. Messages are published
// persistent on durable queues and consumed with explicit acknowledgment
// (at-least-once). A lost connection is a hard failure of the current
// operation; reconnecting is the caller's responsibility.
type JobQueue interface {
	Publish(ctx context.Context, queueName string, body []byte) error
	Consume(ctx context.Context, queueName string, prefetch int, handler MessageHandler) error
	Purge(ctx context.Context, queueName string) error
	Close() error
}
