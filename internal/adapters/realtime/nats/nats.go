package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/sonsonson110/image-resize-system/internal/config"
)

// Broadcaster fans notifications out to every currently-connected subscriber
// over core NATS. Deliberately not JetStream: the channel is a liveness
// convenience with no persistence and no delivery guarantee, so a subscriber
// that connects late simply never sees earlier events.
type Broadcaster struct {
	logger *slog.Logger
	conn   *nats.Conn
	config config.NATSConfig
}

// NewBroadcaster connects to NATS with reconnect handling.
func NewBroadcaster(cfg config.NATSConfig, logger *slog.Logger) (*Broadcaster, error) {
	opts := []nats.Option{
		nats.Name(cfg.ClientName),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	}
	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Broadcaster{
		conn:   conn,
		config: cfg,
		logger: logger,
	}, nil
}

func (b *Broadcaster) subject(event string) string {
	return b.config.SubjectPrefix + "." + event
}

// Broadcast publishes the payload to the event's subject, fire and forget.
func (b *Broadcaster) Broadcast(ctx context.Context, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal broadcast payload: %w", err)
	}
	if err := b.conn.Publish(b.subject(event), data); err != nil {
		return fmt.Errorf("failed to broadcast %s: %w", event, err)
	}
	return nil
}

// Subscribe delivers raw payloads for the given event until ctx is
// cancelled. Use event "*" to receive every event under the prefix.
func (b *Broadcaster) Subscribe(ctx context.Context, event string) (<-chan []byte, error) {
	inbox := make(chan *nats.Msg, 64)
	sub, err := b.conn.ChanSubscribe(b.subject(event), inbox)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", event, err)
	}

	out := make(chan []byte, 64)
	go func() {
		defer close(out)
		defer func() {
			if err := sub.Unsubscribe(); err != nil {
				b.logger.Error("failed to unsubscribe", "event", event, "error", err)
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, open := <-inbox:
				if !open {
					return
				}
				select {
				case out <- msg.Data:
				default:
					// Slow subscriber, drop rather than block the pump.
					b.logger.Warn("dropping broadcast for slow subscriber", "event", event)
				}
			}
		}
	}()
	return out, nil
}

// Close drains and closes the NATS connection.
func (b *Broadcaster) Close() error {
	if b.conn != nil {
		b.conn.Close()
	}
	return nil
}
