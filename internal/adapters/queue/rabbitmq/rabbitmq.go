package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sonsonson110/image-resize-system/internal/config"
	"github.com/sonsonson110/image-resize-system/internal/core/domain"
	"github.com/sonsonson110/image-resize-system/internal/core/port"
)

type connState int

const (
	stateNotConnected connState = iota
	stateConnected
	stateClosed
)

// Client is a JobQueue backed by RabbitMQ. Queues are declared durable and
// messages are published persistent, so both survive a broker restart.
// The connection state is tracked explicitly and every operation fails fast
// with domain.ErrNotConnected instead of panicking on a nil channel.
type Client struct {
	logger *slog.Logger
	config config.RabbitMQConfig

	mu      sync.Mutex
	state   connState
	conn    *amqp.Connection
	channel *amqp.Channel

	wg sync.WaitGroup
}

// NewClient creates an unconnected client. Call Connect before use.
func NewClient(cfg config.RabbitMQConfig, logger *slog.Logger) *Client {
	return &Client{
		logger: logger,
		config: cfg,
		state:  stateNotConnected,
	}
}

// Connect dials the broker, opens a channel with publisher confirms and
// declares both pipeline queues. Redeclaring an existing durable queue is
// idempotent.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == stateConnected {
		return nil
	}
	if c.state == stateClosed {
		return fmt.Errorf("connect: %w", domain.ErrNotConnected)
	}

	conn, err := amqp.Dial(c.config.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open a channel: %w", err)
	}

	if err := channel.Confirm(false); err != nil {
		channel.Close()
		conn.Close()
		return fmt.Errorf("failed to enable publish confirmations: %w", err)
	}

	for _, queueName := range []string{c.config.ProcessingQueue, c.config.CompletedQueue} {
		if _, err := channel.QueueDeclare(
			queueName,
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		); err != nil {
			channel.Close()
			conn.Close()
			return fmt.Errorf("failed to declare queue %s: %w", queueName, err)
		}
	}

	c.conn = conn
	c.channel = channel
	c.state = stateConnected
	c.logger.Info("connected to RabbitMQ", "url", c.config.URL)
	return nil
}

func (c *Client) activeChannel() (*amqp.Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != stateConnected {
		return nil, domain.ErrNotConnected
	}
	return c.channel, nil
}

// Publish sends a persistent message to the named queue and waits for the
// broker confirmation, bounded by the configured publish timeout. A timeout
// is a publish failure, never a silent retry.
func (c *Client) Publish(ctx context.Context, queueName string, body []byte) error {
	channel, err := c.activeChannel()
	if err != nil {
		return fmt.Errorf("publish to %s: %w", queueName, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.PublishTimeout)
	defer cancel()

	confirmation, err := channel.PublishWithDeferredConfirmWithContext(
		ctx,
		"",        // exchange
		queueName, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", queueName, err)
	}

	ok, err := confirmation.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("publish confirmation for %s: %w", queueName, err)
	}
	if !ok {
		return fmt.Errorf("broker rejected publish to %s", queueName)
	}
	return nil
}

// Consume delivers messages from the named queue to handler with explicit
// acknowledgment. A message is acked after the handler returns nil, or when
// the error marks it unprocessable (poison policy); every other error nacks
// with requeue so the broker redelivers. prefetch bounds in-flight messages
// per consumer.
func (c *Client) Consume(ctx context.Context, queueName string, prefetch int, handler port.MessageHandler) error {
	channel, err := c.activeChannel()
	if err != nil {
		return fmt.Errorf("consume from %s: %w", queueName, err)
	}

	if err := channel.Qos(prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	deliveries, err := channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer on %s: %w", queueName, err)
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("consumer stopped", "queue", queueName)
				return
			case delivery, open := <-deliveries:
				if !open {
					c.logger.Warn("delivery channel closed by broker", "queue", queueName)
					return
				}
				c.dispatch(ctx, queueName, delivery, handler)
			}
		}
	}()

	c.logger.Info("consumer started", "queue", queueName, "prefetch", prefetch)
	return nil
}

func (c *Client) dispatch(ctx context.Context, queueName string, delivery amqp.Delivery, handler port.MessageHandler) {
	err := handler.HandleMessage(ctx, delivery.Body)
	switch {
	case err == nil:
		if ackErr := delivery.Ack(false); ackErr != nil {
			c.logger.Error("failed to ack message", "queue", queueName, "error", ackErr)
		}
	case errors.Is(err, domain.ErrMalformedMessage), errors.Is(err, domain.ErrImageNotFound):
		// Retrying can never make these messages processable.
		c.logger.Warn("dropping unprocessable message", "queue", queueName, "error", err)
		if ackErr := delivery.Ack(false); ackErr != nil {
			c.logger.Error("failed to ack dropped message", "queue", queueName, "error", ackErr)
		}
	default:
		c.logger.Error("message handling failed, requeueing", "queue", queueName, "error", err)
		if nackErr := delivery.Nack(false, true); nackErr != nil {
			c.logger.Error("failed to nack message", "queue", queueName, "error", nackErr)
		}
	}
}

// Ping reports whether the broker connection is alive, for health checks.
func (c *Client) Ping(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != stateConnected || c.conn.IsClosed() {
		return domain.ErrNotConnected
	}
	return nil
}

// Purge removes all ready messages from the named queue.
func (c *Client) Purge(ctx context.Context, queueName string) error {
	channel, err := c.activeChannel()
	if err != nil {
		return fmt.Errorf("purge %s: %w", queueName, err)
	}

	removed, err := channel.QueuePurge(queueName, false)
	if err != nil {
		return fmt.Errorf("failed to purge queue %s: %w", queueName, err)
	}
	c.logger.Info("purged queue", "queue", queueName, "removed", removed)
	return nil
}

// Close shuts the channel and connection down and waits for consumer
// goroutines to drain. The client cannot be reused afterwards.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.state != stateConnected {
		c.state = stateClosed
		c.mu.Unlock()
		return nil
	}
	c.state = stateClosed
	channel, conn := c.channel, c.conn
	c.channel, c.conn = nil, nil
	c.mu.Unlock()

	var errs []error
	if err := channel.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := conn.Close(); err != nil {
		errs = append(errs, err)
	}

	c.wg.Wait()
	return errors.Join(errs...)
}
