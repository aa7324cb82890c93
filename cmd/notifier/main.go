package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sonsonson110/image-resize-system/internal/adapters/queue/rabbitmq"
	"github.com/sonsonson110/image-resize-system/internal/adapters/realtime/nats"
	"github.com/sonsonson110/image-resize-system/internal/config"
	"github.com/sonsonson110/image-resize-system/internal/core/service/notify"
)

const prefetch = 1

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	broadcaster, err := nats.NewBroadcaster(cfg.NATS, logger)
	if err != nil {
		logger.Error("failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer broadcaster.Close()

	queueClient := rabbitmq.NewClient(cfg.RabbitMQ, logger)
	if err := queueClient.Connect(); err != nil {
		logger.Error("failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := queueClient.Close(); err != nil {
			logger.Error("failed to close RabbitMQ client", "error", err)
		}
	}()

	notificationService := notify.NewNotificationService(broadcaster, cfg.Server.BaseURL, logger)

	if err := queueClient.Consume(ctx, cfg.RabbitMQ.CompletedQueue, prefetch, notificationService); err != nil {
		logger.Error("failed to start consuming", "error", err)
		os.Exit(1)
	}
	logger.Info("notifier started", "queue", cfg.RabbitMQ.CompletedQueue)

	<-ctx.Done()
	logger.Info("gracefully shutting down notifier")

	if err := queueClient.Close(); err != nil {
		logger.Error("failed to close RabbitMQ client during shutdown", "error", err)
	}
	logger.Info("notifier shutdown complete")
}
