package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/sonsonson110/image-resize-system/internal/adapters/queue/rabbitmq"
	"github.com/sonsonson110/image-resize-system/internal/adapters/repository/postgres"
	"github.com/sonsonson110/image-resize-system/internal/adapters/thumbnail"
	"github.com/sonsonson110/image-resize-system/internal/config"
	"github.com/sonsonson110/image-resize-system/internal/core/service/worker"
)

// The worker consumes one processing job at a time (prefetch 1): thumbnail
// generation is CPU-bound, scale out by running more worker processes.
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

	db, err := initDB(cfg.Database)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()
	logger.Info("db connection established")

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

	imageRepo := postgres.NewSqlImageRepository(db)
	generator := thumbnail.NewGenerator(cfg.Worker)

	processingService := worker.NewProcessingService(imageRepo, queueClient, generator, cfg.RabbitMQ, logger)

	if err := queueClient.Consume(ctx, cfg.RabbitMQ.ProcessingQueue, prefetch, processingService); err != nil {
		logger.Error("failed to start consuming", "error", err)
		os.Exit(1)
	}
	logger.Info("worker started", "queue", cfg.RabbitMQ.ProcessingQueue)

	<-ctx.Done()
	logger.Info("gracefully shutting down worker")

	if err := queueClient.Close(); err != nil {
		logger.Error("failed to close RabbitMQ client during shutdown", "error", err)
	}
	logger.Info("worker shutdown complete")
}

func initDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenCons)
	db.SetMaxIdleConns(cfg.MaxIdleCons)
	db.SetConnMaxLifetime(cfg.ConMaxLifeTime)

	return db, nil
}
