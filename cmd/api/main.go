package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/sonsonson110/image-resize-system/internal/adapters/handlers/http/chi"
	"github.com/sonsonson110/image-resize-system/internal/adapters/handlers/http/chi/events"
	image2 "github.com/sonsonson110/image-resize-system/internal/adapters/handlers/http/chi/v1/image"
	system2 "github.com/sonsonson110/image-resize-system/internal/adapters/handlers/http/chi/v1/system"
	"github.com/sonsonson110/image-resize-system/internal/adapters/queue/rabbitmq"
	"github.com/sonsonson110/image-resize-system/internal/adapters/realtime/nats"
	"github.com/sonsonson110/image-resize-system/internal/adapters/repository/postgres"
	"github.com/sonsonson110/image-resize-system/internal/adapters/storage/local"
	"github.com/sonsonson110/image-resize-system/internal/config"
	"github.com/sonsonson110/image-resize-system/internal/core/service/producer"
	"github.com/sonsonson110/image-resize-system/internal/core/service/sweep"
	"github.com/sonsonson110/image-resize-system/internal/core/service/system"
)

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
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}(db)
	logger.Info("db connection established")

	//storage
	fileStore, err := local.NewStore(cfg.Storage)
	if err != nil {
		logger.Error("failed to init file storage", "error", err)
		os.Exit(1)
	}

	//queue
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

	//realtime
	broadcaster, err := nats.NewBroadcaster(cfg.NATS, logger)
	if err != nil {
		logger.Error("failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer broadcaster.Close()

	//repositories
	imageRepo := postgres.NewSqlImageRepository(db)

	//services
	imageService := producer.NewImageService(imageRepo, queueClient, fileStore, cfg.Upload, cfg.RabbitMQ, logger)
	resetService := system.NewResetService(imageRepo, queueClient, fileStore, cfg.RabbitMQ, logger)
	sweepService := sweep.NewService(imageRepo, queueClient, fileStore, cfg.RabbitMQ, cfg.Sweep, logger)

	//http
	imageHandler := image2.NewImageHandlerV1(imageService, fileStore, cfg.Server.BaseURL, cfg.Upload.MaxFileSize, logger)
	systemHandler := system2.NewSystemHandlerV1(
		resetService,
		system2.PingerFunc(db.PingContext),
		queueClient,
		logger,
	)
	eventsHandler := events.NewHandler(broadcaster, logger)

	router := chi.NewRouter(logger, imageHandler, systemHandler, eventsHandler, cfg.Upload.MaxFileSize+1<<20, cfg.Env.Env)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	// init reconciliation sweep
	if cfg.Sweep.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			initSweepTask(ctx, sweepService, cfg.Sweep.Every, logger)
		}()
	}

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	wg.Wait()
	logger.Info("app shutdown complete")

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

func initSweepTask(ctx context.Context, service *sweep.Service, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	logger.Info("reconciliation sweep initialized", "interval", every)

	for {
		select {
		case <-ticker.C:
			if err := service.Run(ctx, time.Now()); err != nil {
				logger.Error("reconciliation sweep failed", "error", err)
			}
		case <-ctx.Done():
			logger.Info("reconciliation sweep stopped")
			return
		}
	}
}
