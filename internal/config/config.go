package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env      Env
	Server   ServerConfig
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
	NATS     NATSConfig
	Storage  StorageConfig
	Upload   UploadConfig
	Worker   WorkerConfig
	Sweep    SweepConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host    string `envconfig:"SERVER_HOST" default:"localhost"`
	Port    string `envconfig:"SERVER_PORT" default:"8080"`
	BaseURL string `envconfig:"SERVER_BASE_URL" default:"http://localhost:8080/api/v1"`
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" required:"true"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	Name           string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

type RabbitMQConfig struct {
	URL             string        `envconfig:"RABBITMQ_URL" required:"true"`
	ProcessingQueue string        `envconfig:"RABBITMQ_PROCESSING_QUEUE" default:"thumbnail_processing"`
	CompletedQueue  string        `envconfig:"RABBITMQ_COMPLETED_QUEUE" default:"thumbnail_completed"`
	PublishTimeout  time.Duration `envconfig:"RABBITMQ_PUBLISH_TIMEOUT" default:"5s"`
}

type NATSConfig struct {
	URL           string `envconfig:"NATS_URL" required:"true"`
	ClientName    string `envconfig:"NATS_CLIENT_NAME" default:"image-resize-notifier"`
	SubjectPrefix string `envconfig:"NATS_SUBJECT_PREFIX" default:"thumbnails"`
}

type StorageConfig struct {
	Root string `envconfig:"UPLOADS_ROOT" default:"./uploads"`
}

type UploadConfig struct {
	MaxFileSize int64 `envconfig:"UPLOAD_MAX_FILE_SIZE" default:"10485760"` // 10MB
}

type WorkerConfig struct {
	ThumbnailWidth  int `envconfig:"WORKER_THUMBNAIL_WIDTH" default:"128"`
	ThumbnailHeight int `envconfig:"WORKER_THUMBNAIL_HEIGHT" default:"128"`
}

type SweepConfig struct {
	Enabled         bool          `envconfig:"SWEEP_ENABLED" default:"true"`
	Every           time.Duration `envconfig:"SWEEP_EVERY" default:"5m"`
	PendingAfter    time.Duration `envconfig:"SWEEP_PENDING_AFTER" default:"15m"`
	ProcessingAfter time.Duration `envconfig:"SWEEP_PROCESSING_AFTER" default:"30m"`
}

func Load() (*Config, error) {
	// .env is optional, real environments set variables directly.
	_ = godotenv.Load()

	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
