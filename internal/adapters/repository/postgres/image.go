package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sonsonson110/image-resize-system/internal/core/domain"
	"github.com/sonsonson110/image-resize-system/internal/core/port"
)

// SQLQuerier is the subset of *sql.DB used by the repository.
type SQLQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sqlImageRepository struct {
	db SQLQuerier
}

// NewSqlImageRepository creates sqlImageRepository that implements
// port.ImageRepository. The lifecycle invariants live in the guarded
// UPDATE statements: a terminal record never moves again and every
// timestamp is set at most once.
func NewSqlImageRepository(db SQLQuerier) port.ImageRepository {
	return &sqlImageRepository{
		db: db,
	}
}

const imageColumns = `id, original_filename, stored_filename, file_size, mime_type,
                      status, error_message, thumbnail_filename, thumbnail_size,
                      uploaded_at, processing_started_at, completed_at`

// InsertPending creates a new image record in the pending state and returns
// it with the store-generated id and upload timestamp.
func (s *sqlImageRepository) InsertPending(ctx context.Context, originalFilename, storedFilename string, fileSize int64, mimeType string) (*domain.Image, error) {
	query := `INSERT INTO images (original_filename, stored_filename, file_size, mime_type, status)
              VALUES ($1, $2, $3, $4, 'pending')
              RETURNING id, uploaded_at`

	img := domain.Image{
		OriginalFilename: originalFilename,
		StoredFilename:   storedFilename,
		FileSize:         fileSize,
		MimeType:         mimeType,
		Status:           domain.ImageStatusPending,
	}
	err := s.db.QueryRowContext(ctx, query, originalFilename, storedFilename, fileSize, mimeType).
		Scan(&img.ID, &img.UploadedAt)
	if err != nil {
		return nil, fmt.Errorf("error inserting image: %w", err)
	}
	return &img, nil
}

// FindByID finds by id
func (s *sqlImageRepository) FindByID(ctx context.Context, id int64) (*domain.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM images WHERE id = $1`
	return s.scanOne(s.db.QueryRowContext(ctx, query, id))
}

// FindByStoredFilename finds by the unique stored filename
func (s *sqlImageRepository) FindByStoredFilename(ctx context.Context, storedFilename string) (*domain.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM images WHERE stored_filename = $1`
	return s.scanOne(s.db.QueryRowContext(ctx, query, storedFilename))
}

// List returns all records ordered by upload time, newest first.
func (s *sqlImageRepository) List(ctx context.Context) ([]domain.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM images ORDER BY uploaded_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing images: %w", err)
	}
	defer rows.Close()

	var images []domain.Image
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, *img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating images: %w", err)
	}
	return images, nil
}

// MarkProcessing moves pending to processing. Redelivered jobs make this run
// again, so it is idempotent: a record already processing is a no-op beyond
// COALESCE keeping the original start timestamp, and a terminal record is
// refused with ErrInvalidTransition.
func (s *sqlImageRepository) MarkProcessing(ctx context.Context, id int64) error {
	query := `UPDATE images
              SET status = 'processing',
                  processing_started_at = COALESCE(processing_started_at, now())
              WHERE id = $1 AND status IN ('pending', 'processing')`

	return s.guardedUpdate(ctx, id, query, id)
}

// MarkCompleted finalizes a processing record with its thumbnail metadata.
func (s *sqlImageRepository) MarkCompleted(ctx context.Context, id int64, thumbnailFilename string, thumbnailSize int64) error {
	query := `UPDATE images
              SET status = 'completed',
                  thumbnail_filename = $2,
                  thumbnail_size = $3,
                  completed_at = COALESCE(completed_at, now())
              WHERE id = $1 AND status = 'processing'`

	return s.guardedUpdate(ctx, id, query, id, thumbnailFilename, thumbnailSize)
}

// MarkFailed finalizes a processing record with the failure reason.
func (s *sqlImageRepository) MarkFailed(ctx context.Context, id int64, errorMessage string) error {
	query := `UPDATE images
              SET status = 'failed',
                  error_message = $2,
                  completed_at = COALESCE(completed_at, now())
              WHERE id = $1 AND status = 'processing'`

	return s.guardedUpdate(ctx, id, query, id, errorMessage)
}

func (s *sqlImageRepository) guardedUpdate(ctx context.Context, id int64, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating image: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 1 {
		return nil
	}

	// The guard rejected the write: either the record is gone or its
	// current status forbids the transition.
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return domain.ErrInvalidTransition
}

// FindStale returns records stuck in the given status since before the
// cutoff, for the reconciliation sweep.
func (s *sqlImageRepository) FindStale(ctx context.Context, status domain.ImageStatus, before time.Time) ([]domain.Image, error) {
	var reference string
	switch status {
	case domain.ImageStatusPending:
		reference = "uploaded_at"
	case domain.ImageStatusProcessing:
		reference = "processing_started_at"
	default:
		return nil, fmt.Errorf("no stale query for status %s", status)
	}

	query := `SELECT ` + imageColumns + ` FROM images
              WHERE status = $1 AND ` + reference + ` < $2
              ORDER BY ` + reference + ` ASC`

	rows, err := s.db.QueryContext(ctx, query, status, before)
	if err != nil {
		return nil, fmt.Errorf("error querying stale images: %w", err)
	}
	defer rows.Close()

	var images []domain.Image
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, *img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stale images: %w", err)
	}
	return images, nil
}

// DeleteAll removes every record, used by the system reset.
func (s *sqlImageRepository) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM images`); err != nil {
		return fmt.Errorf("error deleting images: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *sqlImageRepository) scanOne(row *sql.Row) (*domain.Image, error) {
	img, err := scanImage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrImageNotFound
		}
		return nil, err
	}
	return img, nil
}

func scanImage(row rowScanner) (*domain.Image, error) {
	var (
		img               domain.Image
		errorMessage      sql.NullString
		thumbnailFilename sql.NullString
		thumbnailSize     sql.NullInt64
		processingStarted sql.NullTime
		completedAt       sql.NullTime
	)

	err := row.Scan(
		&img.ID,
		&img.OriginalFilename,
		&img.StoredFilename,
		&img.FileSize,
		&img.MimeType,
		&img.Status,
		&errorMessage,
		&thumbnailFilename,
		&thumbnailSize,
		&img.UploadedAt,
		&processingStarted,
		&completedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("error scanning image: %w", err)
	}

	if errorMessage.Valid {
		img.ErrorMessage = errorMessage.String
	}
	if thumbnailFilename.Valid {
		img.ThumbnailFilename = thumbnailFilename.String
	}
	if thumbnailSize.Valid {
		img.ThumbnailSize = thumbnailSize.Int64
	}
	if processingStarted.Valid {
		img.ProcessingStartedAt = &processingStarted.Time
	}
	if completedAt.Valid {
		img.CompletedAt = &completedAt.Time
	}
	return &img, nil
}
