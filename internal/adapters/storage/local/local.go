package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sonsonson110/image-resize-system/internal/config"
	"github.com/sonsonson110/image-resize-system/internal/core/port"
)

const (
	originalsDir  = "originals"
	thumbnailsDir = "thumbnails"
)

// Store keeps originals and thumbnails on local disk under a single root.
type Store struct {
	root string
}

// NewStore creates the store and its directory layout.
func NewStore(cfg config.StorageConfig) (*Store, error) {
	s := &Store{root: cfg.Root}
	if err := s.ensureDirs(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureDirs() error {
	for _, dir := range []string{
		s.root,
		filepath.Join(s.root, originalsDir),
		filepath.Join(s.root, thumbnailsDir),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create upload directory %s: %w", dir, err)
		}
	}
	return nil
}

// OriginalPath returns the on-disk path for a stored filename.
func (s *Store) OriginalPath(storedFilename string) string {
	return filepath.Join(s.root, originalsDir, filepath.Base(storedFilename))
}

// ThumbnailPath returns the on-disk path for a thumbnail filename.
func (s *Store) ThumbnailPath(thumbnailFilename string) string {
	return filepath.Join(s.root, thumbnailsDir, filepath.Base(thumbnailFilename))
}

// SaveOriginal writes the uploaded content and returns the byte count.
func (s *Store) SaveOriginal(ctx context.Context, storedFilename string, content io.Reader) (int64, error) {
	path := s.OriginalPath(storedFilename)
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}

	written, err := io.Copy(f, content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return written, nil
}

// OpenOriginal opens a stored original for reading.
func (s *Store) OpenOriginal(storedFilename string) (io.ReadCloser, error) {
	return os.Open(s.OriginalPath(storedFilename))
}

// OpenThumbnail opens a generated thumbnail for reading.
func (s *Store) OpenThumbnail(thumbnailFilename string) (io.ReadCloser, error) {
	return os.Open(s.ThumbnailPath(thumbnailFilename))
}

// ThumbnailSize returns the size in bytes of a generated thumbnail.
func (s *Store) ThumbnailSize(thumbnailFilename string) (int64, error) {
	info, err := os.Stat(s.ThumbnailPath(thumbnailFilename))
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Reset wipes the upload tree and recreates the directory layout.
func (s *Store) Reset() error {
	if err := os.RemoveAll(s.root); err != nil {
		return fmt.Errorf("failed to remove upload root: %w", err)
	}
	return s.ensureDirs()
}

var _ port.FileStore = (*Store)(nil)
