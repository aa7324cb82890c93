package port

import (
	"context"
	"io"
)

// FileStore is an interface to define on-disk file interactions for
// originals and generated thumbnails.
type FileStore interface {
	SaveOriginal(ctx context.Context, storedFilename string, content io.Reader) (int64, error)
	OpenOriginal(storedFilename string) (io.ReadCloser, error)
	OpenThumbnail(thumbnailFilename string) (io.ReadCloser, error)
	ThumbnailSize(thumbnailFilename string) (int64, error)
	OriginalPath(storedFilename string) string
	ThumbnailPath(thumbnailFilename string) string
	Reset() error
}

// ThumbnailGenerator is an interface to define the resize step. Generate
// reads the source image, writes the thumbnail to dstPath and returns the
// written file size in bytes.
type ThumbnailGenerator interface {
	Generate(srcPath, dstPath string) (int64, error)
}
