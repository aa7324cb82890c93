package thumbnail

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/sonsonson110/image-resize-system/internal/config"
	"github.com/sonsonson110/image-resize-system/internal/core/port"
)

// Generator resizes images into a bounding box, preserving aspect ratio.
type Generator struct {
	boxWidth  int
	boxHeight int
}

// NewGenerator creates a Generator with the configured bounding box.
func NewGenerator(cfg config.WorkerConfig) *Generator {
	return &Generator{
		boxWidth:  cfg.ThumbnailWidth,
		boxHeight: cfg.ThumbnailHeight,
	}
}

// Generate loads the source image, fits it into the bounding box without
// upscaling beyond the source and writes it to dstPath, returning the
// written file size in bytes.
func (g *Generator) Generate(srcPath, dstPath string) (int64, error) {
	src, err := imaging.Open(srcPath, imaging.AutoOrientation(true))
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}

	thumb := imaging.Fit(src, g.boxWidth, g.boxHeight, imaging.Lanczos)

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return 0, fmt.Errorf("mkdir: %w", err)
	}
	if err := imaging.Save(thumb, dstPath); err != nil {
		return 0, fmt.Errorf("save: %w", err)
	}

	info, err := os.Stat(dstPath)
	if err != nil {
		return 0, fmt.Errorf("stat: %w", err)
	}
	return info.Size(), nil
}

var _ port.ThumbnailGenerator = (*Generator)(nil)
