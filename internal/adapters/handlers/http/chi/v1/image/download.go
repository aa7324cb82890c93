package image

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/sonsonson110/image-resize-system/internal/core/domain"
)

// DownloadImageV1 streams the original file back under its original name.
func (h *HandlerV1) DownloadImageV1(w http.ResponseWriter, r *http.Request) {
	storedFilename := chi.URLParam(r, "storedFilename")
	if storedFilename == "" {
		http.Error(w, "stored filename is required", http.StatusBadRequest)
		return
	}

	img, err := h.imageService.GetByStoredFilename(r.Context(), storedFilename)
	switch {
	case errors.Is(err, domain.ErrImageNotFound):
		http.Error(w, "image not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("error looking up image", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	file, err := h.fileStore.OpenOriginal(storedFilename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "image not found", http.StatusNotFound)
			return
		}
		h.logger.Error("error opening original file", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", img.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", img.OriginalFilename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", img.FileSize))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, file); err != nil {
		h.logger.Error("error streaming original file", "error", err)
	}
}

// GetThumbnailV1 streams a generated thumbnail for inline display.
func (h *HandlerV1) GetThumbnailV1(w http.ResponseWriter, r *http.Request) {
	thumbnailFilename := chi.URLParam(r, "thumbnailFilename")
	if thumbnailFilename == "" {
		http.Error(w, "thumbnail filename is required", http.StatusBadRequest)
		return
	}

	file, err := h.fileStore.OpenThumbnail(thumbnailFilename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "thumbnail not found", http.StatusNotFound)
			return
		}
		h.logger.Error("error opening thumbnail", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	defer file.Close()

	contentType := mime.TypeByExtension(filepath.Ext(thumbnailFilename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, file); err != nil {
		h.logger.Error("error streaming thumbnail", "error", err)
	}
}
