package image

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sonsonson110/image-resize-system/internal/core/domain"
	"github.com/sonsonson110/image-resize-system/internal/core/port"
)

// UploadImageV1 accepts a multipart upload on the "image" form field and
// submits it into the processing pipeline. The record comes back pending;
// the thumbnail arrives later over the realtime channel.
func (h *HandlerV1) UploadImageV1(w http.ResponseWriter, r *http.Request) {
	// An extra megabyte covers the multipart framing around the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+1<<20)

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, domain.ErrNoFile.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	img, submitErr := h.imageService.Submit(r.Context(), port.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	})
	switch {
	case errors.Is(submitErr, domain.ErrNoFile),
		errors.Is(submitErr, domain.ErrInvalidFileType),
		errors.Is(submitErr, domain.ErrFileSizeTooBig):
		http.Error(w, submitErr.Error(), http.StatusBadRequest)
		return
	case submitErr != nil:
		h.logger.Error("error submitting upload", "error", submitErr)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(h.toResponse(*img)); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
	}
}
