package image

import (
	"encoding/json"
	"net/http"
)

// V1ListImagesResponse is the response to list images
type V1ListImagesResponse struct {
	Images []V1ImageResponse `json:"images"`
	Count  int               `json:"count"`
}

// ListImagesV1 returns every image record, newest first.
func (h *HandlerV1) ListImagesV1(w http.ResponseWriter, r *http.Request) {
	images, err := h.imageService.List(r.Context())
	if err != nil {
		h.logger.Error("error listing images", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	resp := V1ListImagesResponse{Images: make([]V1ImageResponse, 0, len(images))}
	for _, img := range images {
		resp.Images = append(resp.Images, h.toResponse(img))
	}
	resp.Count = len(resp.Images)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}
