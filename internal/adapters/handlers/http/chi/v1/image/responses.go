package image

import (
	"time"

	"github.com/sonsonson110/image-resize-system/internal/core/domain"
)

// V1ImageResponse is the API representation of an image record
type V1ImageResponse struct {
	ID               int64      `json:"id"`
	OriginalFilename string     `json:"originalFilename"`
	StoredFilename   string     `json:"storedFilename"`
	FileSize         int64      `json:"fileSize"`
	MimeType         string     `json:"mimeType"`
	Status           string     `json:"status"`
	ErrorMessage     string     `json:"errorMessage,omitempty"`
	UploadedAt       time.Time  `json:"uploadedAt"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	URL              string     `json:"url"`
	ThumbnailURL     string     `json:"thumbnailUrl,omitempty"`
}

func (h *HandlerV1) toResponse(img domain.Image) V1ImageResponse {
	resp := V1ImageResponse{
		ID:               img.ID,
		OriginalFilename: img.OriginalFilename,
		StoredFilename:   img.StoredFilename,
		FileSize:         img.FileSize,
		MimeType:         img.MimeType,
		Status:           string(img.Status),
		ErrorMessage:     img.ErrorMessage,
		UploadedAt:       img.UploadedAt,
		CompletedAt:      img.CompletedAt,
		URL:              h.baseURL + "/image/" + img.StoredFilename,
	}
	if img.Status == domain.ImageStatusCompleted && img.ThumbnailFilename != "" {
		resp.ThumbnailURL = h.baseURL + "/thumbnail/" + img.ThumbnailFilename
	}
	return resp
}
