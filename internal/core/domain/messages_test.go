package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonsonson110/image-resize-system/internal/core/domain"
)

func TestDecodeProcessingJob(t *testing.T) {
	t.Run("round trips a valid job", func(t *testing.T) {
		job := domain.ProcessingJob{
			ImageID:           42,
			OriginalPath:      "/uploads/originals/a.png",
			ThumbnailPath:     "/uploads/thumbnails/thumb_a.png",
			StoredFilename:    "a.png",
			ThumbnailFilename: "thumb_a.png",
		}
		data, err := job.Encode()
		require.NoError(t, err)

		decoded, err := domain.DecodeProcessingJob(data)
		require.NoError(t, err)
		assert.Equal(t, job, decoded)
	})

	invalid := []struct {
		name string
		data string
	}{
		{"not json", `thumbnail please`},
		{"missing image id", `{"originalPath":"/o/a.png","thumbnailPath":"/t/a.png","storedFilename":"a.png","thumbnailFilename":"thumb_a.png"}`},
		{"zero image id", `{"imageId":0,"originalPath":"/o/a.png","thumbnailPath":"/t/a.png","storedFilename":"a.png","thumbnailFilename":"thumb_a.png"}`},
		{"missing paths", `{"imageId":1,"storedFilename":"a.png","thumbnailFilename":"thumb_a.png"}`},
		{"missing filenames", `{"imageId":1,"originalPath":"/o/a.png","thumbnailPath":"/t/a.png"}`},
		{"wrong field type", `{"imageId":"one"}`},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.DecodeProcessingJob([]byte(tt.data))
			assert.ErrorIs(t, err, domain.ErrMalformedMessage)
		})
	}
}

func TestDecodeCompletionEvent(t *testing.T) {
	t.Run("round trips a success event", func(t *testing.T) {
		event := domain.CompletionEvent{ImageID: 7, ThumbnailFilename: "thumb_a.png"}
		data, err := event.Encode()
		require.NoError(t, err)

		decoded, err := domain.DecodeCompletionEvent(data)
		require.NoError(t, err)
		assert.Equal(t, event, decoded)
	})

	t.Run("failure event needs no thumbnail filename", func(t *testing.T) {
		decoded, err := domain.DecodeCompletionEvent([]byte(`{"imageId":7,"failed":true,"errorMessage":"corrupt file"}`))
		require.NoError(t, err)
		assert.True(t, decoded.Failed)
		assert.Equal(t, "corrupt file", decoded.ErrorMessage)
	})

	t.Run("success event without thumbnail filename is malformed", func(t *testing.T) {
		_, err := domain.DecodeCompletionEvent([]byte(`{"imageId":7}`))
		assert.ErrorIs(t, err, domain.ErrMalformedMessage)
	})

	t.Run("missing image id is malformed", func(t *testing.T) {
		_, err := domain.DecodeCompletionEvent([]byte(`{"thumbnailFilename":"thumb_a.png"}`))
		assert.ErrorIs(t, err, domain.ErrMalformedMessage)
	})
}
