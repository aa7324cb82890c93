package image_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	http2 "net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sonsonson110/image-resize-system/internal/adapters/handlers/http/chi"
	"github.com/sonsonson110/image-resize-system/internal/adapters/handlers/http/chi/events"
	image2 "github.com/sonsonson110/image-resize-system/internal/adapters/handlers/http/chi/v1/image"
	"github.com/sonsonson110/image-resize-system/internal/adapters/handlers/http/chi/v1/system"
	"github.com/sonsonson110/image-resize-system/internal/adapters/storage"
	"github.com/sonsonson110/image-resize-system/internal/core/domain"
	"github.com/sonsonson110/image-resize-system/internal/core/port"
	"github.com/sonsonson110/image-resize-system/internal/core/service/producer"
)

const testBaseURL = "http://localhost:8080/api/v1"

func newTestRouter(imageHandler *image2.HandlerV1, logger *slog.Logger) http2.Handler {
	systemHandler := system.NewSystemHandlerV1(nil, nil, nil, logger)
	eventsHandler := events.NewHandler(nil, logger)
	return chi.NewRouter(logger, imageHandler, systemHandler, eventsHandler, 10<<20, "")
}

func multipartBody(t *testing.T, fieldName, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadImageV1(t *testing.T) {
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success - upload accepted as pending", func(t *testing.T) {
		// Arrange
		mockService := producer.NewMockImageService()
		mockService.On("Submit", mock.Anything, mock.MatchedBy(func(u port.Upload) bool { return u.Filename == "holiday.png" })).
			Return(&domain.Image{
				ID:               1,
				OriginalFilename: "holiday.png",
				StoredFilename:   "abc-123.png",
				FileSize:         4,
				MimeType:         "image/png",
				Status:           domain.ImageStatusPending,
				UploadedAt:       time.Now(),
			}, nil)

		handler := image2.NewImageHandlerV1(mockService, storage.NewMockFileStore(), testBaseURL, 10<<20, discardLogger)
		h := newTestRouter(handler, discardLogger)
		w := httptest.NewRecorder()

		body, contentType := multipartBody(t, "image", "holiday.png", "image/png", []byte{0x89, 'P', 'N', 'G'})
		req := httptest.NewRequest(http2.MethodPost, "/api/v1/upload", body)
		req.Header.Set("Content-Type", contentType)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusCreated, w.Code)

		var response image2.V1ImageResponse
		err := json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		assert.Equal(t, "holiday.png", response.OriginalFilename)
		assert.Equal(t, "pending", response.Status)
		assert.Equal(t, testBaseURL+"/image/abc-123.png", response.URL)
		assert.Empty(t, response.ThumbnailURL)

		mockService.AssertExpectations(t)
	})

	t.Run("error - missing file field", func(t *testing.T) {
		// Arrange
		mockService := producer.NewMockImageService()
		handler := image2.NewImageHandlerV1(mockService, storage.NewMockFileStore(), testBaseURL, 10<<20, discardLogger)
		h := newTestRouter(handler, discardLogger)
		w := httptest.NewRecorder()

		body, contentType := multipartBody(t, "wrong_field", "holiday.png", "image/png", []byte("data"))
		req := httptest.NewRequest(http2.MethodPost, "/api/v1/upload", body)
		req.Header.Set("Content-Type", contentType)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("error - rejected file type", func(t *testing.T) {
		// Arrange
		mockService := producer.NewMockImageService()
		mockService.On("Submit", mock.Anything, mock.Anything).
			Return((*domain.Image)(nil), domain.ErrInvalidFileType)

		handler := image2.NewImageHandlerV1(mockService, storage.NewMockFileStore(), testBaseURL, 10<<20, discardLogger)
		h := newTestRouter(handler, discardLogger)
		w := httptest.NewRecorder()

		body, contentType := multipartBody(t, "image", "notes.txt", "text/plain", []byte("hello"))
		req := httptest.NewRequest(http2.MethodPost, "/api/v1/upload", body)
		req.Header.Set("Content-Type", contentType)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("error - service failure", func(t *testing.T) {
		// Arrange
		mockService := producer.NewMockImageService()
		mockService.On("Submit", mock.Anything, mock.Anything).
			Return((*domain.Image)(nil), errors.New("broker unreachable"))

		handler := image2.NewImageHandlerV1(mockService, storage.NewMockFileStore(), testBaseURL, 10<<20, discardLogger)
		h := newTestRouter(handler, discardLogger)
		w := httptest.NewRecorder()

		body, contentType := multipartBody(t, "image", "holiday.png", "image/png", []byte("data"))
		req := httptest.NewRequest(http2.MethodPost, "/api/v1/upload", body)
		req.Header.Set("Content-Type", contentType)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusServiceUnavailable, w.Code)
		mockService.AssertExpectations(t)
	})
}
