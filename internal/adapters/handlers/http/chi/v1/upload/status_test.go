package upload_test

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	http2 "net/http"
	"net/http/httptest"
	"testing"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/adapters/handlers/http/chi"
	upload2 "github.com/CHANGE-EPFL/drop4crop-api/internal/adapters/handlers/http/chi/v1/upload"
	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"
	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/service/upload"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestStatusV1_Success(t *testing.T) {

	t.Run("nominal", func(t *testing.T) {
		//Arrange
		sessionID := uuid.New()

		mockService := upload.NewMockUploadService()
		mockService.On("Status", mock.Anything, sessionID).Return(int64(2048), nil)

		discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

		handler := upload2.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, "")
		w := httptest.NewRecorder()

		url := fmt.Sprintf("/api/v1/layers/uploads/?patch=%s", sessionID)
		req := httptest.NewRequest(http2.MethodHead, url, nil)

		//Act
		h.ServeHTTP(w, req)

		//Assert
		assert.Equal(t, http2.StatusOK, w.Code)
		assert.Equal(t, "2048", w.Header().Get("Upload-Offset"))
		mockService.AssertExpectations(t)
	})
}

func TestStatusV1_Errors(t *testing.T) {
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("session not found", func(t *testing.T) {
		//Arrange
		sessionID := uuid.New()

		mockService := upload.NewMockUploadService()
		mockService.On("Status", mock.Anything, sessionID).
			Return(int64(0), domain.ErrSessionNotFound)

		handler := upload2.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, "")
		w := httptest.NewRecorder()

		url := fmt.Sprintf("/api/v1/layers/uploads/?patch=%s", sessionID)
		req := httptest.NewRequest(http2.MethodHead, url, nil)

		//Act
		h.ServeHTTP(w, req)

		//Assert
		assert.Equal(t, http2.StatusNotFound, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("invalid patch parameter", func(t *testing.T) {
		//Arrange
		mockService := upload.NewMockUploadService()

		handler := upload2.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodHead, "/api/v1/layers/uploads/?patch=not-a-uuid", nil)

		//Act
		h.ServeHTTP(w, req)

		//Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Status")
	})

	t.Run("service failure", func(t *testing.T) {
		//Arrange
		sessionID := uuid.New()

		mockService := upload.NewMockUploadService()
		mockService.On("Status", mock.Anything, sessionID).
			Return(int64(0), errors.New("db down"))

		handler := upload2.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, "")
		w := httptest.NewRecorder()

		url := fmt.Sprintf("/api/v1/layers/uploads/?patch=%s", sessionID)
		req := httptest.NewRequest(http2.MethodHead, url, nil)

		//Act
		h.ServeHTTP(w, req)

		//Assert
		assert.Equal(t, http2.StatusServiceUnavailable, w.Code)
		mockService.AssertExpectations(t)
	})
}
