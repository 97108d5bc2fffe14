package upload

import (
	"log/slog"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for v1 chunked upload routes
type HandlerV1 struct {
	uploadService port.UploadService
	logger        *slog.Logger
}

// NewUploadHandlerV1 creates HandlerV1
func NewUploadHandlerV1(service port.UploadService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		uploadService: service,
		logger:        logger,
	}
}

// Routes exposes handler routes. Chunk transfer and status share the root
// path and select the session through the `patch` query parameter, which is
// what resumable upload clients send.
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", h.CreateSessionV1)
	router.Patch("/", h.ReceiveChunkV1)
	router.Head("/", h.StatusV1)

	return router
}
