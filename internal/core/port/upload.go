package port

import (
	"context"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"

	"github.com/google/uuid"
)

// UploadService is an interface to define the chunked upload service
type UploadService interface {
	// CreateSession allocates an upload session and initiates the backing
	// multipart upload.
	CreateSession(ctx context.Context, owner uuid.UUID, totalLength int64, contentType string) (uuid.UUID, error)
	// ReceiveChunk accepts one byte range. The chunk whose range ends the
	// declared length triggers the finalize sequence and, on success,
	// returns the registered layer.
	ReceiveChunk(ctx context.Context, req domain.ChunkRequest) (*domain.ChunkResult, error)
	// Status returns the offset a resuming client should continue from.
	Status(ctx context.Context, sessionID uuid.UUID) (int64, error)
}
