package port

import (
	"context"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"
)

// ObjectStorage is an interface to define multipart object storage interactions
type ObjectStorage interface {
	InitMultipartUpload(ctx context.Context, key string) (string, error)
	// UploadPart uploads one part and returns the storage-assigned tag.
	// Re-uploading a part number replaces the prior tag.
	UploadPart(ctx context.Context, key, uploadID string, partNumber int, data []byte) (string, error)
	CompleteMultipartUpload(ctx context.Context, key, uploadID string, parts []domain.UploadPart) error
	AbortMultipartUpload(ctx context.Context, key, uploadID string) error
	GetObject(ctx context.Context, key string) ([]byte, error)
	PutObject(ctx context.Context, key string, data []byte, contentType string) error
	DeleteObject(ctx context.Context, key string) error
	// StatObject returns the object size, or an error when the object does
	// not exist.
	StatObject(ctx context.Context, key string) (int64, error)
}
