package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/config"
	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"
	"github.com/CHANGE-EPFL/drop4crop-api/internal/pkg/retry"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Adapter is an adapter for minio
type Adapter struct {
	client *minio.Client
	core   *minio.Core
	config config.MinioConfig
	policy retry.Policy
	logger *slog.Logger
}

// NewAdapter returns Adapter
func NewAdapter(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	core := minio.Core{Client: client}
	policy := retry.Policy{
		Attempts:  cfg.RetryAttempts,
		BaseDelay: cfg.RetryBaseDelay,
		MaxDelay:  cfg.RetryMaxDelay,
	}
	return &Adapter{client: client, core: &core, config: cfg, policy: policy, logger: logger}, nil
}

// InitMultipartUpload inits a multipart upload
func (a *Adapter) InitMultipartUpload(ctx context.Context, key string) (string, error) {
	var uploadID string
	err := retry.Do(ctx, a.policy, func() error {
		var initErr error
		uploadID, initErr = a.core.NewMultipartUpload(ctx, a.config.BucketName, key, minio.PutObjectOptions{})
		return initErr
	}, isTransient)
	if err != nil {
		return "", fmt.Errorf("failed to init multipart upload: %w", err)
	}
	return uploadID, nil
}

// UploadPart uploads one part and returns the storage-assigned tag.
// Re-uploading a part number replaces the prior tag, so retries are safe.
func (a *Adapter) UploadPart(ctx context.Context, key, uploadID string, partNumber int, data []byte) (string, error) {
	var part minio.ObjectPart
	err := retry.Do(ctx, a.policy, func() error {
		var putErr error
		part, putErr = a.core.PutObjectPart(
			ctx,
			a.config.BucketName,
			key,
			uploadID,
			partNumber,
			bytes.NewReader(data),
			int64(len(data)),
			minio.PutObjectPartOptions{},
		)
		return putErr
	}, isTransient)
	if err != nil {
		return "", fmt.Errorf("failed to upload part %d: %w", partNumber, err)
	}
	return part.ETag, nil
}

// CompleteMultipartUpload assembles the object from its parts. The call is
// not retried: a failure here means a referenced part tag is stale or
// missing, which the caller must inspect.
func (a *Adapter) CompleteMultipartUpload(ctx context.Context, key, uploadID string, parts []domain.UploadPart) error {

	sort.Slice(parts, func(i, j int) bool {
		return parts[i].PartNumber < parts[j].PartNumber
	})

	completeParts := make([]minio.CompletePart, 0, len(parts))
	for _, part := range parts {
		completeParts = append(completeParts, minio.CompletePart{
			PartNumber: part.PartNumber,
			ETag:       part.ETag,
		})
	}

	_, err := a.core.CompleteMultipartUpload(ctx, a.config.BucketName, key, uploadID, completeParts, minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to complete multipart upload: %w", err)
	}

	return nil
}

// AbortMultipartUpload releases storage-side multipart state
func (a *Adapter) AbortMultipartUpload(ctx context.Context, key, uploadID string) error {
	err := retry.Do(ctx, a.policy, func() error {
		return a.core.AbortMultipartUpload(ctx, a.config.BucketName, key, uploadID)
	}, isTransient)
	if err != nil {
		return fmt.Errorf("failed to abort multipart upload: %w", err)
	}

	a.logger.Info("multipart upload aborted",
		slog.String("key", key),
		slog.String("uploadID", uploadID))

	return nil
}

// GetObject retrieves a whole object
func (a *Adapter) GetObject(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := retry.Do(ctx, a.policy, func() error {
		object, getErr := a.client.GetObject(ctx, a.config.BucketName, key, minio.GetObjectOptions{})
		if getErr != nil {
			return getErr
		}
		defer object.Close()

		data, getErr = io.ReadAll(object)
		return getErr
	}, isTransient)
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	return data, nil
}

// PutObject stores a whole object
func (a *Adapter) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	err := retry.Do(ctx, a.policy, func() error {
		_, putErr := a.client.PutObject(
			ctx,
			a.config.BucketName,
			key,
			bytes.NewReader(data),
			int64(len(data)),
			minio.PutObjectOptions{ContentType: contentType},
		)
		return putErr
	}, isTransient)
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}
	return nil
}

// DeleteObject deletes an object from storage
func (a *Adapter) DeleteObject(ctx context.Context, key string) error {
	err := retry.Do(ctx, a.policy, func() error {
		return a.client.RemoveObject(ctx, a.config.BucketName, key, minio.RemoveObjectOptions{})
	}, isTransient)
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	a.logger.Info("object deleted",
		slog.String("key", key),
		slog.String("bucket", a.config.BucketName))

	return nil
}

// StatObject returns the object size
func (a *Adapter) StatObject(ctx context.Context, key string) (int64, error) {
	info, err := a.client.StatObject(ctx, a.config.BucketName, key, minio.StatObjectOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to stat object: %w", err)
	}
	return info.Size, nil
}

// isTransient reports whether an error is worth retrying: network-level
// failures and server-side 5xx responses are, client errors are not.
func isTransient(err error) bool {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "" {
		return true
	}
	return resp.StatusCode >= 500 || resp.Code == "SlowDown"
}
