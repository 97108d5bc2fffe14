package upload

import (
	"context"
	"fmt"
	"time"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"
	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/port"

	"github.com/google/uuid"
)

// CreateSession allocates an upload session, initiates the backing multipart
// upload and moves the session to receiving.
func (s *uploadService) CreateSession(ctx context.Context, owner uuid.UUID, totalLength int64, contentType string) (uuid.UUID, error) {

	if totalLength <= 0 {
		return uuid.Nil, fmt.Errorf("%w: upload length must be positive", domain.ErrChunkOutOfRange)
	}
	if totalLength > s.cfg.MaxUploadSize {
		return uuid.Nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", domain.ErrUploadTooLarge, totalLength, s.cfg.MaxUploadSize)
	}

	id := uuid.New()
	now := time.Now()
	session := domain.UploadSession{
		ID:             id,
		Owner:          owner,
		ContentType:    contentType,
		TotalLength:    totalLength,
		StorageKey:     fmt.Sprintf("inputs/%s", id),
		Status:         domain.UploadSessionStatusCreated,
		CreatedAt:      now,
		LastActivityAt: now,
	}

	txErr := s.uow.Execute(ctx, func(uow port.UnitOfWork) error {

		if err := uow.SessionRepo().Create(ctx, session); err != nil {
			return err
		}

		uploadID, storeErr := s.storage.InitMultipartUpload(ctx, session.StorageKey)
		if storeErr != nil {
			return storeErr
		}

		if err := uow.SessionRepo().SetProviderUploadID(ctx, id, uploadID); err != nil {
			return err
		}

		return uow.SessionRepo().UpdateStatus(ctx, id, domain.UploadSessionStatusReceiving)
	})
	if txErr != nil {
		return uuid.Nil, fmt.Errorf("could not create upload session: %w", txErr)
	}

	s.logger.Info("upload session created", "session_id", id, "total_length", totalLength)
	return id, nil
}
