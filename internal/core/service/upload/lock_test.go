package upload

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/adapters/repository"
	"github.com/CHANGE-EPFL/drop4crop-api/internal/config"
	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The lock map is keyed by session id and entries must not outlive the
// session, or reaped and finalized sessions leak a mutex each.
func TestUploadService_SessionLockLifecycle(t *testing.T) {
	ctx := context.Background()
	body := bytes.Repeat([]byte{0x42}, 100)
	request := func(id uuid.UUID) domain.ChunkRequest {
		return domain.ChunkRequest{
			SessionID:     id,
			Offset:        0,
			TotalLength:   300,
			ContentLength: 100,
			Filename:      "wheat_pcrglobwb_hadgem2es_rcp26_wf_2050.tif",
			Body:          body,
		}
	}

	newService := func(uow *repository.MockUnitOfWork) *uploadService {
		return &uploadService{
			uow:    uow,
			cfg:    config.UploadConfig{MaxUploadSize: 1 << 30},
			logger: slog.Default(),
		}
	}

	t.Run("Should drop lock entry for a finalized session", func(t *testing.T) {
		//Arrange
		sessionID := uuid.New()
		mockUow := repository.NewMockUnitOfWork()
		mockUow.GetSessionRepoMock().On("FindByID", ctx, sessionID).Return(&domain.UploadSession{
			ID:          sessionID,
			TotalLength: 300,
			Status:      domain.UploadSessionStatusFinalized,
		}, nil)
		service := newService(mockUow)

		//Act
		_, err := service.ReceiveChunk(ctx, request(sessionID))

		//Assert
		require.ErrorIs(t, err, domain.ErrSessionNotFound)
		_, found := service.locks.Load(sessionID)
		assert.False(t, found)
	})

	t.Run("Should drop lock entry for an unknown session", func(t *testing.T) {
		//Arrange
		sessionID := uuid.New()
		mockUow := repository.NewMockUnitOfWork()
		mockUow.GetSessionRepoMock().On("FindByID", ctx, sessionID).
			Return((*domain.UploadSession)(nil), domain.ErrSessionNotFound)
		service := newService(mockUow)

		//Act
		_, err := service.ReceiveChunk(ctx, request(sessionID))

		//Assert
		require.ErrorIs(t, err, domain.ErrSessionNotFound)
		_, found := service.locks.Load(sessionID)
		assert.False(t, found)
	})

	t.Run("Should keep lock entry for a live session after a transient failure", func(t *testing.T) {
		//Arrange
		sessionID := uuid.New()
		mockUow := repository.NewMockUnitOfWork()
		mockUow.GetSessionRepoMock().On("FindByID", ctx, sessionID).
			Return((*domain.UploadSession)(nil), assert.AnError)
		service := newService(mockUow)

		//Act
		_, err := service.ReceiveChunk(ctx, request(sessionID))

		//Assert
		require.ErrorIs(t, err, assert.AnError)
		_, found := service.locks.Load(sessionID)
		assert.True(t, found)
	})
}
