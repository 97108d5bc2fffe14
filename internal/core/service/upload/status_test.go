package upload_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"
	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/service/upload"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUploadService_Status_NextOffsetAfterContiguousParts(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newChunkFixture()
	service := upload.NewUploadService(f.uow, f.storage, f.raster, f.events, testUploadConfig(), slog.Default())

	sessionID := uuid.New()
	mockSessionRepo := f.uow.GetSessionRepoMock()
	mockSessionRepo.On("FindByID", ctx, sessionID).Return(receivingSession(sessionID, 500), nil)
	mockSessionRepo.On("Parts", ctx, sessionID).Return([]domain.UploadPart{
		{PartNumber: 1, Offset: 0, Length: 100},
		{PartNumber: 2, Offset: 100, Length: 100},
	}, nil)

	// Act
	offset, err := service.Status(ctx, sessionID)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, int64(200), offset)
}

func TestUploadService_Status_GapStopsAtFirstHole(t *testing.T) {
	// A resuming client must restart from the first missing byte even
	// when later chunks already arrived.
	// Arrange
	ctx := context.Background()
	f := newChunkFixture()
	service := upload.NewUploadService(f.uow, f.storage, f.raster, f.events, testUploadConfig(), slog.Default())

	sessionID := uuid.New()
	mockSessionRepo := f.uow.GetSessionRepoMock()
	mockSessionRepo.On("FindByID", ctx, sessionID).Return(receivingSession(sessionID, 500), nil)
	mockSessionRepo.On("Parts", ctx, sessionID).Return([]domain.UploadPart{
		{PartNumber: 1, Offset: 0, Length: 100},
		{PartNumber: 3, Offset: 200, Length: 100},
	}, nil)

	// Act
	offset, err := service.Status(ctx, sessionID)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, int64(100), offset)
}

func TestUploadService_Status_EmptySession(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newChunkFixture()
	service := upload.NewUploadService(f.uow, f.storage, f.raster, f.events, testUploadConfig(), slog.Default())

	sessionID := uuid.New()
	mockSessionRepo := f.uow.GetSessionRepoMock()
	mockSessionRepo.On("FindByID", ctx, sessionID).Return(receivingSession(sessionID, 500), nil)
	mockSessionRepo.On("Parts", ctx, sessionID).Return([]domain.UploadPart{}, nil)

	// Act
	offset, err := service.Status(ctx, sessionID)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, int64(0), offset)
}

func TestUploadService_Status_SessionNotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newChunkFixture()
	service := upload.NewUploadService(f.uow, f.storage, f.raster, f.events, testUploadConfig(), slog.Default())

	sessionID := uuid.New()
	f.uow.GetSessionRepoMock().On("FindByID", ctx, sessionID).
		Return((*domain.UploadSession)(nil), domain.ErrSessionNotFound)

	// Act
	_, err := service.Status(ctx, sessionID)

	// Assert
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
