package upload

import (
	"context"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUploadService is a mock implementation of UploadService
type MockUploadService struct {
	mock.Mock
}

// NewMockUploadService creates a new MockUploadService
func NewMockUploadService() *MockUploadService {
	return &MockUploadService{}
}

func (m *MockUploadService) CreateSession(ctx context.Context, owner uuid.UUID, totalLength int64, contentType string) (uuid.UUID, error) {
	args := m.Called(ctx, owner, totalLength, contentType)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockUploadService) ReceiveChunk(ctx context.Context, req domain.ChunkRequest) (*domain.ChunkResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(*domain.ChunkResult), args.Error(1)
}

func (m *MockUploadService) Status(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(int64), args.Error(1)
}
