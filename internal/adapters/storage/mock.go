package storage

import (
	"context"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a mock implementation of port.ObjectStorage
type MockStorage struct {
	mock.Mock
}

// NewMockStorage creates a new MockStorage
func NewMockStorage() *MockStorage {
	return &MockStorage{}
}

func (m *MockStorage) InitMultipartUpload(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) UploadPart(ctx context.Context, key, uploadID string, partNumber int, data []byte) (string, error) {
	args := m.Called(ctx, key, uploadID, partNumber, data)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) CompleteMultipartUpload(ctx context.Context, key, uploadID string, parts []domain.UploadPart) error {
	args := m.Called(ctx, key, uploadID, parts)
	return args.Error(0)
}

func (m *MockStorage) AbortMultipartUpload(ctx context.Context, key, uploadID string) error {
	args := m.Called(ctx, key, uploadID)
	return args.Error(0)
}

func (m *MockStorage) GetObject(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStorage) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

func (m *MockStorage) DeleteObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStorage) StatObject(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}
