package eventbroker

import (
	"context"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPublisher is a mock implementation of port.EventPublisher
type MockPublisher struct {
	mock.Mock
}

// NewMockPublisher creates a new MockPublisher
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) LayerRegistered(ctx context.Context, layer domain.Layer) error {
	args := m.Called(ctx, layer)
	return args.Error(0)
}

func (m *MockPublisher) LayerDeleted(ctx context.Context, id uuid.UUID, layerName string) error {
	args := m.Called(ctx, id, layerName)
	return args.Error(0)
}
