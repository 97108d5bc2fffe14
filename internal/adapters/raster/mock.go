package raster

import (
	"context"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockProcessor is a mock implementation of port.RasterProcessor
type MockProcessor struct {
	mock.Mock
}

// NewMockProcessor creates a new MockProcessor
func NewMockProcessor() *MockProcessor {
	return &MockProcessor{}
}

func (m *MockProcessor) ConvertToCOG(ctx context.Context, input []byte) ([]byte, error) {
	args := m.Called(ctx, input)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockProcessor) Statistics(ctx context.Context, input []byte) (*domain.RasterStats, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(*domain.RasterStats), args.Error(1)
}
