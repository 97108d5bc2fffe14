package repository

import (
	"context"
	"time"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"
	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/port"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUploadSessionRepository struct {
	mock.Mock
}

func NewMockUploadSessionRepository() *MockUploadSessionRepository {
	return &MockUploadSessionRepository{}
}

func (m *MockUploadSessionRepository) Create(ctx context.Context, session domain.UploadSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockUploadSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.UploadSession), args.Error(1)
}

func (m *MockUploadSessionRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.UploadSession), args.Error(1)
}

func (m *MockUploadSessionRepository) SetProviderUploadID(ctx context.Context, id uuid.UUID, providerUploadID string) error {
	args := m.Called(ctx, id, providerUploadID)
	return args.Error(0)
}

func (m *MockUploadSessionRepository) SetDeclaredName(ctx context.Context, id uuid.UUID, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *MockUploadSessionRepository) UpsertPart(ctx context.Context, sessionID uuid.UUID, part domain.UploadPart) error {
	args := m.Called(ctx, sessionID, part)
	return args.Error(0)
}

func (m *MockUploadSessionRepository) Parts(ctx context.Context, sessionID uuid.UUID) ([]domain.UploadPart, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]domain.UploadPart), args.Error(1)
}

func (m *MockUploadSessionRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockUploadSessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.UploadSessionStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockUploadSessionRepository) FindAllStale(ctx context.Context, cutoff time.Time) ([]domain.UploadSession, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.UploadSession), args.Error(1)
}

type MockLayerRepository struct {
	mock.Mock
}

func NewMockLayerRepository() *MockLayerRepository {
	return &MockLayerRepository{}
}

func (m *MockLayerRepository) Create(ctx context.Context, layer domain.Layer) error {
	args := m.Called(ctx, layer)
	return args.Error(0)
}

func (m *MockLayerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Layer, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Layer), args.Error(1)
}

func (m *MockLayerRepository) FindByKey(ctx context.Context, meta domain.LayerMetadata) (*domain.Layer, error) {
	args := m.Called(ctx, meta)
	return args.Get(0).(*domain.Layer), args.Error(1)
}

func (m *MockLayerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUnitOfWork struct {
	mock.Mock
	sessionRepo *MockUploadSessionRepository
	layerRepo   *MockLayerRepository
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		sessionRepo: &MockUploadSessionRepository{},
		layerRepo:   &MockLayerRepository{},
	}
}

func (m *MockUnitOfWork) SessionRepo() port.UploadSessionRepository {
	return m.sessionRepo
}

func (m *MockUnitOfWork) LayerRepo() port.LayerRepository {
	return m.layerRepo
}

func (m *MockUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	args := m.Called(ctx, fn)

	if err := fn(m); err != nil {
		return err
	}

	return args.Error(0)
}

func (m *MockUnitOfWork) GetSessionRepoMock() *MockUploadSessionRepository {
	return m.sessionRepo
}

func (m *MockUnitOfWork) GetLayerRepoMock() *MockLayerRepository {
	return m.layerRepo
}
