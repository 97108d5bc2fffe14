package upload

import (
	"log/slog"
	"sync"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/config"
	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/port"

	"github.com/google/uuid"
)

type uploadService struct {
	uow     port.UnitOfWork
	storage port.ObjectStorage
	raster  port.RasterProcessor
	events  port.EventPublisher
	cfg     config.UploadConfig
	logger  *slog.Logger

	// locks serializes chunk handling per session. Status queries read the
	// store directly and never take a session lock.
	locks sync.Map // uuid.UUID -> *sync.Mutex
}

// NewUploadService creates the chunked upload service
func NewUploadService(
	uow port.UnitOfWork,
	storage port.ObjectStorage,
	raster port.RasterProcessor,
	events port.EventPublisher,
	cfg config.UploadConfig,
	logger *slog.Logger,
) port.UploadService {
	return &uploadService{
		uow:     uow,
		storage: storage,
		raster:  raster,
		events:  events,
		cfg:     cfg,
		logger:  logger,
	}
}

func (s *uploadService) sessionLock(id uuid.UUID) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *uploadService) releaseSessionLock(id uuid.UUID) {
	s.locks.Delete(id)
}
