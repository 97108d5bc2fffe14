package cleanup

import (
	"log/slog"
	"time"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/port"
)

type cleanupService struct {
	uow        port.UnitOfWork
	storage    port.ObjectStorage
	sessionTTL time.Duration
	logger     *slog.Logger
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(uow port.UnitOfWork, storage port.ObjectStorage, sessionTTL time.Duration, logger *slog.Logger) port.CleanupService {
	return &cleanupService{
		uow:        uow,
		storage:    storage,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}
