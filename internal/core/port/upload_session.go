package port

import (
	"context"
	"time"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"

	"github.com/google/uuid"
)

// UploadSessionRepository is an interface to interact with the durable upload session store
type UploadSessionRepository interface {
	Create(ctx context.Context, session domain.UploadSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error)
	SetProviderUploadID(ctx context.Context, id uuid.UUID, providerUploadID string) error
	SetDeclaredName(ctx context.Context, id uuid.UUID, name string) error
	// UpsertPart records an accepted part, replacing any prior record with
	// the same part number so re-submitted chunks stay idempotent.
	UpsertPart(ctx context.Context, sessionID uuid.UUID, part domain.UploadPart) error
	// Parts returns the recorded parts ordered by part number.
	Parts(ctx context.Context, sessionID uuid.UUID) ([]domain.UploadPart, error)
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.UploadSessionStatus) error
	// FindAllStale returns non-terminal sessions whose last activity is
	// older than the cutoff.
	FindAllStale(ctx context.Context, cutoff time.Time) ([]domain.UploadSession, error)
}
