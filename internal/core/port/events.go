package port

import (
	"context"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"

	"github.com/google/uuid"
)

// EventPublisher notifies downstream services (style and WMS synchronisation)
// of catalog changes
type EventPublisher interface {
	LayerRegistered(ctx context.Context, layer domain.Layer) error
	LayerDeleted(ctx context.Context, id uuid.UUID, layerName string) error
}
