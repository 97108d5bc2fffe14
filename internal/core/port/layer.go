package port

import (
	"context"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"

	"github.com/google/uuid"
)

// LayerRepository is an interface to interact with the layer catalog
type LayerRepository interface {
	Create(ctx context.Context, layer domain.Layer) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Layer, error)
	// FindByKey looks up a layer by exact match on the structured metadata
	// key, covering both the climate and the crop schema.
	FindByKey(ctx context.Context, meta domain.LayerMetadata) (*domain.Layer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
