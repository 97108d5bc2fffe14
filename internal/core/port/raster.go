package port

import (
	"context"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"
)

// RasterProcessor is an interface to the raster conversion and statistics engine
type RasterProcessor interface {
	// ConvertToCOG converts a GeoTIFF to a tiled cloud optimized GeoTIFF
	// without an internal overview pyramid.
	ConvertToCOG(ctx context.Context, input []byte) ([]byte, error)
	// Statistics computes band 1 min, max and mean by a full band scan.
	Statistics(ctx context.Context, input []byte) (*domain.RasterStats, error)
}
