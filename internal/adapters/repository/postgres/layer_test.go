package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/adapters/repository/postgres"
	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newClimateLayer() domain.Layer {
	meta := domain.LayerMetadata{
		Kind:         domain.LayerKindClimate,
		Crop:         "wheat",
		WaterModel:   "pcrglobwb",
		ClimateModel: "hadgem2es",
		Scenario:     "rcp26",
		Variable:     "wf",
		Year:         2050,
	}
	name := meta.LayerName()
	return domain.Layer{
		ID:            uuid.New(),
		Metadata:      meta,
		LayerName:     name,
		Filename:      name + ".tif",
		StorageKey:    "layers/" + name + ".tif",
		SizeBytes:     2048,
		MinValue:      0.1,
		MaxValue:      9.8,
		GlobalAverage: 4.2,
		Enabled:       true,
		UploadedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestSQLLayerRepository_CreateAndFind(t *testing.T) {
	dbConnection, cleanup, truncate := postgres.NewTestDB(t)
	defer cleanup()
	ctx := context.Background()

	repo := postgres.NewSQLLayerRepository(dbConnection)

	t.Run("nominal", func(t *testing.T) {
		truncate()
		layer := newClimateLayer()
		require.NoError(t, repo.Create(ctx, layer))

		found, err := repo.FindByID(ctx, layer.ID)
		require.NoError(t, err)
		require.Equal(t, layer.LayerName, found.LayerName)
		require.Equal(t, layer.Metadata, found.Metadata)
		require.Equal(t, layer.MinValue, found.MinValue)
		require.Equal(t, layer.MaxValue, found.MaxValue)
		require.Equal(t, layer.GlobalAverage, found.GlobalAverage)
		require.True(t, found.Enabled)
	})

	t.Run("not found", func(t *testing.T) {
		truncate()
		_, err := repo.FindByID(ctx, uuid.New())
		require.ErrorIs(t, err, domain.ErrLayerNotFound)
	})

	t.Run("duplicate metadata key rejected", func(t *testing.T) {
		truncate()
		layer := newClimateLayer()
		require.NoError(t, repo.Create(ctx, layer))

		duplicate := newClimateLayer()
		require.ErrorIs(t, repo.Create(ctx, duplicate), domain.ErrDuplicateLayer)
	})
}

func TestSQLLayerRepository_FindByKey(t *testing.T) {
	dbConnection, cleanup, truncate := postgres.NewTestDB(t)
	defer cleanup()
	ctx := context.Background()

	repo := postgres.NewSQLLayerRepository(dbConnection)

	t.Run("climate layer", func(t *testing.T) {
		truncate()
		layer := newClimateLayer()
		require.NoError(t, repo.Create(ctx, layer))

		found, err := repo.FindByKey(ctx, layer.Metadata)
		require.NoError(t, err)
		require.Equal(t, layer.ID, found.ID)
	})

	t.Run("crop layer with empty climate fields", func(t *testing.T) {
		truncate()
		meta := domain.LayerMetadata{
			Kind:     domain.LayerKindCrop,
			Crop:     "rice",
			Variable: "mirca_irrigated",
		}
		layer := domain.Layer{
			ID:         uuid.New(),
			Metadata:   meta,
			LayerName:  meta.LayerName(),
			StorageKey: "layers/" + meta.LayerName() + ".tif",
			UploadedAt: time.Now().UTC(),
		}
		require.NoError(t, repo.Create(ctx, layer))

		found, err := repo.FindByKey(ctx, meta)
		require.NoError(t, err)
		require.Equal(t, layer.ID, found.ID)
	})

	t.Run("different year is a different key", func(t *testing.T) {
		truncate()
		layer := newClimateLayer()
		require.NoError(t, repo.Create(ctx, layer))

		other := layer.Metadata
		other.Year = 2090
		_, err := repo.FindByKey(ctx, other)
		require.ErrorIs(t, err, domain.ErrLayerNotFound)
	})
}

func TestSQLLayerRepository_Delete(t *testing.T) {
	dbConnection, cleanup, truncate := postgres.NewTestDB(t)
	defer cleanup()
	ctx := context.Background()

	repo := postgres.NewSQLLayerRepository(dbConnection)

	t.Run("nominal", func(t *testing.T) {
		truncate()
		layer := newClimateLayer()
		require.NoError(t, repo.Create(ctx, layer))

		require.NoError(t, repo.Delete(ctx, layer.ID))
		_, err := repo.FindByID(ctx, layer.ID)
		require.ErrorIs(t, err, domain.ErrLayerNotFound)
	})

	t.Run("unknown layer", func(t *testing.T) {
		truncate()
		require.ErrorIs(t, repo.Delete(ctx, uuid.New()), domain.ErrLayerNotFound)
	})
}
