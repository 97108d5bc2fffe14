package upload

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"
	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/port"

	"github.com/google/uuid"
)

// finalize runs the post-upload sequence: duplicate resolution, COG
// conversion with band statistics, and catalog registration. Any failure
// leaves the session in completing so the terminal chunk can be re-sent to
// retry finalize without re-transferring bytes.
func (s *uploadService) finalize(ctx context.Context, session *domain.UploadSession, meta *domain.LayerMetadata, overwrite bool) (*domain.Layer, error) {

	if err := s.resolveDuplicate(ctx, *meta, overwrite); err != nil {
		return nil, err
	}

	raw, err := s.storage.GetObject(ctx, session.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch assembled object: %v", domain.ErrStorageUpload, err)
	}

	if int64(len(raw)) < s.cfg.MinRasterBytes {
		return nil, fmt.Errorf("%w: raster is only %d bytes", domain.ErrValueRangeInvalid, len(raw))
	}

	cog, err := s.raster.ConvertToCOG(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("convert to COG: %w", err)
	}

	stats, err := s.raster.Statistics(ctx, cog)
	if err != nil {
		return nil, fmt.Errorf("band statistics: %w", err)
	}
	if !isFinite(stats.Min) || !isFinite(stats.Max) {
		return nil, fmt.Errorf("%w: min=%g max=%g", domain.ErrValueRangeInvalid, stats.Min, stats.Max)
	}

	layerName := meta.LayerName()
	layer := domain.Layer{
		ID:            uuid.New(),
		Metadata:      *meta,
		LayerName:     layerName,
		Filename:      session.DeclaredName,
		StorageKey:    fmt.Sprintf("layers/%s.tif", layerName),
		SizeBytes:     int64(len(cog)),
		MinValue:      stats.Min,
		MaxValue:      stats.Max,
		GlobalAverage: stats.Mean,
		Enabled:       true,
		UploadedAt:    time.Now(),
	}

	if err := s.storage.PutObject(ctx, layer.StorageKey, cog, "image/tiff"); err != nil {
		return nil, fmt.Errorf("%w: store converted object: %v", domain.ErrStorageUpload, err)
	}

	txErr := s.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		if err := uow.LayerRepo().Create(ctx, layer); err != nil {
			return err
		}
		return uow.SessionRepo().UpdateStatus(ctx, session.ID, domain.UploadSessionStatusFinalized)
	})
	if txErr != nil {
		return nil, fmt.Errorf("register layer: %w", txErr)
	}

	s.releaseSessionLock(session.ID)

	// The raw input has served its purpose once the converted object is
	// registered.
	if err := s.storage.DeleteObject(ctx, session.StorageKey); err != nil {
		s.logger.Warn("failed to delete raw upload object", "key", session.StorageKey, "error", err)
	}

	if err := s.events.LayerRegistered(ctx, layer); err != nil {
		s.logger.Warn("failed to publish layer registered event", "layer", layerName, "error", err)
	}

	s.logger.Info("layer registered",
		"layer", layerName,
		"min", stats.Min,
		"max", stats.Max,
		"size_bytes", layer.SizeBytes,
	)

	return &layer, nil
}

// resolveDuplicate applies the overwrite-or-reject policy against an
// existing catalog entry with the same metadata key.
func (s *uploadService) resolveDuplicate(ctx context.Context, meta domain.LayerMetadata, overwrite bool) error {

	existing, err := s.uow.LayerRepo().FindByKey(ctx, meta)
	if err != nil {
		if errors.Is(err, domain.ErrLayerNotFound) {
			return nil
		}
		return err
	}

	if !overwrite {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateLayer, existing.LayerName)
	}

	if err := s.storage.DeleteObject(ctx, existing.StorageKey); err != nil {
		return fmt.Errorf("%w: delete replaced object: %v", domain.ErrStorageUpload, err)
	}
	if err := s.uow.LayerRepo().Delete(ctx, existing.ID); err != nil {
		return err
	}
	if err := s.events.LayerDeleted(ctx, existing.ID, existing.LayerName); err != nil {
		s.logger.Warn("failed to publish layer deleted event", "layer", existing.LayerName, "error", err)
	}

	s.logger.Info("replaced duplicate layer", "layer", existing.LayerName)
	return nil
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
