package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"
	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/port"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type sqlLayerRepository struct {
	db SQLQuerier
}

// NewSQLLayerRepository creates a new sqlLayerRepository
func NewSQLLayerRepository(db SQLQuerier) port.LayerRepository {
	return &sqlLayerRepository{db: db}
}

const layerColumns = `
	id, kind, crop, water_model, climate_model, scenario, variable, year,
	layer_name, filename, storage_key, size_bytes, min_value, max_value,
	global_average, enabled, uploaded_at, updated_at`

// Create persists a catalog entry
func (r *sqlLayerRepository) Create(ctx context.Context, layer domain.Layer) error {
	query := `
		INSERT INTO layer (
			id, kind, crop, water_model, climate_model, scenario, variable, year,
			layer_name, filename, storage_key, size_bytes, min_value, max_value,
			global_average, enabled, uploaded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := r.db.ExecContext(
		ctx,
		query,
		layer.ID,
		layer.Metadata.Kind,
		layer.Metadata.Crop,
		layer.Metadata.WaterModel,
		layer.Metadata.ClimateModel,
		layer.Metadata.Scenario,
		layer.Metadata.Variable,
		layer.Metadata.Year,
		layer.LayerName,
		layer.Filename,
		layer.StorageKey,
		layer.SizeBytes,
		layer.MinValue,
		layer.MaxValue,
		layer.GlobalAverage,
		layer.Enabled,
		layer.UploadedAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return domain.ErrDuplicateLayer
	}
	return err
}

func (r *sqlLayerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Layer, error) {
	query := `SELECT ` + layerColumns + ` FROM layer WHERE id = $1`

	return r.scanLayer(r.db.QueryRowContext(ctx, query, id))
}

// FindByKey looks a layer up by exact match on every metadata field. Crop
// layers store empty strings and a zero year for the climate-only fields, so
// the same query covers both schemas.
func (r *sqlLayerRepository) FindByKey(ctx context.Context, meta domain.LayerMetadata) (*domain.Layer, error) {
	query := `SELECT ` + layerColumns + `
		FROM layer
		WHERE kind = $1 AND crop = $2 AND water_model = $3 AND climate_model = $4
		  AND scenario = $5 AND variable = $6 AND year = $7`

	return r.scanLayer(r.db.QueryRowContext(
		ctx,
		query,
		meta.Kind,
		meta.Crop,
		meta.WaterModel,
		meta.ClimateModel,
		meta.Scenario,
		meta.Variable,
		meta.Year,
	))
}

// Delete removes a catalog entry
func (r *sqlLayerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM layer WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return domain.ErrLayerNotFound
	}

	return nil
}

func (r *sqlLayerRepository) scanLayer(row *sql.Row) (*domain.Layer, error) {
	var l dbLayer
	err := row.Scan(
		&l.ID,
		&l.Kind,
		&l.Crop,
		&l.WaterModel,
		&l.ClimateModel,
		&l.Scenario,
		&l.Variable,
		&l.Year,
		&l.LayerName,
		&l.Filename,
		&l.StorageKey,
		&l.SizeBytes,
		&l.MinValue,
		&l.MaxValue,
		&l.GlobalAverage,
		&l.Enabled,
		&l.UploadedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLayerNotFound
		}
		return nil, err
	}

	return l.ToDomain(), nil
}

type dbLayer struct {
	ID            uuid.UUID `db:"id"`
	Kind          string    `db:"kind"`
	Crop          string    `db:"crop"`
	WaterModel    string    `db:"water_model"`
	ClimateModel  string    `db:"climate_model"`
	Scenario      string    `db:"scenario"`
	Variable      string    `db:"variable"`
	Year          int       `db:"year"`
	LayerName     string    `db:"layer_name"`
	Filename      string    `db:"filename"`
	StorageKey    string    `db:"storage_key"`
	SizeBytes     int64     `db:"size_bytes"`
	MinValue      float64   `db:"min_value"`
	MaxValue      float64   `db:"max_value"`
	GlobalAverage float64   `db:"global_average"`
	Enabled       bool      `db:"enabled"`
	UploadedAt    time.Time `db:"uploaded_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// ToDomain converts db obj to domain
func (l *dbLayer) ToDomain() *domain.Layer {
	return &domain.Layer{
		ID: l.ID,
		Metadata: domain.LayerMetadata{
			Kind:         domain.LayerKind(l.Kind),
			Crop:         l.Crop,
			WaterModel:   l.WaterModel,
			ClimateModel: l.ClimateModel,
			Scenario:     l.Scenario,
			Variable:     l.Variable,
			Year:         l.Year,
		},
		LayerName:     l.LayerName,
		Filename:      l.Filename,
		StorageKey:    l.StorageKey,
		SizeBytes:     l.SizeBytes,
		MinValue:      l.MinValue,
		MaxValue:      l.MaxValue,
		GlobalAverage: l.GlobalAverage,
		Enabled:       l.Enabled,
		UploadedAt:    l.UploadedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}
