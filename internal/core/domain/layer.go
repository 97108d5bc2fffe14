package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LayerKind discriminates the two layer metadata schemas
type LayerKind string

const (
	// LayerKindClimate is a layer keyed by the full crop/model/scenario/variable/year set
	LayerKindClimate LayerKind = "climate"
	// LayerKindCrop is a layer keyed by crop and variable only
	LayerKindCrop LayerKind = "crop"
)

// LayerMetadata is the structured key extracted from an uploaded filename
type LayerMetadata struct {
	Kind         LayerKind
	Crop         string
	WaterModel   string
	ClimateModel string
	Scenario     string
	Variable     string
	Year         int
}

// LayerName returns the canonical name the layer is published under
func (m LayerMetadata) LayerName() string {
	if m.Kind == LayerKindCrop {
		return fmt.Sprintf("%s_%s", m.Crop, m.Variable)
	}
	return fmt.Sprintf("%s_%s_%s_%s_%s_%d",
		m.Crop, m.WaterModel, m.ClimateModel, m.Scenario, m.Variable, m.Year)
}

// Layer is a catalog entry for an ingested raster layer
type Layer struct {
	ID            uuid.UUID
	Metadata      LayerMetadata
	LayerName     string
	Filename      string
	StorageKey    string
	SizeBytes     int64
	MinValue      float64
	MaxValue      float64
	GlobalAverage float64
	Enabled       bool
	UploadedAt    time.Time
	UpdatedAt     time.Time
}

// RasterStats holds the band 1 statistics of a raster
type RasterStats struct {
	Min  float64
	Max  float64
	Mean float64
}
