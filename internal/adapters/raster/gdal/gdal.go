package gdal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/config"
	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"
)

// Adapter is an adapter for the GDAL command line tools
type Adapter struct {
	config config.RasterConfig
	logger *slog.Logger
}

// NewAdapter returns Adapter
func NewAdapter(cfg config.RasterConfig, logger *slog.Logger) *Adapter {
	return &Adapter{config: cfg, logger: logger}
}

// ConvertToCOG converts a GeoTIFF to a tiled cloud optimized GeoTIFF.
// Overview generation is disabled so the output carries only the base
// resolution.
func (a *Adapter) ConvertToCOG(ctx context.Context, input []byte) ([]byte, error) {
	dir, err := os.MkdirTemp(a.config.TempDir, "raster-cog-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	inPath := filepath.Join(dir, "input.tif")
	outPath := filepath.Join(dir, "output.tif")
	if err := os.WriteFile(inPath, input, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write input raster: %w", err)
	}

	cmd := exec.CommandContext(ctx, a.config.GDALTranslatePath,
		"-of", "COG",
		"-co", "OVERVIEWS=NONE",
		inPath, outPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		a.logger.Error("gdal_translate failed",
			slog.String("output", string(out)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("gdal_translate: %w", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read converted raster: %w", err)
	}
	return data, nil
}

// gdalinfoOutput is the subset of `gdalinfo -json` we consume. The
// statistics keys are absent when a band has no valid pixels, so they
// decode through pointers rather than zero values.
type gdalinfoOutput struct {
	Bands []struct {
		Band    int      `json:"band"`
		Minimum *float64 `json:"minimum"`
		Maximum *float64 `json:"maximum"`
		Mean    *float64 `json:"mean"`
	} `json:"bands"`
}

func parseBandStats(out []byte) (*domain.RasterStats, error) {
	var info gdalinfoOutput
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, fmt.Errorf("failed to parse gdalinfo output: %w", err)
	}
	if len(info.Bands) == 0 {
		return nil, fmt.Errorf("raster has no bands")
	}

	band := info.Bands[0]
	return &domain.RasterStats{
		Min:  statOrInf(band.Minimum, math.Inf(-1)),
		Max:  statOrInf(band.Maximum, math.Inf(1)),
		Mean: statOrInf(band.Mean, math.NaN()),
	}, nil
}

// statOrInf substitutes a non-finite marker for a missing statistic so
// an all-nodata band fails the finite-range check downstream.
func statOrInf(v *float64, missing float64) float64 {
	if v == nil {
		return missing
	}
	return *v
}

// Statistics computes band 1 min, max and mean with a full band scan
func (a *Adapter) Statistics(ctx context.Context, input []byte) (*domain.RasterStats, error) {
	dir, err := os.MkdirTemp(a.config.TempDir, "raster-stats-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	inPath := filepath.Join(dir, "input.tif")
	if err := os.WriteFile(inPath, input, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write input raster: %w", err)
	}

	cmd := exec.CommandContext(ctx, a.config.GDALInfoPath, "-stats", "-json", inPath)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("gdalinfo: %w", err)
	}

	return parseBandStats(out)
}
