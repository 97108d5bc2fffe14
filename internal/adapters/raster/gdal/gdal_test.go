package gdal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBandStats(t *testing.T) {

	t.Run("Should parse band statistics", func(t *testing.T) {
		//Arrange
		payload := []byte(`{
			"bands": [
				{"band": 1, "minimum": 0.25, "maximum": 9.5, "mean": 4.2}
			]
		}`)

		//Act
		stats, err := parseBandStats(payload)

		//Assert
		require.NoError(t, err)
		assert.Equal(t, 0.25, stats.Min)
		assert.Equal(t, 9.5, stats.Max)
		assert.Equal(t, 4.2, stats.Mean)
	})

	t.Run("Should surface non-finite values when statistics keys are absent", func(t *testing.T) {
		//Arrange
		// gdalinfo -stats exits 0 for an all-nodata band but omits the
		// minimum/maximum/mean keys entirely.
		payload := []byte(`{
			"bands": [
				{"band": 1, "block": [256, 256], "type": "Float32"}
			]
		}`)

		//Act
		stats, err := parseBandStats(payload)

		//Assert
		require.NoError(t, err)
		assert.True(t, math.IsInf(stats.Min, -1))
		assert.True(t, math.IsInf(stats.Max, 1))
		assert.True(t, math.IsNaN(stats.Mean))
	})

	t.Run("Should fail when raster has no bands", func(t *testing.T) {
		//Arrange
		payload := []byte(`{"bands": []}`)

		//Act
		stats, err := parseBandStats(payload)

		//Assert
		require.Error(t, err)
		assert.Nil(t, stats)
	})

	t.Run("Should fail on malformed output", func(t *testing.T) {
		//Act
		stats, err := parseBandStats([]byte("not json"))

		//Assert
		require.Error(t, err)
		assert.Nil(t, stats)
	})
}
