package domain_test

import (
	"testing"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLayerFilename_Climate(t *testing.T) {
	meta, err := domain.ParseLayerFilename("wheat_pcrglobwb_hadgem2es_rcp26_wf_2050.tif")

	require.NoError(t, err)
	assert.Equal(t, domain.LayerKindClimate, meta.Kind)
	assert.Equal(t, "wheat", meta.Crop)
	assert.Equal(t, "pcrglobwb", meta.WaterModel)
	assert.Equal(t, "hadgem2es", meta.ClimateModel)
	assert.Equal(t, "rcp26", meta.Scenario)
	assert.Equal(t, "wf", meta.Variable)
	assert.Equal(t, 2050, meta.Year)
	assert.Equal(t, "wheat_pcrglobwb_hadgem2es_rcp26_wf_2050", meta.LayerName())
}

func TestParseLayerFilename_ClimateUpperCase(t *testing.T) {
	meta, err := domain.ParseLayerFilename("Wheat_Pcrglobwb_Hadgem2es_Rcp26_Wf_2050.TIF")

	require.NoError(t, err)
	assert.Equal(t, "wheat", meta.Crop)
}

func TestParseLayerFilename_PercentageUnit(t *testing.T) {
	meta, err := domain.ParseLayerFilename("rice_lpjml_gfdlesm2m_historical_wfg_perc_2020.tif")

	require.NoError(t, err)
	assert.Equal(t, domain.LayerKindClimate, meta.Kind)
	assert.Equal(t, "wfg_perc", meta.Variable)
	assert.Equal(t, 2020, meta.Year)
}

func TestParseLayerFilename_UnsupportedUnit(t *testing.T) {
	_, err := domain.ParseLayerFilename("rice_lpjml_gfdlesm2m_historical_wfg_abs_2020.tif")

	assert.ErrorIs(t, err, domain.ErrInvalidFilenameFormat)
}

func TestParseLayerFilename_Crop(t *testing.T) {
	meta, err := domain.ParseLayerFilename("soy_mirca_area_total.tif")

	require.NoError(t, err)
	assert.Equal(t, domain.LayerKindCrop, meta.Kind)
	assert.Equal(t, "soy", meta.Crop)
	assert.Equal(t, "mirca_area_total", meta.Variable)
	assert.Equal(t, "soy_mirca_area_total", meta.LayerName())
	assert.Zero(t, meta.Year)
}

func TestParseLayerFilename_Invalid(t *testing.T) {
	cases := map[string]string{
		"wrong extension":       "wheat_pcrglobwb_hadgem2es_rcp26_wf_2050.txt",
		"single token":          "wheat.tif",
		"too many tokens":       "a_b_c_d_e_f_g_h.tif",
		"unknown crop":          "maize_pcrglobwb_hadgem2es_rcp26_wf_2050.tif",
		"unknown water model":   "wheat_nosuchmodel_hadgem2es_rcp26_wf_2050.tif",
		"unknown climate model": "wheat_pcrglobwb_nosuchmodel_rcp26_wf_2050.tif",
		"unknown scenario":      "wheat_pcrglobwb_hadgem2es_rcp99_wf_2050.tif",
		"unknown variable":      "wheat_pcrglobwb_hadgem2es_rcp26_zz_2050.tif",
		"non numeric year":      "wheat_pcrglobwb_hadgem2es_rcp26_wf_soon.tif",
		"unknown crop variable": "soy_not_a_variable.tif",
	}

	for name, filename := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := domain.ParseLayerFilename(filename)
			assert.ErrorIs(t, err, domain.ErrInvalidFilenameFormat)
		})
	}
}
