package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Vocabularies accepted by ParseLayerFilename. Filenames are normalised to
// lower case before matching, so entries are lower case without separators.
var (
	crops = map[string]struct{}{
		"barley": {}, "potato": {}, "rice": {}, "soy": {}, "sugarcane": {}, "wheat": {},
	}
	waterModels = map[string]struct{}{
		"cwatm": {}, "h08": {}, "lpjml": {}, "matsiro": {}, "pcrglobwb": {}, "watergap2": {},
	}
	climateModels = map[string]struct{}{
		"gfdlesm2m": {}, "hadgem2es": {}, "ipslcm5alr": {}, "miroc5": {},
	}
	scenarios = map[string]struct{}{
		"historical": {}, "rcp26": {}, "rcp60": {}, "rcp85": {},
	}
	variables = map[string]struct{}{
		"wf": {}, "wfb": {}, "wfg": {},
		"etb": {}, "etg": {},
		"rb": {}, "rg": {},
		"wdb": {}, "wdg": {},
	}
	cropVariables = map[string]struct{}{
		"mirca_area_total": {}, "mirca_rainfed": {}, "mirca_irrigated": {},
		"yield": {}, "production": {},
	}
)

// ParseLayerFilename extracts layer metadata from an uploaded filename.
//
// Climate layers: crop_watermodel_climatemodel_scenario_variable_year.tif,
// optionally with a "perc" unit token before the year which is merged into
// the variable name. Crop layers: crop_variable.tif, where the variable may
// itself contain underscores. Any other shape, or a token outside its
// vocabulary, fails with ErrInvalidFilenameFormat.
//
// The function is pure and performs no I/O, so callers can reject malformed
// uploads before any bytes reach storage.
func ParseLayerFilename(filename string) (*LayerMetadata, error) {
	stem, ok := strings.CutSuffix(strings.ToLower(filename), ".tif")
	if !ok {
		return nil, fmt.Errorf("%w: filename must end with .tif", ErrInvalidFilenameFormat)
	}

	tokens := strings.Split(stem, "_")

	switch n := len(tokens); {
	case n == 6:
		return parseClimate(tokens[0], tokens[1], tokens[2], tokens[3], tokens[4], tokens[5])
	case n == 7:
		if tokens[5] != "perc" {
			return nil, fmt.Errorf("%w: unsupported unit %q", ErrInvalidFilenameFormat, tokens[5])
		}
		return parseClimate(tokens[0], tokens[1], tokens[2], tokens[3], tokens[4]+"_perc", tokens[6])
	case n >= 2 && n <= 5:
		return parseCrop(tokens[0], strings.Join(tokens[1:], "_"))
	default:
		return nil, fmt.Errorf(
			"%w: expected crop_watermodel_climatemodel_scenario_variable_year.tif or crop_variable.tif",
			ErrInvalidFilenameFormat)
	}
}

func parseClimate(crop, waterModel, climateModel, scenario, variable, yearToken string) (*LayerMetadata, error) {
	if _, ok := crops[crop]; !ok {
		return nil, fmt.Errorf("%w: unknown crop %q", ErrInvalidFilenameFormat, crop)
	}
	if _, ok := waterModels[waterModel]; !ok {
		return nil, fmt.Errorf("%w: unknown water model %q", ErrInvalidFilenameFormat, waterModel)
	}
	if _, ok := climateModels[climateModel]; !ok {
		return nil, fmt.Errorf("%w: unknown climate model %q", ErrInvalidFilenameFormat, climateModel)
	}
	if _, ok := scenarios[scenario]; !ok {
		return nil, fmt.Errorf("%w: unknown scenario %q", ErrInvalidFilenameFormat, scenario)
	}
	if _, ok := variables[strings.TrimSuffix(variable, "_perc")]; !ok {
		return nil, fmt.Errorf("%w: unknown variable %q", ErrInvalidFilenameFormat, variable)
	}
	year, err := strconv.Atoi(yearToken)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid year %q", ErrInvalidFilenameFormat, yearToken)
	}

	return &LayerMetadata{
		Kind:         LayerKindClimate,
		Crop:         crop,
		WaterModel:   waterModel,
		ClimateModel: climateModel,
		Scenario:     scenario,
		Variable:     variable,
		Year:         year,
	}, nil
}

func parseCrop(crop, variable string) (*LayerMetadata, error) {
	if _, ok := crops[crop]; !ok {
		return nil, fmt.Errorf("%w: unknown crop %q", ErrInvalidFilenameFormat, crop)
	}
	if _, ok := cropVariables[variable]; !ok {
		return nil, fmt.Errorf("%w: unknown crop variable %q", ErrInvalidFilenameFormat, variable)
	}
	return &LayerMetadata{
		Kind:     LayerKindCrop,
		Crop:     crop,
		Variable: variable,
	}, nil
}
