package zemax

import (
	"math"
	"strconv"
	"strings"

	"github.com/opd-ai/obb/model"
)

// surfaceData accumulates the raw properties of one SURF block before
// they are mapped onto the model.
type surfaceData struct {
	number       int
	zemaxType    string
	curvature    float64
	thickness    float64
	material     string
	semiDiameter float64
	conic        float64
	parm         map[int]float64
	decenterX    float64
	decenterY    float64
	tiltX        float64
	tiltY        float64
}

func newSurfaceData(number int) *surfaceData {
	return &surfaceData{
		number:    number,
		zemaxType: "STANDARD",
		parm:      make(map[int]float64),
	}
}

// radiusFromCurvature converts Zemax curvature (1/mm) to a radius,
// mapping vanishing curvature to a flat (infinite) radius.
func radiusFromCurvature(curvature float64) float64 {
	if math.Abs(curvature) < 1e-15 {
		return math.Inf(1)
	}
	return 1.0 / curvature
}

// parseThickness parses a thickness token, handling the Zemax
// INFINITY spellings.
func parseThickness(token string) (float64, error) {
	if infinityStrings[strings.ToUpper(strings.TrimSpace(token))] {
		return math.Inf(1), nil
	}
	return strconv.ParseFloat(token, 64)
}

// asphericCoeffs builds the coefficient map from PARM values, dropping
// negligible terms. Returns nil when nothing survives.
func asphericCoeffs(parm map[int]float64) map[string]float64 {
	var coeffs map[string]float64
	for index, value := range parm {
		if math.Abs(value) <= 1e-30 {
			continue
		}
		if coeffs == nil {
			coeffs = make(map[string]float64)
		}
		coeffs[coeffName(index)] = value
	}
	return coeffs
}

// buildSurface maps accumulated Zemax data onto a model surface.
// Unsupported surface types fall back to standard; ingestion from an
// external text format is the one place the fallback rule applies.
func buildSurface(data *surfaceData) model.Surface {
	typeName, ok := supportedTypes[strings.ToUpper(data.zemaxType)]
	if !ok {
		typeName = string(model.SurfaceStandard)
	}

	return model.Surface{
		Number:         data.number,
		Type:           model.SurfaceTypeOrDefault(typeName),
		Radius:         radiusFromCurvature(data.curvature),
		Thickness:      data.thickness,
		Material:       data.material,
		SemiDiameter:   data.semiDiameter,
		Conic:          data.conic,
		AsphericCoeffs: asphericCoeffs(data.parm),
		DecenterX:      data.decenterX,
		DecenterY:      data.decenterY,
		TiltX:          data.tiltX,
		TiltY:          data.tiltY,
		Visibility:     model.VisibilityPublic,
	}
}
