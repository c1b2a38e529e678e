package optics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/obb/model"
)

// planoConvexSinglet is a thin plano-convex N-BK7 lens, flat side
// first, with the curved side chosen so EFL comes out at 100 mm:
// P = (1 - 1.5168) * (1 / -51.68) = 0.01 /mm.
func planoConvexSinglet() model.SurfaceGroup {
	surfaces := []model.Surface{
		{Number: 0, Type: model.SurfaceStandard, Radius: math.Inf(1), Thickness: 0, SemiDiameter: 12.5, Material: "N-BK7", Visibility: model.VisibilityPublic},
		{Number: 1, Type: model.SurfaceStandard, Radius: -51.68, Thickness: 0, SemiDiameter: 12.5, Visibility: model.VisibilityPublic},
	}
	return model.SurfaceGroup{
		Surfaces:      surfaces,
		WavelengthsNm: []float64{587.56},
		FieldType:     model.FieldAngle,
	}
}

func TestComputePropertiesSinglet(t *testing.T) {
	props := ComputeProperties(planoConvexSinglet(), 587.56)

	assert.InDelta(t, 100.0, props.EFLmm, 1e-6)
	assert.InDelta(t, 100.0, props.BFLmm, 1e-6)
	// NA = entrance diameter / (2 * EFL) = 25 / 200
	assert.InDelta(t, 0.125, props.NA, 1e-9)
}

func TestComputePropertiesDefaultsToPrimaryWavelength(t *testing.T) {
	group := planoConvexSinglet()
	atPrimary := ComputeProperties(group, 0)
	explicit := ComputeProperties(group, 587.56)
	assert.Equal(t, explicit, atPrimary)
}

func TestComputePropertiesAfocal(t *testing.T) {
	group := model.SurfaceGroup{
		Surfaces: []model.Surface{
			{Number: 0, Type: model.SurfaceStandard, Radius: math.Inf(1), SemiDiameter: 10, Visibility: model.VisibilityPublic},
		},
		WavelengthsNm: []float64{587.56},
	}

	props := ComputeProperties(group, 0)
	assert.True(t, math.IsInf(props.EFLmm, 1))
	assert.Zero(t, props.NA, "afocal systems have no meaningful NA")
}

func TestRefractiveIndex(t *testing.T) {
	cases := []struct {
		material string
		want     float64
	}{
		{"N-BK7", 1.5168},
		{"n-bk7", 1.5168},
		{"NBK7", 1.5168},
		{"BK7", 1.5168},
		{"SF5", 1.6727},
		{"", 1.0},
		{"   ", 1.0},
		{"UNOBTANIUM", 1.5},
	}

	for _, tc := range cases {
		assert.InDelta(t, tc.want, RefractiveIndex(tc.material, 587.56), 1e-9, "material %q", tc.material)
	}
}

func TestIsMaterialKnown(t *testing.T) {
	assert.True(t, IsMaterialKnown("N-BK7"))
	assert.True(t, IsMaterialKnown("nbk7"))
	assert.True(t, IsMaterialKnown(""))
	assert.False(t, IsMaterialKnown("UNOBTANIUM"))
}

func TestExtractMetadata(t *testing.T) {
	group := planoConvexSinglet()
	group.WavelengthsNm = []float64{486.13, 587.56, 656.27}
	group.PrimaryWavelengthIndex = 1

	meta := ExtractMetadata(group, "acme-optics", "100mm Singlet", "test lens", "ACM-100")
	require.NoError(t, meta.Validate())

	assert.Equal(t, model.FormatVersion, meta.Version)
	assert.InDelta(t, 100.0, meta.EFLmm, 1e-4)
	assert.InDelta(t, 0.125, meta.NA, 1e-4)
	assert.InDelta(t, 25.0, meta.DiameterMm, 1e-9)
	assert.Equal(t, [2]float64{486.13, 656.27}, meta.SpectralRangeNm)
	assert.Equal(t, 2, meta.NumSurfaces)
	assert.Empty(t, meta.Signature, "writer stamps the signature later")
	assert.Nil(t, meta.CreatedAt)
}
