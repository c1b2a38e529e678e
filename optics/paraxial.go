// Package optics computes the descriptive optical figures carried in
// container metadata: effective focal length, back focal length,
// numerical aperture and diameter, via paraxial ABCD matrix tracing.
//
// These figures are descriptive only; the codec transports and signs
// them but never recomputes them on read.
package optics

import (
	"math"

	"github.com/opd-ai/obb/model"
)

// matrix is a 2x2 ray-transfer (ABCD) matrix.
type matrix [2][2]float64

var identity = matrix{{1, 0}, {0, 1}}

// mul returns a*b.
func (a matrix) mul(b matrix) matrix {
	return matrix{
		{a[0][0]*b[0][0] + a[0][1]*b[1][0], a[0][0]*b[0][1] + a[0][1]*b[1][1]},
		{a[1][0]*b[0][0] + a[1][1]*b[1][0], a[1][0]*b[0][1] + a[1][1]*b[1][1]},
	}
}

// transferMatrix propagates a ray a distance t through a medium of
// index n. Infinite conjugate distances contribute nothing to the
// system matrix.
func transferMatrix(thickness, n float64) matrix {
	if math.IsInf(thickness, 0) {
		thickness = 0
	}
	return matrix{{1, thickness / n}, {0, 1}}
}

// refractionMatrix refracts a ray at a surface of the given curvature
// between media of index nBefore and nAfter.
func refractionMatrix(curvature, nBefore, nAfter float64) matrix {
	power := (nAfter - nBefore) * curvature
	return matrix{{1, 0}, {-power, nBefore / nAfter}}
}

// systemMatrix traces through every surface from object to image.
func systemMatrix(group model.SurfaceGroup, wavelengthNm float64) matrix {
	m := identity
	nCurrent := 1.0

	for i, s := range group.Surfaces {
		nNext := RefractiveIndex(s.Material, wavelengthNm)

		m = refractionMatrix(s.Curvature(), nCurrent, nNext).mul(m)

		if i < len(group.Surfaces)-1 {
			m = transferMatrix(s.Thickness, nNext).mul(m)
		}
		nCurrent = nNext
	}
	return m
}

// eflFromMatrix extracts the effective focal length: EFL = -1/C.
// A vanishing C term means an afocal system, reported as +Inf.
func eflFromMatrix(m matrix) float64 {
	c := m[1][0]
	if math.Abs(c) < 1e-15 {
		return math.Inf(1)
	}
	return -1.0 / c
}

// bflFromMatrix extracts the back focal length: BFL = -A/C.
func bflFromMatrix(m matrix) float64 {
	c := m[1][0]
	if math.Abs(c) < 1e-15 {
		return math.Inf(1)
	}
	return -m[0][0] / c
}

// Properties holds the computed paraxial figures of a design.
type Properties struct {
	EFLmm float64
	BFLmm float64
	NA    float64
}

// ComputeProperties traces the group at the given wavelength and
// derives EFL, BFL and NA. Pass 0 for the wavelength to use the group's
// primary design wavelength.
func ComputeProperties(group model.SurfaceGroup, wavelengthNm float64) Properties {
	if wavelengthNm <= 0 {
		wavelengthNm = group.PrimaryWavelength()
	}

	m := systemMatrix(group, wavelengthNm)
	efl := eflFromMatrix(m)
	bfl := bflFromMatrix(m)

	// NA approximated from the entrance aperture and focal length.
	var na float64
	if len(group.Surfaces) > 0 && !math.IsInf(efl, 0) && math.Abs(efl) > 1e-10 {
		entranceDiameter := group.Surfaces[0].Diameter()
		na = entranceDiameter / (2.0 * math.Abs(efl))
		if na > 1.0 {
			na = 1.0
		}
	}

	return Properties{EFLmm: efl, BFLmm: bfl, NA: na}
}
