package optics

import (
	"math"

	"github.com/opd-ai/obb/model"
)

// ExtractMetadata builds the public metadata record for a surface
// group: the computed paraxial figures plus the structural fields.
// Signature and CreatedAt are left empty; the writer stamps them.
func ExtractMetadata(group model.SurfaceGroup, vendorID, name, description, partNumber string) model.Metadata {
	props := ComputeProperties(group, 0)
	min, max := group.SpectralRange()

	return model.Metadata{
		Version:         model.FormatVersion,
		VendorID:        vendorID,
		Name:            name,
		EFLmm:           roundFigure(props.EFLmm, 4),
		NA:              roundFigure(props.NA, 4),
		DiameterMm:      roundFigure(group.MaxDiameter(), 2),
		SpectralRangeNm: [2]float64{min, max},
		NumSurfaces:     group.NumSurfaces(),
		Description:     description,
		PartNumber:      partNumber,
	}
}

// roundFigure rounds to the given number of decimals, passing
// infinities through untouched.
func roundFigure(v float64, decimals int) float64 {
	if math.IsInf(v, 0) {
		return v
	}
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
