package model

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// FieldType selects how the field of view is specified.
type FieldType string

const (
	// FieldAngle specifies the field as a half angle in degrees.
	FieldAngle FieldType = "angle"
	// FieldHeight specifies the field as an image height in mm.
	FieldHeight FieldType = "height"
)

// DefaultWavelengthNm is the d-line, used when a design carries no
// explicit wavelength information.
const DefaultWavelengthNm = 587.56

// SurfaceGroup is an ordered collection of surfaces forming a complete
// optical design, from object plane to image plane, together with the
// system-level wavelength, aperture and field configuration.
type SurfaceGroup struct {
	Surfaces               []Surface `json:"surfaces"`
	StopSurface            *int      `json:"stop_surface,omitempty"`
	WavelengthsNm          []float64 `json:"wavelengths_nm"`
	PrimaryWavelengthIndex int       `json:"primary_wavelength_index"`
	FieldType              FieldType `json:"field_type"`
	MaxField               float64   `json:"max_field"`
}

// NewSurfaceGroup builds a group over the given surfaces with default
// wavelength and field configuration.
func NewSurfaceGroup(surfaces []Surface) SurfaceGroup {
	return SurfaceGroup{
		Surfaces:      surfaces,
		WavelengthsNm: []float64{DefaultWavelengthNm},
		FieldType:     FieldAngle,
	}
}

// Validate checks the group invariants: at least one surface, unique
// surface numbers, and at least one positive wavelength.
func (g SurfaceGroup) Validate() error {
	if len(g.Surfaces) == 0 {
		return errors.New("surface group must contain at least one surface")
	}
	seen := make(map[int]struct{}, len(g.Surfaces))
	for _, s := range g.Surfaces {
		if s.Number < 0 {
			return fmt.Errorf("surface number %d is negative", s.Number)
		}
		if _, dup := seen[s.Number]; dup {
			return fmt.Errorf("duplicate surface number %d", s.Number)
		}
		seen[s.Number] = struct{}{}
	}
	if len(g.WavelengthsNm) == 0 {
		return errors.New("surface group must define at least one wavelength")
	}
	for _, w := range g.WavelengthsNm {
		if w <= 0 {
			return fmt.Errorf("wavelength %g nm is not positive", w)
		}
	}
	switch g.FieldType {
	case FieldAngle, FieldHeight, "":
	default:
		return fmt.Errorf("invalid field type %q", g.FieldType)
	}
	return nil
}

// NumSurfaces returns the number of surfaces in the group.
func (g SurfaceGroup) NumSurfaces() int {
	return len(g.Surfaces)
}

// PrimaryWavelength returns the primary design wavelength in nm. An
// out-of-range primary index falls back to the first wavelength.
func (g SurfaceGroup) PrimaryWavelength() float64 {
	if g.PrimaryWavelengthIndex >= 0 && g.PrimaryWavelengthIndex < len(g.WavelengthsNm) {
		return g.WavelengthsNm[g.PrimaryWavelengthIndex]
	}
	return g.WavelengthsNm[0]
}

// SpectralRange returns the (min, max) design wavelengths in nm.
func (g SurfaceGroup) SpectralRange() (float64, float64) {
	min, max := g.WavelengthsNm[0], g.WavelengthsNm[0]
	for _, w := range g.WavelengthsNm[1:] {
		if w < min {
			min = w
		}
		if w > max {
			max = w
		}
	}
	return min, max
}

// MaxDiameter returns the largest clear aperture across all surfaces.
func (g SurfaceGroup) MaxDiameter() float64 {
	var max float64
	for _, s := range g.Surfaces {
		if d := s.Diameter(); d > max {
			max = d
		}
	}
	return max
}

// TotalLength returns the axial length: the sum of all finite
// thicknesses except the last surface's.
func (g SurfaceGroup) TotalLength() float64 {
	if len(g.Surfaces) <= 1 {
		return 0.0
	}
	var total float64
	for _, s := range g.Surfaces[:len(g.Surfaces)-1] {
		if !math.IsInf(s.Thickness, 0) {
			total += s.Thickness
		}
	}
	return total
}

// PublicSurfaces returns the surfaces stored in clear text.
func (g SurfaceGroup) PublicSurfaces() []Surface {
	return g.surfacesWithVisibility(VisibilityPublic)
}

// EncryptedSurfaces returns the surfaces destined for the encrypted blob.
func (g SurfaceGroup) EncryptedSurfaces() []Surface {
	return g.surfacesWithVisibility(VisibilityEncrypted)
}

// RedactedSurfaces returns the surfaces whose content is withheld.
func (g SurfaceGroup) RedactedSurfaces() []Surface {
	return g.surfacesWithVisibility(VisibilityRedacted)
}

func (g SurfaceGroup) surfacesWithVisibility(v Visibility) []Surface {
	var out []Surface
	for _, s := range g.Surfaces {
		if s.Visibility == v {
			out = append(out, s)
		}
	}
	return out
}

// HasSelectiveEncryption reports whether any surface carries a
// non-public visibility tag.
func (g SurfaceGroup) HasSelectiveEncryption() bool {
	for _, s := range g.Surfaces {
		if s.Visibility != VisibilityPublic {
			return true
		}
	}
	return false
}

// SortSurfaces orders the surfaces by surface number in place. The
// number is the only ordering authority after reconstruction.
func (g *SurfaceGroup) SortSurfaces() {
	sort.Slice(g.Surfaces, func(i, j int) bool {
		return g.Surfaces[i].Number < g.Surfaces[j].Number
	})
}
