// Package model defines the data model for optical designs: surfaces,
// surface groups, public metadata, and vendor identity records.
//
// All types are plain values. Once constructed they are treated as
// immutable and are safe to share across goroutines.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// InfinitySentinel stands in for +/-Inf in JSON, which has no native
// infinity representation. Any value at or beyond this magnitude is
// decoded back to infinity.
const InfinitySentinel = 1e99

// ErrUnsupportedSurfaceType is returned when a surface type outside the
// supported closed set is encountered in trusted input.
var ErrUnsupportedSurfaceType = errors.New("unsupported surface type")

// SurfaceType identifies the geometric model of a surface.
type SurfaceType string

const (
	SurfaceStandard SurfaceType = "standard"
	SurfaceEvenAsph SurfaceType = "evenasph"
	SurfaceOddAsph  SurfaceType = "oddasph"
	SurfaceToroidal SurfaceType = "toroidal"
)

// ParseSurfaceType maps a type tag to a SurfaceType. Unknown tags are an
// error; use SurfaceTypeOrDefault when ingesting untrusted text formats.
func ParseSurfaceType(s string) (SurfaceType, error) {
	switch SurfaceType(s) {
	case SurfaceStandard, SurfaceEvenAsph, SurfaceOddAsph, SurfaceToroidal:
		return SurfaceType(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedSurfaceType, s)
}

// SurfaceTypeOrDefault maps a type tag to a SurfaceType, falling back to
// SurfaceStandard for anything outside the supported set. This fallback
// is only for ingestion from external sources, never for data that was
// previously signed.
func SurfaceTypeOrDefault(s string) SurfaceType {
	t, err := ParseSurfaceType(s)
	if err != nil {
		return SurfaceStandard
	}
	return t
}

// Visibility controls how a surface is treated by selective encryption.
type Visibility string

const (
	// VisibilityPublic stores the surface in clear text.
	VisibilityPublic Visibility = "public"
	// VisibilityEncrypted stores the surface inside the encrypted blob.
	VisibilityEncrypted Visibility = "encrypted"
	// VisibilityRedacted withholds the surface entirely; only its
	// ordinal survives in the container.
	VisibilityRedacted Visibility = "redacted"
)

// ParseVisibility maps a visibility tag to a Visibility value.
func ParseVisibility(s string) (Visibility, error) {
	switch Visibility(s) {
	case VisibilityPublic, VisibilityEncrypted, VisibilityRedacted:
		return Visibility(s), nil
	}
	return "", fmt.Errorf("invalid visibility %q", s)
}

// Surface is a single surface in a sequential optical design.
//
// Surfaces are numbered from 0 (object plane); the number is the
// canonical ordering authority and must be unique within a group.
// Radius and Thickness may be math.Inf(1) for flat surfaces and
// infinite conjugates.
type Surface struct {
	Number         int                `json:"surface_number"`
	Type           SurfaceType        `json:"surface_type"`
	Radius         float64            `json:"radius"`
	Thickness      float64            `json:"thickness"`
	SemiDiameter   float64            `json:"semi_diameter"`
	Conic          float64            `json:"conic"`
	Material       string             `json:"material,omitempty"`
	AsphericCoeffs map[string]float64 `json:"aspheric_coeffs,omitempty"`
	DecenterX      float64            `json:"decenter_x"`
	DecenterY      float64            `json:"decenter_y"`
	TiltX          float64            `json:"tilt_x"`
	TiltY          float64            `json:"tilt_y"`
	Visibility     Visibility         `json:"visibility"`
	Comment        string             `json:"comment,omitempty"`
}

// NewSurface returns a surface with the defaults used throughout the
// codec: standard type, flat (infinite radius), public visibility.
func NewSurface(number int) Surface {
	return Surface{
		Number:     number,
		Type:       SurfaceStandard,
		Radius:     math.Inf(1),
		Visibility: VisibilityPublic,
	}
}

// IsFlat reports whether the surface has no curvature.
func (s Surface) IsFlat() bool {
	return math.IsInf(s.Radius, 0) || math.Abs(s.Radius) > 1e10
}

// IsAir reports whether the medium after the surface is air.
func (s Surface) IsAir() bool {
	return s.Material == ""
}

// Curvature returns 1/radius, or 0 for flat surfaces.
func (s Surface) Curvature() float64 {
	if s.IsFlat() {
		return 0.0
	}
	return 1.0 / s.Radius
}

// Diameter returns the full clear aperture (2 * semi-diameter).
func (s Surface) Diameter() float64 {
	return 2.0 * s.SemiDiameter
}

// HasAsphericTerms reports whether any aspheric coefficient is non-negligible.
func (s Surface) HasAsphericTerms() bool {
	for _, v := range s.AsphericCoeffs {
		if math.Abs(v) > 1e-20 {
			return true
		}
	}
	return false
}

// IsDecentered reports whether the surface carries any decenter or tilt.
func (s Surface) IsDecentered() bool {
	return math.Abs(s.DecenterX) > 1e-10 ||
		math.Abs(s.DecenterY) > 1e-10 ||
		math.Abs(s.TiltX) > 1e-10 ||
		math.Abs(s.TiltY) > 1e-10
}

// surfaceJSON mirrors Surface for (un)marshaling so that infinite radius
// and thickness survive the trip through JSON via the sentinel encoding.
type surfaceJSON Surface

// MarshalJSON encodes infinite radius/thickness as the sentinel value.
func (s Surface) MarshalJSON() ([]byte, error) {
	out := surfaceJSON(s)
	out.Radius = EncodeInfinity(s.Radius)
	out.Thickness = EncodeInfinity(s.Thickness)
	return json.Marshal(out)
}

// UnmarshalJSON restores sentinel-encoded infinities and rejects surface
// types outside the supported set. Decoded data is treated as trusted
// (it round-trips signed payloads), so there is no fallback here.
func (s *Surface) UnmarshalJSON(data []byte) error {
	var raw surfaceJSON
	raw.Radius = math.Inf(1)
	raw.Type = SurfaceStandard
	raw.Visibility = VisibilityPublic
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if _, err := ParseSurfaceType(string(raw.Type)); err != nil {
		return err
	}
	if _, err := ParseVisibility(string(raw.Visibility)); err != nil {
		return err
	}
	raw.Radius = DecodeInfinity(raw.Radius)
	raw.Thickness = DecodeInfinity(raw.Thickness)
	*s = Surface(raw)
	return nil
}

// EncodeInfinity clamps infinite values to the JSON sentinel.
func EncodeInfinity(v float64) float64 {
	if math.IsInf(v, 1) || v >= InfinitySentinel {
		return InfinitySentinel
	}
	if math.IsInf(v, -1) || v <= -InfinitySentinel {
		return -InfinitySentinel
	}
	return v
}

// DecodeInfinity maps sentinel-magnitude values back to infinity.
func DecodeInfinity(v float64) float64 {
	if v >= InfinitySentinel {
		return math.Inf(1)
	}
	if v <= -InfinitySentinel {
		return math.Inf(-1)
	}
	return v
}
