package optics

import "strings"

const (
	airIndex            = 1.0
	defaultUnknownIndex = 1.5
)

// glassCatalog maps glass names to refractive indices at the d-line
// (587.56 nm). Values from the Schott catalog and common manufacturers.
// Dispersion formulas are out of scope; the single-wavelength index is
// good enough for the descriptive paraxial figures.
var glassCatalog = map[string]float64{
	// Schott crown glasses
	"N-BK7":    1.5168,
	"N-K5":     1.5224,
	"N-SK16":   1.6204,
	"N-SK2":    1.6074,
	"N-PSK53A": 1.6180,
	"N-SSK8":   1.6177,
	// Schott flint glasses
	"N-SF11": 1.7847,
	"N-SF6":  1.8052,
	"N-SF5":  1.6727,
	"N-SF1":  1.7174,
	"N-SF2":  1.6477,
	"SF5":    1.6727,
	"F2":     1.6200,
	// Schott lanthanum glasses
	"N-LAK22": 1.6516,
	"N-LAF2":  1.7440,
	"N-LAK9":  1.6910,
	"N-LAF7":  1.7495,
	// Schott special glasses
	"N-FK51A": 1.4866,
	"N-PK52A": 1.4970,
	// Common materials
	"SILICA":       1.4585,
	"FUSED_SILICA": 1.4585,
	"FUSEDSILICA":  1.4585,
	"CAF2":         1.4338,
	"SAPPHIRE":     1.7682,
	"MGF2":         1.3777,
	"BAF2":         1.4741,
	"ZNS":          2.3525,
	"ZNSE":         2.4028,
	"GE":           4.0026,
	"SI":           3.4223,
	// Legacy Schott names
	"BK7":   1.5168,
	"SF11":  1.7847,
	"SF6":   1.8052,
	"SK16":  1.6204,
	"LAK22": 1.6516,
}

func normalizeGlassName(material string) string {
	s := strings.ToUpper(strings.TrimSpace(material))
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "-", "")
}

// RefractiveIndex returns the refractive index of a material at the
// given wavelength. An empty material means air. Unknown materials get
// a generic crown-glass index rather than an error so a descriptive
// calculation never fails outright.
//
// The wavelength is currently ignored; d-line values are returned.
func RefractiveIndex(material string, wavelengthNm float64) float64 {
	_ = wavelengthNm

	if strings.TrimSpace(material) == "" {
		return airIndex
	}

	upper := strings.ToUpper(strings.TrimSpace(material))
	if n, ok := glassCatalog[upper]; ok {
		return n
	}

	normalized := normalizeGlassName(material)
	for name, n := range glassCatalog {
		if normalizeGlassName(name) == normalized {
			return n
		}
	}

	return defaultUnknownIndex
}

// IsMaterialKnown reports whether a material is in the catalog. Air
// (the empty string) counts as known.
func IsMaterialKnown(material string) bool {
	if strings.TrimSpace(material) == "" {
		return true
	}
	if _, ok := glassCatalog[strings.ToUpper(strings.TrimSpace(material))]; ok {
		return true
	}
	normalized := normalizeGlassName(material)
	for name := range glassCatalog {
		if normalizeGlassName(name) == normalized {
			return true
		}
	}
	return false
}

// Materials lists all catalog material names.
func Materials() []string {
	out := make([]string, 0, len(glassCatalog))
	for name := range glassCatalog {
		out = append(out, name)
	}
	return out
}
