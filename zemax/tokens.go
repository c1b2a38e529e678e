// Package zemax parses Zemax sequential lens files (.zmx and .zar
// archives) into the surface-group model consumed by the container
// codec.
//
// The parser is deliberately tolerant: malformed lines are skipped, and
// surface types outside the supported set fall back to standard. A file
// that yields no surfaces at all is an error.
package zemax

import "fmt"

// Surface keywords.
const (
	kwSurf  = "SURF"
	kwType  = "TYPE"
	kwCurv  = "CURV" // curvature (1/radius)
	kwThic  = "THIC" // thickness
	kwGlas  = "GLAS" // glass/material
	kwDiam  = "DIAM" // semi-diameter
	kwConi  = "CONI" // conic constant
	kwStop  = "STOP" // aperture stop marker
	kwParm  = "PARM" // aspheric coefficient
	kwDecX  = "DECX"
	kwDecY  = "DECY"
	kwTiltX = "TILTX"
	kwTiltY = "TILTY"
	kwWavm  = "WAVM" // wavelength definition
)

// supportedTypes maps Zemax surface type names onto the closed model
// set. PARAXIAL and COORDBRK are treated as standard.
var supportedTypes = map[string]string{
	"STANDARD": "standard",
	"EVENASPH": "evenasph",
	"ODDASPH":  "oddasph",
	"TOROIDAL": "toroidal",
	"PARAXIAL": "standard",
	"COORDBRK": "standard",
}

// infinityStrings are the spellings Zemax uses for infinite thickness.
var infinityStrings = map[string]bool{
	"INFINITY": true,
	"INF":      true,
	"1.0E+10":  true,
	"1E+10":    true,
	"1E10":     true,
}

// ignoredKeywords are parsed but unused. Listed explicitly so additions
// to the format do not silently become per-line parse failures.
var ignoredKeywords = map[string]bool{
	"COAT": true, "SQAP": true, "OBSC": true, "MIRR": true,
	"CONF": true, "MOFF": true, "MAZH": true, "OPDX": true,
	"COMM": true, "NAME": true, "HIDE": true, "SLAB": true,
}

// coeffName converts a Zemax PARM index to the aspheric coefficient
// name: PARM 1 = A2, PARM 2 = A4, and so on.
func coeffName(parmIndex int) string {
	return fmt.Sprintf("A%d", parmIndex*2)
}
