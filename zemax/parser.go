package zemax

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/unicode"

	"github.com/opd-ai/obb/model"
)

// ErrNoSurfaces is returned when a file parses but contains no SURF
// blocks at all.
var ErrNoSurfaces = errors.New("no surfaces found in design file")

// Parser parses Zemax .zmx and .zar files into surface groups.
type Parser struct{}

// NewParser returns a Zemax parser.
func NewParser() *Parser {
	return &Parser{}
}

// Extensions returns the file extensions this parser handles.
func (p *Parser) Extensions() []string {
	return []string{".zmx", ".zar"}
}

// Parse reads a Zemax design file. A .zar archive is unpacked to its
// embedded .zmx first.
func (p *Parser) Parse(path string) (*model.SurfaceGroup, error) {
	var content string
	var err error

	if strings.EqualFold(filepath.Ext(path), ".zar") {
		content, err = extractZMXContent(path)
	} else {
		content, err = readZMXFile(path)
	}
	if err != nil {
		return nil, err
	}

	return parseContent(content)
}

// readZMXFile reads a .zmx file, trying the encodings Zemax actually
// emits: UTF-16-LE is the most common, plain UTF-8 the fallback.
func readZMXFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to read zmx file")
	}
	return decodeZMXBytes(raw)
}

// decodeZMXBytes decodes raw .zmx bytes, preferring UTF-16-LE.
func decodeZMXBytes(raw []byte) (string, error) {
	utf16le := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	if decoded, err := utf16le.NewDecoder().Bytes(raw); err == nil {
		if bytes.Contains(decoded, []byte(kwSurf)) {
			return string(decoded), nil
		}
	}
	if bytes.Contains(raw, []byte(kwSurf)) {
		return string(raw), nil
	}
	return "", errors.New("file does not look like a Zemax design (no SURF keyword)")
}

// parseContent walks the file line by line, accumulating SURF blocks
// and system-level wavelength definitions. Malformed lines are skipped;
// the format is line-oriented enough that one bad line should not sink
// the whole design.
func parseContent(content string) (*model.SurfaceGroup, error) {
	var (
		surfaces    []*surfaceData
		wavelengths []float64
		current     *surfaceData
		stopSurface *int
	)

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		keyword := strings.ToUpper(parts[0])

		if ignoredKeywords[keyword] {
			continue
		}

		switch {
		case keyword == kwSurf:
			if current != nil {
				surfaces = append(surfaces, current)
			}
			number := len(surfaces)
			if len(parts) > 1 {
				if n, err := strconv.Atoi(parts[1]); err == nil {
					number = n
				}
			}
			current = newSurfaceData(number)

		case current != nil:
			parseSurfaceProperty(keyword, parts, current)
			if keyword == kwStop {
				n := current.number
				stopSurface = &n
			}

		case keyword == kwWavm:
			if w, ok := parseWavelength(parts); ok {
				wavelengths = append(wavelengths, w)
			}
		}
	}
	if current != nil {
		surfaces = append(surfaces, current)
	}

	if len(surfaces) == 0 {
		return nil, ErrNoSurfaces
	}

	built := make([]model.Surface, 0, len(surfaces))
	for _, data := range surfaces {
		built = append(built, buildSurface(data))
	}

	if len(wavelengths) == 0 {
		wavelengths = []float64{model.DefaultWavelengthNm}
	}

	logrus.WithFields(logrus.Fields{
		"function":        "parseContent",
		"num_surfaces":    len(built),
		"num_wavelengths": len(wavelengths),
	}).Debug("Zemax design parsed")

	group := &model.SurfaceGroup{
		Surfaces:      built,
		StopSurface:   stopSurface,
		WavelengthsNm: wavelengths,
		FieldType:     model.FieldAngle,
	}
	return group, nil
}

// parseSurfaceProperty applies one property line to the surface under
// construction. Unparseable values are ignored.
func parseSurfaceProperty(keyword string, parts []string, s *surfaceData) {
	value := func(i int) (float64, bool) {
		if len(parts) <= i {
			return 0, false
		}
		v, err := strconv.ParseFloat(parts[i], 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}

	switch keyword {
	case kwType:
		if len(parts) > 1 {
			s.zemaxType = strings.ToUpper(parts[1])
		}
	case kwCurv:
		if v, ok := value(1); ok {
			s.curvature = v
		}
	case kwThic:
		if len(parts) > 1 {
			if v, err := parseThickness(parts[1]); err == nil {
				s.thickness = v
			}
		}
	case kwGlas:
		if len(parts) > 1 {
			s.material = parts[1]
		}
	case kwDiam:
		if v, ok := value(1); ok {
			s.semiDiameter = v
		}
	case kwConi:
		if v, ok := value(1); ok {
			s.conic = v
		}
	case kwParm:
		if len(parts) > 2 {
			index, err := strconv.Atoi(parts[1])
			if err != nil {
				return
			}
			if v, ok := value(2); ok {
				s.parm[index] = v
			}
		}
	case kwDecX:
		if v, ok := value(1); ok {
			s.decenterX = v
		}
	case kwDecY:
		if v, ok := value(1); ok {
			s.decenterY = v
		}
	case kwTiltX:
		if v, ok := value(1); ok {
			s.tiltX = v
		}
	case kwTiltY:
		if v, ok := value(1); ok {
			s.tiltY = v
		}
	}
}

// parseWavelength parses "WAVM <index> <wavelength_um> <weight>",
// converting micrometers to nanometers.
func parseWavelength(parts []string) (float64, bool) {
	if len(parts) < 3 {
		return 0, false
	}
	um, err := strconv.ParseFloat(parts[2], 64)
	if err != nil || um <= 0 {
		return 0, false
	}
	return um * 1000, true
}
