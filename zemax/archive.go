package zemax

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// extractZMXContent opens a .zar archive (a zip file) and returns the
// decoded content of the first .zmx member it contains.
func extractZMXContent(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to open zar archive")
	}
	defer archive.Close()

	for _, member := range archive.File {
		if !strings.EqualFold(filepath.Ext(member.Name), ".zmx") {
			continue
		}
		reader, err := member.Open()
		if err != nil {
			return "", errors.Wrapf(err, "failed to open archive member %s", member.Name)
		}
		raw, err := io.ReadAll(reader)
		reader.Close()
		if err != nil {
			return "", errors.Wrapf(err, "failed to read archive member %s", member.Name)
		}

		logrus.WithFields(logrus.Fields{
			"function": "extractZMXContent",
			"member":   member.Name,
			"size":     len(raw),
		}).Debug("extracted design from archive")

		return decodeZMXBytes(raw)
	}

	return "", errors.New("archive contains no .zmx design file")
}
