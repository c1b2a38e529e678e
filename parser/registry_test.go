package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/obb/model"
)

type fakeParser struct {
	exts []string
}

func (f *fakeParser) Parse(path string) (*model.SurfaceGroup, error) {
	g := model.NewSurfaceGroup([]model.Surface{model.NewSurface(0)})
	return &g, nil
}

func (f *fakeParser) Extensions() []string { return f.exts }

func TestRegistryRegisterAndRoute(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&fakeParser{exts: []string{".abc"}}))

	p, err := r.ParserFor("/tmp/design.abc")
	require.NoError(t, err)
	assert.NotNil(t, p)

	p, err = r.ParserFor("/tmp/design.ABC")
	require.NoError(t, err, "extension matching is case-insensitive")
	assert.NotNil(t, p)

	group, err := r.Parse("/tmp/design.abc")
	require.NoError(t, err)
	assert.Equal(t, 1, group.NumSurfaces())
}

func TestRegistryRejectsDuplicateExtension(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&fakeParser{exts: []string{".abc"}}))
	assert.Error(t, r.Register(&fakeParser{exts: []string{".abc"}}))
}

func TestRegistryUnknownExtension(t *testing.T) {
	r := NewRegistry()
	_, err := r.ParserFor("/tmp/design.step")
	assert.Error(t, err)

	_, err = r.Parse("/tmp/design.step")
	assert.Error(t, err)
}

func TestDefaultRegistryHandlesZemax(t *testing.T) {
	r := DefaultRegistry()

	exts := r.Extensions()
	assert.Contains(t, exts, ".zmx")
	assert.Contains(t, exts, ".zar")

	// Route an actual zmx fixture end to end
	path := filepath.Join(t.TempDir(), "singlet.zmx")
	content := "SURF 0\n  CURV 0.02\n  THIC 5.0\n  GLAS N-BK7\nSURF 1\n  THIC 0.0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	group, err := r.Parse(path)
	require.NoError(t, err)
	assert.Equal(t, 2, group.NumSurfaces())
}
