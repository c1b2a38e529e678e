package format

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainerRoundTrip(t *testing.T) {
	header := []byte(`{"version":"1.0"}`)
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	var buf bytes.Buffer
	require.NoError(t, WriteContainer(&buf, header, payload))

	gotHeader, gotPayload, err := ReadContainer(&buf)
	require.NoError(t, err)
	assert.Equal(t, header, gotHeader)
	assert.Equal(t, payload, gotPayload)
}

func TestContainerEmptyPayload(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteContainer(&buf, []byte(`{}`), nil))

	gotHeader, gotPayload, err := ReadContainer(&buf)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), gotHeader)
	assert.Empty(t, gotPayload)
}

func TestReadContainerRejectsWrongMagic(t *testing.T) {
	cases := []struct {
		name  string
		magic []byte
	}{
		{"zip archive", []byte("PK\x03\x04")},
		{"wrong version", []byte("OBB2")},
		{"lowercase", []byte("obb1")},
		{"zeroes", []byte{0, 0, 0, 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := append(append([]byte(nil), tc.magic...), make([]byte, 64)...)
			_, _, err := ReadContainer(bytes.NewReader(data))
			assert.ErrorIs(t, err, ErrMagicMismatch)
		})
	}
}

func TestReadContainerTruncation(t *testing.T) {
	header := []byte(`{"version":"1.0"}`)
	var full bytes.Buffer
	require.NoError(t, WriteContainer(&full, header, []byte("payload")))

	cases := []struct {
		name string
		n    int
	}{
		{"empty stream", 0},
		{"partial magic", 2},
		{"missing header length", 6},
		{"truncated header", 8 + len(header)/2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ReadContainer(bytes.NewReader(full.Bytes()[:tc.n]))
			assert.ErrorIs(t, err, ErrMalformedContainer)
		})
	}
}

func TestReadContainerRejectsImplausibleHeaderLength(t *testing.T) {
	build := func(length uint32) []byte {
		var buf bytes.Buffer
		buf.Write(Magic[:])
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], length)
		buf.Write(lenBuf[:])
		return buf.Bytes()
	}

	for _, length := range []uint32{0, maxHeaderLength + 1, 0xFFFFFFFF} {
		_, _, err := ReadContainer(bytes.NewReader(build(length)))
		assert.ErrorIs(t, err, ErrMalformedContainer, "header length %d", length)
	}
}

func TestIsValidContainer(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.obb")
	var buf bytes.Buffer
	require.NoError(t, WriteContainer(&buf, []byte(`{}`), nil))
	require.NoError(t, os.WriteFile(valid, buf.Bytes(), 0o644))

	invalid := filepath.Join(dir, "invalid.obb")
	require.NoError(t, os.WriteFile(invalid, []byte("not a container"), 0o644))

	short := filepath.Join(dir, "short.obb")
	require.NoError(t, os.WriteFile(short, []byte("OB"), 0o644))

	assert.True(t, IsValidContainer(valid))
	assert.False(t, IsValidContainer(invalid))
	assert.False(t, IsValidContainer(short))
	assert.False(t, IsValidContainer(filepath.Join(dir, "missing.obb")))
}
