// Package format implements the container codec: binary framing, the
// header/metadata codec, and the full and selective payload codecs.
//
// Container layout (bit-exact):
//
//	offset 0:    4-byte magic constant "OBB1"
//	offset 4:    4-byte unsigned little-endian header length L
//	offset 8:    L bytes of UTF-8 JSON header
//	offset 8+L:  remaining bytes = payload
package format

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Magic is the fixed 4-byte marker at the start of every container.
var Magic = [4]byte{'O', 'B', 'B', '1'}

// maxHeaderLength bounds the declared header size so a corrupted length
// field cannot drive an unbounded allocation.
const maxHeaderLength = 16 << 20

// WriteContainer emits magic || u32LE(len(header)) || header || payload.
func WriteContainer(w io.Writer, header, payload []byte) error {
	if _, err := w.Write(Magic[:]); err != nil {
		return fmt.Errorf("failed to write magic: %w", err)
	}

	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(header)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("failed to write header length: %w", err)
	}

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}
	return nil
}

// ReadContainer validates the magic, then returns the header bytes and
// everything after them as the payload. The payload has no length
// accounting of its own; it runs to end of stream.
func ReadContainer(r io.Reader) (header, payload []byte, err error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedContainer, err)
	}
	if !bytes.Equal(magic[:], Magic[:]) {
		return nil, nil, ErrMagicMismatch
	}

	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, nil, fmt.Errorf("%w: missing header length: %v", ErrMalformedContainer, err)
	}
	headerLen := binary.LittleEndian.Uint32(lenBuf[:])
	if headerLen == 0 || headerLen > maxHeaderLength {
		return nil, nil, fmt.Errorf("%w: implausible header length %d", ErrMalformedContainer, headerLen)
	}

	header = make([]byte, headerLen)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, nil, fmt.Errorf("%w: header truncated: %v", ErrMalformedContainer, err)
	}

	payload, err = io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: payload read failed: %v", ErrMalformedContainer, err)
	}
	return header, payload, nil
}

// IsValidContainer reports whether the file at path begins with the
// magic bytes. It never returns an error: I/O and permission failures
// simply yield false.
func IsValidContainer(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	var magic [4]byte
	if _, err := io.ReadFull(f, magic[:]); err != nil {
		return false
	}
	return bytes.Equal(magic[:], Magic[:])
}
