package crypto

import (
	"crypto/subtle"
	"errors"
	"math/big"
	"runtime"
)

// SecureWipe attempts to securely erase the contents of a byte slice
// containing sensitive data. It returns an error if the slice is nil.
func SecureWipe(data []byte) error {
	if data == nil {
		return errors.New("cannot wipe nil data")
	}

	// The constant-time compare keeps the compiler from proving the
	// buffer is dead and eliding the overwrite.
	zeros := make([]byte, len(data))
	subtle.ConstantTimeCompare(data, zeros)
	copy(data, zeros)

	runtime.KeepAlive(data)
	runtime.KeepAlive(zeros)

	return nil
}

// ZeroBytes erases the contents of a byte slice containing sensitive
// data. This is a convenience wrapper that ignores SecureWipe's error.
func ZeroBytes(data []byte) {
	_ = SecureWipe(data)
}

// ZeroScalar erases the backing words of a big integer holding a
// private scalar. The integer is left holding zero.
func ZeroScalar(d *big.Int) {
	if d == nil {
		return
	}
	bits := d.Bits()
	for i := range bits {
		bits[i] = 0
	}
	d.SetInt64(0)
	runtime.KeepAlive(bits)
}
