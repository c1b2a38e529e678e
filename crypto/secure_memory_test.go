package crypto

import (
	"math/big"
	"testing"
	"time"
)

func TestSecureWipe(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	if err := SecureWipe(data); err != nil {
		t.Fatalf("SecureWipe() error: %v", err)
	}
	for i, b := range data {
		if b != 0 {
			t.Errorf("byte %d = %d after wipe, want 0", i, b)
		}
	}
}

func TestSecureWipeNil(t *testing.T) {
	if err := SecureWipe(nil); err == nil {
		t.Error("SecureWipe(nil) expected error")
	}
}

func TestZeroBytes(t *testing.T) {
	data := []byte{0xFF, 0xFF}
	ZeroBytes(data)
	if data[0] != 0 || data[1] != 0 {
		t.Error("ZeroBytes() left non-zero bytes")
	}
	// Nil must not panic
	ZeroBytes(nil)
}

func TestZeroScalar(t *testing.T) {
	d := big.NewInt(0x1234_5678_9ABC)
	backing := d.Bits()

	ZeroScalar(d)

	if d.Sign() != 0 {
		t.Errorf("scalar = %v after wipe, want 0", d)
	}
	for i, w := range backing {
		if w != 0 {
			t.Errorf("backing word %d = %x after wipe, want 0", i, w)
		}
	}

	// Nil must not panic
	ZeroScalar(nil)
}

type fixedTimeProvider struct{ at time.Time }

func (f fixedTimeProvider) Now() time.Time { return f.at }

func TestTimeProviderOverride(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	SetDefaultTimeProvider(fixedTimeProvider{at: fixed})
	defer SetDefaultTimeProvider(nil)

	if got := GetDefaultTimeProvider().Now(); !got.Equal(fixed) {
		t.Errorf("Now() = %v, want %v", got, fixed)
	}

	SetDefaultTimeProvider(nil)
	if got := GetDefaultTimeProvider().Now(); got.IsZero() {
		t.Error("default provider returned zero time")
	}
}
