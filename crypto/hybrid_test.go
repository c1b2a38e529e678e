package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	recipient, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error: %v", err)
	}

	cases := []struct {
		name      string
		plaintext []byte
	}{
		{"short message", []byte("hello")},
		{"empty plaintext", []byte{}},
		{"binary data", []byte{0x00, 0xFF, 0x42, 0x00, 0x01}},
		{"large payload", bytes.Repeat([]byte("surface data "), 4096)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ciphertext, ephemeral, err := Encrypt(tc.plaintext, recipient.Public)
			if err != nil {
				t.Fatalf("Encrypt() error: %v", err)
			}
			if ephemeral == nil {
				t.Fatal("Encrypt() returned nil ephemeral key")
			}
			if bytes.Contains(ciphertext, tc.plaintext) && len(tc.plaintext) > 4 {
				t.Error("ciphertext contains plaintext")
			}

			decrypted, err := Decrypt(ciphertext, ephemeral, recipient.Private)
			if err != nil {
				t.Fatalf("Decrypt() error: %v", err)
			}
			if !bytes.Equal(decrypted, tc.plaintext) {
				t.Errorf("Decrypt() = %q, want %q", decrypted, tc.plaintext)
			}
		})
	}
}

func TestEncryptNeverReusesEphemeralKeys(t *testing.T) {
	recipient, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error: %v", err)
	}
	plaintext := []byte("same plaintext both times")

	ct1, eph1, err := Encrypt(plaintext, recipient.Public)
	if err != nil {
		t.Fatalf("first Encrypt() error: %v", err)
	}
	ct2, eph2, err := Encrypt(plaintext, recipient.Public)
	if err != nil {
		t.Fatalf("second Encrypt() error: %v", err)
	}

	if eph1.X.Cmp(eph2.X) == 0 {
		t.Error("two Encrypt() calls used the same ephemeral key")
	}
	if bytes.Equal(ct1, ct2) {
		t.Error("two Encrypt() calls produced identical ciphertexts")
	}
}

func TestDecryptWithWrongKeyFails(t *testing.T) {
	recipient, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error: %v", err)
	}
	other, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error: %v", err)
	}

	ciphertext, ephemeral, err := Encrypt([]byte("secret prescription"), recipient.Public)
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}

	if _, err := Decrypt(ciphertext, ephemeral, other.Private); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("Decrypt() with wrong key error = %v, want ErrDecryptionFailed", err)
	}
}

func TestDecryptRejectsTamperedCiphertext(t *testing.T) {
	recipient, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error: %v", err)
	}

	ciphertext, ephemeral, err := Encrypt([]byte("secret prescription"), recipient.Public)
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}

	// Flip one bit in every byte position class: nonce, body, tag
	for _, pos := range []int{0, len(ciphertext) / 2, len(ciphertext) - 1} {
		tampered := make([]byte, len(ciphertext))
		copy(tampered, ciphertext)
		tampered[pos] ^= 0x01

		if _, err := Decrypt(tampered, ephemeral, recipient.Private); !errors.Is(err, ErrDecryptionFailed) {
			t.Errorf("Decrypt() of ciphertext tampered at %d error = %v, want ErrDecryptionFailed", pos, err)
		}
	}
}

func TestDecryptRejectsTruncatedCiphertext(t *testing.T) {
	recipient, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error: %v", err)
	}

	cases := []struct {
		name       string
		ciphertext []byte
	}{
		{"empty", nil},
		{"shorter than nonce", make([]byte, gcmNonceSize-1)},
		{"nonce only", make([]byte, gcmNonceSize)},
		{"missing tag byte", make([]byte, gcmNonceSize+gcmTagSize-1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decrypt(tc.ciphertext, recipient.Public, recipient.Private); !errors.Is(err, ErrDecryptionFailed) {
				t.Errorf("Decrypt() error = %v, want ErrDecryptionFailed", err)
			}
		})
	}
}

func TestEncryptRejectsBadRecipientKey(t *testing.T) {
	if _, _, err := Encrypt([]byte("data"), nil); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Encrypt(nil key) error = %v, want ErrInvalidKey", err)
	}
}
