package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/hkdf"
)

// ErrDecryptionFailed is the single opaque failure for anything that
// goes wrong during authenticated decryption: a tampered ciphertext, a
// wrong key, or truncated input. No further detail is exposed so the
// decrypt path cannot be used as an oracle.
var ErrDecryptionFailed = errors.New("decryption failed")

const (
	// hkdfInfo binds derived keys to this protocol and version.
	hkdfInfo = "obb-hybrid-v1"

	symmetricKeySize = 32
	gcmNonceSize     = 12
	gcmTagSize       = 16
)

// deriveSharedKey runs ECDH between the private and public halves and
// stretches the shared secret into an AES-256 key with HKDF-SHA256.
// The intermediate secret is wiped before returning.
func deriveSharedKey(priv *ecdsa.PrivateKey, pub *ecdsa.PublicKey) ([]byte, error) {
	ecdhPriv, err := priv.ECDH()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	ecdhPub, err := pub.ECDH()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	secret, err := ecdhPriv.ECDH(ecdhPub)
	if err != nil {
		return nil, fmt.Errorf("failed to compute shared secret: %w", err)
	}

	key := make([]byte, symmetricKeySize)
	kdf := hkdf.New(sha256.New, secret, nil, []byte(hkdfInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		ZeroBytes(secret)
		return nil, fmt.Errorf("key derivation failed: %w", err)
	}

	ZeroBytes(secret)
	return key, nil
}

// Encrypt encrypts plaintext for the recipient using hybrid encryption:
// a fresh ephemeral P-256 pair, ECDH against the recipient public key,
// HKDF-SHA256 key derivation, then AES-256-GCM.
//
// The ciphertext layout is nonce || ciphertext+tag; the ephemeral public
// key is returned for storage in the container header. The ephemeral
// private half lives only for the duration of this call and is never
// retained, so each container has forward secrecy with respect to every
// other container encrypted to the same recipient key.
func Encrypt(plaintext []byte, recipientPub *ecdsa.PublicKey) ([]byte, *ecdsa.PublicKey, error) {
	if err := checkCurve(recipientPub); err != nil {
		return nil, nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":       "Encrypt",
		"plaintext_size": len(plaintext),
	}).Debug("Encrypting payload with fresh ephemeral key")

	ephemeral, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate ephemeral key: %w", err)
	}
	defer ZeroScalar(ephemeral.D)

	key, err := deriveSharedKey(ephemeral, recipientPub)
	if err != nil {
		return nil, nil, err
	}
	defer ZeroBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, gcmNonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Output: nonce || ciphertext+tag
	out := gcm.Seal(nonce, nonce, plaintext, nil)

	logrus.WithFields(logrus.Fields{
		"function":        "Encrypt",
		"ciphertext_size": len(out),
	}).Debug("Payload encrypted")

	return out, &ephemeral.PublicKey, nil
}

// Decrypt reverses Encrypt: it recomputes the shared secret from the
// recipient's own private key and the ephemeral public key recovered
// from the container header, re-derives the symmetric key, and opens
// the AEAD ciphertext.
//
// Structural problems with the key material return ErrInvalidKey; every
// authentication-class failure returns the opaque ErrDecryptionFailed.
func Decrypt(ciphertext []byte, ephemeralPub *ecdsa.PublicKey, ownPriv *ecdsa.PrivateKey) ([]byte, error) {
	if ownPriv == nil {
		return nil, fmt.Errorf("%w: nil private key", ErrInvalidKey)
	}
	if err := checkCurve(ephemeralPub); err != nil {
		return nil, err
	}
	if len(ciphertext) < gcmNonceSize+gcmTagSize {
		return nil, ErrDecryptionFailed
	}

	key, err := deriveSharedKey(ownPriv, ephemeralPub)
	if err != nil {
		return nil, err
	}
	defer ZeroBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := ciphertext[:gcmNonceSize]
	plaintext, err := gcm.Open(nil, nonce, ciphertext[gcmNonceSize:], nil)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":        "Decrypt",
			"ciphertext_size": len(ciphertext),
		}).Warn("Authenticated decryption failed")
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}
