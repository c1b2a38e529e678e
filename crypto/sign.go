package crypto

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrSignatureDecode reports a signature string that is not valid
// base64-encoded signature material. It is distinct from a well-formed
// signature that simply does not verify, so callers can tell corruption
// from forgery.
var ErrSignatureDecode = errors.New("malformed signature encoding")

// Sign produces an ECDSA P-256 signature over the SHA-256 digest of
// data, encoded as standard base64 for embedding in the header.
//
// Signatures are always computed over encrypted bytes, never plaintext:
// a verifier can authenticate a vendor's claim about a container
// without holding the decryption key.
func Sign(data []byte, priv *ecdsa.PrivateKey) (string, error) {
	if priv == nil {
		return "", fmt.Errorf("%w: nil private key", ErrInvalidKey)
	}

	digest := sha256.Sum256(data)
	sig, err := ecdsa.SignASN1(rand.Reader, priv, digest[:])
	if err != nil {
		return "", fmt.Errorf("failed to sign payload: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function":       "Sign",
		"data_size":      len(data),
		"signature_size": len(sig),
	}).Debug("Payload signed")

	return base64.StdEncoding.EncodeToString(sig), nil
}

// Verify checks sigB64 against data and the signer's public key.
//
// It returns (false, nil) for a well-formed signature that does not
// verify, and a non-nil ErrSignatureDecode for a signature string that
// cannot be decoded at all.
func Verify(data []byte, sigB64 string, pub *ecdsa.PublicKey) (bool, error) {
	if err := checkCurve(pub); err != nil {
		return false, err
	}
	if sigB64 == "" {
		return false, fmt.Errorf("%w: empty signature", ErrSignatureDecode)
	}

	sig, err := base64.StdEncoding.DecodeString(sigB64)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrSignatureDecode, err)
	}

	digest := sha256.Sum256(data)
	ok := ecdsa.VerifyASN1(pub, digest[:], sig)
	if !ok {
		logrus.WithFields(logrus.Fields{
			"function":  "Verify",
			"data_size": len(data),
		}).Warn("Signature verification failed")
	}
	return ok, nil
}
