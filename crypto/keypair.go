// Package crypto implements the cryptographic core of the container
// format: P-256 key material, the hybrid encryption engine (ephemeral
// ECDH + HKDF + AES-256-GCM) and the ECDSA signing engine.
//
// All operations are synchronous, in-memory transformations. Key pairs
// are immutable once loaded and safe to share across goroutines.
//
// Example:
//
//	keys, err := crypto.GenerateKeyPair()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ciphertext, ephemeral, err := crypto.Encrypt(plaintext, keys.Public)
package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrInvalidKey reports structurally unusable key material: a nil key,
// a key on the wrong curve, or undecodable PEM. It is deliberately
// distinct from ErrDecryptionFailed.
var ErrInvalidKey = errors.New("invalid key material")

const (
	pemTypePrivateKey = "PRIVATE KEY"
	pemTypePublicKey  = "PUBLIC KEY"
)

// PrivateKey and PublicKey alias the stdlib ECDSA types so callers do
// not need to import crypto/ecdsa alongside this package.
type (
	PrivateKey = ecdsa.PrivateKey
	PublicKey  = ecdsa.PublicKey
)

// KeyPair is a P-256 key pair. The private half is exclusively owned by
// its holder and never serialized into a container; the public half is
// freely shareable.
type KeyPair struct {
	Private *ecdsa.PrivateKey
	Public  *ecdsa.PublicKey
}

// GenerateKeyPair creates a new random P-256 key pair.
func GenerateKeyPair() (*KeyPair, error) {
	logrus.WithFields(logrus.Fields{
		"function": "GenerateKeyPair",
		"curve":    "P-256",
	}).Debug("Generating key pair")

	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key pair: %w", err)
	}

	return &KeyPair{Private: priv, Public: &priv.PublicKey}, nil
}

// checkCurve rejects public keys that are nil or not on P-256. All
// protocol operations require the one fixed curve.
func checkCurve(pub *ecdsa.PublicKey) error {
	if pub == nil {
		return fmt.Errorf("%w: nil public key", ErrInvalidKey)
	}
	if pub.Curve != elliptic.P256() {
		return fmt.Errorf("%w: expected P-256, got %s", ErrInvalidKey, pub.Curve.Params().Name)
	}
	return nil
}

// MarshalPrivateKeyPEM encodes a private key as PKCS#8 PEM text.
func MarshalPrivateKeyPEM(priv *ecdsa.PrivateKey) ([]byte, error) {
	if priv == nil {
		return nil, fmt.Errorf("%w: nil private key", ErrInvalidKey)
	}
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal private key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: pemTypePrivateKey, Bytes: der}), nil
}

// MarshalPublicKeyPEM encodes a public key as PKIX PEM text.
func MarshalPublicKeyPEM(pub *ecdsa.PublicKey) ([]byte, error) {
	if err := checkCurve(pub); err != nil {
		return nil, err
	}
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal public key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: pemTypePublicKey, Bytes: der}), nil
}

// ParsePrivateKeyPEM decodes a PKCS#8 PEM private key and verifies it
// is a P-256 ECDSA key.
func ParsePrivateKeyPEM(data []byte) (*ecdsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != pemTypePrivateKey {
		return nil, fmt.Errorf("%w: no PEM private key block found", ErrInvalidKey)
	}
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	priv, ok := key.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an ECDSA private key", ErrInvalidKey)
	}
	if priv.Curve != elliptic.P256() {
		return nil, fmt.Errorf("%w: expected P-256, got %s", ErrInvalidKey, priv.Curve.Params().Name)
	}
	return priv, nil
}

// ParsePublicKeyPEM decodes a PKIX PEM public key and verifies it is a
// P-256 ECDSA key.
func ParsePublicKeyPEM(data []byte) (*ecdsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != pemTypePublicKey {
		return nil, fmt.Errorf("%w: no PEM public key block found", ErrInvalidKey)
	}
	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	pub, ok := key.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an ECDSA public key", ErrInvalidKey)
	}
	if err := checkCurve(pub); err != nil {
		return nil, err
	}
	return pub, nil
}
