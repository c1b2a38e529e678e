package crypto

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Key files written by SaveKeyPair.
const (
	privateKeySuffix = "_private.pem"
	publicKeySuffix  = "_public.pem"
)

// SaveKeyPair writes both halves of a key pair to dir as PEM files
// named <prefix>_private.pem and <prefix>_public.pem. The private key
// file is created with owner-only permissions.
//
// It returns the two paths written (private first).
func SaveKeyPair(kp *KeyPair, dir, prefix string) (string, string, error) {
	if kp == nil || kp.Private == nil {
		return "", "", fmt.Errorf("%w: nil key pair", ErrInvalidKey)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", "", fmt.Errorf("failed to create key directory: %w", err)
	}

	privPEM, err := MarshalPrivateKeyPEM(kp.Private)
	if err != nil {
		return "", "", err
	}
	pubPEM, err := MarshalPublicKeyPEM(kp.Public)
	if err != nil {
		ZeroBytes(privPEM)
		return "", "", err
	}

	privPath := filepath.Join(dir, prefix+privateKeySuffix)
	pubPath := filepath.Join(dir, prefix+publicKeySuffix)

	if err := os.WriteFile(privPath, privPEM, 0o600); err != nil {
		ZeroBytes(privPEM)
		return "", "", fmt.Errorf("failed to write private key: %w", err)
	}
	ZeroBytes(privPEM)

	if err := os.WriteFile(pubPath, pubPEM, 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write public key: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function":     "SaveKeyPair",
		"private_path": privPath,
		"public_path":  pubPath,
	}).Info("Key pair saved")

	return privPath, pubPath, nil
}

// LoadKeyPair reads a private key PEM file and returns the full pair.
func LoadKeyPair(privateKeyPath string) (*KeyPair, error) {
	priv, err := LoadPrivateKey(privateKeyPath)
	if err != nil {
		return nil, err
	}
	return &KeyPair{Private: priv, Public: &priv.PublicKey}, nil
}

// LoadPrivateKey reads and parses a PEM private key file.
func LoadPrivateKey(path string) (*PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key file: %w", err)
	}
	priv, err := ParsePrivateKeyPEM(data)
	ZeroBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return priv, nil
}

// LoadPublicKey reads and parses a PEM public key file.
func LoadPublicKey(path string) (*PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read public key file: %w", err)
	}
	pub, err := ParsePublicKeyPEM(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pub, nil
}
