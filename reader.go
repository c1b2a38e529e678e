package obb

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/obb/crypto"
	"github.com/opd-ai/obb/format"
	"github.com/opd-ai/obb/model"
)

// ReadMetadata reads only the public header of a container. It requires
// no key material and performs no cryptographic work.
func ReadMetadata(r io.Reader) (model.Metadata, error) {
	headerBytes, _, err := format.ReadContainer(r)
	if err != nil {
		return model.Metadata{}, err
	}
	header, err := format.DeserializeHeader(headerBytes)
	if err != nil {
		return model.Metadata{}, err
	}
	return format.ExtractMetadata(header), nil
}

// ReadAndDecrypt reads a container, optionally verifies the vendor
// signature, and decrypts the payload back into a surface group.
//
// Verification runs over the raw payload bytes before any decryption is
// attempted and fails closed: unauthenticated ciphertext is never
// opened by this path. Full versus selective payload encoding is
// auto-detected; a payload that does not parse as a selective record is
// treated as a full-mode ciphertext.
func ReadAndDecrypt(r io.Reader, recipientPriv *crypto.PrivateKey, vendorPub *crypto.PublicKey, verifySignature bool) (model.Metadata, *model.SurfaceGroup, error) {
	headerBytes, payload, err := format.ReadContainer(r)
	if err != nil {
		return model.Metadata{}, nil, err
	}
	header, err := format.DeserializeHeader(headerBytes)
	if err != nil {
		return model.Metadata{}, nil, err
	}

	meta := format.ExtractMetadata(header)
	ephemeralPub, err := format.ExtractEphemeralKey(header)
	if err != nil {
		return model.Metadata{}, nil, err
	}

	if verifySignature {
		ok, err := crypto.Verify(payload, meta.Signature, vendorPub)
		if err != nil {
			return model.Metadata{}, nil, err
		}
		if !ok {
			return model.Metadata{}, nil, format.ErrSignatureInvalid
		}
	}

	var group *model.SurfaceGroup
	if format.DetectSelective(payload) {
		group, err = format.DecryptPayloadSelective(payload, ephemeralPub, recipientPriv)
	} else {
		group, err = format.DecryptPayload(payload, ephemeralPub, recipientPriv)
	}
	if err != nil {
		return model.Metadata{}, nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":     "ReadAndDecrypt",
		"vendor_id":    meta.VendorID,
		"num_surfaces": group.NumSurfaces(),
	}).Debug("Container decrypted")

	return meta, group, nil
}

// ReadMetadataFile reads the public metadata from the container at path.
func ReadMetadataFile(path string) (model.Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Metadata{}, fmt.Errorf("failed to open container: %w", err)
	}
	defer f.Close()
	return ReadMetadata(f)
}

// ReadFile reads and decrypts the container at path.
func ReadFile(path string, recipientPriv *crypto.PrivateKey, vendorPub *crypto.PublicKey, verifySignature bool) (model.Metadata, *model.SurfaceGroup, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Metadata{}, nil, fmt.Errorf("failed to open container: %w", err)
	}
	defer f.Close()
	return ReadAndDecrypt(f, recipientPriv, vendorPub, verifySignature)
}

// IsValidContainer reports whether the file at path starts with the
// container magic bytes. It never returns an error.
func IsValidContainer(path string) bool {
	return format.IsValidContainer(path)
}
