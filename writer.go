package obb

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/obb/crypto"
	"github.com/opd-ai/obb/format"
	"github.com/opd-ai/obb/model"
)

// Write emits a full-encryption container: the entire surface group is
// serialized and encrypted as a single ciphertext to the recipient's
// public key, then signed with the vendor's private key.
//
// The metadata's Signature and CreatedAt fields are write-time-only:
// whatever the caller put there is overwritten.
func Write(w io.Writer, group model.SurfaceGroup, meta model.Metadata, vendorPriv *crypto.PrivateKey, recipientPub *crypto.PublicKey) error {
	payload, ephemeralPub, err := prepare(group, &meta, recipientPub, false)
	if err != nil {
		return err
	}
	return seal(w, payload, ephemeralPub, &meta, vendorPriv)
}

// WriteSelective emits a selective-encryption container driven by each
// surface's visibility tag. The vendor signature covers the serialized
// selective payload structure, ciphertext included.
func WriteSelective(w io.Writer, group model.SurfaceGroup, meta model.Metadata, vendorPriv *crypto.PrivateKey, recipientPub *crypto.PublicKey) error {
	payload, ephemeralPub, err := prepare(group, &meta, recipientPub, true)
	if err != nil {
		return err
	}
	return seal(w, payload, ephemeralPub, &meta, vendorPriv)
}

// prepare validates inputs and produces the payload bytes plus the
// ephemeral public key for the header.
func prepare(group model.SurfaceGroup, meta *model.Metadata, recipientPub *crypto.PublicKey, selective bool) ([]byte, *crypto.PublicKey, error) {
	if err := group.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid surface group: %w", err)
	}
	if meta.Version == "" {
		meta.Version = model.FormatVersion
	}
	if err := meta.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid metadata: %w", err)
	}

	if selective {
		return format.EncryptPayloadSelective(group, recipientPub)
	}
	return format.EncryptPayload(group, recipientPub)
}

// seal signs the payload, stamps the metadata, and writes the framed
// container.
func seal(w io.Writer, payload []byte, ephemeralPub *crypto.PublicKey, meta *model.Metadata, vendorPriv *crypto.PrivateKey) error {
	signature, err := crypto.Sign(payload, vendorPriv)
	if err != nil {
		return err
	}

	now := crypto.GetDefaultTimeProvider().Now()
	meta.Signature = signature
	meta.CreatedAt = &now

	header, err := format.BuildHeader(*meta, ephemeralPub)
	if err != nil {
		return err
	}
	headerBytes, err := format.SerializeHeader(header)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"function":     "seal",
		"vendor_id":    meta.VendorID,
		"header_size":  len(headerBytes),
		"payload_size": len(payload),
	}).Info("Writing container")

	return format.WriteContainer(w, headerBytes, payload)
}

// WriteFile writes a full-encryption container to path, creating parent
// directories as needed.
func WriteFile(path string, group model.SurfaceGroup, meta model.Metadata, vendorPriv *crypto.PrivateKey, recipientPub *crypto.PublicKey) error {
	return writeFileWith(path, func(f io.Writer) error {
		return Write(f, group, meta, vendorPriv, recipientPub)
	})
}

// WriteFileSelective writes a selective-encryption container to path.
func WriteFileSelective(path string, group model.SurfaceGroup, meta model.Metadata, vendorPriv *crypto.PrivateKey, recipientPub *crypto.PublicKey) error {
	return writeFileWith(path, func(f io.Writer) error {
		return WriteSelective(f, group, meta, vendorPriv, recipientPub)
	})
}

func writeFileWith(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create container file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
