package format

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/opd-ai/obb/crypto"
	"github.com/opd-ai/obb/model"
)

// Header is the decoded header section: the public metadata plus the
// ephemeral public key for this container's hybrid encryption.
type Header struct {
	Metadata              model.Metadata
	EphemeralPublicKeyPEM string
}

// headerJSON is the flat on-disk record. efl_mm travels through the
// infinity sentinel because JSON cannot represent Inf; created_at is
// RFC 3339 text.
type headerJSON struct {
	Version            string     `json:"version"`
	VendorID           string     `json:"vendor_id"`
	Name               string     `json:"name"`
	EFLmm              float64    `json:"efl_mm"`
	NA                 float64    `json:"na"`
	DiameterMm         float64    `json:"diameter_mm"`
	SpectralRangeNm    [2]float64 `json:"spectral_range_nm"`
	NumSurfaces        int        `json:"num_surfaces"`
	CreatedAt          string     `json:"created_at,omitempty"`
	Signature          string     `json:"signature"`
	EphemeralPublicKey string     `json:"ephemeral_public_key"`
	Description        string     `json:"description,omitempty"`
	PartNumber         string     `json:"part_number,omitempty"`
}

// BuildHeader assembles a header from metadata and the ephemeral public
// key produced by the hybrid engine.
func BuildHeader(meta model.Metadata, ephemeralPub *crypto.PublicKey) (*Header, error) {
	pemBytes, err := crypto.MarshalPublicKeyPEM(ephemeralPub)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ephemeral key: %w", err)
	}
	return &Header{Metadata: meta, EphemeralPublicKeyPEM: string(pemBytes)}, nil
}

// SerializeHeader encodes a header as the flat JSON record.
func SerializeHeader(h *Header) ([]byte, error) {
	m := h.Metadata
	rec := headerJSON{
		Version:            m.Version,
		VendorID:           m.VendorID,
		Name:               m.Name,
		EFLmm:              model.EncodeInfinity(m.EFLmm),
		NA:                 m.NA,
		DiameterMm:         m.DiameterMm,
		SpectralRangeNm:    m.SpectralRangeNm,
		NumSurfaces:        m.NumSurfaces,
		Signature:          m.Signature,
		EphemeralPublicKey: h.EphemeralPublicKeyPEM,
		Description:        m.Description,
		PartNumber:         m.PartNumber,
	}
	if m.CreatedAt != nil {
		rec.CreatedAt = m.CreatedAt.UTC().Format(time.RFC3339)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize header: %w", err)
	}
	return data, nil
}

// DeserializeHeader decodes the flat JSON record back into a Header.
// Missing or mistyped fields yield ErrHeaderDecode.
func DeserializeHeader(data []byte) (*Header, error) {
	var rec headerJSON
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHeaderDecode, err)
	}
	if rec.Version == "" {
		return nil, fmt.Errorf("%w: missing version", ErrHeaderDecode)
	}
	if rec.VendorID == "" {
		return nil, fmt.Errorf("%w: missing vendor_id", ErrHeaderDecode)
	}
	if rec.Name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrHeaderDecode)
	}
	if rec.EphemeralPublicKey == "" {
		return nil, fmt.Errorf("%w: missing ephemeral_public_key", ErrHeaderDecode)
	}

	meta := model.Metadata{
		Version:         rec.Version,
		VendorID:        rec.VendorID,
		Name:            rec.Name,
		EFLmm:           model.DecodeInfinity(rec.EFLmm),
		NA:              rec.NA,
		DiameterMm:      rec.DiameterMm,
		SpectralRangeNm: rec.SpectralRangeNm,
		NumSurfaces:     rec.NumSurfaces,
		Signature:       rec.Signature,
		Description:     rec.Description,
		PartNumber:      rec.PartNumber,
	}
	if rec.CreatedAt != "" {
		ts, err := time.Parse(time.RFC3339, rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid created_at: %v", ErrHeaderDecode, err)
		}
		meta.CreatedAt = &ts
	}

	return &Header{Metadata: meta, EphemeralPublicKeyPEM: rec.EphemeralPublicKey}, nil
}

// ExtractMetadata returns the public metadata carried by the header.
func ExtractMetadata(h *Header) model.Metadata {
	return h.Metadata
}

// ExtractEphemeralKey parses the ephemeral public key out of the header.
func ExtractEphemeralKey(h *Header) (*crypto.PublicKey, error) {
	pub, err := crypto.ParsePublicKeyPEM([]byte(h.EphemeralPublicKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("%w: bad ephemeral key: %v", ErrHeaderDecode, err)
	}
	return pub, nil
}
