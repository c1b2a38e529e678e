package format

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/obb/crypto"
	"github.com/opd-ai/obb/model"
)

// PayloadModeSelective is the mode discriminator inside a selective
// payload record.
const PayloadModeSelective = "selective"

// selectivePayload is the structured payload used when surfaces carry
// mixed visibility. Public surfaces ride in clear, redacted surfaces
// survive as ordinals only, and all encrypted surfaces share a single
// ciphertext so each container costs one ECDH operation.
type selectivePayload struct {
	Mode                   string          `json:"mode"`
	PublicElements         []model.Surface `json:"public_elements"`
	RedactedOrdinals       []int           `json:"redacted_ordinals"`
	EncryptedBlobB64       string          `json:"encrypted_blob_b64"`
	Wavelengths            []float64       `json:"wavelengths"`
	PrimaryWavelengthIndex int             `json:"primary_wavelength_index"`
	StopIndex              *int            `json:"stop_index,omitempty"`
	FieldType              model.FieldType `json:"field_type"`
	MaxField               float64         `json:"max_field"`
}

// encryptedBlob is the plaintext structure inside the selective
// ciphertext.
type encryptedBlob struct {
	Surfaces []model.Surface `json:"surfaces"`
}

// EncryptPayload serializes the whole group and encrypts it as a single
// opaque ciphertext (full-encryption mode).
func EncryptPayload(group model.SurfaceGroup, recipientPub *crypto.PublicKey) ([]byte, *crypto.PublicKey, error) {
	plaintext, err := json.Marshal(group)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to serialize surface group: %w", err)
	}
	defer crypto.ZeroBytes(plaintext)

	return crypto.Encrypt(plaintext, recipientPub)
}

// DecryptPayload reverses EncryptPayload.
func DecryptPayload(ciphertext []byte, ephemeralPub *crypto.PublicKey, ownPriv *crypto.PrivateKey) (*model.SurfaceGroup, error) {
	plaintext, err := crypto.Decrypt(ciphertext, ephemeralPub, ownPriv)
	if err != nil {
		return nil, err
	}
	defer crypto.ZeroBytes(plaintext)

	var group model.SurfaceGroup
	if err := json.Unmarshal(plaintext, &group); err != nil {
		return nil, fmt.Errorf("failed to decode decrypted payload: %w", err)
	}
	// The ordinal is the ordering authority regardless of the order
	// surfaces were supplied in at write time.
	group.SortSurfaces()
	return &group, nil
}

// EncryptPayloadSelective partitions the group by visibility and builds
// the structured selective payload. Public surfaces are serialized in
// clear, encrypted surfaces become one base64 ciphertext, redacted
// surfaces contribute only their ordinals.
//
// When nothing is marked encrypted, a fresh ephemeral key pair is still
// generated so the header shape stays uniform across containers, but no
// encryption call is made and the blob field is empty.
func EncryptPayloadSelective(group model.SurfaceGroup, recipientPub *crypto.PublicKey) ([]byte, *crypto.PublicKey, error) {
	encrypted := group.EncryptedSurfaces()
	redacted := group.RedactedSurfaces()

	payload := selectivePayload{
		Mode:                   PayloadModeSelective,
		PublicElements:         group.PublicSurfaces(),
		RedactedOrdinals:       make([]int, 0, len(redacted)),
		Wavelengths:            group.WavelengthsNm,
		PrimaryWavelengthIndex: group.PrimaryWavelengthIndex,
		StopIndex:              group.StopSurface,
		FieldType:              group.FieldType,
		MaxField:               group.MaxField,
	}
	for _, s := range redacted {
		payload.RedactedOrdinals = append(payload.RedactedOrdinals, s.Number)
	}

	var ephemeralPub *crypto.PublicKey
	if len(encrypted) > 0 {
		blobJSON, err := json.Marshal(encryptedBlob{Surfaces: encrypted})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to serialize protected surfaces: %w", err)
		}
		ciphertext, eph, err := crypto.Encrypt(blobJSON, recipientPub)
		crypto.ZeroBytes(blobJSON)
		if err != nil {
			return nil, nil, err
		}
		ephemeralPub = eph
		payload.EncryptedBlobB64 = base64.StdEncoding.EncodeToString(ciphertext)
	} else {
		// Keep header shape uniform even when nothing is protected.
		kp, err := crypto.GenerateKeyPair()
		if err != nil {
			return nil, nil, err
		}
		ephemeralPub = kp.Public
	}

	logrus.WithFields(logrus.Fields{
		"function":       "EncryptPayloadSelective",
		"public_count":   len(payload.PublicElements),
		"redacted_count": len(payload.RedactedOrdinals),
		"has_ciphertext": payload.EncryptedBlobB64 != "",
	}).Debug("Selective payload assembled")

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to serialize selective payload: %w", err)
	}
	return data, ephemeralPub, nil
}

// DecryptPayloadSelective reconstructs the full surface group from a
// selective payload: clear surfaces decode directly, the ciphertext is
// decrypted if present, and every redacted ordinal gets a placeholder
// surface with default geometry. The three groups are produced
// independently, so the result is re-sorted by surface number; the
// ordinal is the only ordering authority.
func DecryptPayloadSelective(payloadBytes []byte, ephemeralPub *crypto.PublicKey, ownPriv *crypto.PrivateKey) (*model.SurfaceGroup, error) {
	var payload selectivePayload
	if err := json.Unmarshal(payloadBytes, &payload); err != nil {
		return nil, fmt.Errorf("%w: not a selective payload: %v", ErrMalformedContainer, err)
	}

	surfaces := make([]model.Surface, 0, len(payload.PublicElements)+len(payload.RedactedOrdinals))
	surfaces = append(surfaces, payload.PublicElements...)

	if payload.EncryptedBlobB64 != "" {
		ciphertext, err := base64.StdEncoding.DecodeString(payload.EncryptedBlobB64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad encrypted blob encoding: %v", ErrMalformedContainer, err)
		}
		plaintext, err := crypto.Decrypt(ciphertext, ephemeralPub, ownPriv)
		if err != nil {
			return nil, err
		}
		var blob encryptedBlob
		err = json.Unmarshal(plaintext, &blob)
		crypto.ZeroBytes(plaintext)
		if err != nil {
			return nil, fmt.Errorf("failed to decode protected surfaces: %w", err)
		}
		surfaces = append(surfaces, blob.Surfaces...)
	}

	for _, ordinal := range payload.RedactedOrdinals {
		placeholder := model.NewSurface(ordinal)
		placeholder.Visibility = model.VisibilityRedacted
		placeholder.Comment = fmt.Sprintf("Surface %d (redacted)", ordinal)
		surfaces = append(surfaces, placeholder)
	}

	wavelengths := payload.Wavelengths
	if len(wavelengths) == 0 {
		wavelengths = []float64{model.DefaultWavelengthNm}
	}
	fieldType := payload.FieldType
	if fieldType == "" {
		fieldType = model.FieldAngle
	}

	group := &model.SurfaceGroup{
		Surfaces:               surfaces,
		StopSurface:            payload.StopIndex,
		WavelengthsNm:          wavelengths,
		PrimaryWavelengthIndex: payload.PrimaryWavelengthIndex,
		FieldType:              fieldType,
		MaxField:               payload.MaxField,
	}
	group.SortSurfaces()
	return group, nil
}

// DetectSelective sniffs whether payloadBytes is a selective payload
// record. A payload that is not valid JSON, or whose mode field is not
// "selective", is treated as a full-mode ciphertext. Ambiguity here
// resolves by fallback, never by error.
func DetectSelective(payloadBytes []byte) bool {
	var probe struct {
		Mode string `json:"mode"`
	}
	if err := json.Unmarshal(payloadBytes, &probe); err != nil {
		return false
	}
	return probe.Mode == PayloadModeSelective
}
