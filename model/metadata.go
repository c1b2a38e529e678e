package model

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// FormatVersion is the current container format version string.
const FormatVersion = "1.0"

var vendorIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9\-]*$`)

// Metadata is the public, always-readable header record of a container.
//
// Signature and CreatedAt are write-time fields: the writer overwrites
// whatever the caller put there, so callers should leave them zero.
type Metadata struct {
	Version         string     `json:"version"`
	VendorID        string     `json:"vendor_id"`
	Name            string     `json:"name"`
	EFLmm           float64    `json:"efl_mm"`
	NA              float64    `json:"na"`
	DiameterMm      float64    `json:"diameter_mm"`
	SpectralRangeNm [2]float64 `json:"spectral_range_nm"`
	NumSurfaces     int        `json:"num_surfaces"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	Signature       string     `json:"signature"`
	Description     string     `json:"description,omitempty"`
	PartNumber      string     `json:"part_number,omitempty"`
}

// Validate checks the metadata field constraints.
func (m Metadata) Validate() error {
	if len(m.VendorID) < 3 || len(m.VendorID) > 50 {
		return fmt.Errorf("vendor_id must be 3-50 characters, got %d", len(m.VendorID))
	}
	if !vendorIDPattern.MatchString(m.VendorID) {
		return fmt.Errorf("vendor_id %q must be lowercase alphanumeric with hyphens", m.VendorID)
	}
	if len(m.Name) < 1 || len(m.Name) > 100 {
		return fmt.Errorf("name must be 1-100 characters, got %d", len(m.Name))
	}
	if m.NA < 0 || m.NA > 1.5 {
		return fmt.Errorf("numerical aperture %g out of range [0, 1.5]", m.NA)
	}
	if m.DiameterMm <= 0 {
		return fmt.Errorf("diameter %g mm must be positive", m.DiameterMm)
	}
	if m.NumSurfaces < 1 {
		return errors.New("num_surfaces must be at least 1")
	}
	if len(m.Description) > 500 {
		return fmt.Errorf("description exceeds 500 characters (%d)", len(m.Description))
	}
	if len(m.PartNumber) > 50 {
		return fmt.Errorf("part_number exceeds 50 characters (%d)", len(m.PartNumber))
	}
	return nil
}

// HasSignature reports whether the signature field is populated.
func (m Metadata) HasSignature() bool {
	return m.Signature != ""
}

// SpectralRangeString formats the spectral range for display.
func (m Metadata) SpectralRangeString() string {
	return fmt.Sprintf("%.0f-%.0f nm", m.SpectralRangeNm[0], m.SpectralRangeNm[1])
}
