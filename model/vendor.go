package model

import (
	"fmt"
	"sync"
	"time"
)

// VendorInfo describes a vendor identity and its public signing key.
// The key is the PEM-encoded public half of the vendor's P-256 pair;
// containers signed by that vendor verify against it.
type VendorInfo struct {
	VendorID     string    `json:"vendor_id"`
	CompanyName  string    `json:"company_name"`
	PublicKeyPEM string    `json:"public_key_pem"`
	ContactEmail string    `json:"contact_email"`
	Website      string    `json:"website,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
	KeyVersion   int       `json:"key_version"`
	IsActive     bool      `json:"is_active"`
}

// Validate checks the vendor record constraints.
func (v VendorInfo) Validate() error {
	if len(v.VendorID) < 3 || len(v.VendorID) > 50 {
		return fmt.Errorf("vendor_id must be 3-50 characters, got %d", len(v.VendorID))
	}
	if !vendorIDPattern.MatchString(v.VendorID) {
		return fmt.Errorf("vendor_id %q must be lowercase alphanumeric with hyphens", v.VendorID)
	}
	if len(v.CompanyName) < 1 || len(v.CompanyName) > 200 {
		return fmt.Errorf("company_name must be 1-200 characters, got %d", len(v.CompanyName))
	}
	if v.PublicKeyPEM == "" {
		return fmt.Errorf("vendor %q has no public key", v.VendorID)
	}
	return nil
}

// VendorRegistry is an explicit lookup table from vendor ID to vendor
// record. It is a plain object handed to callers that need it; there is
// no process-wide registry. Safe for concurrent use.
type VendorRegistry struct {
	mu      sync.RWMutex
	vendors map[string]VendorInfo
}

// NewVendorRegistry returns an empty registry.
func NewVendorRegistry() *VendorRegistry {
	return &VendorRegistry{vendors: make(map[string]VendorInfo)}
}

// Register adds or replaces a vendor record after validating it.
func (r *VendorRegistry) Register(info VendorInfo) error {
	if err := info.Validate(); err != nil {
		return fmt.Errorf("invalid vendor record: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vendors[info.VendorID] = info
	return nil
}

// Lookup returns the record for a vendor ID.
func (r *VendorRegistry) Lookup(vendorID string) (VendorInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.vendors[vendorID]
	return info, ok
}

// VendorIDs returns the registered vendor identifiers.
func (r *VendorRegistry) VendorIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.vendors))
	for id := range r.vendors {
		ids = append(ids, id)
	}
	return ids
}
