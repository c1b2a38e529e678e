package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validVendor() VendorInfo {
	return VendorInfo{
		VendorID:     "acme-optics",
		CompanyName:  "ACME Optics GmbH",
		PublicKeyPEM: "-----BEGIN PUBLIC KEY-----\nAAAA\n-----END PUBLIC KEY-----\n",
		ContactEmail: "keys@acme-optics.example",
		RegisteredAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		KeyVersion:   1,
		IsActive:     true,
	}
}

func TestVendorInfoValidate(t *testing.T) {
	assert.NoError(t, validVendor().Validate())

	v := validVendor()
	v.VendorID = "A!"
	assert.Error(t, v.Validate())

	v = validVendor()
	v.CompanyName = ""
	assert.Error(t, v.Validate())

	v = validVendor()
	v.PublicKeyPEM = ""
	assert.Error(t, v.Validate())
}

func TestVendorRegistry(t *testing.T) {
	reg := NewVendorRegistry()

	require.NoError(t, reg.Register(validVendor()))

	info, ok := reg.Lookup("acme-optics")
	require.True(t, ok)
	assert.Equal(t, "ACME Optics GmbH", info.CompanyName)

	_, ok = reg.Lookup("unknown-vendor")
	assert.False(t, ok)

	// Re-registering replaces the record (key rotation)
	rotated := validVendor()
	rotated.KeyVersion = 2
	require.NoError(t, reg.Register(rotated))
	info, _ = reg.Lookup("acme-optics")
	assert.Equal(t, 2, info.KeyVersion)

	assert.Equal(t, []string{"acme-optics"}, reg.VendorIDs())

	// Invalid records are rejected
	bad := validVendor()
	bad.VendorID = "x"
	assert.Error(t, reg.Register(bad))
}
