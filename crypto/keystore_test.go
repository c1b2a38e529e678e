package crypto

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestSaveAndLoadKeyPair(t *testing.T) {
	dir := t.TempDir()

	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error: %v", err)
	}

	privPath, pubPath, err := SaveKeyPair(kp, dir, "vendor")
	if err != nil {
		t.Fatalf("SaveKeyPair() error: %v", err)
	}
	if filepath.Base(privPath) != "vendor_private.pem" {
		t.Errorf("private key file = %s, want vendor_private.pem", filepath.Base(privPath))
	}
	if filepath.Base(pubPath) != "vendor_public.pem" {
		t.Errorf("public key file = %s, want vendor_public.pem", filepath.Base(pubPath))
	}

	loaded, err := LoadKeyPair(privPath)
	if err != nil {
		t.Fatalf("LoadKeyPair() error: %v", err)
	}
	if loaded.Private.D.Cmp(kp.Private.D) != 0 {
		t.Error("loaded private key differs from saved key")
	}

	pub, err := LoadPublicKey(pubPath)
	if err != nil {
		t.Fatalf("LoadPublicKey() error: %v", err)
	}
	if pub.X.Cmp(kp.Public.X) != 0 {
		t.Error("loaded public key differs from saved key")
	}
}

func TestSaveKeyPairPrivateKeyPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions not applicable")
	}
	dir := t.TempDir()

	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error: %v", err)
	}
	privPath, _, err := SaveKeyPair(kp, dir, "vendor")
	if err != nil {
		t.Fatalf("SaveKeyPair() error: %v", err)
	}

	info, err := os.Stat(privPath)
	if err != nil {
		t.Fatalf("Stat() error: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("private key permissions = %o, want 600", perm)
	}
}

func TestLoadPrivateKeyMissingFile(t *testing.T) {
	if _, err := LoadPrivateKey(filepath.Join(t.TempDir(), "nope.pem")); err == nil {
		t.Error("LoadPrivateKey() expected error for missing file")
	}
}
