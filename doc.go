// Package obb implements the OBB secure container format for
// distributing proprietary optical-lens designs.
//
// A container hides the IP-sensitive geometry of a design from
// unauthorized viewers while leaving descriptive metadata readable by
// anyone, and lets an authorized platform cryptographically verify who
// produced the file and recover the protected geometry.
//
// # Writing a container
//
// The vendor signs, the platform decrypts:
//
//	vendorKeys, _ := crypto.GenerateKeyPair()
//	platformKeys, _ := crypto.GenerateKeyPair()
//
//	var buf bytes.Buffer
//	err := obb.Write(&buf, group, metadata, vendorKeys.Private, platformKeys.Public)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// WriteSelective partitions surfaces by their visibility tag instead of
// encrypting the whole design: public surfaces stay readable without
// keys, encrypted surfaces share a single ciphertext, and redacted
// surfaces survive only as ordinals.
//
// # Reading a container
//
// Metadata never requires key material:
//
//	meta, err := obb.ReadMetadata(bytes.NewReader(buf.Bytes()))
//
// A full read verifies the vendor signature over the encrypted bytes
// before any decryption is attempted, then auto-detects full versus
// selective payload encoding:
//
//	meta, group, err := obb.ReadAndDecrypt(
//	    bytes.NewReader(buf.Bytes()),
//	    platformKeys.Private,
//	    vendorKeys.Public,
//	    true, // verify signature
//	)
//
// # Security model
//
// Every container is encrypted to the recipient with a fresh ephemeral
// P-256 key (hybrid ECDH + HKDF + AES-256-GCM), so compromising one
// container never helps with another. The vendor's ECDSA signature is
// computed over the encrypted bytes, never the plaintext: verification
// needs no decryption key and runs before any ciphertext is opened.
//
// All operations are synchronous, in-memory transformations with no
// shared mutable state; containers may be written and read from many
// goroutines concurrently.
package obb
