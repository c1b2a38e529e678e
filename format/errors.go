package format

import "errors"

// Typed error kinds for container reads. They surface in a strict
// order: framing errors before header errors, header errors before any
// cryptographic work, signature verification before decryption.
var (
	// ErrMagicMismatch means the stream is not this format at all.
	// Callers probing multiple formats may treat it as non-fatal.
	ErrMagicMismatch = errors.New("invalid magic bytes")

	// ErrMalformedContainer means truncated or inconsistent framing.
	ErrMalformedContainer = errors.New("malformed container")

	// ErrHeaderDecode means the header section is present but its
	// structured fields are missing or of the wrong type.
	ErrHeaderDecode = errors.New("header decode error")

	// ErrSignatureInvalid means the signature decoded correctly but
	// does not verify against the payload. Always fatal when
	// verification was requested.
	ErrSignatureInvalid = errors.New("signature verification failed")
)
