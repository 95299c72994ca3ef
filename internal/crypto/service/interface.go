// Package service provides the cryptographic core of the vault: the provider
// abstraction over password hashing and AEAD, the AAD builder, the V1 envelope codec
// and the read-only legacy codec.
package service

import (
	"context"
)

// Provider exposes the primitives the vault codecs are written against.
//
// Implementations hold no per-call state: every method receives its salt, nonce and
// key as plain values, so a single provider may be shared by concurrent callers.
type Provider interface {
	// Ready reports whether the backend can operate. It must succeed before any other
	// method is used. A failure wraps ErrProviderUnavailable.
	Ready(ctx context.Context) error

	// RandomBytes returns n cryptographically secure random bytes, or
	// ErrProviderUnavailable. It never returns short output.
	RandomBytes(n int) ([]byte, error)

	// PasswordHash derives outLen bytes from password and salt with Argon2id.
	// memLimit is in bytes. Deterministic for identical inputs.
	PasswordHash(outLen int, password, salt []byte, opsLimit, memLimit uint64) ([]byte, error)

	// AEADEncrypt returns ciphertext with the authentication tag appended.
	AEADEncrypt(plaintext, aad, nonce, key []byte) ([]byte, error)

	// AEADDecrypt opens a combined ciphertext. Any mismatch of key, nonce, aad or tag
	// yields ErrDecryptionFailed and no plaintext.
	AEADDecrypt(ciphertext, aad, nonce, key []byte) ([]byte, error)

	// SaltBytes is the required PasswordHash salt length.
	SaltBytes() int
	// KeyBytes is the required AEAD key length.
	KeyBytes() int
	// NonceBytes is the required AEAD nonce length.
	NonceBytes() int
}
