package domain

import (
	"github.com/ClavisPass/ClavisPass-sub001/internal/errors"
)

// Cryptographic operation error definitions.
//
// Precondition and format failures wrap errors.ErrInvalidInput. Authentication
// failures are a single error on purpose: callers must not be able to tell a wrong
// password from a tampered header, nonce, tag or padding.
var (
	// ErrInvalidKeySize indicates an AEAD key is not exactly KeySize bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidNonceSize indicates an AEAD nonce is not exactly NonceSize bytes.
	ErrInvalidNonceSize = errors.Wrap(errors.ErrInvalidInput, "invalid nonce size")

	// ErrInvalidSaltSize indicates a password hashing salt is not exactly SaltSize bytes.
	ErrInvalidSaltSize = errors.Wrap(errors.ErrInvalidInput, "invalid salt size")

	// ErrInvalidKDFParams indicates opslimit, memlimit or the output length is out of range.
	//
	// Returned before any work is done: the call is never attempted with the bad values.
	ErrInvalidKDFParams = errors.Wrap(errors.ErrInvalidInput, "invalid kdf parameters")

	// ErrUnsupportedVersion indicates an envelope carries a version tag other than 1.
	ErrUnsupportedVersion = errors.Wrap(errors.ErrInvalidInput, "unsupported vault version")

	// ErrUnsupportedAlgorithm indicates an envelope names an algorithm this build cannot use.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidEnvelope indicates an envelope failed schema validation.
	ErrInvalidEnvelope = errors.Wrap(errors.ErrInvalidInput, "invalid envelope")

	// ErrInvalidEncoding indicates a base64, hex or UTF-8 field could not be decoded.
	ErrInvalidEncoding = errors.Wrap(errors.ErrInvalidInput, "invalid encoding")

	// ErrDecryptionFailed indicates authentication failed.
	//
	// This error can occur due to:
	//   - Wrong master password
	//   - Ciphertext, nonce or AAD altered after encryption
	//   - Legacy padding or plaintext that does not decode
	//
	// The specific cause is never disclosed.
	ErrDecryptionFailed = errors.Wrap(errors.ErrUnauthorized, "decryption failed")

	// ErrProviderUnavailable indicates the cryptographic backend cannot operate,
	// for example because the entropy source failed.
	ErrProviderUnavailable = errors.Wrap(errors.ErrUnavailable, "crypto provider unavailable")
)
