package domain

import (
	cryptoDomain "github.com/ClavisPass/ClavisPass-sub001/internal/crypto/domain"
)

// Reason explains why vault content could not be decrypted.
type Reason string

const (
	// ReasonFormat means the content is not JSON or matches no known envelope schema.
	// The vault should be treated as unreadable or corrupted.
	ReasonFormat Reason = "FORMAT"

	// ReasonAuthFailed means the password is wrong or the ciphertext was altered.
	// The two are indistinguishable by design of the envelope formats.
	ReasonAuthFailed Reason = "AUTH_FAILED"
)

// DecryptResult is the terminal outcome of decrypting vault content.
//
// When OK is true, Payload is set and Reason is empty. MigratedContent is non-empty only
// when the content was in the legacy format: it holds the same payload re-encrypted as
// a V1 envelope, which the caller should write back to storage.
type DecryptResult struct {
	OK              bool
	Reason          Reason
	Format          cryptoDomain.Format
	Payload         *Payload
	MigratedContent string
}

// Migrated reports whether the result carries a write-back candidate.
func (r *DecryptResult) Migrated() bool {
	return r.MigratedContent != ""
}

// Succeeded builds a successful result.
func Succeeded(format cryptoDomain.Format, payload *Payload, migrated string) *DecryptResult {
	return &DecryptResult{OK: true, Format: format, Payload: payload, MigratedContent: migrated}
}

// Failed builds a failed result for the given format and reason.
func Failed(format cryptoDomain.Format, reason Reason) *DecryptResult {
	return &DecryptResult{OK: false, Format: format, Reason: reason}
}

// EnvelopeInfo describes stored content without decrypting it.
type EnvelopeInfo struct {
	Format cryptoDomain.Format
	// V1 only.
	KDF  *cryptoDomain.KDFParams
	AEAD *cryptoDomain.AEADParams
	// Legacy only.
	LastUpdated string
}
