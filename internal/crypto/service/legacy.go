package service

import (
	"crypto/sha1" //nolint:gosec // PBKDF2-HMAC-SHA1 is part of the legacy format
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"hash"
	"unicode/utf8"

	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/ClavisPass/ClavisPass-sub001/internal/crypto/domain"
)

// legacyPRFs are the PBKDF2 hash functions the legacy writer used over its lifetime,
// newest first.
var legacyPRFs = []func() hash.Hash{sha256.New, sha1.New}

// LegacyCodec decrypts pre-V1 vaults (PBKDF2 + AES-256-CBC). It has no encrypt path.
type LegacyCodec struct{}

// NewLegacyCodec creates a LegacyCodec.
func NewLegacyCodec() *LegacyCodec {
	return &LegacyCodec{}
}

// Decrypt recovers the UTF-8 JSON plaintext of env.
//
// The key is PBKDF2(password, salt, 1000 iterations, 32 bytes). Vaults written by both
// generations of the legacy writer are accepted: HMAC-SHA256 is tried first, then
// HMAC-SHA1. A candidate is accepted only if its padding is valid and it decodes to a
// UTF-8 JSON document. Every failure, including malformed hex or base64 fields, is
// ErrDecryptionFailed.
func (c *LegacyCodec) Decrypt(env *cryptoDomain.LegacyEnvelope, password string) (string, error) {
	if env == nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	salt, err := hex.DecodeString(env.Salt)
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}
	iv, err := hex.DecodeString(env.IV)
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}
	ciphertext, err := DecodeBase64(env.Ciphertext)
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	pw := BytesUTF8(password)
	defer cryptoDomain.Zero(pw)

	for _, prf := range legacyPRFs {
		if plaintext, ok := c.tryDecrypt(pw, salt, iv, ciphertext, prf); ok {
			return plaintext, nil
		}
	}
	return "", cryptoDomain.ErrDecryptionFailed
}

func (c *LegacyCodec) tryDecrypt(
	password, salt, iv, ciphertext []byte,
	prf func() hash.Hash,
) (string, bool) {
	key := pbkdf2.Key(password, salt, cryptoDomain.LegacyIterations, cryptoDomain.LegacyKeySize, prf)
	defer cryptoDomain.Zero(key)

	aesCBC, err := NewAESCBC(key)
	if err != nil {
		return "", false
	}
	plaintext, err := aesCBC.Decrypt(ciphertext, iv)
	if err != nil {
		return "", false
	}
	defer cryptoDomain.Zero(plaintext)

	if !utf8.Valid(plaintext) || !json.Valid(plaintext) {
		return "", false
	}
	return string(plaintext), true
}
