package service

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	cryptoDomain "github.com/ClavisPass/ClavisPass-sub001/internal/crypto/domain"
	"github.com/ClavisPass/ClavisPass-sub001/internal/errors"
	customValidation "github.com/ClavisPass/ClavisPass-sub001/internal/validation"
)

// VaultV1Codec encrypts payloads into V1 envelopes and decrypts them back.
//
// Every Encrypt draws a new salt and a new nonce, so two envelopes for the same password
// and payload never share either value. Decrypt replays the cost parameters recorded in
// the envelope and uses the AAD bytes it carries.
//
// The codec holds configuration only. Derived keys and password copies live for a single
// call and are zeroed before it returns.
type VaultV1Codec struct {
	provider    Provider
	opsLimit    uint64
	memLimit    uint64
	maxOpsLimit uint64
	maxMemLimit uint64
}

// NewVaultV1Codec creates a codec. Zero values select the matching Default* constant.
// maxOpsLimit and maxMemLimit bound the cost parameters accepted from stored envelopes.
func NewVaultV1Codec(provider Provider, opsLimit, memLimit, maxOpsLimit, maxMemLimit uint64) *VaultV1Codec {
	if opsLimit == 0 {
		opsLimit = cryptoDomain.DefaultOpsLimit
	}
	if memLimit == 0 {
		memLimit = cryptoDomain.DefaultMemLimit
	}
	if maxOpsLimit == 0 {
		maxOpsLimit = cryptoDomain.DefaultMaxOpsLimit
	}
	if maxMemLimit == 0 {
		maxMemLimit = cryptoDomain.DefaultMaxMemLimit
	}
	return &VaultV1Codec{
		provider:    provider,
		opsLimit:    opsLimit,
		memLimit:    memLimit,
		maxOpsLimit: maxOpsLimit,
		maxMemLimit: maxMemLimit,
	}
}

type encryptOptions struct {
	opsLimit uint64
	memLimit uint64
}

// EncryptOption overrides a cost parameter for a single Encrypt call.
type EncryptOption func(*encryptOptions)

// WithOpsLimit sets the Argon2id pass count.
func WithOpsLimit(n uint64) EncryptOption {
	return func(o *encryptOptions) { o.opsLimit = n }
}

// WithMemLimit sets the Argon2id memory cost in bytes.
func WithMemLimit(n uint64) EncryptOption {
	return func(o *encryptOptions) { o.memLimit = n }
}

// Encrypt serializes payload to JSON and seals it under a key derived from password.
// It returns the envelope in its JSON wire form.
func (c *VaultV1Codec) Encrypt(password string, payload any, opts ...EncryptOption) (string, error) {
	o := encryptOptions{opsLimit: c.opsLimit, memLimit: c.memLimit}
	for _, opt := range opts {
		opt(&o)
	}
	if err := validateCost(o.opsLimit, o.memLimit); err != nil {
		return "", err
	}

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(errors.ErrInvalidInput, fmt.Sprintf("payload is not serializable: %v", err))
	}
	defer cryptoDomain.Zero(plaintext)

	salt, err := c.provider.RandomBytes(c.provider.SaltBytes())
	if err != nil {
		return "", err
	}
	nonce, err := c.provider.RandomBytes(c.provider.NonceBytes())
	if err != nil {
		return "", err
	}

	pw := BytesUTF8(password)
	key, err := c.provider.PasswordHash(c.provider.KeyBytes(), pw, salt, o.opsLimit, o.memLimit)
	cryptoDomain.Zero(pw)
	if err != nil {
		return "", err
	}
	defer cryptoDomain.Zero(key)

	aad := V1AAD()
	ciphertext, err := c.provider.AEADEncrypt(plaintext, aad, nonce, key)
	if err != nil {
		return "", err
	}

	env := &cryptoDomain.VaultV1Envelope{
		V: cryptoDomain.VaultV1Version,
		KDF: cryptoDomain.KDFParams{
			Alg:      cryptoDomain.Argon2id,
			OpsLimit: o.opsLimit,
			MemLimit: o.memLimit,
			SaltB64:  EncodeBase64(salt),
			KeyLen:   uint64(c.provider.KeyBytes()),
		},
		AEAD: cryptoDomain.AEADParams{
			Alg:      cryptoDomain.XChaCha20Poly1305,
			NonceB64: EncodeBase64(nonce),
			AADB64:   EncodeBase64(aad),
		},
		CtB64: EncodeBase64(ciphertext),
	}
	return env.String(), nil
}

// Decrypt opens env with password and unmarshals the plaintext JSON into out.
//
// Authentication failure is ErrDecryptionFailed whatever the cause. Envelopes with an
// unknown version or algorithm, bad lengths, or out of range cost parameters are
// rejected before any key derivation.
func (c *VaultV1Codec) Decrypt(env *cryptoDomain.VaultV1Envelope, password string, out any) error {
	if env == nil {
		return cryptoDomain.ErrInvalidEnvelope
	}
	if env.V != cryptoDomain.VaultV1Version {
		return cryptoDomain.ErrUnsupportedVersion
	}
	if env.KDF.Alg != cryptoDomain.Argon2id || env.AEAD.Alg != cryptoDomain.XChaCha20Poly1305 {
		return cryptoDomain.ErrUnsupportedAlgorithm
	}

	salt, err := DecodeBase64(env.KDF.SaltB64)
	if err != nil {
		return err
	}
	nonce, err := DecodeBase64(env.AEAD.NonceB64)
	if err != nil {
		return err
	}
	aad, err := DecodeBase64(env.AEAD.AADB64)
	if err != nil {
		return err
	}
	ciphertext, err := DecodeBase64(env.CtB64)
	if err != nil {
		return err
	}

	if len(salt) != c.provider.SaltBytes() {
		return cryptoDomain.ErrInvalidSaltSize
	}
	if len(nonce) != c.provider.NonceBytes() {
		return cryptoDomain.ErrInvalidNonceSize
	}
	if env.KDF.KeyLen != uint64(c.provider.KeyBytes()) {
		return cryptoDomain.ErrInvalidKeySize
	}
	if err := validateCost(env.KDF.OpsLimit, env.KDF.MemLimit); err != nil {
		return err
	}
	if env.KDF.OpsLimit > c.maxOpsLimit {
		return errors.Wrap(cryptoDomain.ErrInvalidKDFParams, "opslimit above accepted maximum")
	}
	if env.KDF.MemLimit > c.maxMemLimit {
		return errors.Wrap(cryptoDomain.ErrInvalidKDFParams, "memlimit above accepted maximum")
	}

	pw := BytesUTF8(password)
	key, err := c.provider.PasswordHash(
		int(env.KDF.KeyLen),
		pw,
		salt,
		env.KDF.OpsLimit,
		env.KDF.MemLimit,
	)
	cryptoDomain.Zero(pw)
	if err != nil {
		return err
	}

	plaintext, err := c.provider.AEADDecrypt(ciphertext, aad, nonce, key)
	defer cryptoDomain.ZeroAll(key, plaintext)
	if err != nil {
		return err
	}

	if !utf8.Valid(plaintext) {
		return errors.Wrap(cryptoDomain.ErrInvalidEncoding, "malformed utf-8")
	}
	if err := json.Unmarshal(plaintext, out); err != nil {
		return errors.Wrap(cryptoDomain.ErrInvalidEncoding, fmt.Sprintf("plaintext is not a json document: %v", err))
	}
	return nil
}

// validateCost checks that both cost parameters are positive safe integers.
func validateCost(opsLimit, memLimit uint64) error {
	if opsLimit == 0 || opsLimit > customValidation.MaxSafeInteger {
		return errors.Wrap(cryptoDomain.ErrInvalidKDFParams, "opslimit must be a positive safe integer")
	}
	if memLimit == 0 || memLimit > customValidation.MaxSafeInteger {
		return errors.Wrap(cryptoDomain.ErrInvalidKDFParams, "memlimit must be a positive safe integer")
	}
	return nil
}
