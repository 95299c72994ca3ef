package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	cryptoDomain "github.com/ClavisPass/ClavisPass-sub001/internal/crypto/domain"
	"github.com/ClavisPass/ClavisPass-sub001/internal/errors"
)

// minPasswordHashBytes mirrors crypto_pwhash_BYTES_MIN.
const minPasswordHashBytes = 16

// SodiumProvider implements Provider with golang.org/x/crypto, producing output that is
// byte-compatible with libsodium's crypto_pwhash (Argon2id v1.3) and
// crypto_aead_xchacha20poly1305_ietf in combined mode.
//
// Argon2id parameter mapping:
//   - opsLimit -> passes (time cost)
//   - memLimit -> memLimit/1024 KiB
//   - one lane, as libsodium uses
//
// Thread safety:
//
//	The provider is stateless apart from its entropy source and is safe for concurrent
//	use. The default source, crypto/rand.Reader, is itself safe for concurrent use.
type SodiumProvider struct {
	random io.Reader
}

// NewSodiumProvider creates a provider backed by crypto/rand.
func NewSodiumProvider() *SodiumProvider {
	return &SodiumProvider{random: rand.Reader}
}

// NewSodiumProviderWithReader creates a provider that draws randomness from r.
// Intended for deterministic tests and for exercising entropy failures.
func NewSodiumProviderWithReader(r io.Reader) *SodiumProvider {
	return &SodiumProvider{random: r}
}

// Ready draws from the entropy source once to prove it is usable.
func (p *SodiumProvider) Ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(cryptoDomain.ErrProviderUnavailable, err.Error())
	}
	if p.random == nil {
		return errors.Wrap(cryptoDomain.ErrProviderUnavailable, "no entropy source")
	}
	probe, err := p.RandomBytes(1)
	if err != nil {
		return err
	}
	cryptoDomain.Zero(probe)
	return nil
}

// RandomBytes returns n bytes from the entropy source.
func (p *SodiumProvider) RandomBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Wrap(errors.ErrInvalidInput, "negative random length")
	}
	if p.random == nil {
		return nil, errors.Wrap(cryptoDomain.ErrProviderUnavailable, "no entropy source")
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(p.random, buf); err != nil {
		return nil, errors.Wrap(cryptoDomain.ErrProviderUnavailable, fmt.Sprintf("read entropy: %v", err))
	}
	return buf, nil
}

// PasswordHash derives outLen bytes with Argon2id.
func (p *SodiumProvider) PasswordHash(
	outLen int,
	password, salt []byte,
	opsLimit, memLimit uint64,
) ([]byte, error) {
	if len(salt) != cryptoDomain.SaltSize {
		return nil, cryptoDomain.ErrInvalidSaltSize
	}
	if outLen < minPasswordHashBytes || outLen > math.MaxUint32 {
		return nil, errors.Wrap(cryptoDomain.ErrInvalidKDFParams, "output length out of range")
	}
	if opsLimit < 1 || opsLimit > math.MaxUint32 {
		return nil, errors.Wrap(cryptoDomain.ErrInvalidKDFParams, "opslimit out of range")
	}
	if memLimit < cryptoDomain.MinMemLimit || memLimit/1024 > math.MaxUint32 {
		return nil, errors.Wrap(cryptoDomain.ErrInvalidKDFParams, "memlimit out of range")
	}

	return argon2.IDKey(password, salt, uint32(opsLimit), uint32(memLimit/1024), 1, uint32(outLen)), nil
}

// AEADEncrypt seals plaintext with XChaCha20-Poly1305.
func (p *SodiumProvider) AEADEncrypt(plaintext, aad, nonce, key []byte) ([]byte, error) {
	c, err := NewXChaCha20Poly1305(key)
	if err != nil {
		return nil, err
	}
	return c.Seal(plaintext, nonce, aad)
}

// AEADDecrypt opens a combined XChaCha20-Poly1305 ciphertext.
func (p *SodiumProvider) AEADDecrypt(ciphertext, aad, nonce, key []byte) ([]byte, error) {
	c, err := NewXChaCha20Poly1305(key)
	if err != nil {
		return nil, err
	}
	return c.Open(ciphertext, nonce, aad)
}

// SaltBytes returns 16.
func (p *SodiumProvider) SaltBytes() int { return cryptoDomain.SaltSize }

// KeyBytes returns 32.
func (p *SodiumProvider) KeyBytes() int { return chacha20poly1305.KeySize }

// NonceBytes returns 24.
func (p *SodiumProvider) NonceBytes() int { return chacha20poly1305.NonceSizeX }
