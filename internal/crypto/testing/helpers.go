// Package testing provides shared test utilities for vault cryptography tests.
//
// Nothing outside _test.go files may import this package. It is the only place that
// can produce legacy envelopes, and it does so solely to build fixtures.
package testing

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"hash"
	"sync"

	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/ClavisPass/ClavisPass-sub001/internal/crypto/domain"
)

// FastOpsLimit and FastMemLimit are the cheapest Argon2id parameters the provider
// accepts. Tests use them so that each key derivation takes microseconds.
const (
	FastOpsLimit uint64 = 1
	FastMemLimit uint64 = cryptoDomain.MinMemLimit
)

// LegacyTimestamp is the lastUpdated value used by generated legacy fixtures.
const LegacyTimestamp = "2024-01-01T00:00:00.000Z"

// SequenceReader is a deterministic entropy source yielding 0, 1, 2, ... (mod 256).
// It is safe for concurrent use.
type SequenceReader struct {
	mu   sync.Mutex
	next byte
}

// Read fills p with the next bytes of the sequence.
func (r *SequenceReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range p {
		p[i] = r.next
		r.next++
	}
	return len(p), nil
}

// ErrEntropyUnavailable is returned by FailingReader.
var ErrEntropyUnavailable = errors.New("entropy source unavailable")

// FailingReader is an entropy source that always fails.
type FailingReader struct{}

// Read always returns ErrEntropyUnavailable.
func (FailingReader) Read([]byte) (int, error) {
	return 0, ErrEntropyUnavailable
}

// ShortReader hands out at most N zero bytes in total and then fails.
type ShortReader struct {
	N int
}

// Read hands out the remaining budget and fails once it is exhausted.
func (r *ShortReader) Read(p []byte) (int, error) {
	if r.N <= 0 {
		return 0, ErrEntropyUnavailable
	}
	n := min(len(p), r.N)
	clear(p[:n])
	r.N -= n
	return n, nil
}

// SealLegacy builds a legacy envelope around plaintext the way the legacy writer did:
// PBKDF2 with prf, 1000 iterations, a 16-byte salt, an ivLen-byte IV zero-extended to the
// AES block size, AES-256-CBC with PKCS#7 padding and base64 output.
func SealLegacy(password string, plaintext []byte, prf func() hash.Hash, ivLen int) (*cryptoDomain.LegacyEnvelope, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	iv := make([]byte, ivLen)
	if _, err := rand.Read(iv); err != nil {
		return nil, err
	}

	key := pbkdf2.Key([]byte(password), salt, cryptoDomain.LegacyIterations, cryptoDomain.LegacyKeySize, prf)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	padLen := aes.BlockSize - len(plaintext)%aes.BlockSize
	padded := append(bytes.Clone(plaintext), bytes.Repeat([]byte{byte(padLen)}, padLen)...)

	blockIV := make([]byte, aes.BlockSize)
	copy(blockIV, iv)

	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, blockIV).CryptBlocks(ciphertext, padded)

	return &cryptoDomain.LegacyEnvelope{
		LastUpdated: LegacyTimestamp,
		Ciphertext:  base64.StdEncoding.EncodeToString(ciphertext),
		Salt:        hex.EncodeToString(salt),
		IV:          hex.EncodeToString(iv),
	}, nil
}
