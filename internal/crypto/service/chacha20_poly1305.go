package service

import (
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	cryptoDomain "github.com/ClavisPass/ClavisPass-sub001/internal/crypto/domain"
)

// XChaCha20Poly1305Cipher wraps the IETF XChaCha20-Poly1305 AEAD.
//
// XChaCha20-Poly1305 extends ChaCha20-Poly1305 with a 24-byte nonce, which is large
// enough to be drawn at random for every encryption without tracking counters. Output is
// in "combined" mode: the 16-byte Poly1305 tag is appended to the ciphertext, matching
// libsodium's crypto_aead_xchacha20poly1305_ietf_encrypt.
//
// Unlike a self-contained cipher, the nonce is always supplied by the caller: the vault
// codec owns nonce generation so it can record the nonce in the envelope.
type XChaCha20Poly1305Cipher struct {
	aead cipher.AEAD
}

// NewXChaCha20Poly1305 creates a cipher for a 32-byte key.
func NewXChaCha20Poly1305(key []byte) (*XChaCha20Poly1305Cipher, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create XChaCha20-Poly1305 cipher: %w", err)
	}

	return &XChaCha20Poly1305Cipher{aead: aead}, nil
}

// Seal encrypts plaintext under nonce and authenticates aad. The returned slice is the
// ciphertext followed by the tag.
func (c *XChaCha20Poly1305Cipher) Seal(plaintext, nonce, aad []byte) ([]byte, error) {
	if len(nonce) != c.aead.NonceSize() {
		return nil, cryptoDomain.ErrInvalidNonceSize
	}
	return c.aead.Seal(nil, nonce, plaintext, aad), nil
}

// Open verifies and decrypts a combined ciphertext.
//
// Any mismatch of key, nonce, aad or tag, as well as input shorter than the tag, is
// reported as ErrDecryptionFailed.
func (c *XChaCha20Poly1305Cipher) Open(ciphertext, nonce, aad []byte) ([]byte, error) {
	if len(nonce) != c.aead.NonceSize() {
		return nil, cryptoDomain.ErrInvalidNonceSize
	}
	if len(ciphertext) < c.aead.Overhead() {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}
