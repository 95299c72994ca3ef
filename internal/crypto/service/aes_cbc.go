package service

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	cryptoDomain "github.com/ClavisPass/ClavisPass-sub001/internal/crypto/domain"
)

// AESCBCCipher decrypts AES-256-CBC data padded with PKCS#7.
//
// It exists only to read legacy vaults. CBC offers no integrity protection, so callers
// must treat every failure identically and must never report whether padding or a later
// parsing step was the one that failed.
//
// Thread safety:
//
//	The cipher holds an immutable block and is safe for concurrent use.
type AESCBCCipher struct {
	block cipher.Block
}

// NewAESCBC creates a cipher for a 32-byte key.
func NewAESCBC(key []byte) (*AESCBCCipher, error) {
	if len(key) != cryptoDomain.LegacyKeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	return &AESCBCCipher{block: block}, nil
}

// Decrypt decrypts ciphertext with iv and strips the PKCS#7 padding.
//
// An IV shorter than the block size is extended with zero bytes and a longer one is
// truncated, reproducing how the legacy writer consumed its 12-byte IVs.
func (c *AESCBCCipher) Decrypt(ciphertext, iv []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	blockIV := make([]byte, aes.BlockSize)
	copy(blockIV, iv)

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(c.block, blockIV).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		cryptoDomain.Zero(plaintext)
		return nil, err
	}
	return unpadded, nil
}

// pkcs7Unpad removes PKCS#7 padding, checking every padding byte.
func pkcs7Unpad(b []byte, blockSize int) ([]byte, error) {
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize || n > len(b) {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, cryptoDomain.ErrDecryptionFailed
		}
	}
	return b[:len(b)-n], nil
}
