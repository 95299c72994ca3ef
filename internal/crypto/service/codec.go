package service

import (
	"encoding/base64"
	"encoding/json"
	"unicode/utf8"

	cryptoDomain "github.com/ClavisPass/ClavisPass-sub001/internal/crypto/domain"
	"github.com/ClavisPass/ClavisPass-sub001/internal/errors"
)

// EncodeBase64 encodes b with the standard, padded alphabet used by the vault format.
func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeBase64 is the exact inverse of EncodeBase64.
func DecodeBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(cryptoDomain.ErrInvalidEncoding, err.Error())
	}
	return b, nil
}

// BytesUTF8 returns the UTF-8 bytes of s.
func BytesUTF8(s string) []byte {
	return []byte(s)
}

// StringUTF8 converts b to a string, rejecting invalid UTF-8 instead of substituting
// replacement characters.
func StringUTF8(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", errors.Wrap(cryptoDomain.ErrInvalidEncoding, "malformed utf-8")
	}
	return string(b), nil
}

// mustMarshal encodes values whose JSON encoding cannot fail.
func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
