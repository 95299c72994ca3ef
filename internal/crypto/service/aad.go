package service

import (
	cryptoDomain "github.com/ClavisPass/ClavisPass-sub001/internal/crypto/domain"
)

// aadHeader is the constant object bound into every V1 encryption. Field order is the
// declaration order, so the encoding is stable.
type aadHeader struct {
	V    int                    `json:"v"`
	KDF  cryptoDomain.Algorithm `json:"kdf"`
	AEAD cryptoDomain.Algorithm `json:"aead"`
}

// v1AAD is the UTF-8 JSON encoding of the V1 header:
//
//	{"v":1,"kdf":"argon2id","aead":"xchacha20poly1305-ietf"}
var v1AAD = mustMarshal(aadHeader{
	V:    cryptoDomain.VaultV1Version,
	KDF:  cryptoDomain.Argon2id,
	AEAD: cryptoDomain.XChaCha20Poly1305,
})

// V1AAD returns a fresh copy of the additional authenticated data for V1 envelopes.
// Changing the version or either algorithm name changes these bytes, so a header edited
// after encryption fails authentication.
func V1AAD() []byte {
	return append([]byte(nil), v1AAD...)
}
