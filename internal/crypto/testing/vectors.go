package testing

import (
	cryptoDomain "github.com/ClavisPass/ClavisPass-sub001/internal/crypto/domain"
)

// Fixed legacy envelopes produced outside this code base, following the crypto-js
// conventions of the legacy writer: PBKDF2 over the hex-decoded salt with 1000
// iterations and a 32-byte key, AES-256-CBC with PKCS#7 padding, and a 12-byte IV that
// the cipher zero-extends to a full block. They pin the format independently of
// SealLegacy, which shares the decoder's assumptions.
const (
	LegacyVectorPassword  = "Tr0ub4dor&3 ä"
	LegacyVectorPlaintext = `{"version":"1","folder":[{"id":"f1","name":"Work"}],"values":[],"devices":[]}`
)

// LegacyVectorSHA256 was written by the PBKDF2-HMAC-SHA256 generation of the writer.
func LegacyVectorSHA256() *cryptoDomain.LegacyEnvelope {
	return &cryptoDomain.LegacyEnvelope{
		LastUpdated: LegacyTimestamp,
		Ciphertext:  "XVnteFndAEAJbo+h878iVQsVvxB7LoFhEAEiSYBJxA+dRZ6C/zsx7XH72zqPaZcoc6t1lMDs4/3KSEvrBsLLeXMzSXltf0UAidRNJxg2In4=",
		Salt:        "8f1c2b3a4d5e6f708192a3b4c5d6e7f8",
		IV:          "0a1b2c3d4e5f607182939495",
	}
}

// LegacyVectorSHA1 was written by the older PBKDF2-HMAC-SHA1 generation of the writer.
func LegacyVectorSHA1() *cryptoDomain.LegacyEnvelope {
	return &cryptoDomain.LegacyEnvelope{
		LastUpdated: LegacyTimestamp,
		Ciphertext:  "fIXYQkgEm59AwSXAuTQHhFaHSLy6/InlIbRchaIlHAkclnGA9yzSkZ9mkDyA3vJJ7ikiLCKlzoGXpmDZXk2ORdnnpKT0pc0Ufz3MLIj37Ss=",
		Salt:        "00112233445566778899aabbccddeeff",
		IV:          "a0b1c2d3e4f5061728394a5b",
	}
}
