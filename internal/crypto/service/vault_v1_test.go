package service

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/ClavisPass/ClavisPass-sub001/internal/crypto/domain"
	cryptoTesting "github.com/ClavisPass/ClavisPass-sub001/internal/crypto/testing"
	"github.com/ClavisPass/ClavisPass-sub001/internal/errors"
)

func newFastCodec(p Provider) *VaultV1Codec {
	return NewVaultV1Codec(p, cryptoTesting.FastOpsLimit, cryptoTesting.FastMemLimit, 0, 0)
}

func samplePayload() map[string]any {
	return map[string]any{
		"version": "1",
		"folder":  []any{map[string]any{"id": "f1", "name": "Work"}},
		"values":  []any{},
		"devices": []any{},
	}
}

func mustParseV1(t *testing.T, s string) *cryptoDomain.VaultV1Envelope {
	t.Helper()
	env, err := cryptoDomain.ParseVaultV1([]byte(s))
	require.NoError(t, err)
	return env
}

func TestNewVaultV1Codec_Defaults(t *testing.T) {
	c := NewVaultV1Codec(NewSodiumProvider(), 0, 0, 0, 0)
	assert.Equal(t, cryptoDomain.DefaultOpsLimit, c.opsLimit)
	assert.Equal(t, cryptoDomain.DefaultMemLimit, c.memLimit)
	assert.Equal(t, cryptoDomain.DefaultMaxOpsLimit, c.maxOpsLimit)
	assert.Equal(t, cryptoDomain.DefaultMaxMemLimit, c.maxMemLimit)
}

func TestVaultV1Codec_Encrypt(t *testing.T) {
	c := newFastCodec(NewSodiumProvider())

	t.Run("wire format", func(t *testing.T) {
		out, err := c.Encrypt("correct-horse", samplePayload())
		require.NoError(t, err)

		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal([]byte(out), &raw))
		assert.JSONEq(t, `1`, string(raw["v"]))
		assert.True(t, strings.HasPrefix(out, `{"v":1,"kdf":{"alg":"argon2id","opslimit":1,"memlimit":8192,`))

		env := mustParseV1(t, out)
		assert.Equal(t, uint64(32), env.KDF.KeyLen)
		assert.Equal(t, cryptoDomain.XChaCha20Poly1305, env.AEAD.Alg)
		aad, err := DecodeBase64(env.AEAD.AADB64)
		require.NoError(t, err)
		assert.Equal(t, V1AAD(), aad)
	})

	t.Run("per call cost override", func(t *testing.T) {
		out, err := c.Encrypt("pw", samplePayload(), WithOpsLimit(2), WithMemLimit(16*1024))
		require.NoError(t, err)
		env := mustParseV1(t, out)
		assert.Equal(t, uint64(2), env.KDF.OpsLimit)
		assert.Equal(t, uint64(16*1024), env.KDF.MemLimit)
	})

	t.Run("fresh salt and nonce on every call", func(t *testing.T) {
		salts := map[string]bool{}
		nonces := map[string]bool{}
		for range 10 {
			out, err := c.Encrypt("same-password", samplePayload())
			require.NoError(t, err)
			env := mustParseV1(t, out)
			assert.False(t, salts[env.KDF.SaltB64], "salt reused")
			assert.False(t, nonces[env.AEAD.NonceB64], "nonce reused")
			salts[env.KDF.SaltB64] = true
			nonces[env.AEAD.NonceB64] = true
		}
	})

	t.Run("invalid cost parameters fail before touching the provider", func(t *testing.T) {
		failing := newFastCodec(NewSodiumProviderWithReader(cryptoTesting.FailingReader{}))
		for _, opt := range []EncryptOption{
			WithOpsLimit(0),
			WithMemLimit(0),
			WithOpsLimit(1 << 53),
			WithMemLimit(1 << 53),
		} {
			_, err := failing.Encrypt("pw", samplePayload(), opt)
			assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKDFParams)
		}
	})

	t.Run("memlimit below provider minimum", func(t *testing.T) {
		_, err := c.Encrypt("pw", samplePayload(), WithMemLimit(1024))
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKDFParams)
	})

	t.Run("unserializable payload", func(t *testing.T) {
		_, err := c.Encrypt("pw", map[string]any{"f": func() {}})
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	})

	t.Run("entropy failure", func(t *testing.T) {
		failing := newFastCodec(NewSodiumProviderWithReader(cryptoTesting.FailingReader{}))
		out, err := failing.Encrypt("pw", samplePayload())
		assert.Empty(t, out)
		assert.ErrorIs(t, err, cryptoDomain.ErrProviderUnavailable)
	})
}

func TestVaultV1Codec_RoundTrip(t *testing.T) {
	c := newFastCodec(NewSodiumProviderWithReader(&cryptoTesting.SequenceReader{}))

	payloads := []struct {
		name    string
		payload any
	}{
		{"vault data", samplePayload()},
		{"empty object", map[string]any{}},
		{"null", nil},
		{"string", "just a string"},
		{"number", 42.5},
		{"nested unicode", map[string]any{"name": "世界 🔐", "tags": []any{"a", "b"}, "ok": true}},
	}
	for _, tc := range payloads {
		t.Run(tc.name, func(t *testing.T) {
			out, err := c.Encrypt("correct-horse", tc.payload)
			require.NoError(t, err)

			var got any
			require.NoError(t, c.Decrypt(mustParseV1(t, out), "correct-horse", &got))
			assert.Equal(t, tc.payload, got)
		})
	}

	t.Run("empty password", func(t *testing.T) {
		out, err := c.Encrypt("", samplePayload())
		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, c.Decrypt(mustParseV1(t, out), "", &got))
		assert.Equal(t, samplePayload(), got)
	})
}

func TestVaultV1Codec_EndToEnd(t *testing.T) {
	c := newFastCodec(NewSodiumProvider())

	out, err := c.Encrypt("correct-horse", samplePayload())
	require.NoError(t, err)
	env := mustParseV1(t, out)
	assert.Equal(t, 1, env.V)

	var got map[string]any
	require.NoError(t, c.Decrypt(env, "correct-horse", &got))
	assert.Equal(t, samplePayload(), got)

	err = c.Decrypt(env, "wrong-password", &got)
	assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	assert.ErrorIs(t, err, errors.ErrUnauthorized)
}

func TestVaultV1Codec_WrongPassword(t *testing.T) {
	c := newFastCodec(NewSodiumProvider())
	out, err := c.Encrypt("pw1", samplePayload())
	require.NoError(t, err)
	env := mustParseV1(t, out)

	for _, pw := range []string{"pw2", "", "pw1 ", "PW1", "pw"} {
		var got any
		assert.ErrorIs(t, c.Decrypt(env, pw, &got), cryptoDomain.ErrDecryptionFailed, pw)
		assert.Nil(t, got)
	}
}

func TestVaultV1Codec_TamperDetection(t *testing.T) {
	c := newFastCodec(NewSodiumProvider())
	out, err := c.Encrypt("correct-horse", samplePayload())
	require.NoError(t, err)
	original := mustParseV1(t, out)

	flipEach := func(t *testing.T, field string, get func(*cryptoDomain.VaultV1Envelope) *string) {
		decoded, err := DecodeBase64(*get(original))
		require.NoError(t, err)

		for i := range decoded {
			tampered := *original
			b := append([]byte(nil), decoded...)
			b[i] ^= 0x01
			*get(&tampered) = EncodeBase64(b)

			var got any
			err := c.Decrypt(&tampered, "correct-horse", &got)
			require.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed, "%s byte %d", field, i)
		}
	}

	t.Run("ciphertext", func(t *testing.T) {
		flipEach(t, "ct_b64", func(e *cryptoDomain.VaultV1Envelope) *string { return &e.CtB64 })
	})
	t.Run("nonce", func(t *testing.T) {
		flipEach(t, "nonce_b64", func(e *cryptoDomain.VaultV1Envelope) *string { return &e.AEAD.NonceB64 })
	})
	t.Run("aad", func(t *testing.T) {
		flipEach(t, "aad_b64", func(e *cryptoDomain.VaultV1Envelope) *string { return &e.AEAD.AADB64 })
	})
	t.Run("salt", func(t *testing.T) {
		flipEach(t, "salt_b64", func(e *cryptoDomain.VaultV1Envelope) *string { return &e.KDF.SaltB64 })
	})

	t.Run("truncated ciphertext", func(t *testing.T) {
		ct, err := DecodeBase64(original.CtB64)
		require.NoError(t, err)
		tampered := *original
		tampered.CtB64 = EncodeBase64(ct[:len(ct)-1])
		var got any
		assert.ErrorIs(t, c.Decrypt(&tampered, "correct-horse", &got), cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("replayed cost parameters changed", func(t *testing.T) {
		tampered := *original
		tampered.KDF.OpsLimit = original.KDF.OpsLimit + 1
		var got any
		assert.ErrorIs(t, c.Decrypt(&tampered, "correct-horse", &got), cryptoDomain.ErrDecryptionFailed)
	})
}

func TestVaultV1Codec_ParameterReplay(t *testing.T) {
	p := NewSodiumProvider()
	writer := NewVaultV1Codec(p, 2, 32*1024, 0, 0)
	reader := newFastCodec(p)

	out, err := writer.Encrypt("correct-horse", samplePayload())
	require.NoError(t, err)
	env := mustParseV1(t, out)
	require.Equal(t, uint64(2), env.KDF.OpsLimit)
	require.Equal(t, uint64(32*1024), env.KDF.MemLimit)

	var got map[string]any
	require.NoError(t, reader.Decrypt(env, "correct-horse", &got))
	assert.Equal(t, samplePayload(), got)
}

func TestVaultV1Codec_DecryptRejectsMalformedEnvelopes(t *testing.T) {
	c := NewVaultV1Codec(NewSodiumProvider(), cryptoTesting.FastOpsLimit, cryptoTesting.FastMemLimit, 0, 64*1024)
	out, err := c.Encrypt("pw", samplePayload())
	require.NoError(t, err)
	valid := mustParseV1(t, out)

	tests := []struct {
		name    string
		mutate  func(e *cryptoDomain.VaultV1Envelope)
		wantErr error
	}{
		{"unsupported version", func(e *cryptoDomain.VaultV1Envelope) { e.V = 2 }, cryptoDomain.ErrUnsupportedVersion},
		{"unknown kdf", func(e *cryptoDomain.VaultV1Envelope) { e.KDF.Alg = "scrypt" }, cryptoDomain.ErrUnsupportedAlgorithm},
		{"unknown aead", func(e *cryptoDomain.VaultV1Envelope) { e.AEAD.Alg = "aes-gcm" }, cryptoDomain.ErrUnsupportedAlgorithm},
		{"bad salt encoding", func(e *cryptoDomain.VaultV1Envelope) { e.KDF.SaltB64 = "!!" }, cryptoDomain.ErrInvalidEncoding},
		{"short salt", func(e *cryptoDomain.VaultV1Envelope) { e.KDF.SaltB64 = EncodeBase64(make([]byte, 8)) }, cryptoDomain.ErrInvalidSaltSize},
		{"short nonce", func(e *cryptoDomain.VaultV1Envelope) { e.AEAD.NonceB64 = EncodeBase64(make([]byte, 12)) }, cryptoDomain.ErrInvalidNonceSize},
		{"wrong keylen", func(e *cryptoDomain.VaultV1Envelope) { e.KDF.KeyLen = 16 }, cryptoDomain.ErrInvalidKeySize},
		{"zero opslimit", func(e *cryptoDomain.VaultV1Envelope) { e.KDF.OpsLimit = 0 }, cryptoDomain.ErrInvalidKDFParams},
		{"unsafe memlimit", func(e *cryptoDomain.VaultV1Envelope) { e.KDF.MemLimit = 1 << 60 }, cryptoDomain.ErrInvalidKDFParams},
		{"opslimit above ceiling", func(e *cryptoDomain.VaultV1Envelope) { e.KDF.OpsLimit = 1<<31 - 1 }, cryptoDomain.ErrInvalidKDFParams},
		{"memlimit above ceiling", func(e *cryptoDomain.VaultV1Envelope) { e.KDF.MemLimit = 128 * 1024 }, cryptoDomain.ErrInvalidKDFParams},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := *valid
			tt.mutate(&env)
			var got any
			err := c.Decrypt(&env, "pw", &got)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, errors.ErrInvalidInput)
		})
	}

	t.Run("nil envelope", func(t *testing.T) {
		var got any
		assert.ErrorIs(t, c.Decrypt(nil, "pw", &got), cryptoDomain.ErrInvalidEnvelope)
	})
}

func TestVaultV1Codec_Concurrent(t *testing.T) {
	c := newFastCodec(NewSodiumProvider())

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			payload := map[string]any{"n": float64(i)}
			out, err := c.Encrypt("pw", payload)
			if err != nil {
				errs <- err
				return
			}
			env, err := cryptoDomain.ParseVaultV1([]byte(out))
			if err != nil {
				errs <- err
				return
			}
			var got map[string]any
			if err := c.Decrypt(env, "pw", &got); err != nil {
				errs <- err
				return
			}
			if got["n"] != float64(i) {
				errs <- errors.Wrap(errors.ErrInvalidInput, "payload mismatch")
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func FuzzVaultV1RoundTrip(f *testing.F) {
	f.Add("correct-horse", `{"version":"1","folder":[],"values":[],"devices":[]}`)
	f.Add("", `null`)
	f.Add("世界", `["a",1,true]`)

	c := newFastCodec(NewSodiumProvider())
	f.Fuzz(func(t *testing.T, password, document string) {
		var payload any
		if err := json.Unmarshal([]byte(document), &payload); err != nil {
			t.Skip()
		}

		out, err := c.Encrypt(password, payload)
		require.NoError(t, err)

		var got any
		require.NoError(t, c.Decrypt(mustParseV1(t, out), password, &got))
		assert.Equal(t, payload, got)

		var wrong any
		assert.ErrorIs(t, c.Decrypt(mustParseV1(t, out), password+"x", &wrong), cryptoDomain.ErrDecryptionFailed)
	})
}
