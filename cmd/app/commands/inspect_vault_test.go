package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/ClavisPass/ClavisPass-sub001/internal/crypto/domain"
	cryptoTesting "github.com/ClavisPass/ClavisPass-sub001/internal/crypto/testing"
	"github.com/ClavisPass/ClavisPass-sub001/internal/vault/http/dto"
)

func TestRunInspectVault(t *testing.T) {
	uc := newContentUseCase()

	t.Run("v1-json", func(t *testing.T) {
		path := encryptedVaultFile(t, uc, "correct-horse")
		ioTuple, out := passwordIO()

		require.NoError(t, RunInspectVault(t.Context(), uc, discardLogger(), ioTuple, path, "json"))

		var resp dto.InspectResponse
		require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
		assert.Equal(t, cryptoDomain.FormatV1, resp.Format)
		require.NotNil(t, resp.KDF)
		assert.Equal(t, cryptoTesting.FastOpsLimit, resp.KDF.OpsLimit)
		assert.Equal(t, cryptoTesting.FastMemLimit, resp.KDF.MemLimit)
		require.NotNil(t, resp.AEAD)
		assert.Equal(t, cryptoDomain.XChaCha20Poly1305, resp.AEAD.Alg)
	})

	t.Run("v1-text", func(t *testing.T) {
		path := encryptedVaultFile(t, uc, "correct-horse")
		ioTuple, out := passwordIO()

		require.NoError(t, RunInspectVault(t.Context(), uc, discardLogger(), ioTuple, path, "text"))
		assert.Contains(t, out.String(), "Format: v1")
		assert.Contains(t, out.String(), "KDF: argon2id")
	})

	t.Run("legacy-text", func(t *testing.T) {
		path := legacyVaultFile(t, "test", samplePayloadJSON)
		ioTuple, out := passwordIO()

		require.NoError(t, RunInspectVault(t.Context(), uc, discardLogger(), ioTuple, path, "text"))
		assert.Contains(t, out.String(), "Format: legacy")
		assert.Contains(t, out.String(), "Last updated: "+cryptoTesting.LegacyTimestamp)
	})

	t.Run("unknown", func(t *testing.T) {
		path := writeTestFile(t, "vault.json", `{"hello":"world"}`)
		ioTuple, out := passwordIO()

		require.NoError(t, RunInspectVault(t.Context(), uc, discardLogger(), ioTuple, path, "text"))
		assert.Contains(t, out.String(), "Format: unknown")
	})
}
