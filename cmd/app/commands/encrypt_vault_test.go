package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/ClavisPass/ClavisPass-sub001/internal/crypto/domain"
)

func TestRunEncryptVault(t *testing.T) {
	uc := newContentUseCase()

	t.Run("success", func(t *testing.T) {
		out := encryptedVaultFile(t, uc, "correct-horse")

		env, err := cryptoDomain.ParseVaultV1([]byte(readTestFile(t, out)))
		require.NoError(t, err)
		assert.Equal(t, cryptoDomain.VaultV1Version, env.V)

		info, err := os.Stat(out)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("missing-input", func(t *testing.T) {
		ioTuple, _ := passwordIO("pw")
		dir := t.TempDir()
		err := RunEncryptVault(t.Context(), uc, discardLogger(), ioTuple,
			filepath.Join(dir, "missing.json"), filepath.Join(dir, "out.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read")
	})

	t.Run("invalid-json", func(t *testing.T) {
		in := writeTestFile(t, "payload.json", "not json")
		ioTuple, _ := passwordIO("pw")
		err := RunEncryptVault(t.Context(), uc, discardLogger(), ioTuple, in, in+".out")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse vault payload")
		assert.NoFileExists(t, in+".out")
	})

	t.Run("invalid-payload", func(t *testing.T) {
		in := writeTestFile(t, "payload.json", `{"version":"1","devices":[{"id":"short"}]}`)
		ioTuple, _ := passwordIO("pw")
		err := RunEncryptVault(t.Context(), uc, discardLogger(), ioTuple, in, in+".out")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to encrypt vault")
		assert.NoFileExists(t, in+".out")
	})

	t.Run("empty-password", func(t *testing.T) {
		in := writeTestFile(t, "payload.json", samplePayloadJSON)
		ioTuple, _ := passwordIO("")
		err := RunEncryptVault(t.Context(), uc, discardLogger(), ioTuple, in, in+".out")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password must not be empty")
	})
}
