package commands

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	cryptoService "github.com/ClavisPass/ClavisPass-sub001/internal/crypto/service"
	cryptoTesting "github.com/ClavisPass/ClavisPass-sub001/internal/crypto/testing"
	vaultUseCase "github.com/ClavisPass/ClavisPass-sub001/internal/vault/usecase"
)

const samplePayloadJSON = `{"version":"1","folder":[{"id":"f1","name":"Work"}],"values":[],"devices":[]}`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newContentUseCase() vaultUseCase.ContentUseCase {
	v1 := cryptoService.NewVaultV1Codec(
		cryptoService.NewSodiumProvider(),
		cryptoTesting.FastOpsLimit,
		cryptoTesting.FastMemLimit,
		0,
		0,
	)
	return vaultUseCase.NewContentUseCase(v1, cryptoService.NewLegacyCodec(), discardLogger())
}

// passwordIO feeds lines to the command and captures its output.
func passwordIO(lines ...string) (IOTuple, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return IOTuple{
		Reader: strings.NewReader(strings.Join(lines, "\n") + "\n"),
		Writer: out,
	}, out
}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec
	require.NoError(t, err)
	return string(data)
}

func legacyVaultFile(t *testing.T, password, payload string) string {
	t.Helper()
	env, err := cryptoTesting.SealLegacy(password, []byte(payload), sha256.New, 12)
	require.NoError(t, err)
	data, err := json.Marshal(env)
	require.NoError(t, err)
	return writeTestFile(t, "legacy.json", string(data))
}

// encryptedVaultFile produces a V1 vault file through RunEncryptVault.
func encryptedVaultFile(t *testing.T, uc vaultUseCase.ContentUseCase, password string) string {
	t.Helper()
	in := writeTestFile(t, "payload.json", samplePayloadJSON)
	out := filepath.Join(filepath.Dir(in), "vault.json")
	ioTuple, _ := passwordIO(password)
	require.NoError(t, RunEncryptVault(t.Context(), uc, discardLogger(), ioTuple, in, out))
	return out
}
