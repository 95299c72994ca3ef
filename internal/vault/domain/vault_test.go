package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	cryptoDomain "github.com/ClavisPass/ClavisPass-sub001/internal/crypto/domain"
)

func TestValidateName(t *testing.T) {
	for _, name := range []string{"default", "vault.json", "team_vault-2", "A", strings.Repeat("a", 128)} {
		assert.NoError(t, ValidateName(name), name)
	}

	for _, name := range []string{"", ".hidden", "-x", "a/b", "../etc", "with space", strings.Repeat("a", 129)} {
		assert.ErrorIs(t, ValidateName(name), ErrInvalidVaultName, name)
	}
}

func TestDecryptResult(t *testing.T) {
	ok := Succeeded(cryptoDomain.FormatLegacy, EmptyPayload(), `{"v":1}`)
	assert.True(t, ok.OK)
	assert.True(t, ok.Migrated())
	assert.Empty(t, ok.Reason)

	plain := Succeeded(cryptoDomain.FormatV1, EmptyPayload(), "")
	assert.False(t, plain.Migrated())

	failed := Failed(cryptoDomain.FormatUnknown, ReasonFormat)
	assert.False(t, failed.OK)
	assert.Nil(t, failed.Payload)
	assert.Equal(t, ReasonFormat, failed.Reason)
}
