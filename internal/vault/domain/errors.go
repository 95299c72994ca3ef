// Package domain defines core domain models and errors for vaults.
package domain

import (
	"github.com/ClavisPass/ClavisPass-sub001/internal/errors"
)

// Vault-specific error definitions.
var (
	// ErrVaultNotFound indicates no vault is stored under the requested name.
	ErrVaultNotFound = errors.Wrap(errors.ErrNotFound, "vault not found")

	// ErrVaultConflict indicates the stored content changed between read and write-back.
	ErrVaultConflict = errors.Wrap(errors.ErrConflict, "vault changed concurrently")

	// ErrInvalidPayload indicates decrypted or submitted vault data does not match the
	// payload schema.
	ErrInvalidPayload = errors.Wrap(errors.ErrInvalidInput, "invalid vault payload")

	// ErrInvalidVaultName indicates a vault name is empty or unsafe as a storage key.
	ErrInvalidVaultName = errors.Wrap(errors.ErrInvalidInput, "invalid vault name")
)
