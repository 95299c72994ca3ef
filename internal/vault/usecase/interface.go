// Package usecase defines the interfaces and implementations for vault use cases.
// Use cases orchestrate the envelope codecs and the vault repositories: detecting the
// envelope format of stored content, migrating legacy vaults to V1 and persisting the
// result.
package usecase

import (
	"context"

	cryptoDomain "github.com/ClavisPass/ClavisPass-sub001/internal/crypto/domain"
	cryptoService "github.com/ClavisPass/ClavisPass-sub001/internal/crypto/service"
	vaultDomain "github.com/ClavisPass/ClavisPass-sub001/internal/vault/domain"
)

// VaultV1Codec seals and opens V1 envelopes.
type VaultV1Codec interface {
	Encrypt(password string, payload any, opts ...cryptoService.EncryptOption) (string, error)
	Decrypt(env *cryptoDomain.VaultV1Envelope, password string, out any) error
}

// LegacyCodec opens legacy envelopes.
type LegacyCodec interface {
	Decrypt(env *cryptoDomain.LegacyEnvelope, password string) (string, error)
}

// VaultRepository defines the interface for vault persistence operations.
type VaultRepository interface {
	// Get returns the vault stored under name, or ErrVaultNotFound.
	Get(ctx context.Context, name string) (*vaultDomain.Vault, error)
	// Save creates or overwrites the vault stored under vault.Name.
	Save(ctx context.Context, vault *vaultDomain.Vault) error
	// Swap replaces the content of name with newContent only if it still equals
	// oldContent. Otherwise it returns ErrVaultConflict and writes nothing.
	Swap(ctx context.Context, name, oldContent, newContent string) error
	// Delete removes the vault stored under name, or returns ErrVaultNotFound.
	Delete(ctx context.Context, name string) error
	// List returns up to limit vaults after skipping offset, in a stable order.
	List(ctx context.Context, offset, limit int) ([]*vaultDomain.Vault, error)
}

// ContentUseCase works on envelope strings without touching storage.
type ContentUseCase interface {
	// Decrypt detects the envelope format of content and decrypts it.
	//
	// Undecryptable content is reported through the result (FORMAT or AUTH_FAILED),
	// not through the error. The error is reserved for an unavailable crypto provider.
	// A legacy envelope that decrypts is re-encrypted as V1 and returned in
	// MigratedContent.
	Decrypt(ctx context.Context, content, password string) (*vaultDomain.DecryptResult, error)
	// Encrypt validates payload and seals it as a V1 envelope.
	Encrypt(ctx context.Context, password string, payload *vaultDomain.Payload) (string, error)
	// Rekey decrypts content under oldPassword (either format) and re-encrypts it as V1
	// under newPassword. It fails with ErrDecryptionFailed or ErrInvalidEnvelope.
	Rekey(ctx context.Context, content, oldPassword, newPassword string) (string, error)
	// Inspect reports the envelope format and public parameters of content.
	Inspect(ctx context.Context, content string) (*vaultDomain.EnvelopeInfo, error)
}

// VaultUseCase defines the interface for stored vault business logic.
type VaultUseCase interface {
	Save(ctx context.Context, name, password string, payload *vaultDomain.Payload) (*vaultDomain.Vault, error)
	// Open loads and decrypts a stored vault. Legacy vaults are written back as V1; a
	// failed write-back is logged and does not fail the call.
	Open(ctx context.Context, name, password string) (*vaultDomain.DecryptResult, error)
	ChangePassword(ctx context.Context, name, oldPassword, newPassword string) (*vaultDomain.Vault, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context, offset, limit int) ([]*vaultDomain.Vault, error)
}
