package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ClavisPass/ClavisPass-sub001/internal/database"
	apperrors "github.com/ClavisPass/ClavisPass-sub001/internal/errors"
	vaultDomain "github.com/ClavisPass/ClavisPass-sub001/internal/vault/domain"
)

// vaultUseCase implements VaultUseCase.
type vaultUseCase struct {
	txManager database.TxManager
	vaultRepo VaultRepository
	content   ContentUseCase
	logger    *slog.Logger
}

// NewVaultUseCase creates a VaultUseCase. txManager scopes the read-modify-write of Save;
// repositories without transactions use database.NewNopTxManager.
func NewVaultUseCase(
	txManager database.TxManager,
	vaultRepo VaultRepository,
	content ContentUseCase,
	logger *slog.Logger,
) VaultUseCase {
	return &vaultUseCase{
		txManager: txManager,
		vaultRepo: vaultRepo,
		content:   content,
		logger:    logger,
	}
}

// Save encrypts payload as V1 and stores it under name, keeping the ID and creation time
// of an existing vault.
func (v *vaultUseCase) Save(
	ctx context.Context,
	name, password string,
	payload *vaultDomain.Payload,
) (*vaultDomain.Vault, error) {
	if err := vaultDomain.ValidateName(name); err != nil {
		return nil, err
	}

	// Key derivation is slow: run it before opening a transaction.
	content, err := v.content.Encrypt(ctx, password, payload)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	vault := &vaultDomain.Vault{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      name,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = v.txManager.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := v.vaultRepo.Get(txCtx, name)
		if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if existing != nil {
			vault.ID = existing.ID
			vault.CreatedAt = existing.CreatedAt
		}
		return v.vaultRepo.Save(txCtx, vault)
	})
	if err != nil {
		return nil, err
	}

	return vault, nil
}

// Open loads, decrypts and, for legacy vaults, migrates the stored content.
func (v *vaultUseCase) Open(
	ctx context.Context,
	name, password string,
) (*vaultDomain.DecryptResult, error) {
	if err := vaultDomain.ValidateName(name); err != nil {
		return nil, err
	}

	vault, err := v.vaultRepo.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	result, err := v.content.Decrypt(ctx, vault.Content, password)
	if err != nil {
		return nil, err
	}

	if result.OK && result.Migrated() {
		v.writeBack(ctx, vault, result.MigratedContent)
	}

	return result, nil
}

// writeBack stores migrated content if the vault is unchanged since it was read.
func (v *vaultUseCase) writeBack(ctx context.Context, vault *vaultDomain.Vault, migrated string) {
	err := v.vaultRepo.Swap(ctx, vault.Name, vault.Content, migrated)
	switch {
	case err == nil:
		v.logger.InfoContext(ctx, "legacy vault migrated",
			slog.String("vault", vault.Name),
			slog.String("vault_id", vault.ID.String()),
		)
	case apperrors.Is(err, apperrors.ErrConflict):
		v.logger.WarnContext(ctx, "legacy vault changed before migration write-back",
			slog.String("vault", vault.Name),
		)
	default:
		v.logger.ErrorContext(ctx, "failed to write back migrated vault",
			slog.String("vault", vault.Name),
			slog.Any("error", err),
		)
	}
}

// ChangePassword re-encrypts a stored vault under newPassword.
func (v *vaultUseCase) ChangePassword(
	ctx context.Context,
	name, oldPassword, newPassword string,
) (*vaultDomain.Vault, error) {
	if err := vaultDomain.ValidateName(name); err != nil {
		return nil, err
	}

	vault, err := v.vaultRepo.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	content, err := v.content.Rekey(ctx, vault.Content, oldPassword, newPassword)
	if err != nil {
		return nil, err
	}

	if err := v.vaultRepo.Swap(ctx, name, vault.Content, content); err != nil {
		return nil, err
	}

	vault.Content = content
	vault.UpdatedAt = time.Now().UTC()
	return vault, nil
}

// Delete removes a stored vault.
func (v *vaultUseCase) Delete(ctx context.Context, name string) error {
	if err := vaultDomain.ValidateName(name); err != nil {
		return err
	}
	return v.vaultRepo.Delete(ctx, name)
}

// List returns stored vaults with pagination. Content stays encrypted.
func (v *vaultUseCase) List(ctx context.Context, offset, limit int) ([]*vaultDomain.Vault, error) {
	return v.vaultRepo.List(ctx, offset, limit)
}
