package commands

import (
	"context"
	"fmt"
	"log/slog"

	cryptoDomain "github.com/ClavisPass/ClavisPass-sub001/internal/crypto/domain"
	vaultUseCase "github.com/ClavisPass/ClavisPass-sub001/internal/vault/usecase"
)

// RunMigrateVault upgrades a legacy vault file to the V1 format in place. A file that is
// already V1 is left untouched. The master password is read from the first line of
// io.Reader.
//
// The replacement is written through a temporary file, so the legacy file survives any
// failure before the final rename.
func RunMigrateVault(
	ctx context.Context,
	contentUseCase vaultUseCase.ContentUseCase,
	logger *slog.Logger,
	io IOTuple,
	path string,
) error {
	content, err := readFileString(path)
	if err != nil {
		return err
	}

	password, err := newPasswordReader(io.Reader).next("password")
	if err != nil {
		return err
	}

	result, err := contentUseCase.Decrypt(ctx, content, password)
	if err != nil {
		return fmt.Errorf("failed to decrypt vault: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("%w: %s", ErrVaultUnreadable, result.Reason)
	}

	if result.Format == cryptoDomain.FormatV1 {
		logger.Info("vault is already v1, nothing to migrate", slog.String("file", path))
		_, _ = fmt.Fprintf(io.Writer, "%s is already in v1 format\n", path)
		return nil
	}

	if err := writeFileAtomic(path, []byte(result.MigratedContent)); err != nil {
		return err
	}

	logger.Info("vault migrated successfully",
		slog.String("file", path),
		slog.String("from", string(result.Format)),
	)
	_, _ = fmt.Fprintf(io.Writer, "%s migrated from %s to v1\n", path, result.Format)
	return nil
}
