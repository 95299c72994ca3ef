package commands

import (
	"context"
	"fmt"
	"log/slog"

	vaultUseCase "github.com/ClavisPass/ClavisPass-sub001/internal/vault/usecase"
)

// RunRekeyVault changes the master password of a vault file in place. The current and
// the new password are read from the first two lines of io.Reader. The result is always
// a V1 envelope with a fresh salt and nonce, so legacy files are migrated on the way.
func RunRekeyVault(
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

	passwords := newPasswordReader(io.Reader)
	oldPassword, err := passwords.next("current password")
	if err != nil {
		return err
	}
	newPassword, err := passwords.next("new password")
	if err != nil {
		return err
	}

	rekeyed, err := contentUseCase.Rekey(ctx, content, oldPassword, newPassword)
	if err != nil {
		return fmt.Errorf("failed to change vault password: %w", err)
	}

	if err := writeFileAtomic(path, []byte(rekeyed)); err != nil {
		return err
	}

	logger.Info("vault password changed successfully", slog.String("file", path))
	return nil
}
