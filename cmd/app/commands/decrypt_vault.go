package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	vaultDomain "github.com/ClavisPass/ClavisPass-sub001/internal/vault/domain"
	"github.com/ClavisPass/ClavisPass-sub001/internal/vault/http/dto"
	vaultUseCase "github.com/ClavisPass/ClavisPass-sub001/internal/vault/usecase"
)

// ErrVaultUnreadable is returned when vault content could not be decrypted. The result
// has already been printed when it is returned.
var ErrVaultUnreadable = errors.New("vault could not be decrypted")

// RunDecryptVault decrypts the vault file at inPath and prints the plaintext payload.
// The file is never modified; a legacy vault is only reported as migratable (see
// RunMigrateVault). The master password is read from the first line of io.Reader.
//
// SECURITY: the output contains plaintext vault data.
func RunDecryptVault(
	ctx context.Context,
	contentUseCase vaultUseCase.ContentUseCase,
	logger *slog.Logger,
	io IOTuple,
	inPath string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	content, err := readFileString(inPath)
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

	logger.Info("vault decrypt finished",
		slog.String("in", inPath),
		slog.Bool("ok", result.OK),
		slog.String("format", string(result.Format)),
	)

	if format == "json" {
		if err := outputJSON(io.Writer, dto.MapDecryptResult(result, false)); err != nil {
			return err
		}
	} else if err := outputDecryptText(io, result); err != nil {
		return err
	}

	if !result.OK {
		return fmt.Errorf("%w: %s", ErrVaultUnreadable, result.Reason)
	}
	return nil
}

func outputDecryptText(io IOTuple, result *vaultDomain.DecryptResult) error {
	_, _ = fmt.Fprintf(io.Writer, "Format: %s\n", result.Format)
	if !result.OK {
		_, _ = fmt.Fprintf(io.Writer, "Status: failed (%s)\n", result.Reason)
		return nil
	}
	_, _ = fmt.Fprintln(io.Writer, "Status: ok")
	if result.Migrated() {
		_, _ = fmt.Fprintln(io.Writer, "Legacy vault: run migrate-vault to upgrade it to v1")
	}

	payload, err := json.MarshalIndent(result.Payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	_, _ = fmt.Fprintln(io.Writer, string(payload))
	return nil
}
