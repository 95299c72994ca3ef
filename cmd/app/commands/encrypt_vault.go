package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	vaultDomain "github.com/ClavisPass/ClavisPass-sub001/internal/vault/domain"
	vaultUseCase "github.com/ClavisPass/ClavisPass-sub001/internal/vault/usecase"
)

// RunEncryptVault seals the plaintext vault document at inPath as a V1 envelope and writes
// it to outPath with owner-only permissions. The master password is read from the first
// line of io.Reader.
func RunEncryptVault(
	ctx context.Context,
	contentUseCase vaultUseCase.ContentUseCase,
	logger *slog.Logger,
	io IOTuple,
	inPath string,
	outPath string,
) error {
	logger.Info("encrypting vault", slog.String("in", inPath), slog.String("out", outPath))

	raw, err := readFileString(inPath)
	if err != nil {
		return err
	}

	var payload vaultDomain.Payload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return fmt.Errorf("failed to parse vault payload: %w", err)
	}

	password, err := newPasswordReader(io.Reader).next("password")
	if err != nil {
		return err
	}

	content, err := contentUseCase.Encrypt(ctx, password, &payload)
	if err != nil {
		return fmt.Errorf("failed to encrypt vault: %w", err)
	}

	if err := writeFileAtomic(outPath, []byte(content)); err != nil {
		return err
	}

	logger.Info("vault encrypted successfully", slog.String("out", outPath))
	return nil
}
