package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ClavisPass/ClavisPass-sub001/internal/vault/http/dto"
	vaultUseCase "github.com/ClavisPass/ClavisPass-sub001/internal/vault/usecase"
)

// RunInspectVault prints the envelope format and public KDF/AEAD parameters of a vault
// file. No password is needed and nothing is decrypted.
func RunInspectVault(
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

	info, err := contentUseCase.Inspect(ctx, content)
	if err != nil {
		return fmt.Errorf("failed to inspect vault: %w", err)
	}

	logger.Debug("vault inspected", slog.String("in", inPath), slog.String("format", string(info.Format)))

	resp := dto.MapEnvelopeInfo(info)
	if format == "json" {
		return outputJSON(io.Writer, resp)
	}

	_, _ = fmt.Fprintf(io.Writer, "Format: %s\n", resp.Format)
	if resp.KDF != nil {
		_, _ = fmt.Fprintf(io.Writer, "KDF: %s (opslimit=%d, memlimit=%d, keylen=%d)\n",
			resp.KDF.Alg, resp.KDF.OpsLimit, resp.KDF.MemLimit, resp.KDF.KeyLen)
	}
	if resp.AEAD != nil {
		_, _ = fmt.Fprintf(io.Writer, "AEAD: %s\n", resp.AEAD.Alg)
	}
	if resp.LastUpdated != "" {
		_, _ = fmt.Fprintf(io.Writer, "Last updated: %s\n", resp.LastUpdated)
	}
	return nil
}
