package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	cryptoDomain "github.com/ClavisPass/ClavisPass-sub001/internal/crypto/domain"
	apperrors "github.com/ClavisPass/ClavisPass-sub001/internal/errors"
	vaultDomain "github.com/ClavisPass/ClavisPass-sub001/internal/vault/domain"
)

// contentUseCase implements ContentUseCase.
type contentUseCase struct {
	v1     VaultV1Codec
	legacy LegacyCodec
	logger *slog.Logger
}

// NewContentUseCase creates a ContentUseCase over the given codecs.
func NewContentUseCase(v1 VaultV1Codec, legacy LegacyCodec, logger *slog.Logger) ContentUseCase {
	return &contentUseCase{
		v1:     v1,
		legacy: legacy,
		logger: logger,
	}
}

// Decrypt runs the format dispatch: V1 schema first, then legacy, then FORMAT.
func (c *contentUseCase) Decrypt(
	ctx context.Context,
	content, password string,
) (*vaultDomain.DecryptResult, error) {
	data := []byte(content)
	if !json.Valid(data) {
		return c.fail(ctx, cryptoDomain.FormatUnknown, vaultDomain.ReasonFormat), nil
	}

	if env, err := cryptoDomain.ParseVaultV1(data); err == nil {
		return c.decryptV1(ctx, env, password)
	}
	if env, err := cryptoDomain.ParseLegacy(data); err == nil {
		return c.decryptLegacy(ctx, env, password)
	}

	return c.fail(ctx, cryptoDomain.FormatUnknown, vaultDomain.ReasonFormat), nil
}

func (c *contentUseCase) decryptV1(
	ctx context.Context,
	env *cryptoDomain.VaultV1Envelope,
	password string,
) (*vaultDomain.DecryptResult, error) {
	var plaintext json.RawMessage
	err := c.v1.Decrypt(env, password, &plaintext)
	defer cryptoDomain.Zero(plaintext)

	switch {
	case err == nil:
	case apperrors.Is(err, apperrors.ErrUnavailable):
		return nil, err
	case apperrors.Is(err, cryptoDomain.ErrInvalidKDFParams):
		// Cost parameters outside what this build will attempt: corrupted storage.
		return c.fail(ctx, cryptoDomain.FormatV1, vaultDomain.ReasonFormat), nil
	default:
		return c.fail(ctx, cryptoDomain.FormatV1, vaultDomain.ReasonAuthFailed), nil
	}

	payload, err := vaultDomain.ParsePayload(plaintext)
	if err != nil {
		return c.fail(ctx, cryptoDomain.FormatV1, vaultDomain.ReasonAuthFailed), nil
	}

	c.logger.DebugContext(ctx, "vault content decrypted", slog.String("format", string(cryptoDomain.FormatV1)))
	return vaultDomain.Succeeded(cryptoDomain.FormatV1, payload, ""), nil
}

func (c *contentUseCase) decryptLegacy(
	ctx context.Context,
	env *cryptoDomain.LegacyEnvelope,
	password string,
) (*vaultDomain.DecryptResult, error) {
	plaintext, err := c.legacy.Decrypt(env, password)
	if err != nil {
		return c.fail(ctx, cryptoDomain.FormatLegacy, vaultDomain.ReasonAuthFailed), nil
	}

	payload, err := vaultDomain.ParsePayload([]byte(plaintext))
	if err != nil {
		return c.fail(ctx, cryptoDomain.FormatLegacy, vaultDomain.ReasonAuthFailed), nil
	}

	// New salt and nonce, same password. Never derived from the legacy salt or IV.
	migrated, err := c.v1.Encrypt(password, payload)
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "legacy vault content migrated to v1")
	return vaultDomain.Succeeded(cryptoDomain.FormatLegacy, payload, migrated), nil
}

func (c *contentUseCase) fail(
	ctx context.Context,
	format cryptoDomain.Format,
	reason vaultDomain.Reason,
) *vaultDomain.DecryptResult {
	c.logger.DebugContext(ctx, "vault content not decrypted",
		slog.String("format", string(format)),
		slog.String("reason", string(reason)),
	)
	return vaultDomain.Failed(format, reason)
}

// Encrypt always writes V1.
func (c *contentUseCase) Encrypt(
	ctx context.Context,
	password string,
	payload *vaultDomain.Payload,
) (string, error) {
	if payload == nil {
		payload = vaultDomain.EmptyPayload()
	}
	if err := payload.Validate(); err != nil {
		return "", apperrors.Wrap(vaultDomain.ErrInvalidPayload, err.Error())
	}
	return c.v1.Encrypt(password, payload)
}

// Rekey changes the password of content, migrating legacy content on the way.
func (c *contentUseCase) Rekey(
	ctx context.Context,
	content, oldPassword, newPassword string,
) (string, error) {
	result, err := c.Decrypt(ctx, content, oldPassword)
	if err != nil {
		return "", err
	}
	if !result.OK {
		if result.Reason == vaultDomain.ReasonFormat {
			return "", cryptoDomain.ErrInvalidEnvelope
		}
		return "", cryptoDomain.ErrDecryptionFailed
	}
	return c.v1.Encrypt(newPassword, result.Payload)
}

// Inspect never needs a password: it only reads envelope headers.
func (c *contentUseCase) Inspect(ctx context.Context, content string) (*vaultDomain.EnvelopeInfo, error) {
	data := []byte(content)

	if env, err := cryptoDomain.ParseVaultV1(data); err == nil {
		kdf, aead := env.KDF, env.AEAD
		return &vaultDomain.EnvelopeInfo{Format: cryptoDomain.FormatV1, KDF: &kdf, AEAD: &aead}, nil
	}
	if env, err := cryptoDomain.ParseLegacy(data); err == nil {
		return &vaultDomain.EnvelopeInfo{Format: cryptoDomain.FormatLegacy, LastUpdated: env.LastUpdated}, nil
	}

	return &vaultDomain.EnvelopeInfo{Format: cryptoDomain.FormatUnknown}, nil
}
