package usecase

import (
	"context"
	"time"

	"github.com/ClavisPass/ClavisPass-sub001/internal/metrics"
	vaultDomain "github.com/ClavisPass/ClavisPass-sub001/internal/vault/domain"
)

const metricsDomain = "vault"

// Operation status labels.
const (
	statusSuccess    = "success"
	statusError      = "error"
	statusAuthFailed = "auth_failed"
	statusFormat     = "format"
)

// resultStatus maps a decrypt outcome to a status label.
func resultStatus(result *vaultDomain.DecryptResult, err error) string {
	switch {
	case err != nil:
		return statusError
	case result == nil:
		return statusError
	case result.OK:
		return statusSuccess
	case result.Reason == vaultDomain.ReasonFormat:
		return statusFormat
	default:
		return statusAuthFailed
	}
}

// recordMigration counts a legacy vault that came back with a V1 write-back candidate.
func recordMigration(ctx context.Context, m metrics.BusinessMetrics, result *vaultDomain.DecryptResult) {
	if result != nil && result.Migrated() {
		m.RecordMigration(ctx, string(result.Format))
	}
}

func errStatus(err error) string {
	if err != nil {
		return statusError
	}
	return statusSuccess
}

// contentUseCaseWithMetrics decorates ContentUseCase with metrics instrumentation.
type contentUseCaseWithMetrics struct {
	next    ContentUseCase
	metrics metrics.BusinessMetrics
}

// NewContentUseCaseWithMetrics wraps a ContentUseCase with metrics recording.
func NewContentUseCaseWithMetrics(useCase ContentUseCase, m metrics.BusinessMetrics) ContentUseCase {
	return &contentUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *contentUseCaseWithMetrics) record(ctx context.Context, operation, status string, start time.Time) {
	c.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	c.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// Decrypt records metrics for content decryption.
func (c *contentUseCaseWithMetrics) Decrypt(
	ctx context.Context,
	content, password string,
) (*vaultDomain.DecryptResult, error) {
	start := time.Now()
	result, err := c.next.Decrypt(ctx, content, password)
	c.record(ctx, "vault_decrypt", resultStatus(result, err), start)
	recordMigration(ctx, c.metrics, result)
	return result, err
}

// Encrypt records metrics for content encryption.
func (c *contentUseCaseWithMetrics) Encrypt(
	ctx context.Context,
	password string,
	payload *vaultDomain.Payload,
) (string, error) {
	start := time.Now()
	content, err := c.next.Encrypt(ctx, password, payload)
	c.record(ctx, "vault_encrypt", errStatus(err), start)
	return content, err
}

// Rekey records metrics for password changes on content.
func (c *contentUseCaseWithMetrics) Rekey(
	ctx context.Context,
	content, oldPassword, newPassword string,
) (string, error) {
	start := time.Now()
	out, err := c.next.Rekey(ctx, content, oldPassword, newPassword)
	c.record(ctx, "vault_rekey", errStatus(err), start)
	return out, err
}

// Inspect is not instrumented: it performs no cryptography.
func (c *contentUseCaseWithMetrics) Inspect(ctx context.Context, content string) (*vaultDomain.EnvelopeInfo, error) {
	return c.next.Inspect(ctx, content)
}

// vaultUseCaseWithMetrics decorates VaultUseCase with metrics instrumentation.
type vaultUseCaseWithMetrics struct {
	next    VaultUseCase
	metrics metrics.BusinessMetrics
}

// NewVaultUseCaseWithMetrics wraps a VaultUseCase with metrics recording.
func NewVaultUseCaseWithMetrics(useCase VaultUseCase, m metrics.BusinessMetrics) VaultUseCase {
	return &vaultUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (v *vaultUseCaseWithMetrics) record(ctx context.Context, operation, status string, start time.Time) {
	v.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	v.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// Save records metrics for vault saves.
func (v *vaultUseCaseWithMetrics) Save(
	ctx context.Context,
	name, password string,
	payload *vaultDomain.Payload,
) (*vaultDomain.Vault, error) {
	start := time.Now()
	vault, err := v.next.Save(ctx, name, password, payload)
	v.record(ctx, "vault_save", errStatus(err), start)
	return vault, err
}

// Open records metrics for vault opens.
func (v *vaultUseCaseWithMetrics) Open(
	ctx context.Context,
	name, password string,
) (*vaultDomain.DecryptResult, error) {
	start := time.Now()
	result, err := v.next.Open(ctx, name, password)
	v.record(ctx, "vault_open", resultStatus(result, err), start)
	recordMigration(ctx, v.metrics, result)
	return result, err
}

// ChangePassword records metrics for stored vault password changes.
func (v *vaultUseCaseWithMetrics) ChangePassword(
	ctx context.Context,
	name, oldPassword, newPassword string,
) (*vaultDomain.Vault, error) {
	start := time.Now()
	vault, err := v.next.ChangePassword(ctx, name, oldPassword, newPassword)
	v.record(ctx, "vault_change_password", errStatus(err), start)
	return vault, err
}

// Delete records metrics for vault deletions.
func (v *vaultUseCaseWithMetrics) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := v.next.Delete(ctx, name)
	v.record(ctx, "vault_delete", errStatus(err), start)
	return err
}

// List records metrics for vault listings.
func (v *vaultUseCaseWithMetrics) List(ctx context.Context, offset, limit int) ([]*vaultDomain.Vault, error) {
	start := time.Now()
	vaults, err := v.next.List(ctx, offset, limit)
	v.record(ctx, "vault_list", errStatus(err), start)
	return vaults, err
}
