package dto

import (
	"time"

	cryptoDomain "github.com/ClavisPass/ClavisPass-sub001/internal/crypto/domain"
	vaultDomain "github.com/ClavisPass/ClavisPass-sub001/internal/vault/domain"
)

// EncryptResponse carries a freshly written V1 envelope.
type EncryptResponse struct {
	Content string `json:"content"`
}

// DecryptResponse mirrors vaultDomain.DecryptResult.
// SECURITY: Payload holds plaintext vault data. Must be transmitted over HTTPS.
type DecryptResponse struct {
	OK              bool                 `json:"ok"`
	Format          cryptoDomain.Format  `json:"format"`
	Reason          vaultDomain.Reason   `json:"reason,omitempty"`
	Payload         *vaultDomain.Payload `json:"payload,omitempty"`
	MigratedContent string               `json:"migrated_content,omitempty"`
	Migrated        bool                 `json:"migrated"`
}

// MapDecryptResult converts a decrypt result to an API response. includeContent controls
// whether the migrated envelope is returned; stored vaults write it back themselves.
func MapDecryptResult(result *vaultDomain.DecryptResult, includeContent bool) DecryptResponse {
	resp := DecryptResponse{
		OK:       result.OK,
		Format:   result.Format,
		Reason:   result.Reason,
		Payload:  result.Payload,
		Migrated: result.Migrated(),
	}
	if includeContent {
		resp.MigratedContent = result.MigratedContent
	}
	return resp
}

// InspectResponse describes an envelope without its ciphertext.
type InspectResponse struct {
	Format      cryptoDomain.Format      `json:"format"`
	KDF         *cryptoDomain.KDFParams  `json:"kdf,omitempty"`
	AEAD        *cryptoDomain.AEADParams `json:"aead,omitempty"`
	LastUpdated string                   `json:"last_updated,omitempty"`
}

// MapEnvelopeInfo converts envelope info to an API response.
func MapEnvelopeInfo(info *vaultDomain.EnvelopeInfo) InspectResponse {
	return InspectResponse{
		Format:      info.Format,
		KDF:         info.KDF,
		AEAD:        info.AEAD,
		LastUpdated: info.LastUpdated,
	}
}

// VaultResponse represents a stored vault in API responses. The envelope content is never
// included.
type VaultResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MapVaultToResponse converts a domain vault to an API response.
func MapVaultToResponse(vault *vaultDomain.Vault) VaultResponse {
	return VaultResponse{
		ID:        vault.ID.String(),
		Name:      vault.Name,
		CreatedAt: vault.CreatedAt,
		UpdatedAt: vault.UpdatedAt,
	}
}

// ListVaultsResponse represents a paginated list of vaults in API responses.
type ListVaultsResponse struct {
	Data []VaultResponse `json:"data"`
}

// MapVaultsToListResponse converts a slice of domain vaults to a list response.
func MapVaultsToListResponse(vaults []*vaultDomain.Vault) ListVaultsResponse {
	data := make([]VaultResponse, 0, len(vaults))
	for _, vault := range vaults {
		data = append(data, MapVaultToResponse(vault))
	}
	return ListVaultsResponse{Data: data}
}
