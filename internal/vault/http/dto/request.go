// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	vaultDomain "github.com/ClavisPass/ClavisPass-sub001/internal/vault/domain"
	customValidation "github.com/ClavisPass/ClavisPass-sub001/internal/validation"
)

// EncryptRequest seals a payload without storing it. A missing or null payload encrypts
// the empty vault.
type EncryptRequest struct {
	Password string               `json:"password"`
	Payload  *vaultDomain.Payload `json:"payload"`
}

// Validate checks if the encrypt request is valid.
func (r *EncryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.Payload),
	)
}

// DecryptRequest opens envelope content without storing it.
type DecryptRequest struct {
	Password string `json:"password"`
	Content  string `json:"content"`
}

// Validate checks if the decrypt request is valid. Content is not checked here: unknown
// content is a FORMAT result, not a validation error.
func (r *DecryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.Content, validation.Required),
	)
}

// InspectRequest asks for the envelope format of content.
type InspectRequest struct {
	Content string `json:"content"`
}

// Validate checks if the inspect request is valid.
func (r *InspectRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Content, validation.Required, customValidation.NotBlank),
	)
}

// SaveVaultRequest stores a payload under the vault name given in the URL.
type SaveVaultRequest struct {
	Password string               `json:"password"`
	Payload  *vaultDomain.Payload `json:"payload"`
}

// Validate checks if the save vault request is valid.
func (r *SaveVaultRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.Payload),
	)
}

// OpenVaultRequest unlocks the vault named in the URL.
type OpenVaultRequest struct {
	Password string `json:"password"`
}

// Validate checks if the open vault request is valid.
func (r *OpenVaultRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password, validation.Required),
	)
}

// ChangePasswordRequest re-encrypts the vault named in the URL.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Validate checks if the change password request is valid.
func (r *ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.OldPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required),
	)
}
