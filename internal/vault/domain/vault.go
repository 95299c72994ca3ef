package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"
)

// Vault is a stored envelope. Content is opaque ciphertext in either envelope format;
// the storage layer never sees plaintext.
type Vault struct {
	// ID is assigned on first save and kept across overwrites.
	ID uuid.UUID
	// Name is the storage key, unique per repository.
	Name string
	// Content is the serialized envelope.
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

var vaultNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidateName checks that name is usable as a storage key: 1 to 128 characters of
// letters, digits, dot, underscore or hyphen, not starting with a separator.
func ValidateName(name string) error {
	err := validation.Validate(name,
		validation.Required,
		validation.Match(vaultNameRegex),
	)
	if err != nil {
		return ErrInvalidVaultName
	}
	return nil
}
