package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ClavisPass/ClavisPass-sub001/internal/database"
	apperrors "github.com/ClavisPass/ClavisPass-sub001/internal/errors"
	vaultDomain "github.com/ClavisPass/ClavisPass-sub001/internal/vault/domain"
)

// MySQLVaultRepository implements Vault persistence for MySQL databases.
// IDs are stored as BINARY(16).
type MySQLVaultRepository struct {
	db *sql.DB
}

// Get retrieves a vault by name.
func (m *MySQLVaultRepository) Get(ctx context.Context, name string) (*vaultDomain.Vault, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, content, created_at, updated_at 
			  FROM vaults 
			  WHERE name = ?`

	var vault vaultDomain.Vault
	var id []byte

	err := querier.QueryRowContext(ctx, query, name).Scan(
		&id,
		&vault.Name,
		&vault.Content,
		&vault.CreatedAt,
		&vault.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, vaultDomain.ErrVaultNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get vault")
	}

	if err := vault.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal vault id")
	}

	return &vault, nil
}

// List retrieves vaults ordered by name with pagination.
func (m *MySQLVaultRepository) List(ctx context.Context, offset, limit int) ([]*vaultDomain.Vault, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, content, created_at, updated_at 
			  FROM vaults 
			  ORDER BY name ASC 
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list vaults")
	}
	defer func() { _ = rows.Close() }()

	vaults := make([]*vaultDomain.Vault, 0)
	for rows.Next() {
		var vault vaultDomain.Vault
		var id []byte
		if err := rows.Scan(
			&id,
			&vault.Name,
			&vault.Content,
			&vault.CreatedAt,
			&vault.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan vault")
		}
		if err := vault.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal vault id")
		}
		vaults = append(vaults, &vault)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate vaults")
	}

	return vaults, nil
}

// Save inserts the vault or overwrites the content of the vault with the same name.
func (m *MySQLVaultRepository) Save(ctx context.Context, vault *vaultDomain.Vault) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO vaults (id, name, content, created_at, updated_at) 
			  VALUES (?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE content = VALUES(content), updated_at = VALUES(updated_at)`

	id, err := vault.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal vault id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		vault.Name,
		vault.Content,
		vault.CreatedAt,
		vault.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to save vault")
	}
	return nil
}

// Swap replaces the content of a vault only if it still holds oldContent.
func (m *MySQLVaultRepository) Swap(ctx context.Context, name, oldContent, newContent string) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE vaults 
			  SET content = ?, updated_at = ? 
			  WHERE name = ? AND content = ?`

	result, err := querier.ExecContext(ctx, query, newContent, time.Now().UTC(), name, oldContent)
	if err != nil {
		return apperrors.Wrap(err, "failed to swap vault content")
	}
	return requireAffected(result, vaultDomain.ErrVaultConflict)
}

// Delete removes a vault by name.
func (m *MySQLVaultRepository) Delete(ctx context.Context, name string) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM vaults WHERE name = ?`, name)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete vault")
	}
	return requireAffected(result, vaultDomain.ErrVaultNotFound)
}

// NewMySQLVaultRepository creates a new MySQL Vault repository.
func NewMySQLVaultRepository(db *sql.DB) *MySQLVaultRepository {
	return &MySQLVaultRepository{db: db}
}
