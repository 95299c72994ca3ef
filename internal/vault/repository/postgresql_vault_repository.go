// Package repository implements persistence for stored vaults.
//
// Repositories only ever see envelope strings. The blob repository keeps one JSON object
// per vault in a gocloud.dev bucket; the SQL repositories keep one row per vault in
// PostgreSQL or MySQL. All of them guard the legacy write-back with a compare-and-swap on
// the content that was read.
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

// PostgreSQLVaultRepository implements Vault persistence for PostgreSQL databases.
type PostgreSQLVaultRepository struct {
	db *sql.DB
}

// Get retrieves a vault by name.
func (p *PostgreSQLVaultRepository) Get(ctx context.Context, name string) (*vaultDomain.Vault, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, content, created_at, updated_at 
			  FROM vaults 
			  WHERE name = $1`

	var vault vaultDomain.Vault
	err := querier.QueryRowContext(ctx, query, name).Scan(
		&vault.ID,
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
	return &vault, nil
}

// List retrieves vaults ordered by name with pagination.
func (p *PostgreSQLVaultRepository) List(ctx context.Context, offset, limit int) ([]*vaultDomain.Vault, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, content, created_at, updated_at 
			  FROM vaults 
			  ORDER BY name ASC 
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list vaults")
	}
	defer func() { _ = rows.Close() }()

	vaults := make([]*vaultDomain.Vault, 0)
	for rows.Next() {
		var vault vaultDomain.Vault
		if err := rows.Scan(
			&vault.ID,
			&vault.Name,
			&vault.Content,
			&vault.CreatedAt,
			&vault.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan vault")
		}
		vaults = append(vaults, &vault)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate vaults")
	}

	return vaults, nil
}

// Save inserts the vault or overwrites the content of the vault with the same name.
func (p *PostgreSQLVaultRepository) Save(ctx context.Context, vault *vaultDomain.Vault) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO vaults (id, name, content, created_at, updated_at) 
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (name) DO UPDATE 
			  SET content = EXCLUDED.content, updated_at = EXCLUDED.updated_at`

	_, err := querier.ExecContext(
		ctx,
		query,
		vault.ID,
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
func (p *PostgreSQLVaultRepository) Swap(ctx context.Context, name, oldContent, newContent string) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE vaults 
			  SET content = $1, updated_at = $2 
			  WHERE name = $3 AND content = $4`

	result, err := querier.ExecContext(ctx, query, newContent, time.Now().UTC(), name, oldContent)
	if err != nil {
		return apperrors.Wrap(err, "failed to swap vault content")
	}
	return requireAffected(result, vaultDomain.ErrVaultConflict)
}

// Delete removes a vault by name.
func (p *PostgreSQLVaultRepository) Delete(ctx context.Context, name string) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM vaults WHERE name = $1`, name)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete vault")
	}
	return requireAffected(result, vaultDomain.ErrVaultNotFound)
}

// requireAffected returns errNone when the statement changed no rows.
func requireAffected(result sql.Result, errNone error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return errNone
	}
	return nil
}

// NewPostgreSQLVaultRepository creates a new PostgreSQL Vault repository.
func NewPostgreSQLVaultRepository(db *sql.DB) *PostgreSQLVaultRepository {
	return &PostgreSQLVaultRepository{db: db}
}
