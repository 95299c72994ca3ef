package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClavisPass/ClavisPass-sub001/internal/database"
	apperrors "github.com/ClavisPass/ClavisPass-sub001/internal/errors"
	vaultDomain "github.com/ClavisPass/ClavisPass-sub001/internal/vault/domain"
)

func newVault(name, content string) *vaultDomain.Vault {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &vaultDomain.Vault{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      name,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newPostgresMock(t *testing.T) (*PostgreSQLVaultRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgreSQLVaultRepository(db), mock
}

func TestPostgreSQLVaultRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mock := newPostgresMock(t)
		want := newVault("personal", `{"v":1}`)

		rows := sqlmock.NewRows([]string{"id", "name", "content", "created_at", "updated_at"}).
			AddRow(want.ID.String(), want.Name, want.Content, want.CreatedAt, want.UpdatedAt)
		mock.ExpectQuery(`SELECT id, name, content, created_at, updated_at\s+FROM vaults\s+WHERE name = \$1`).
			WithArgs("personal").
			WillReturnRows(rows)

		got, err := repo.Get(ctx, "personal")

		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock := newPostgresMock(t)
		mock.ExpectQuery(`FROM vaults`).WithArgs("missing").WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(ctx, "missing")

		assert.ErrorIs(t, err, vaultDomain.ErrVaultNotFound)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("DatabaseError", func(t *testing.T) {
		repo, mock := newPostgresMock(t)
		mock.ExpectQuery(`FROM vaults`).WithArgs("personal").WillReturnError(assert.AnError)

		_, err := repo.Get(ctx, "personal")

		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "failed to get vault")
	})
}

func TestPostgreSQLVaultRepository_Save(t *testing.T) {
	ctx := context.Background()
	repo, mock := newPostgresMock(t)
	vault := newVault("personal", `{"v":1}`)

	mock.ExpectExec(`INSERT INTO vaults .* ON CONFLICT \(name\) DO UPDATE`).
		WithArgs(vault.ID, vault.Name, vault.Content, vault.CreatedAt, vault.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(ctx, vault))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLVaultRepository_Save_UsesTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLVaultRepository(db)
	vault := newVault("personal", `{"v":1}`)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO vaults`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = database.NewTxManager(db).WithTx(context.Background(), func(txCtx context.Context) error {
		return repo.Save(txCtx, vault)
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLVaultRepository_Swap(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mock := newPostgresMock(t)
		mock.ExpectExec(`UPDATE vaults\s+SET content = \$1, updated_at = \$2\s+WHERE name = \$3 AND content = \$4`).
			WithArgs("new", sqlmock.AnyArg(), "personal", "old").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Swap(ctx, "personal", "old", "new"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Conflict", func(t *testing.T) {
		repo, mock := newPostgresMock(t)
		mock.ExpectExec(`UPDATE vaults`).
			WithArgs("new", sqlmock.AnyArg(), "personal", "old").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Swap(ctx, "personal", "old", "new")

		assert.ErrorIs(t, err, vaultDomain.ErrVaultConflict)
	})
}

func TestPostgreSQLVaultRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mock := newPostgresMock(t)
		mock.ExpectExec(`DELETE FROM vaults WHERE name = \$1`).
			WithArgs("personal").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(ctx, "personal"))
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock := newPostgresMock(t)
		mock.ExpectExec(`DELETE FROM vaults`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, "missing"), vaultDomain.ErrVaultNotFound)
	})

	t.Run("RowsAffectedError", func(t *testing.T) {
		repo, mock := newPostgresMock(t)
		mock.ExpectExec(`DELETE FROM vaults`).
			WithArgs("personal").
			WillReturnResult(sqlmock.NewErrorResult(assert.AnError))

		err := repo.Delete(ctx, "personal")

		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestPostgreSQLVaultRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mock := newPostgresMock(t)
		a := newVault("alpha", "c1")
		b := newVault("bravo", "c2")

		rows := sqlmock.NewRows([]string{"id", "name", "content", "created_at", "updated_at"}).
			AddRow(a.ID.String(), a.Name, a.Content, a.CreatedAt, a.UpdatedAt).
			AddRow(b.ID.String(), b.Name, b.Content, b.CreatedAt, b.UpdatedAt)
		mock.ExpectQuery(`ORDER BY name ASC\s+LIMIT \$1 OFFSET \$2`).
			WithArgs(50, 0).
			WillReturnRows(rows)

		vaults, err := repo.List(ctx, 0, 50)

		require.NoError(t, err)
		assert.Equal(t, []*vaultDomain.Vault{a, b}, vaults)
	})

	t.Run("Empty", func(t *testing.T) {
		repo, mock := newPostgresMock(t)
		mock.ExpectQuery(`FROM vaults`).
			WithArgs(10, 20).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "content", "created_at", "updated_at"}))

		vaults, err := repo.List(ctx, 20, 10)

		require.NoError(t, err)
		assert.NotNil(t, vaults)
		assert.Empty(t, vaults)
	})

	t.Run("QueryError", func(t *testing.T) {
		repo, mock := newPostgresMock(t)
		mock.ExpectQuery(`FROM vaults`).WillReturnError(assert.AnError)

		_, err := repo.List(ctx, 0, 10)

		assert.ErrorIs(t, err, assert.AnError)
	})
}
