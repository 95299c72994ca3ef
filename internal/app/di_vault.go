package app

import (
	"context"
	"fmt"

	"github.com/ClavisPass/ClavisPass-sub001/internal/config"
	vaultHTTP "github.com/ClavisPass/ClavisPass-sub001/internal/vault/http"
	vaultRepository "github.com/ClavisPass/ClavisPass-sub001/internal/vault/repository"
	vaultUseCase "github.com/ClavisPass/ClavisPass-sub001/internal/vault/usecase"
)

// VaultRepository returns the vault repository selected by VAULT_STORAGE.
func (c *Container) VaultRepository() (vaultUseCase.VaultRepository, error) {
	var err error
	c.vaultRepositoryInit.Do(func() {
		c.vaultRepository, err = c.initVaultRepository()
		if err != nil {
			c.initErrors["vaultRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["vaultRepository"]; exists {
		return nil, storedErr
	}
	return c.vaultRepository, nil
}

// ContentUseCase returns the envelope use case, instrumented with business metrics.
func (c *Container) ContentUseCase() (vaultUseCase.ContentUseCase, error) {
	var err error
	c.contentUseCaseInit.Do(func() {
		c.contentUseCase, err = c.initContentUseCase()
		if err != nil {
			c.initErrors["contentUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["contentUseCase"]; exists {
		return nil, storedErr
	}
	return c.contentUseCase, nil
}

// VaultUseCase returns the stored vault use case, instrumented with business metrics.
func (c *Container) VaultUseCase() (vaultUseCase.VaultUseCase, error) {
	var err error
	c.vaultUseCaseInit.Do(func() {
		c.vaultUseCase, err = c.initVaultUseCase()
		if err != nil {
			c.initErrors["vaultUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["vaultUseCase"]; exists {
		return nil, storedErr
	}
	return c.vaultUseCase, nil
}

// ContentHandler returns the HTTP handler for envelope operations.
func (c *Container) ContentHandler() (*vaultHTTP.ContentHandler, error) {
	var err error
	c.contentHandlerInit.Do(func() {
		c.contentHandler, err = c.initContentHandler()
		if err != nil {
			c.initErrors["contentHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["contentHandler"]; exists {
		return nil, storedErr
	}
	return c.contentHandler, nil
}

// VaultHandler returns the HTTP handler for stored vault operations.
func (c *Container) VaultHandler() (*vaultHTTP.VaultHandler, error) {
	var err error
	c.vaultHandlerInit.Do(func() {
		c.vaultHandler, err = c.initVaultHandler()
		if err != nil {
			c.initErrors["vaultHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["vaultHandler"]; exists {
		return nil, storedErr
	}
	return c.vaultHandler, nil
}

// initVaultRepository selects the repository implementation based on the storage setting.
func (c *Container) initVaultRepository() (vaultUseCase.VaultRepository, error) {
	switch c.config.VaultStorage {
	case config.StorageBlob:
		repo, err := vaultRepository.OpenBlobVaultRepository(context.Background(), c.config.VaultBlobURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open blob vault repository: %w", err)
		}
		c.blobRepository = repo
		return repo, nil
	case config.StoragePostgres, config.StorageMySQL:
		if c.config.DBDriver != c.config.VaultStorage {
			return nil, fmt.Errorf(
				"vault storage %q does not match database driver %q",
				c.config.VaultStorage,
				c.config.DBDriver,
			)
		}
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for vault repository: %w", err)
		}
		if c.config.VaultStorage == config.StorageMySQL {
			return vaultRepository.NewMySQLVaultRepository(db), nil
		}
		return vaultRepository.NewPostgreSQLVaultRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported vault storage: %s", c.config.VaultStorage)
	}
}

func (c *Container) initContentUseCase() (vaultUseCase.ContentUseCase, error) {
	v1Codec, err := c.VaultV1Codec()
	if err != nil {
		return nil, fmt.Errorf("failed to get v1 codec for content use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for content use case: %w", err)
	}

	useCase := vaultUseCase.NewContentUseCase(v1Codec, c.LegacyCodec(), c.Logger())
	return vaultUseCase.NewContentUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initVaultUseCase() (vaultUseCase.VaultUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for vault use case: %w", err)
	}

	repo, err := c.VaultRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get vault repository for vault use case: %w", err)
	}

	// The stored vault use case calls the undecorated content use case so that each
	// request is recorded once, under its vault_* operation.
	v1Codec, err := c.VaultV1Codec()
	if err != nil {
		return nil, fmt.Errorf("failed to get v1 codec for vault use case: %w", err)
	}
	content := vaultUseCase.NewContentUseCase(v1Codec, c.LegacyCodec(), c.Logger())

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for vault use case: %w", err)
	}

	useCase := vaultUseCase.NewVaultUseCase(txManager, repo, content, c.Logger())
	return vaultUseCase.NewVaultUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initContentHandler() (*vaultHTTP.ContentHandler, error) {
	useCase, err := c.ContentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get content use case for content handler: %w", err)
	}
	return vaultHTTP.NewContentHandler(useCase, c.Logger()), nil
}

func (c *Container) initVaultHandler() (*vaultHTTP.VaultHandler, error) {
	useCase, err := c.VaultUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get vault use case for vault handler: %w", err)
	}
	return vaultHTTP.NewVaultHandler(useCase, c.Logger()), nil
}
