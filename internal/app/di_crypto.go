package app

import (
	"context"
	"fmt"

	cryptoService "github.com/ClavisPass/ClavisPass-sub001/internal/crypto/service"
)

// CryptoProvider returns the cryptographic provider after checking that it is ready.
func (c *Container) CryptoProvider() (*cryptoService.SodiumProvider, error) {
	var err error
	c.cryptoProviderInit.Do(func() {
		c.cryptoProvider, err = c.initCryptoProvider()
		if err != nil {
			c.initErrors["cryptoProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cryptoProvider"]; exists {
		return nil, storedErr
	}
	return c.cryptoProvider, nil
}

// VaultV1Codec returns the V1 envelope codec configured with the KDF settings.
func (c *Container) VaultV1Codec() (*cryptoService.VaultV1Codec, error) {
	var err error
	c.v1CodecInit.Do(func() {
		c.v1Codec, err = c.initVaultV1Codec()
		if err != nil {
			c.initErrors["v1Codec"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["v1Codec"]; exists {
		return nil, storedErr
	}
	return c.v1Codec, nil
}

// LegacyCodec returns the read-only legacy envelope codec.
func (c *Container) LegacyCodec() *cryptoService.LegacyCodec {
	c.legacyCodecInit.Do(func() {
		c.legacyCodec = cryptoService.NewLegacyCodec()
	})
	return c.legacyCodec
}

func (c *Container) initCryptoProvider() (*cryptoService.SodiumProvider, error) {
	provider := cryptoService.NewSodiumProvider()
	if err := provider.Ready(context.Background()); err != nil {
		return nil, fmt.Errorf("crypto provider is not ready: %w", err)
	}
	return provider, nil
}

func (c *Container) initVaultV1Codec() (*cryptoService.VaultV1Codec, error) {
	provider, err := c.CryptoProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get crypto provider for v1 codec: %w", err)
	}
	return cryptoService.NewVaultV1Codec(
		provider,
		c.config.KDFOpsLimit,
		c.config.KDFMemLimit,
		c.config.KDFMaxOpsLimit,
		c.config.KDFMaxMemLimit,
	), nil
}
