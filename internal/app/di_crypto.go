package app

import (
	"context"
	"fmt"

	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/syteworks/stellar-custody/internal/crypto/domain"
	cryptoService "github.com/syteworks/stellar-custody/internal/crypto/service"
	customValidation "github.com/syteworks/stellar-custody/internal/validation"
)

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// MasterKey returns the master encryption key, loaded from the environment
// and optionally unwrapped through KMS.
func (c *Container) MasterKey() (*cryptoDomain.MasterKey, error) {
	c.masterKeyInit.Do(func() {
		if err := validation.Validate(c.config.MasterEncryptionKey, customValidation.Base64); err != nil {
			c.initErrors["masterKey"] = fmt.Errorf("MASTER_ENCRYPTION_KEY: %w", err)
			return
		}

		ctx := context.Background()
		var keeper cryptoDomain.KMSKeeper
		if c.config.KMSKeyURI != "" {
			opened, err := c.KMSService().OpenKeeper(ctx, c.config.KMSKeyURI)
			if err != nil {
				c.initErrors["masterKey"] = err
				return
			}
			keeper = opened
			defer func() { _ = keeper.Close() }()
		}

		masterKey, err := cryptoDomain.LoadMasterKey(ctx, c.config.MasterEncryptionKey, keeper, c.Logger())
		if err != nil {
			c.initErrors["masterKey"] = err
			return
		}
		c.masterKey = masterKey
	})
	if storedErr, exists := c.initErrors["masterKey"]; exists {
		return nil, storedErr
	}
	return c.masterKey, nil
}

// Envelope returns the envelope encryption service bound to the master key.
func (c *Container) Envelope() (cryptoService.Envelope, error) {
	c.envelopeInit.Do(func() {
		masterKey, err := c.MasterKey()
		if err != nil {
			c.initErrors["envelope"] = err
			return
		}
		c.envelope = cryptoService.NewEnvelope(masterKey, cryptoService.NewAESGCM())
	})
	if storedErr, exists := c.initErrors["envelope"]; exists {
		return nil, storedErr
	}
	return c.envelope, nil
}
