package app

import (
	"github.com/stellar/go/network"

	walletDomain "github.com/syteworks/stellar-custody/internal/wallet/domain"
	walletHTTP "github.com/syteworks/stellar-custody/internal/wallet/http"
	walletRepository "github.com/syteworks/stellar-custody/internal/wallet/repository"
	walletService "github.com/syteworks/stellar-custody/internal/wallet/service"
	walletUseCase "github.com/syteworks/stellar-custody/internal/wallet/usecase"
)

// SponsorConfig maps the application configuration to the workflow's sponsor
// settings, resolving the network name to its passphrase.
func (c *Container) SponsorConfig() walletDomain.SponsorConfig {
	return walletDomain.SponsorConfig{
		HorizonURL:         c.config.HorizonURL,
		NetworkPassphrase:  resolveNetworkPassphrase(c.config.NetworkPassphrase),
		SponsorPublicKey:   c.config.SponsorPublicKey,
		SponsorPrivateKey:  c.config.SponsorPrivateKey,
		AssetCode:          c.config.AssetCode,
		AssetIssuer:        c.config.AssetIssuer,
		TrustlineLimit:     c.config.TrustlineLimit,
		TransactionTimeout: c.config.TransactionTimeout,
	}
}

// KeypairGenerator returns the Stellar keypair generator.
func (c *Container) KeypairGenerator() walletService.KeypairGenerator {
	c.keypairGeneratorInit.Do(func() {
		c.keypairGenerator = walletService.NewKeypairGenerator()
	})
	return c.keypairGenerator
}

// LedgerService returns the Horizon-backed ledger service.
func (c *Container) LedgerService() walletService.LedgerService {
	c.ledgerServiceInit.Do(func() {
		cfg := c.SponsorConfig()
		c.ledgerService = walletService.NewLedgerService(walletService.NewHorizonClient(cfg), cfg)
	})
	return c.ledgerService
}

// AccountRepository returns the account repository based on database driver.
func (c *Container) AccountRepository() (walletUseCase.AccountRepository, error) {
	c.accountRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["accountRepo"] = err
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.accountRepo = walletRepository.NewMySQLAccountRepository(db)
		default:
			c.accountRepo = walletRepository.NewPostgreSQLAccountRepository(db)
		}
	})
	if storedErr, exists := c.initErrors["accountRepo"]; exists {
		return nil, storedErr
	}
	return c.accountRepo, nil
}

// WalletUseCase returns the provisioning use case, decorated with metrics.
func (c *Container) WalletUseCase() (walletUseCase.WalletUseCase, error) {
	c.walletUseCaseInit.Do(func() {
		envelope, err := c.Envelope()
		if err != nil {
			c.initErrors["walletUseCase"] = err
			return
		}
		repo, err := c.AccountRepository()
		if err != nil {
			c.initErrors["walletUseCase"] = err
			return
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["walletUseCase"] = err
			return
		}

		useCase := walletUseCase.NewWalletUseCase(
			c.SponsorConfig(),
			c.KeypairGenerator(),
			c.LedgerService(),
			envelope,
			repo,
			c.Logger(),
		)
		c.walletUC = walletUseCase.NewWalletUseCaseWithMetrics(useCase, businessMetrics)
	})
	if storedErr, exists := c.initErrors["walletUseCase"]; exists {
		return nil, storedErr
	}
	return c.walletUC, nil
}

// WalletHandler returns the wallet HTTP handler.
func (c *Container) WalletHandler() (*walletHTTP.WalletHandler, error) {
	c.walletHandlerInit.Do(func() {
		useCase, err := c.WalletUseCase()
		if err != nil {
			c.initErrors["walletHandler"] = err
			return
		}
		c.walletHandler = walletHTTP.NewWalletHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["walletHandler"]; exists {
		return nil, storedErr
	}
	return c.walletHandler, nil
}

// resolveNetworkPassphrase maps a network name to its passphrase. Any value
// other than the known names is treated as a literal passphrase, which covers
// private test networks.
func resolveNetworkPassphrase(name string) string {
	switch name {
	case "testnet":
		return network.TestNetworkPassphrase
	case "public":
		return network.PublicNetworkPassphrase
	default:
		return name
	}
}
