// Package usecase orchestrates custodial account provisioning: key
// generation, sponsored ledger transactions, envelope sealing of the private
// key, and persistence of the resulting record.
package usecase

import (
	"context"

	walletDomain "github.com/syteworks/stellar-custody/internal/wallet/domain"
)

// AccountRepository defines the persistence operations for provisioned accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *walletDomain.Account) error
	GetByPublicKey(ctx context.Context, publicKey string) (*walletDomain.Account, error)
}

// WalletUseCase defines the provisioning business logic.
type WalletUseCase interface {
	// Provision runs the full provisioning workflow. When accountIndex is
	// nil the keypair comes from fresh entropy and no mnemonic is returned;
	// otherwise the keypair is derived from a new mnemonic at that index and
	// the mnemonic is returned exactly once.
	//
	// On a trustline failure after successful account creation, the sealed
	// key is still persisted and the returned error reports the partial
	// outcome.
	Provision(ctx context.Context, accountIndex *uint32) (*walletDomain.ProvisionOutcome, error)

	// Get retrieves a provisioned account record by public key.
	Get(ctx context.Context, publicKey string) (*walletDomain.Account, error)
}
