package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/stellar/go/keypair"

	cryptoService "github.com/syteworks/stellar-custody/internal/crypto/service"
	walletDomain "github.com/syteworks/stellar-custody/internal/wallet/domain"
	walletService "github.com/syteworks/stellar-custody/internal/wallet/service"
)

// walletUseCase implements the WalletUseCase interface.
type walletUseCase struct {
	cfg      walletDomain.SponsorConfig
	keygen   walletService.KeypairGenerator
	ledger   walletService.LedgerService
	envelope cryptoService.Envelope
	repo     AccountRepository
	logger   *slog.Logger
}

// NewWalletUseCase creates the provisioning use case.
func NewWalletUseCase(
	cfg walletDomain.SponsorConfig,
	keygen walletService.KeypairGenerator,
	ledger walletService.LedgerService,
	envelope cryptoService.Envelope,
	repo AccountRepository,
	logger *slog.Logger,
) WalletUseCase {
	return &walletUseCase{
		cfg:      cfg,
		keygen:   keygen,
		ledger:   ledger,
		envelope: envelope,
		repo:     repo,
		logger:   logger,
	}
}

// Provision runs the linear provisioning state machine. Configuration is
// validated before any ledger call, the private key is sealed only after the
// last ledger submission, and the plaintext seed never reaches the logs.
func (u *walletUseCase) Provision(
	ctx context.Context,
	accountIndex *uint32,
) (*walletDomain.ProvisionOutcome, error) {
	if err := u.cfg.Validate(); err != nil {
		u.logState(ctx, walletDomain.StateFailed, slog.String("code", err.Code))
		return nil, err
	}
	u.logState(ctx, walletDomain.StateStart)

	mnemonic, kp, err := u.generateKeypair(accountIndex)
	if err != nil {
		u.logState(ctx, walletDomain.StateFailed, slog.String("step", "key_generation"))
		return nil, err
	}
	u.logState(ctx, walletDomain.StateKeyGenerated, slog.String("public_key", kp.Address()))

	createHash, err := u.ledger.CreateSponsoredAccount(ctx, kp)
	if err != nil {
		classified := walletDomain.ClassifyLedgerError(err, walletDomain.StepCreateAccount)
		u.logState(ctx, walletDomain.StateFailed,
			slog.String("public_key", kp.Address()),
			slog.String("code", classified.Code),
			slog.String("cause", err.Error()))
		return nil, classified
	}
	u.logState(ctx, walletDomain.StateAccountSubmitted,
		slog.String("public_key", kp.Address()),
		slog.String("transaction_hash", createHash))

	if _, err := u.ledger.EstablishTrustline(ctx, kp); err != nil {
		return u.handlePartial(ctx, kp, createHash, err)
	}
	u.logState(ctx, walletDomain.StateTrustlineSubmitted, slog.String("public_key", kp.Address()))

	sealed, sealErr := u.sealAndStore(ctx, kp, createHash, true)
	if sealErr != nil {
		return nil, sealErr
	}
	u.logState(ctx, walletDomain.StateDone, slog.String("public_key", kp.Address()))

	return &walletDomain.ProvisionOutcome{
		Mnemonic:        mnemonic,
		PublicKey:       kp.Address(),
		EncryptedSecret: sealed,
		TransactionHash: createHash,
		TrustlineAdded:  true,
	}, nil
}

// Get retrieves a provisioned account record by public key.
func (u *walletUseCase) Get(ctx context.Context, publicKey string) (*walletDomain.Account, error) {
	return u.repo.GetByPublicKey(ctx, publicKey)
}

func (u *walletUseCase) generateKeypair(accountIndex *uint32) (string, *keypair.Full, error) {
	if accountIndex != nil {
		return u.keygen.FromMnemonic(*accountIndex)
	}
	kp, err := u.keygen.Random()
	return "", kp, err
}

// handlePartial handles a trustline failure after the account was created on
// the ledger. The key is sealed and the record persisted before the error is
// returned, so the account remains recoverable.
func (u *walletUseCase) handlePartial(
	ctx context.Context,
	kp *keypair.Full,
	createHash string,
	trustlineErr error,
) (*walletDomain.ProvisionOutcome, error) {
	classified := walletDomain.ClassifyLedgerError(trustlineErr, walletDomain.StepTrustline)
	classified.Details = fmt.Sprintf(
		"Account was created (transaction %s) but the trustline could not be added. The sealed key was stored; retry the trustline separately.",
		createHash,
	)

	if _, err := u.sealAndStore(ctx, kp, createHash, false); err != nil {
		return nil, err
	}

	u.logState(ctx, walletDomain.StatePartial,
		slog.String("public_key", kp.Address()),
		slog.String("transaction_hash", createHash),
		slog.String("code", classified.Code),
		slog.String("cause", trustlineErr.Error()))
	return nil, classified
}

// sealAndStore seals the private seed and persists the account record. It is
// the only place the plaintext seed is handed to the crypto layer.
func (u *walletUseCase) sealAndStore(
	ctx context.Context,
	kp *keypair.Full,
	createHash string,
	trustlineAdded bool,
) (string, error) {
	sealed, err := u.envelope.Seal([]byte(kp.Seed()))
	if err != nil {
		u.logState(ctx, walletDomain.StateFailed,
			slog.String("public_key", kp.Address()),
			slog.String("step", "seal"))
		return "", &walletDomain.StructuredError{
			Status:    http.StatusInternalServerError,
			Code:      walletDomain.CodeEncryptionFailed,
			Message:   "Failed to encrypt the account private key",
			Retryable: false,
			Details:   fmt.Sprintf("Account %s exists on the ledger (transaction %s) but its key could not be sealed.", kp.Address(), createHash),
		}
	}
	u.logState(ctx, walletDomain.StateSecretSealed, slog.String("public_key", kp.Address()))

	account := &walletDomain.Account{
		ID:              uuid.Must(uuid.NewV7()),
		PublicKey:       kp.Address(),
		EncryptedSecret: sealed,
		TransactionHash: createHash,
		TrustlineAdded:  trustlineAdded,
		CreatedAt:       time.Now().UTC(),
	}
	if err := u.repo.Create(ctx, account); err != nil {
		u.logState(ctx, walletDomain.StateFailed,
			slog.String("public_key", kp.Address()),
			slog.String("step", "persist"))
		return "", &walletDomain.StructuredError{
			Status:    http.StatusInternalServerError,
			Code:      walletDomain.CodeStorageFailed,
			Message:   "Failed to store the provisioned account",
			Retryable: false,
			Details:   fmt.Sprintf("Account %s exists on the ledger (transaction %s) but the record could not be stored. Do not retry provisioning; contact support.", kp.Address(), createHash),
		}
	}

	return sealed, nil
}

func (u *walletUseCase) logState(ctx context.Context, state walletDomain.State, attrs ...slog.Attr) {
	args := make([]any, 0, len(attrs)+1)
	args = append(args, slog.String("state", string(state)))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	u.logger.InfoContext(ctx, "wallet provisioning", args...)
}
