package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/stellar/go/clients/horizonclient"
	"github.com/stellar/go/keypair"
	hProtocol "github.com/stellar/go/protocols/horizon"
	"github.com/stellar/go/txnbuild"

	"github.com/syteworks/stellar-custody/internal/wallet/domain"
)

// HorizonClient is the subset of the Horizon API the ledger service uses.
type HorizonClient interface {
	AccountDetail(request horizonclient.AccountRequest) (hProtocol.Account, error)
	SubmitTransaction(tx *txnbuild.Transaction) (hProtocol.Transaction, error)
}

// LedgerService submits the provisioning transactions to the Stellar network.
// All reserves are sponsored, so new accounts start with a zero XLM balance.
type LedgerService interface {
	// CreateSponsoredAccount creates the account for kp on the ledger with
	// its base reserve sponsored. It returns the transaction hash.
	CreateSponsoredAccount(ctx context.Context, kp *keypair.Full) (string, error)

	// EstablishTrustline opens a sponsored trustline from kp's account to the
	// configured asset. It returns the transaction hash.
	EstablishTrustline(ctx context.Context, kp *keypair.Full) (string, error)
}

type ledgerService struct {
	client HorizonClient
	cfg    domain.SponsorConfig
}

// NewLedgerService returns a LedgerService backed by the given Horizon client.
func NewLedgerService(client HorizonClient, cfg domain.SponsorConfig) LedgerService {
	return &ledgerService{client: client, cfg: cfg}
}

// NewHorizonClient builds the production Horizon client from configuration.
// The HTTP timeout is set slightly above the transaction time bound so the
// ledger decides the outcome before the client gives up.
func NewHorizonClient(cfg domain.SponsorConfig) *horizonclient.Client {
	return &horizonclient.Client{
		HorizonURL: cfg.HorizonURL,
		HTTP:       &http.Client{Timeout: cfg.TransactionTimeout + 10*time.Second},
	}
}

func (s *ledgerService) CreateSponsoredAccount(ctx context.Context, kp *keypair.Full) (string, error) {
	ops := []txnbuild.Operation{
		&txnbuild.BeginSponsoringFutureReserves{
			SponsoredID: kp.Address(),
		},
		&txnbuild.CreateAccount{
			Destination: kp.Address(),
			Amount:      "0",
		},
		&txnbuild.EndSponsoringFutureReserves{
			SourceAccount: kp.Address(),
		},
	}
	return s.submitSponsored(ctx, kp, ops)
}

func (s *ledgerService) EstablishTrustline(ctx context.Context, kp *keypair.Full) (string, error) {
	ops := []txnbuild.Operation{
		&txnbuild.BeginSponsoringFutureReserves{
			SponsoredID: kp.Address(),
		},
		&txnbuild.ChangeTrust{
			Line: txnbuild.ChangeTrustAssetWrapper{
				Asset: txnbuild.CreditAsset{Code: s.cfg.AssetCode, Issuer: s.cfg.AssetIssuer},
			},
			Limit:         s.cfg.TrustlineLimit,
			SourceAccount: kp.Address(),
		},
		&txnbuild.EndSponsoringFutureReserves{
			SourceAccount: kp.Address(),
		},
	}
	return s.submitSponsored(ctx, kp, ops)
}

// submitSponsored builds a transaction sourced from the sponsor account,
// signs it with both the sponsor and the new keypair, and submits it.
func (s *ledgerService) submitSponsored(ctx context.Context, kp *keypair.Full, ops []txnbuild.Operation) (string, error) {
	sponsorKP, err := keypair.ParseFull(s.cfg.SponsorPrivateKey)
	if err != nil {
		return "", fmt.Errorf("parse sponsor private key: %w", err)
	}

	sponsorAccount, err := s.client.AccountDetail(horizonclient.AccountRequest{
		AccountID: s.cfg.SponsorPublicKey,
	})
	if err != nil {
		return "", flattenHorizonError("load sponsor account", err)
	}

	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        &sponsorAccount,
		IncrementSequenceNum: true,
		Operations:           ops,
		BaseFee:              txnbuild.MinBaseFee,
		Preconditions: txnbuild.Preconditions{
			TimeBounds: txnbuild.NewTimeout(int64(s.cfg.TransactionTimeout.Seconds())),
		},
	})
	if err != nil {
		return "", fmt.Errorf("build transaction: %w", err)
	}

	tx, err = tx.Sign(s.cfg.NetworkPassphrase, sponsorKP, kp)
	if err != nil {
		return "", fmt.Errorf("sign transaction: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	resp, err := s.client.SubmitTransaction(tx)
	if err != nil {
		return "", flattenHorizonError("submit transaction", err)
	}
	return resp.Hash, nil
}

// flattenHorizonError folds the Horizon problem document and its transaction
// result codes into a single error message, so the failure cause survives as
// text the caller can classify.
func flattenHorizonError(op string, err error) error {
	herr := horizonclient.GetError(err)
	if herr == nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	parts := []string{herr.Problem.Title}
	if codes, cErr := herr.ResultCodes(); cErr == nil && codes != nil {
		if codes.TransactionCode != "" {
			parts = append(parts, codes.TransactionCode)
		}
		parts = append(parts, codes.OperationCodes...)
	}
	return fmt.Errorf("%s: %s", op, strings.Join(parts, ", "))
}
