package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/syteworks/stellar-custody/internal/metrics"
	walletDomain "github.com/syteworks/stellar-custody/internal/wallet/domain"
)

// walletUseCaseWithMetrics decorates WalletUseCase with metrics instrumentation.
type walletUseCaseWithMetrics struct {
	next    WalletUseCase
	metrics metrics.BusinessMetrics
}

// NewWalletUseCaseWithMetrics wraps a WalletUseCase with metrics recording.
func NewWalletUseCaseWithMetrics(useCase WalletUseCase, m metrics.BusinessMetrics) WalletUseCase {
	return &walletUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Provision records metrics for provisioning runs. A trustline failure after
// account creation is reported as "partial" rather than "error".
func (w *walletUseCaseWithMetrics) Provision(
	ctx context.Context,
	accountIndex *uint32,
) (*walletDomain.ProvisionOutcome, error) {
	start := time.Now()
	outcome, err := w.next.Provision(ctx, accountIndex)

	status := "success"
	if err != nil {
		status = "error"
		var structured *walletDomain.StructuredError
		if errors.As(err, &structured) && structured.Code == walletDomain.CodeTrustlineFailed {
			status = "partial"
		}
	}

	w.metrics.RecordOperation(ctx, "wallet", "wallet_provision", status)
	w.metrics.RecordDuration(ctx, "wallet", "wallet_provision", time.Since(start), status)

	return outcome, err
}

// Get records metrics for account lookups.
func (w *walletUseCaseWithMetrics) Get(ctx context.Context, publicKey string) (*walletDomain.Account, error) {
	start := time.Now()
	account, err := w.next.Get(ctx, publicKey)

	status := "success"
	if err != nil {
		status = "error"
	}

	w.metrics.RecordOperation(ctx, "wallet", "wallet_get", status)
	w.metrics.RecordDuration(ctx, "wallet", "wallet_get", time.Since(start), status)

	return account, err
}
