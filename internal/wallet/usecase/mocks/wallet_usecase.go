// Package mocks provides test doubles for the wallet use case interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	walletDomain "github.com/syteworks/stellar-custody/internal/wallet/domain"
)

// WalletUseCase is a mock implementation of usecase.WalletUseCase.
type WalletUseCase struct {
	mock.Mock
}

// Provision mocks the provisioning workflow.
func (m *WalletUseCase) Provision(
	ctx context.Context,
	accountIndex *uint32,
) (*walletDomain.ProvisionOutcome, error) {
	args := m.Called(ctx, accountIndex)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*walletDomain.ProvisionOutcome), args.Error(1)
}

// Get mocks the account lookup.
func (m *WalletUseCase) Get(ctx context.Context, publicKey string) (*walletDomain.Account, error) {
	args := m.Called(ctx, publicKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*walletDomain.Account), args.Error(1)
}
