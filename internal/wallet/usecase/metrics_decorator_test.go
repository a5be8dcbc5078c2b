package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/syteworks/stellar-custody/internal/metrics"
	walletDomain "github.com/syteworks/stellar-custody/internal/wallet/domain"
	"github.com/syteworks/stellar-custody/internal/wallet/usecase/mocks"
)

type metricsRecorder struct {
	operations []string
	statuses   []string
}

func newMetricsRecorder() *metricsRecorder {
	return &metricsRecorder{}
}

func (r *metricsRecorder) RecordOperation(_ context.Context, _, operation, status string) {
	r.operations = append(r.operations, operation)
	r.statuses = append(r.statuses, status)
}

func (r *metricsRecorder) RecordDuration(_ context.Context, _, _ string, _ time.Duration, _ string) {
}

func TestWalletUseCaseWithMetricsProvision(t *testing.T) {
	tests := []struct {
		name       string
		outcome    *walletDomain.ProvisionOutcome
		err        error
		wantStatus string
	}{
		{
			name:       "success",
			outcome:    &walletDomain.ProvisionOutcome{PublicKey: "GABC"},
			wantStatus: "success",
		},
		{
			name:       "error",
			err:        errors.New("boom"),
			wantStatus: "error",
		},
		{
			name: "partial",
			err: &walletDomain.StructuredError{
				Code: walletDomain.CodeTrustlineFailed,
			},
			wantStatus: "partial",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := new(mocks.WalletUseCase)
			next.On("Provision", mock.Anything, mock.Anything).Return(tt.outcome, tt.err)

			recorder := newMetricsRecorder()
			decorated := NewWalletUseCaseWithMetrics(next, recorder)

			outcome, err := decorated.Provision(context.Background(), nil)
			assert.Equal(t, tt.outcome, outcome)
			assert.Equal(t, tt.err, err)

			require.Len(t, recorder.statuses, 1)
			assert.Equal(t, "wallet_provision", recorder.operations[0])
			assert.Equal(t, tt.wantStatus, recorder.statuses[0])
		})
	}
}

func TestWalletUseCaseWithMetricsGet(t *testing.T) {
	next := new(mocks.WalletUseCase)
	account := &walletDomain.Account{PublicKey: "GABC"}
	next.On("Get", mock.Anything, "GABC").Return(account, nil)

	recorder := newMetricsRecorder()
	decorated := NewWalletUseCaseWithMetrics(next, recorder)

	got, err := decorated.Get(context.Background(), "GABC")
	require.NoError(t, err)
	assert.Same(t, account, got)
	require.Len(t, recorder.operations, 1)
	assert.Equal(t, "wallet_get", recorder.operations[0])
}

var _ metrics.BusinessMetrics = (*metricsRecorder)(nil)
