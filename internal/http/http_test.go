package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/syteworks/stellar-custody/internal/metrics"
	walletDomain "github.com/syteworks/stellar-custody/internal/wallet/domain"
	walletHTTP "github.com/syteworks/stellar-custody/internal/wallet/http"
	"github.com/syteworks/stellar-custody/internal/wallet/usecase/mocks"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestServer(t *testing.T, cfg ServerConfig, useCase *mocks.WalletUseCase, dbPing func() error) *Server {
	t.Helper()
	logger := discardLogger()
	handler := walletHTTP.NewWalletHandler(useCase, logger)

	provider, err := metrics.NewProvider("custody_test")
	require.NoError(t, err)

	return NewServer(cfg, handler, provider, dbPing, logger)
}

func TestServerHealth(t *testing.T) {
	server := createTestServer(t, ServerConfig{}, new(mocks.WalletUseCase), nil)

	recorder := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
}

func TestServerReadiness(t *testing.T) {
	server := createTestServer(t, ServerConfig{}, new(mocks.WalletUseCase), func() error { return nil })

	recorder := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestServerReadinessDatabaseDown(t *testing.T) {
	server := createTestServer(t, ServerConfig{}, new(mocks.WalletUseCase), func() error {
		return errors.New("connection refused")
	})

	recorder := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}

func TestServerProvisionRoute(t *testing.T) {
	useCase := new(mocks.WalletUseCase)
	useCase.On("Provision", mock.Anything, mock.Anything).Return(&walletDomain.ProvisionOutcome{
		PublicKey:       "GABC",
		EncryptedSecret: "sealed-blob",
		TransactionHash: "createhash",
		TrustlineAdded:  true,
	}, nil)

	server := createTestServer(t, ServerConfig{}, useCase, nil)

	recorder := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/v1/wallets", nil))

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("X-Request-Id"))
}

func TestServerRateLimit(t *testing.T) {
	useCase := new(mocks.WalletUseCase)
	useCase.On("Provision", mock.Anything, mock.Anything).Return(&walletDomain.ProvisionOutcome{
		PublicKey: "GABC",
	}, nil)

	cfg := ServerConfig{
		RateLimitEnabled: true,
		RateLimitRPS:     0.001,
		RateLimitBurst:   1,
	}
	server := createTestServer(t, cfg, useCase, nil)

	first := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/v1/wallets", nil))
	assert.Equal(t, http.StatusCreated, first.Code)

	second := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/v1/wallets", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	// Lookups are not rate limited.
	useCase.On("Get", mock.Anything, "GABC").Return(&walletDomain.Account{PublicKey: "GABC"}, nil)
	lookup := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(lookup, httptest.NewRequest(http.MethodGet, "/v1/wallets/GABC", nil))
	assert.Equal(t, http.StatusOK, lookup.Code)
}

func TestRateLimiterStoreReusesLimiter(t *testing.T) {
	store := &rateLimiterStore{rps: 1, burst: 1}

	first := store.getLimiter("10.0.0.1")
	second := store.getLimiter("10.0.0.1")
	assert.Same(t, first, second)

	other := store.getLimiter("10.0.0.2")
	assert.NotSame(t, first, other)
}
