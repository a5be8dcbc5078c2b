package app

import (
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stellar/go/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syteworks/stellar-custody/internal/config"
	cryptoDomain "github.com/syteworks/stellar-custody/internal/crypto/domain"
	"github.com/syteworks/stellar-custody/internal/metrics"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	key := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)

	return &config.Config{
		LogLevel:            "error",
		NetworkPassphrase:   "testnet",
		HorizonURL:          "https://horizon-testnet.stellar.org",
		SponsorPublicKey:    "GBSPONSOR",
		SponsorPrivateKey:   "SBSPONSOR",
		AssetCode:           "USDC",
		AssetIssuer:         "GBISSUER",
		TrustlineLimit:      "10000000",
		MasterEncryptionKey: base64.StdEncoding.EncodeToString(key),
	}
}

func TestContainerLogger(t *testing.T) {
	container := NewContainer(testConfig(t))

	logger := container.Logger()
	require.NotNil(t, logger)
	assert.Same(t, logger, container.Logger())
}

func TestContainerSponsorConfig(t *testing.T) {
	container := NewContainer(testConfig(t))

	cfg := container.SponsorConfig()
	assert.Equal(t, network.TestNetworkPassphrase, cfg.NetworkPassphrase)
	assert.Equal(t, "GBSPONSOR", cfg.SponsorPublicKey)
	assert.Nil(t, cfg.Validate())
}

func TestResolveNetworkPassphrase(t *testing.T) {
	assert.Equal(t, network.TestNetworkPassphrase, resolveNetworkPassphrase("testnet"))
	assert.Equal(t, network.PublicNetworkPassphrase, resolveNetworkPassphrase("public"))
	assert.Equal(t, "Custom Network ; 2026", resolveNetworkPassphrase("Custom Network ; 2026"))
}

func TestContainerMasterKey(t *testing.T) {
	container := NewContainer(testConfig(t))

	masterKey, err := container.MasterKey()
	require.NoError(t, err)
	assert.Len(t, masterKey.Bytes(), cryptoDomain.KeySize)

	again, err := container.MasterKey()
	require.NoError(t, err)
	assert.Same(t, masterKey, again)
}

func TestContainerMasterKeyInvalid(t *testing.T) {
	cfg := testConfig(t)
	cfg.MasterEncryptionKey = "!!!not-base64!!!"
	container := NewContainer(cfg)

	_, err := container.MasterKey()
	require.Error(t, err)

	// The error is sticky across calls.
	_, err = container.MasterKey()
	require.Error(t, err)
}

func TestContainerEnvelope(t *testing.T) {
	container := NewContainer(testConfig(t))

	envelope, err := container.Envelope()
	require.NoError(t, err)

	sealed, err := envelope.Seal([]byte("secret"))
	require.NoError(t, err)

	plaintext, err := envelope.Unseal(sealed)
	require.NoError(t, err)
	assert.Equal(t, "secret", string(plaintext))
}

func TestContainerBusinessMetricsDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.MetricsEnabled = false
	container := NewContainer(cfg)

	recorder, err := container.BusinessMetrics()
	require.NoError(t, err)
	assert.IsType(t, &metrics.NoOpBusinessMetrics{}, recorder)

	provider, err := container.MetricsProvider()
	require.NoError(t, err)
	assert.Nil(t, provider)
}

func TestContainerKeypairGenerator(t *testing.T) {
	container := NewContainer(testConfig(t))
	assert.NotNil(t, container.KeypairGenerator())
	assert.NotNil(t, container.LedgerService())
}
