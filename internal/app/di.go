// Package app provides the dependency injection container that assembles
// application components.
package app

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"sync"
	"time"

	cryptoDomain "github.com/syteworks/stellar-custody/internal/crypto/domain"
	cryptoService "github.com/syteworks/stellar-custody/internal/crypto/service"
	"github.com/syteworks/stellar-custody/internal/config"
	"github.com/syteworks/stellar-custody/internal/database"
	"github.com/syteworks/stellar-custody/internal/http"
	"github.com/syteworks/stellar-custody/internal/metrics"
	walletHTTP "github.com/syteworks/stellar-custody/internal/wallet/http"
	walletService "github.com/syteworks/stellar-custody/internal/wallet/service"
	walletUseCase "github.com/syteworks/stellar-custody/internal/wallet/usecase"
)

// Container holds all application dependencies and provides methods to access
// them. Components are created lazily on first access.
type Container struct {
	config *config.Config

	logger *slog.Logger
	db     *sql.DB

	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	kmsService cryptoService.KMSService
	masterKey  *cryptoDomain.MasterKey
	envelope   cryptoService.Envelope

	keypairGenerator walletService.KeypairGenerator
	ledgerService    walletService.LedgerService
	accountRepo      walletUseCase.AccountRepository
	walletUC         walletUseCase.WalletUseCase
	walletHandler    *walletHTTP.WalletHandler

	httpServer    *http.Server
	metricsServer *http.MetricsServer

	loggerInit           sync.Once
	dbInit               sync.Once
	metricsProviderInit  sync.Once
	businessMetricsInit  sync.Once
	kmsServiceInit       sync.Once
	masterKeyInit        sync.Once
	envelopeInit         sync.Once
	keypairGeneratorInit sync.Once
	ledgerServiceInit    sync.Once
	accountRepoInit      sync.Once
	walletUseCaseInit    sync.Once
	walletHandlerInit    sync.Once
	httpServerInit       sync.Once
	metricsServerInit    sync.Once
	initErrors           map[string]error
}

// NewContainer creates a new dependency injection container.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance, a JSON slog handler at the
// configured level.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := database.Connect(database.Config{
			Driver:             c.config.DBDriver,
			ConnectionString:   c.config.DBConnectionString,
			MaxOpenConnections: c.config.DBMaxOpenConnections,
			MaxIdleConnections: c.config.DBMaxIdleConnections,
			ConnMaxLifetime:    c.config.DBConnMaxLifetime,
		})
		if err != nil {
			c.initErrors["db"] = err
			return
		}
		c.db = db
	})
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. A no-op recorder is
// returned when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}
		c.businessMetrics, err = metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the provisioning API server.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		handler, err := c.WalletHandler()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		db, err := c.DB()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}

		c.httpServer = http.NewServer(
			http.ServerConfig{
				Host:             c.config.ServerHost,
				Port:             c.config.ServerPort,
				CORSEnabled:      c.config.CORSEnabled,
				CORSAllowOrigins: c.config.CORSAllowOrigins,
				RateLimitEnabled: c.config.RateLimitEnabled,
				RateLimitRPS:     c.config.RateLimitRequestsPerSec,
				RateLimitBurst:   c.config.RateLimitBurst,
				MetricsNamespace: c.config.MetricsNamespace,
				WriteTimeout:     c.config.TransactionTimeout + 20*time.Second,
			},
			handler,
			provider,
			db.Ping,
			c.Logger(),
		)
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus metrics server, or nil when metrics
// are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown releases container resources: database connection, master key
// material, and the metrics provider.
func (c *Container) Shutdown(ctx context.Context) {
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			c.Logger().Error("failed to close database", slog.Any("error", err))
		}
	}
	if c.masterKey != nil {
		c.masterKey.Close()
	}
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			c.Logger().Error("failed to shutdown metrics provider", slog.Any("error", err))
		}
	}
}

// initLogger builds the slog JSON logger from the configured level.
func (c *Container) initLogger() *slog.Logger {
	var level slog.Level
	switch c.config.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
