package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmhouse/wallet-api/internal/config"
	"github.com/dmhouse/wallet-api/internal/platform/metrics"
	"github.com/dmhouse/wallet-api/internal/platform/postgres"
	"github.com/dmhouse/wallet-api/internal/remote"
	"github.com/dmhouse/wallet-api/internal/resilience"
	"github.com/dmhouse/wallet-api/internal/service/auth"
	"github.com/dmhouse/wallet-api/internal/service/cards"
	"github.com/dmhouse/wallet-api/internal/service/ledger"
	"github.com/dmhouse/wallet-api/internal/service/money"
	"github.com/dmhouse/wallet-api/internal/service/registration"
	"github.com/dmhouse/wallet-api/internal/store"
)

// application holds every long-lived dependency of the server. It is built
// once at startup and torn down by cleanup.
type application struct {
	config   *config.Config
	logger   *slog.Logger
	db       *sql.DB
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	jwtService   auth.JWTService
	profiles     store.ProfileStore
	registration *registration.Orchestrator
	login        *auth.LoginService
	coordinator  *money.Coordinator
	ledger       *ledger.Service
	cards        *cards.Service
	cardsClient  remote.CardsClient
}

// newApplication wires the full dependency graph: database, stores, remote
// clients under one resilience executor, and the services on top of them.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := openDatabase(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	executor := resilience.NewExecutor(
		resilience.PolicyFromConfig(cfg.Resilience),
		logger,
		resilience.WithStateChangeFunc(m.BreakerTransition),
	)

	profilesClient := remote.NewProfilesClient(cfg.Services.ProfilesURL, cfg.Auth.InternalKey, executor)
	accountsClient := remote.NewAccountsClient(cfg.Services.AccountsURL, cfg.Auth.InternalKey, executor)
	ledgerClient := remote.NewLedgerClient(cfg.Services.LedgerURL, cfg.Auth.InternalKey, executor)
	cardsClient := remote.NewCardsClient(cfg.Services.CardsURL, cfg.Auth.InternalKey, executor)

	credentialStore := postgres.NewCredentialStore(db, logger)
	profileStore := postgres.NewProfileStore(db, logger)
	accountStore := postgres.NewAccountStore(db, logger)
	transactionStore := postgres.NewTransactionStore(db, logger)
	cardStore := postgres.NewCardStore(db, logger)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to set up JWT service: %w", err)
	}

	app := &application{
		config:   cfg,
		logger:   logger,
		db:       db,
		registry: registry,
		metrics:  m,

		jwtService: jwtService,
		profiles:   profileStore,
		registration: registration.NewOrchestrator(
			credentialStore,
			auth.NewBcryptHasher(),
			profilesClient,
			accountsClient,
			logger,
			m,
		),
		login:       auth.NewLoginService(credentialStore, auth.NewBcryptVerifier(), jwtService, logger),
		coordinator: money.NewCoordinator(accountStore, ledgerClient, logger, m),
		ledger:      ledger.NewService(transactionStore, logger),
		cards:       cards.NewService(cardStore, logger),
		cardsClient: cardsClient,
	}

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}
