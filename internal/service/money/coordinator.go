// Package money implements the accounts context: account lifecycle and
// the money-movement coordinator. Balance state lives in the account
// store; history lives in the transactions service, reached through the
// ledger client. A deposit or transfer mutates the balance first and
// appends the ledger entry second, undoing the balance mutation when the
// append fails.
package money

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmhouse/wallet-api/internal/domain"
	"github.com/dmhouse/wallet-api/internal/platform/metrics"
	"github.com/dmhouse/wallet-api/internal/remote"
	"github.com/dmhouse/wallet-api/internal/store"
)

// DefaultDepositDescription is used when a deposit request carries no
// description.
const DefaultDepositDescription = "Deposit"

// DefaultDepositOrigin marks money entering from outside the wallet.
const DefaultDepositOrigin = domain.ExternalOrigin

// ErrSameAccount rejects a transfer whose origin and destination match.
var ErrSameAccount = fmt.Errorf("%w: origin and destination are the same account", domain.ErrValidation)

// ErrCardIDRequired rejects a card-funded deposit that names no card.
var ErrCardIDRequired = fmt.Errorf("%w: card deposits require a card id", domain.ErrValidation)

// DepositRequest carries the data to register a deposit.
type DepositRequest struct {
	Amount      int64
	Description string
	Origin      string
	CardID      string
}

// TransferRequest carries the data to move money between two accounts.
type TransferRequest struct {
	DestinationCVU string
	Amount         int64
	Description    string
}

// Coordinator owns accounts and coordinates money movement against the
// transactions service.
type Coordinator struct {
	accounts store.AccountStore
	ledger   remote.LedgerClient
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(
	accounts store.AccountStore,
	ledger remote.LedgerClient,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		accounts: accounts,
		ledger:   ledger,
		logger:   logger.With(slog.String("component", "money_coordinator")),
		metrics:  m,
	}
}

// CreateAccount opens a zero-balance account with a fresh CVU and alias
// for the correlation id.
func (c *Coordinator) CreateAccount(ctx context.Context, correlationID uuid.UUID) (*domain.Account, error) {
	account, err := domain.NewAccount(correlationID)
	if err != nil {
		return nil, err
	}
	if err := c.accounts.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	c.logger.Info("account created",
		slog.String("account_id", account.ID.String()),
		slog.String("correlation_id", correlationID.String()))
	return account, nil
}

// GetAccount returns an account by id.
func (c *Coordinator) GetAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return c.accounts.GetByID(ctx, id)
}

// GetAccountByCVU returns an account by CVU.
func (c *Coordinator) GetAccountByCVU(ctx context.Context, cvu string) (*domain.Account, error) {
	if !domain.ValidCVU(cvu) {
		return nil, fmt.Errorf("%w: malformed CVU", domain.ErrValidation)
	}
	return c.accounts.GetByCVU(ctx, cvu)
}

// GetAccountByCorrelationID returns the account owned by a correlation id.
func (c *Coordinator) GetAccountByCorrelationID(ctx context.Context, correlationID uuid.UUID) (*domain.Account, error) {
	return c.accounts.GetByCorrelationID(ctx, correlationID)
}

// UpdateAccountDetails changes the account alias and/or currency. Empty
// fields keep their current value.
func (c *Coordinator) UpdateAccountDetails(ctx context.Context, id uuid.UUID, alias, currency string) (*domain.Account, error) {
	if err := c.accounts.UpdateDetails(ctx, id, alias, currency); err != nil {
		return nil, err
	}
	return c.accounts.GetByID(ctx, id)
}

// DeleteAccount removes an account. Used by saga compensation and
// deregistration.
func (c *Coordinator) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return c.accounts.Delete(ctx, id)
}

// RegisterDeposit credits external money into an account. The balance is
// mutated first and the ledger entry appended second; when the append
// fails the pre-deposit balance is restored and the deposit reports an
// upstream failure.
func (c *Coordinator) RegisterDeposit(ctx context.Context, accountID uuid.UUID, req DepositRequest) (*domain.Transaction, error) {
	if req.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if req.Origin == domain.CardOrigin && req.CardID == "" {
		return nil, ErrCardIDRequired
	}

	account, err := c.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	description := req.Description
	if description == "" {
		description = DefaultDepositDescription
	}
	origin := req.Origin
	if origin == "" {
		origin = DefaultDepositOrigin
	}

	tx, err := domain.NewTransaction(accountID, req.Amount, description, origin, account.CVU, req.CardID, domain.TransactionDeposit)
	if err != nil {
		return nil, err
	}

	previousBalance := account.Balance
	if err := c.accounts.SetBalance(ctx, accountID, previousBalance+req.Amount); err != nil {
		return nil, fmt.Errorf("failed to apply deposit balance: %w", err)
	}

	saved, err := c.ledger.Append(ctx, *tx)
	if err != nil {
		c.restoreBalance(ctx, accountID, previousBalance)
		return nil, fmt.Errorf("deposit not recorded: %w", err)
	}

	c.metrics.DepositRegistered()
	c.logger.Info("deposit registered",
		slog.String("account_id", accountID.String()),
		slog.Int64("amount", req.Amount))
	return &saved, nil
}

// Transfer moves money from the origin account to the account behind the
// destination CVU. The movement lands in the ledger as two entries, a
// DEBIT on the origin and a CREDIT on the destination. A debit that would
// overdraw the origin fails with domain.ErrInsufficientFunds and changes
// nothing.
func (c *Coordinator) Transfer(ctx context.Context, originAccountID uuid.UUID, req TransferRequest) (*domain.Transaction, error) {
	if req.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if !domain.ValidCVU(req.DestinationCVU) {
		return nil, fmt.Errorf("%w: malformed destination CVU", domain.ErrValidation)
	}

	origin, err := c.accounts.GetByID(ctx, originAccountID)
	if err != nil {
		return nil, err
	}
	destination, err := c.accounts.GetByCVU(ctx, req.DestinationCVU)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: destination account", store.ErrAccountNotFound)
		}
		return nil, err
	}
	if origin.ID == destination.ID {
		return nil, ErrSameAccount
	}

	description := req.Description
	if description == "" {
		description = "Transfer to " + destination.CVU
	}

	debit, err := domain.NewTransaction(origin.ID, req.Amount, description, origin.CVU, destination.CVU, "", domain.TransactionDebit)
	if err != nil {
		return nil, err
	}
	credit, err := domain.NewTransaction(destination.ID, req.Amount, description, origin.CVU, destination.CVU, "", domain.TransactionCredit)
	if err != nil {
		return nil, err
	}

	if err := c.accounts.DebitBalance(ctx, origin.ID, req.Amount); err != nil {
		return nil, err
	}
	if err := c.accounts.SetBalance(ctx, destination.ID, destination.Balance+req.Amount); err != nil {
		c.restoreBalance(ctx, origin.ID, origin.Balance)
		return nil, fmt.Errorf("failed to credit destination: %w", err)
	}

	savedDebit, err := c.ledger.Append(ctx, *debit)
	if err != nil {
		c.restoreBalance(ctx, origin.ID, origin.Balance)
		c.restoreBalance(ctx, destination.ID, destination.Balance)
		return nil, fmt.Errorf("transfer not recorded: %w", err)
	}
	if _, err := c.ledger.Append(ctx, *credit); err != nil {
		// The debit entry is already appended and cannot be removed from
		// an append-only ledger. Undo the balances and surface the failure.
		c.restoreBalance(ctx, origin.ID, origin.Balance)
		c.restoreBalance(ctx, destination.ID, destination.Balance)
		c.logger.Error("credit entry not recorded, debit entry orphaned",
			slog.String("debit_id", savedDebit.ID.String()))
		return nil, fmt.Errorf("transfer not recorded: %w", err)
	}

	c.metrics.TransferCompleted()
	c.logger.Info("transfer completed",
		slog.String("origin", origin.CVU),
		slog.String("destination", destination.CVU),
		slog.Int64("amount", req.Amount))
	return &savedDebit, nil
}

// UpdateBalance applies a single balance mutation. CREDIT adds, DEBIT
// subtracts with an insufficient-funds guard; any other type is a
// validation error.
func (c *Coordinator) UpdateBalance(ctx context.Context, accountID uuid.UUID, amount int64, txType domain.TransactionType) error {
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}

	switch txType {
	case domain.TransactionCredit:
		account, err := c.accounts.GetByID(ctx, accountID)
		if err != nil {
			return err
		}
		return c.accounts.SetBalance(ctx, accountID, account.Balance+amount)
	case domain.TransactionDebit:
		return c.accounts.DebitBalance(ctx, accountID, amount)
	default:
		return fmt.Errorf("%w: unsupported balance mutation type %q", domain.ErrValidation, txType)
	}
}

// GetLast5 returns up to five most recent ledger entries, newest first.
// Degrades to an empty list when the transactions service is unavailable.
func (c *Coordinator) GetLast5(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error) {
	if _, err := c.accounts.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	return c.ledger.Last5(ctx, accountID)
}

// GetAllActivity returns the full ledger history, newest first. Degrades
// to an empty list when the transactions service is unavailable.
func (c *Coordinator) GetAllActivity(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error) {
	if _, err := c.accounts.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	return c.ledger.Activity(ctx, accountID)
}

// GetActivityByID returns a single ledger entry scoped to the account.
func (c *Coordinator) GetActivityByID(ctx context.Context, accountID, transferenceID uuid.UUID) (*domain.Transaction, error) {
	if _, err := c.accounts.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	entry, err := c.ledger.ActivityByID(ctx, accountID, transferenceID)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// restoreBalance is compensation for a failed movement. Its own failure
// is logged and swallowed: the caller is already propagating the cause.
func (c *Coordinator) restoreBalance(ctx context.Context, accountID uuid.UUID, balance int64) {
	if err := c.accounts.SetBalance(ctx, accountID, balance); err != nil {
		c.logger.Error("balance restore failed",
			slog.String("account_id", accountID.String()),
			slog.Int64("balance", balance),
			slog.String("error", err.Error()))
	}
}
