package repository

import (
	"context"
	"time"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
)

// AccountRepository defines the persistence operations for ledger accounts.
type AccountRepository interface {
	// Create adds a new account.
	Create(ctx context.Context, account *domain.Account) error

	// GetByID retrieves an account by ID.
	GetByID(ctx context.Context, id string) (*domain.Account, error)

	// GetAll retrieves all accounts.
	GetAll(ctx context.Context) ([]*domain.Account, error)

	// SetActive flips the soft-delete flag for an account.
	SetActive(ctx context.Context, id string, active bool) error
}

// StatementRepository defines the persistence operations for account statements.
type StatementRepository interface {
	// Create persists a new statement.
	Create(ctx context.Context, statement *domain.AccountStatement) error

	// GetByID retrieves a statement by ID.
	GetByID(ctx context.Context, id string) (*domain.AccountStatement, error)

	// GetByAccount retrieves all statements for an account, newest first.
	GetByAccount(ctx context.Context, accountID string) ([]*domain.AccountStatement, error)

	// GetLatestByAccount retrieves the most recent statement for an account.
	// Returns nil if none exists.
	GetLatestByAccount(ctx context.Context, accountID string) (*domain.AccountStatement, error)

	// Update updates an existing statement.
	Update(ctx context.Context, statement *domain.AccountStatement) error
}

// TransactionRepository defines the persistence operations for account transactions.
type TransactionRepository interface {
	// Create persists a new transaction.
	Create(ctx context.Context, txn *domain.AccountTransaction) error

	// GetByID retrieves a transaction by ID.
	GetByID(ctx context.Context, id string) (*domain.AccountTransaction, error)

	// GetByAccountAndPeriod retrieves transactions for an account posted
	// within [start, end].
	GetByAccountAndPeriod(ctx context.Context, accountID string, start, end time.Time) ([]*domain.AccountTransaction, error)

	// MarkReconciled sets the reconciled flag on the given transactions.
	MarkReconciled(ctx context.Context, ids []string) error
}

// ReconciliationRepository defines the persistence operations for
// reconciliation audit records. Records are append-only.
type ReconciliationRepository interface {
	// Create persists a new reconciliation record.
	Create(ctx context.Context, rec *domain.Reconciliation) error

	// GetAll retrieves recent reconciliation records.
	GetAll(ctx context.Context) ([]*domain.Reconciliation, error)

	// GetByAccount retrieves reconciliation records for an account.
	GetByAccount(ctx context.Context, accountID string) ([]*domain.Reconciliation, error)
}
