package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	"github.com/Zelesto/trailers-backend-sub001/internal/repository"
)

// TransactionRepository is a PostgreSQL implementation of repository.TransactionRepository.
type TransactionRepository struct {
	q Querier
}

// NewTransactionRepository creates a new PostgreSQL transaction repository.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{q: db}
}

// NewTransactionRepositoryWithTx creates a transaction repository using a transaction.
func NewTransactionRepositoryWithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{q: tx}
}

// Create persists a new transaction.
func (r *TransactionRepository) Create(ctx context.Context, txn *domain.AccountTransaction) error {
	query := `
		INSERT INTO account_transactions (id, account_id, amount, direction, source_type, source_id, reconciled, posted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.q.ExecContext(ctx, query,
		txn.ID,
		txn.AccountID,
		txn.Amount,
		txn.Direction,
		txn.SourceType,
		nullString(txn.SourceID),
		txn.Reconciled,
		txn.PostedAt,
	)

	return err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.AccountTransaction, error) {
	query := `
		SELECT id, account_id, amount, direction, source_type, COALESCE(source_id, ''), reconciled, posted_at
		FROM account_transactions WHERE id = $1
	`

	var txn domain.AccountTransaction
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&txn.ID,
		&txn.AccountID,
		&txn.Amount,
		&txn.Direction,
		&txn.SourceType,
		&txn.SourceID,
		&txn.Reconciled,
		&txn.PostedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &txn, nil
}

// GetByAccountAndPeriod retrieves transactions for an account posted within [start, end].
func (r *TransactionRepository) GetByAccountAndPeriod(ctx context.Context, accountID string, start, end time.Time) ([]*domain.AccountTransaction, error) {
	query := `
		SELECT id, account_id, amount, direction, source_type, COALESCE(source_id, ''), reconciled, posted_at
		FROM account_transactions
		WHERE account_id = $1 AND posted_at >= $2 AND posted_at <= $3
		ORDER BY posted_at
	`

	rows, err := r.q.QueryContext(ctx, query, accountID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*domain.AccountTransaction
	for rows.Next() {
		var txn domain.AccountTransaction
		if err := rows.Scan(
			&txn.ID,
			&txn.AccountID,
			&txn.Amount,
			&txn.Direction,
			&txn.SourceType,
			&txn.SourceID,
			&txn.Reconciled,
			&txn.PostedAt,
		); err != nil {
			return nil, err
		}
		txns = append(txns, &txn)
	}
	return txns, rows.Err()
}

// MarkReconciled sets the reconciled flag on the given transactions.
func (r *TransactionRepository) MarkReconciled(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query := `UPDATE account_transactions SET reconciled = TRUE WHERE id = ANY($1)`
	_, err := r.q.ExecContext(ctx, query, pq.Array(ids))
	return err
}

// Ensure TransactionRepository implements repository.TransactionRepository.
var _ repository.TransactionRepository = (*TransactionRepository)(nil)
