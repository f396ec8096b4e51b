package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	"github.com/Zelesto/trailers-backend-sub001/internal/repository"
)

// StatementRepository is a PostgreSQL implementation of repository.StatementRepository.
type StatementRepository struct {
	q Querier
}

// NewStatementRepository creates a new PostgreSQL statement repository.
func NewStatementRepository(db *sql.DB) *StatementRepository {
	return &StatementRepository{q: db}
}

// NewStatementRepositoryWithTx creates a statement repository using a transaction.
func NewStatementRepositoryWithTx(tx *sql.Tx) *StatementRepository {
	return &StatementRepository{q: tx}
}

const statementColumns = `id, account_id, period_start, period_end, opening_balance,
	closing_balance, total_debits, total_credits, recon_date, reconciled_by, created_at`

// Create persists a new statement.
func (r *StatementRepository) Create(ctx context.Context, statement *domain.AccountStatement) error {
	query := `
		INSERT INTO account_statements (` + statementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.q.ExecContext(ctx, query,
		statement.ID,
		statement.AccountID,
		statement.PeriodStart,
		statement.PeriodEnd,
		statement.OpeningBalance,
		statement.ClosingBalance,
		statement.TotalDebits,
		statement.TotalCredits,
		statement.ReconDate,
		nullString(statement.ReconciledBy),
		statement.CreatedAt,
	)

	return err
}

// GetByID retrieves a statement by ID.
func (r *StatementRepository) GetByID(ctx context.Context, id string) (*domain.AccountStatement, error) {
	query := `SELECT ` + statementColumns + ` FROM account_statements WHERE id = $1`

	statement, err := scanStatement(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return statement, nil
}

// GetByAccount retrieves all statements for an account, newest first.
func (r *StatementRepository) GetByAccount(ctx context.Context, accountID string) ([]*domain.AccountStatement, error) {
	query := `SELECT ` + statementColumns + ` FROM account_statements
		WHERE account_id = $1 ORDER BY period_end DESC`

	rows, err := r.q.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statements []*domain.AccountStatement
	for rows.Next() {
		statement, err := scanStatement(rows)
		if err != nil {
			return nil, err
		}
		statements = append(statements, statement)
	}
	return statements, rows.Err()
}

// GetLatestByAccount retrieves the most recent statement for an account.
// Returns nil if none exists.
func (r *StatementRepository) GetLatestByAccount(ctx context.Context, accountID string) (*domain.AccountStatement, error) {
	query := `SELECT ` + statementColumns + ` FROM account_statements
		WHERE account_id = $1 ORDER BY period_end DESC LIMIT 1`

	statement, err := scanStatement(r.q.QueryRowContext(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return statement, nil
}

// Update updates an existing statement.
func (r *StatementRepository) Update(ctx context.Context, statement *domain.AccountStatement) error {
	query := `
		UPDATE account_statements
		SET opening_balance = $1, closing_balance = $2, total_debits = $3,
			total_credits = $4, recon_date = $5, reconciled_by = $6
		WHERE id = $7
	`

	result, err := r.q.ExecContext(ctx, query,
		statement.OpeningBalance,
		statement.ClosingBalance,
		statement.TotalDebits,
		statement.TotalCredits,
		statement.ReconDate,
		nullString(statement.ReconciledBy),
		statement.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func scanStatement(row rowScanner) (*domain.AccountStatement, error) {
	var statement domain.AccountStatement
	var reconDate sql.NullTime
	var reconciledBy sql.NullString

	err := row.Scan(
		&statement.ID,
		&statement.AccountID,
		&statement.PeriodStart,
		&statement.PeriodEnd,
		&statement.OpeningBalance,
		&statement.ClosingBalance,
		&statement.TotalDebits,
		&statement.TotalCredits,
		&reconDate,
		&reconciledBy,
		&statement.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if reconDate.Valid {
		t := reconDate.Time
		statement.ReconDate = &t
	}
	statement.ReconciledBy = reconciledBy.String

	return &statement, nil
}

// Ensure StatementRepository implements repository.StatementRepository.
var _ repository.StatementRepository = (*StatementRepository)(nil)
