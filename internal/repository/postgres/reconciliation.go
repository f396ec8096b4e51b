package postgres

import (
	"context"
	"database/sql"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	"github.com/Zelesto/trailers-backend-sub001/internal/repository"
)

// ReconciliationRepository is a PostgreSQL implementation of
// repository.ReconciliationRepository. Rows are append-only; there is no
// update path.
type ReconciliationRepository struct {
	q Querier
}

// NewReconciliationRepository creates a new PostgreSQL reconciliation repository.
func NewReconciliationRepository(db *sql.DB) *ReconciliationRepository {
	return &ReconciliationRepository{q: db}
}

// NewReconciliationRepositoryWithTx creates a reconciliation repository using a transaction.
func NewReconciliationRepositoryWithTx(tx *sql.Tx) *ReconciliationRepository {
	return &ReconciliationRepository{q: tx}
}

const reconciliationColumns = `id, account_id, date, period_start, period_end,
	statement_balance, system_balance, variance, status, notes, created_at`

// Create persists a new reconciliation record.
func (r *ReconciliationRepository) Create(ctx context.Context, rec *domain.Reconciliation) error {
	query := `
		INSERT INTO reconciliations (` + reconciliationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.q.ExecContext(ctx, query,
		rec.ID,
		rec.AccountID,
		rec.Date,
		rec.PeriodStart,
		rec.PeriodEnd,
		rec.StatementBalance,
		rec.SystemBalance,
		rec.Variance,
		rec.Status,
		rec.Notes,
		rec.CreatedAt,
	)

	return err
}

// GetAll retrieves recent reconciliation records.
func (r *ReconciliationRepository) GetAll(ctx context.Context) ([]*domain.Reconciliation, error) {
	query := `SELECT ` + reconciliationColumns + ` FROM reconciliations ORDER BY created_at DESC LIMIT 100`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReconciliations(rows)
}

// GetByAccount retrieves reconciliation records for an account.
func (r *ReconciliationRepository) GetByAccount(ctx context.Context, accountID string) ([]*domain.Reconciliation, error) {
	query := `SELECT ` + reconciliationColumns + ` FROM reconciliations WHERE account_id = $1 ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReconciliations(rows)
}

func scanReconciliations(rows *sql.Rows) ([]*domain.Reconciliation, error) {
	var recs []*domain.Reconciliation
	for rows.Next() {
		var rec domain.Reconciliation
		if err := rows.Scan(
			&rec.ID,
			&rec.AccountID,
			&rec.Date,
			&rec.PeriodStart,
			&rec.PeriodEnd,
			&rec.StatementBalance,
			&rec.SystemBalance,
			&rec.Variance,
			&rec.Status,
			&rec.Notes,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		recs = append(recs, &rec)
	}
	return recs, rows.Err()
}

// Ensure ReconciliationRepository implements repository.ReconciliationRepository.
var _ repository.ReconciliationRepository = (*ReconciliationRepository)(nil)
