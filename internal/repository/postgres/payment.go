package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	"github.com/Zelesto/trailers-backend-sub001/internal/repository"
)

// PaymentRepository is a PostgreSQL implementation of repository.PaymentRepository.
type PaymentRepository struct {
	q Querier
}

// NewPaymentRepository creates a new PostgreSQL payment repository.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{q: db}
}

// NewPaymentRepositoryWithTx creates a payment repository using a transaction.
func NewPaymentRepositoryWithTx(tx *sql.Tx) *PaymentRepository {
	return &PaymentRepository{q: tx}
}

const paymentColumns = `id, reference, payer_name, amount, method, status, paid_at, idempotency_key, created_at`

// Create persists a new payment.
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.q.ExecContext(ctx, query,
		payment.ID,
		payment.Reference,
		payment.PayerName,
		payment.Amount,
		payment.Method,
		payment.Status,
		payment.PaidAt,
		nullString(payment.IdempotencyKey),
		payment.CreatedAt,
	)

	return err
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := scanPayment(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return payment, nil
}

// GetByIdempotencyKey retrieves a payment by its idempotency key.
// Returns nil if no payment exists with the given key.
func (r *PaymentRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE idempotency_key = $1`

	payment, err := scanPayment(r.q.QueryRowContext(ctx, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return payment, nil
}

// UpdateStatus updates the status of a payment.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	query := `UPDATE payments SET status = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, status, id)
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

// CreateAllocation persists a payment allocation.
func (r *PaymentRepository) CreateAllocation(ctx context.Context, allocation *domain.PaymentAllocation) error {
	query := `
		INSERT INTO payment_allocations (id, payment_id, target_type, target_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.ExecContext(ctx, query,
		allocation.ID,
		allocation.PaymentID,
		allocation.TargetType,
		allocation.TargetID,
		allocation.Amount,
		allocation.CreatedAt,
	)

	return err
}

// GetAllocations retrieves the allocations for a payment.
func (r *PaymentRepository) GetAllocations(ctx context.Context, paymentID string) ([]*domain.PaymentAllocation, error) {
	query := `
		SELECT id, payment_id, target_type, target_id, amount, created_at
		FROM payment_allocations WHERE payment_id = $1 ORDER BY created_at
	`

	rows, err := r.q.QueryContext(ctx, query, paymentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allocations []*domain.PaymentAllocation
	for rows.Next() {
		var allocation domain.PaymentAllocation
		if err := rows.Scan(
			&allocation.ID,
			&allocation.PaymentID,
			&allocation.TargetType,
			&allocation.TargetID,
			&allocation.Amount,
			&allocation.CreatedAt,
		); err != nil {
			return nil, err
		}
		allocations = append(allocations, &allocation)
	}
	return allocations, rows.Err()
}

func scanPayment(row *sql.Row) (*domain.Payment, error) {
	var payment domain.Payment
	var idempotencyKey sql.NullString

	err := row.Scan(
		&payment.ID,
		&payment.Reference,
		&payment.PayerName,
		&payment.Amount,
		&payment.Method,
		&payment.Status,
		&payment.PaidAt,
		&idempotencyKey,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	payment.IdempotencyKey = idempotencyKey.String
	return &payment, nil
}

// Ensure PaymentRepository implements repository.PaymentRepository.
var _ repository.PaymentRepository = (*PaymentRepository)(nil)
