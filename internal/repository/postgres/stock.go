package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	"github.com/Zelesto/trailers-backend-sub001/internal/repository"
)

// StockCountRepository is a PostgreSQL implementation of repository.StockCountRepository.
type StockCountRepository struct {
	q Querier
}

// NewStockCountRepository creates a new PostgreSQL stock count repository.
func NewStockCountRepository(db *sql.DB) *StockCountRepository {
	return &StockCountRepository{q: db}
}

// NewStockCountRepositoryWithTx creates a stock count repository using a transaction.
func NewStockCountRepositoryWithTx(tx *sql.Tx) *StockCountRepository {
	return &StockCountRepository{q: tx}
}

// Create persists a new stock count with its lines.
func (r *StockCountRepository) Create(ctx context.Context, count *domain.StockCount) error {
	query := `INSERT INTO stock_counts (id, location, status, counted_at, created_at) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.q.ExecContext(ctx, query,
		count.ID,
		count.Location,
		count.Status,
		nullTime(count.CountedAt),
		count.CreatedAt,
	)
	if err != nil {
		return err
	}

	for _, line := range count.Lines {
		if err := r.UpsertLine(ctx, line); err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves a stock count with its lines.
func (r *StockCountRepository) GetByID(ctx context.Context, id string) (*domain.StockCount, error) {
	query := `SELECT id, location, status, counted_at, created_at FROM stock_counts WHERE id = $1`

	var count domain.StockCount
	var countedAt sql.NullTime
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&count.ID,
		&count.Location,
		&count.Status,
		&countedAt,
		&count.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if countedAt.Valid {
		count.CountedAt = countedAt.Time
	}

	lines, err := r.getLines(ctx, id)
	if err != nil {
		return nil, err
	}
	count.Lines = lines

	return &count, nil
}

// GetAll retrieves recent stock counts without lines.
func (r *StockCountRepository) GetAll(ctx context.Context) ([]*domain.StockCount, error) {
	query := `SELECT id, location, status, counted_at, created_at FROM stock_counts ORDER BY created_at DESC LIMIT 100`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []*domain.StockCount
	for rows.Next() {
		var count domain.StockCount
		var countedAt sql.NullTime
		if err := rows.Scan(&count.ID, &count.Location, &count.Status, &countedAt, &count.CreatedAt); err != nil {
			return nil, err
		}
		if countedAt.Valid {
			count.CountedAt = countedAt.Time
		}
		counts = append(counts, &count)
	}
	return counts, rows.Err()
}

// UpdateStatus updates the status of a stock count.
func (r *StockCountRepository) UpdateStatus(ctx context.Context, id string, status domain.StockCountStatus) error {
	query := `UPDATE stock_counts SET status = $1 WHERE id = $2`

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

// UpsertLine inserts or updates a line within a count. Variance is recomputed
// before the write so the stored value always matches the quantities.
func (r *StockCountRepository) UpsertLine(ctx context.Context, line *domain.StockCountLine) error {
	line.RecomputeVariance()

	query := `
		INSERT INTO stock_count_lines (id, count_id, item_id, item_name, system_qty, counted_qty, variance)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (count_id, item_id) DO UPDATE
		SET item_name = EXCLUDED.item_name,
			system_qty = EXCLUDED.system_qty,
			counted_qty = EXCLUDED.counted_qty,
			variance = EXCLUDED.variance
	`

	_, err := r.q.ExecContext(ctx, query,
		line.ID,
		line.CountID,
		line.ItemID,
		line.ItemName,
		line.SystemQty,
		line.CountedQty,
		line.Variance,
	)

	return err
}

// DeleteLine removes a line from a count.
func (r *StockCountRepository) DeleteLine(ctx context.Context, countID, itemID string) error {
	query := `DELETE FROM stock_count_lines WHERE count_id = $1 AND item_id = $2`
	_, err := r.q.ExecContext(ctx, query, countID, itemID)
	return err
}

func (r *StockCountRepository) getLines(ctx context.Context, countID string) ([]*domain.StockCountLine, error) {
	query := `
		SELECT id, count_id, item_id, COALESCE(item_name, ''), system_qty, counted_qty, variance
		FROM stock_count_lines WHERE count_id = $1 ORDER BY item_id
	`

	rows, err := r.q.QueryContext(ctx, query, countID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*domain.StockCountLine
	for rows.Next() {
		var line domain.StockCountLine
		if err := rows.Scan(
			&line.ID,
			&line.CountID,
			&line.ItemID,
			&line.ItemName,
			&line.SystemQty,
			&line.CountedQty,
			&line.Variance,
		); err != nil {
			return nil, err
		}
		lines = append(lines, &line)
	}
	return lines, rows.Err()
}

// Ensure StockCountRepository implements repository.StockCountRepository.
var _ repository.StockCountRepository = (*StockCountRepository)(nil)
