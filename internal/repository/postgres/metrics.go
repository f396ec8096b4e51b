package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	"github.com/Zelesto/trailers-backend-sub001/internal/repository"
)

// TripMetricsRepository is a PostgreSQL implementation of
// repository.TripMetricsRepository.
type TripMetricsRepository struct {
	q Querier
}

// NewTripMetricsRepository creates a new PostgreSQL trip metrics repository.
func NewTripMetricsRepository(db *sql.DB) *TripMetricsRepository {
	return &TripMetricsRepository{q: db}
}

// NewTripMetricsRepositoryWithTx creates a trip metrics repository using a transaction.
func NewTripMetricsRepositoryWithTx(tx *sql.Tx) *TripMetricsRepository {
	return &TripMetricsRepository{q: tx}
}

// Upsert inserts or replaces the metrics row for a trip. Rows already marked
// final are left untouched and ErrMetricsFinal is returned.
func (r *TripMetricsRepository) Upsert(ctx context.Context, metrics *domain.TripMetrics) error {
	query := `
		INSERT INTO trip_metrics (trip_id, distance_km, duration_minutes, fuel_cost, toll_cost, total_cost, final, calculated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (trip_id) DO UPDATE
		SET distance_km = EXCLUDED.distance_km,
			duration_minutes = EXCLUDED.duration_minutes,
			fuel_cost = EXCLUDED.fuel_cost,
			toll_cost = EXCLUDED.toll_cost,
			total_cost = EXCLUDED.total_cost,
			calculated_at = EXCLUDED.calculated_at
		WHERE trip_metrics.final = FALSE
	`

	result, err := r.q.ExecContext(ctx, query,
		metrics.TripID,
		metrics.DistanceKm,
		metrics.DurationMinutes,
		metrics.FuelCost,
		metrics.TollCost,
		metrics.TotalCost,
		metrics.Final,
		metrics.CalculatedAt,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrMetricsFinal
	}

	return nil
}

// GetByTripID retrieves metrics for a trip.
func (r *TripMetricsRepository) GetByTripID(ctx context.Context, tripID string) (*domain.TripMetrics, error) {
	query := `
		SELECT trip_id, distance_km, duration_minutes, fuel_cost, toll_cost, total_cost, final, calculated_at
		FROM trip_metrics WHERE trip_id = $1
	`

	var m domain.TripMetrics
	err := r.q.QueryRowContext(ctx, query, tripID).Scan(
		&m.TripID,
		&m.DistanceKm,
		&m.DurationMinutes,
		&m.FuelCost,
		&m.TollCost,
		&m.TotalCost,
		&m.Final,
		&m.CalculatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &m, nil
}

// MarkFinal locks the metrics row for a trip against recalculation.
func (r *TripMetricsRepository) MarkFinal(ctx context.Context, tripID string) error {
	query := `UPDATE trip_metrics SET final = TRUE WHERE trip_id = $1`

	result, err := r.q.ExecContext(ctx, query, tripID)
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

// Ensure TripMetricsRepository implements repository.TripMetricsRepository.
var _ repository.TripMetricsRepository = (*TripMetricsRepository)(nil)
