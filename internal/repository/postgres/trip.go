package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	"github.com/Zelesto/trailers-backend-sub001/internal/repository"
)

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// NewTripRepositoryWithTx creates a trip repository using a transaction.
func NewTripRepositoryWithTx(tx *sql.Tx) *TripRepository {
	return &TripRepository{q: tx}
}

const tripColumns = `id, vehicle_id, driver_id, status, origin_name, origin_lat, origin_lng,
	destination_name, destination_lat, destination_lng, cargo_weight_kg,
	scheduled_at, started_at, completed_at, cancelled_at, cancel_reason, created_at`

// Create persists a new trip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (` + tripColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.q.ExecContext(ctx, query,
		trip.ID,
		nullString(trip.VehicleID),
		nullString(trip.DriverID),
		trip.Status,
		trip.OriginName,
		trip.OriginLat,
		trip.OriginLng,
		trip.DestinationName,
		trip.DestinationLat,
		trip.DestinationLng,
		trip.CargoWeightKg,
		nullTime(trip.ScheduledAt),
		nullTime(trip.StartedAt),
		nullTime(trip.CompletedAt),
		nullTime(trip.CancelledAt),
		trip.CancelReason,
		trip.CreatedAt,
	)

	return err
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	trip, err := scanTrip(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return trip, nil
}

// GetAll retrieves recent trips.
func (r *TripRepository) GetAll(ctx context.Context) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips ORDER BY created_at DESC LIMIT 100`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}

	return trips, rows.Err()
}

// Update updates an existing trip.
func (r *TripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	query := `
		UPDATE trips
		SET vehicle_id = $1, driver_id = $2, status = $3, origin_name = $4,
			origin_lat = $5, origin_lng = $6, destination_name = $7,
			destination_lat = $8, destination_lng = $9, cargo_weight_kg = $10,
			scheduled_at = $11, started_at = $12, completed_at = $13,
			cancelled_at = $14, cancel_reason = $15
		WHERE id = $16
	`

	result, err := r.q.ExecContext(ctx, query,
		nullString(trip.VehicleID),
		nullString(trip.DriverID),
		trip.Status,
		trip.OriginName,
		trip.OriginLat,
		trip.OriginLng,
		trip.DestinationName,
		trip.DestinationLat,
		trip.DestinationLng,
		trip.CargoWeightKg,
		nullTime(trip.ScheduledAt),
		nullTime(trip.StartedAt),
		nullTime(trip.CompletedAt),
		nullTime(trip.CancelledAt),
		trip.CancelReason,
		trip.ID,
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

// GetActiveByVehicleID retrieves the active trip for a vehicle.
// Returns nil if no active trip exists.
func (r *TripRepository) GetActiveByVehicleID(ctx context.Context, vehicleID string) (*domain.Trip, error) {
	return r.getActiveBy(ctx, "vehicle_id", vehicleID)
}

// GetActiveByDriverID retrieves the active trip for a driver.
// Returns nil if no active trip exists.
func (r *TripRepository) GetActiveByDriverID(ctx context.Context, driverID string) (*domain.Trip, error) {
	return r.getActiveBy(ctx, "driver_id", driverID)
}

func (r *TripRepository) getActiveBy(ctx context.Context, column, id string) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips
		WHERE ` + column + ` = $1 AND status IN ($2, $3)
		LIMIT 1`

	trip, err := scanTrip(r.q.QueryRowContext(ctx, query, id, domain.TripStatusAssigned, domain.TripStatusInProgress))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return trip, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*domain.Trip, error) {
	var trip domain.Trip
	var vehicleID, driverID sql.NullString
	var scheduledAt, startedAt, completedAt, cancelledAt sql.NullTime

	err := row.Scan(
		&trip.ID,
		&vehicleID,
		&driverID,
		&trip.Status,
		&trip.OriginName,
		&trip.OriginLat,
		&trip.OriginLng,
		&trip.DestinationName,
		&trip.DestinationLat,
		&trip.DestinationLng,
		&trip.CargoWeightKg,
		&scheduledAt,
		&startedAt,
		&completedAt,
		&cancelledAt,
		&trip.CancelReason,
		&trip.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	trip.VehicleID = vehicleID.String
	trip.DriverID = driverID.String
	if scheduledAt.Valid {
		trip.ScheduledAt = scheduledAt.Time
	}
	if startedAt.Valid {
		trip.StartedAt = startedAt.Time
	}
	if completedAt.Valid {
		trip.CompletedAt = completedAt.Time
	}
	if cancelledAt.Valid {
		trip.CancelledAt = cancelledAt.Time
	}

	return &trip, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
