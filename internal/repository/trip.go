package repository

import (
	"context"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
)

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)

	// GetAll retrieves recent trips.
	GetAll(ctx context.Context) ([]*domain.Trip, error)

	// Update updates an existing trip.
	Update(ctx context.Context, trip *domain.Trip) error

	// GetActiveByVehicleID retrieves the active trip for a vehicle.
	// Returns nil if no active trip exists.
	GetActiveByVehicleID(ctx context.Context, vehicleID string) (*domain.Trip, error)

	// GetActiveByDriverID retrieves the active trip for a driver.
	// Returns nil if no active trip exists.
	GetActiveByDriverID(ctx context.Context, driverID string) (*domain.Trip, error)
}

// TripMetricsRepository defines the persistence operations for trip metrics.
type TripMetricsRepository interface {
	// Upsert inserts or replaces the metrics row for a trip. Final rows are
	// immutable; upserting over one returns ErrMetricsFinal.
	Upsert(ctx context.Context, metrics *domain.TripMetrics) error

	// GetByTripID retrieves metrics for a trip.
	GetByTripID(ctx context.Context, tripID string) (*domain.TripMetrics, error)

	// MarkFinal locks the metrics row for a trip against recalculation.
	MarkFinal(ctx context.Context, tripID string) error
}
