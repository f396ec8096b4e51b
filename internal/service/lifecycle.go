package service

import (
	"context"
	"time"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	"github.com/Zelesto/trailers-backend-sub001/internal/repository"
)

// LifecycleDispatcher delivers trip lifecycle events to their consumers.
//
// Dispatch is synchronous and in-process: the caller invokes it with
// transaction-scoped repositories, inside the same transaction that wrote
// the new trip status. An error from any handler propagates up and rolls
// the whole transaction back, so a lifecycle change and its side effects
// commit or abort as a unit. Each handler re-fetches the trip by ID instead
// of receiving a snapshot, so it observes the committed post-transition row.
type LifecycleDispatcher struct {
	calc MetricsCalculator
}

// NewLifecycleDispatcher creates a new LifecycleDispatcher.
func NewLifecycleDispatcher(calc MetricsCalculator) *LifecycleDispatcher {
	return &LifecycleDispatcher{calc: calc}
}

// TripPlanned handles a TripPlannedEvent: calculate route metrics for the
// trip and persist the estimate keyed by trip ID.
func (d *LifecycleDispatcher) TripPlanned(
	ctx context.Context,
	trips repository.TripRepository,
	metrics repository.TripMetricsRepository,
	event domain.TripPlannedEvent,
) error {
	trip, err := trips.GetByID(ctx, event.TripID())
	if err != nil {
		return err
	}

	estimate, err := d.calc.Calculate(ctx, RouteRequest{
		OriginLat:      trip.OriginLat,
		OriginLng:      trip.OriginLng,
		DestinationLat: trip.DestinationLat,
		DestinationLng: trip.DestinationLng,
		CargoWeightKg:  trip.CargoWeightKg,
	})
	if err != nil {
		return &MetricsError{Cause: err}
	}

	return metrics.Upsert(ctx, &domain.TripMetrics{
		TripID:          trip.ID,
		DistanceKm:      estimate.DistanceKm,
		DurationMinutes: estimate.DurationMinutes,
		FuelCost:        estimate.FuelCost,
		TollCost:        estimate.TollCost,
		TotalCost:       estimate.TotalCost,
		CalculatedAt:    time.Now(),
	})
}

// TripCompleted handles a TripCompletedEvent: lock the trip's metrics so
// they are immutable to later recalculation.
func (d *LifecycleDispatcher) TripCompleted(
	ctx context.Context,
	trips repository.TripRepository,
	metrics repository.TripMetricsRepository,
	event domain.TripCompletedEvent,
) error {
	trip, err := trips.GetByID(ctx, event.TripID())
	if err != nil {
		return err
	}

	if err := d.calc.LockFinal(ctx, trip.ID); err != nil {
		return &MetricsError{Cause: err}
	}

	return metrics.MarkFinal(ctx, trip.ID)
}
