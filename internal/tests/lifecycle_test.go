package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	"github.com/Zelesto/trailers-backend-sub001/internal/service"
)

func newPlannedTrip(id string) *domain.Trip {
	return &domain.Trip{
		ID:             id,
		Status:         domain.TripStatusPlanned,
		OriginLat:      52.37,
		OriginLng:      4.89,
		DestinationLat: 51.92,
		DestinationLng: 4.48,
		CargoWeightKg:  12000,
	}
}

func TestLifecycle_TripPlanned_PersistsMetrics(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	metricsRepo := NewMockTripMetricsRepository()
	calc := NewMockCalculator()
	calc.Estimate = &service.RouteEstimate{
		DistanceKm:      58.2,
		DurationMinutes: 51.4,
		FuelCost:        decimal.RequireFromString("34.45"),
		TollCost:        decimal.RequireFromString("6.98"),
		TotalCost:       decimal.RequireFromString("41.43"),
	}
	dispatcher := service.NewLifecycleDispatcher(calc)

	tripRepo.AddTrip(newPlannedTrip("trip-1"))

	err := dispatcher.TripPlanned(context.Background(), tripRepo, metricsRepo, domain.TripPlannedEvent{ID: "trip-1"})
	if err != nil {
		t.Fatalf("TripPlanned() error = %v", err)
	}

	metrics := metricsRepo.GetMetrics("trip-1")
	if metrics == nil {
		t.Fatal("no metrics persisted")
	}
	if !metrics.TotalCost.Equal(decimal.RequireFromString("41.43")) {
		t.Errorf("TotalCost = %s, want 41.43", metrics.TotalCost)
	}
	if metrics.Final {
		t.Error("freshly planned metrics marked final")
	}
	if calc.CalculateCallCount != 1 {
		t.Errorf("CalculateCallCount = %d, want 1", calc.CalculateCallCount)
	}
}

func TestLifecycle_TripPlanned_CalculatorFailureWrapsMetricsError(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	metricsRepo := NewMockTripMetricsRepository()
	calc := NewMockCalculator()
	calc.CalculateError = ErrMockUpstream
	dispatcher := service.NewLifecycleDispatcher(calc)

	tripRepo.AddTrip(newPlannedTrip("trip-1"))

	err := dispatcher.TripPlanned(context.Background(), tripRepo, metricsRepo, domain.TripPlannedEvent{ID: "trip-1"})
	if err == nil {
		t.Fatal("TripPlanned() = nil, want error")
	}

	var metricsErr *service.MetricsError
	if !errors.As(err, &metricsErr) {
		t.Fatalf("error %T does not wrap MetricsError", err)
	}
	if !errors.Is(err, ErrMockUpstream) {
		t.Error("MetricsError does not unwrap to the calculator's cause")
	}
	if metricsRepo.UpsertCallCount != 0 {
		t.Error("metrics were written despite calculator failure")
	}
}

func TestLifecycle_TripPlanned_UnknownTrip(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	metricsRepo := NewMockTripMetricsRepository()
	dispatcher := service.NewLifecycleDispatcher(NewMockCalculator())

	err := dispatcher.TripPlanned(context.Background(), tripRepo, metricsRepo, domain.TripPlannedEvent{ID: "ghost"})
	if err == nil {
		t.Fatal("TripPlanned() = nil for unknown trip, want error")
	}
}

func TestLifecycle_TripCompleted_LocksMetrics(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	metricsRepo := NewMockTripMetricsRepository()
	calc := NewMockCalculator()
	dispatcher := service.NewLifecycleDispatcher(calc)

	trip := newPlannedTrip("trip-1")
	trip.Status = domain.TripStatusCompleted
	tripRepo.AddTrip(trip)
	_ = metricsRepo.Upsert(context.Background(), &domain.TripMetrics{TripID: "trip-1"})

	err := dispatcher.TripCompleted(context.Background(), tripRepo, metricsRepo, domain.TripCompletedEvent{ID: "trip-1"})
	if err != nil {
		t.Fatalf("TripCompleted() error = %v", err)
	}

	if metrics := metricsRepo.GetMetrics("trip-1"); metrics == nil || !metrics.Final {
		t.Error("metrics not marked final after completion")
	}
	if calc.LockFinalCallCount != 1 {
		t.Errorf("LockFinalCallCount = %d, want 1", calc.LockFinalCallCount)
	}
}

func TestLifecycle_TripCompleted_LockFailureWrapsMetricsError(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	metricsRepo := NewMockTripMetricsRepository()
	calc := NewMockCalculator()
	calc.LockFinalError = ErrMockUpstream
	dispatcher := service.NewLifecycleDispatcher(calc)

	trip := newPlannedTrip("trip-1")
	trip.Status = domain.TripStatusCompleted
	tripRepo.AddTrip(trip)
	_ = metricsRepo.Upsert(context.Background(), &domain.TripMetrics{TripID: "trip-1"})

	err := dispatcher.TripCompleted(context.Background(), tripRepo, metricsRepo, domain.TripCompletedEvent{ID: "trip-1"})

	var metricsErr *service.MetricsError
	if !errors.As(err, &metricsErr) {
		t.Fatalf("error %T does not wrap MetricsError", err)
	}
	if metrics := metricsRepo.GetMetrics("trip-1"); metrics.Final {
		t.Error("metrics marked final despite lock failure")
	}
}

func TestLifecycle_FinalMetricsRejectRecalculation(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	metricsRepo := NewMockTripMetricsRepository()
	calc := NewMockCalculator()
	dispatcher := service.NewLifecycleDispatcher(calc)

	trip := newPlannedTrip("trip-1")
	tripRepo.AddTrip(trip)
	_ = metricsRepo.Upsert(context.Background(), &domain.TripMetrics{TripID: "trip-1"})
	_ = metricsRepo.MarkFinal(context.Background(), "trip-1")

	err := dispatcher.TripPlanned(context.Background(), tripRepo, metricsRepo, domain.TripPlannedEvent{ID: "trip-1"})
	if err == nil {
		t.Fatal("recalculation against final metrics succeeded")
	}
}
