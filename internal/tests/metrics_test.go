package tests

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Zelesto/trailers-backend-sub001/internal/service"
)

func testRates() service.RateConfig {
	return service.RateConfig{
		FuelPricePerLitre:   decimal.RequireFromString("1.85"),
		LitresPerHundredKm:  decimal.RequireFromString("32"),
		TollPerKm:           decimal.RequireFromString("0.12"),
		AverageSpeedKmh:     68,
		CargoFactorPerTonne: decimal.RequireFromString("0.015"),
	}
}

func TestCalculator_AmsterdamToRotterdam(t *testing.T) {
	t.Parallel()

	calc := service.NewStaticRateCalculator(testRates(), nil)

	estimate, err := calc.Calculate(context.Background(), service.RouteRequest{
		OriginLat:      52.3676,
		OriginLng:      4.9041,
		DestinationLat: 51.9244,
		DestinationLng: 4.4777,
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	// Great-circle Amsterdam-Rotterdam is roughly 57 km.
	if estimate.DistanceKm < 50 || estimate.DistanceKm > 65 {
		t.Errorf("DistanceKm = %.1f, want ~57", estimate.DistanceKm)
	}

	wantMinutes := estimate.DistanceKm / 68 * 60
	if math.Abs(estimate.DurationMinutes-wantMinutes) > 0.01 {
		t.Errorf("DurationMinutes = %.2f, want %.2f", estimate.DurationMinutes, wantMinutes)
	}

	if !estimate.TotalCost.Equal(estimate.FuelCost.Add(estimate.TollCost)) {
		t.Errorf("TotalCost %s != FuelCost %s + TollCost %s",
			estimate.TotalCost, estimate.FuelCost, estimate.TollCost)
	}
}

func TestCalculator_ZeroDistanceRoute(t *testing.T) {
	t.Parallel()

	calc := service.NewStaticRateCalculator(testRates(), nil)

	estimate, err := calc.Calculate(context.Background(), service.RouteRequest{
		OriginLat:      52.3676,
		OriginLng:      4.9041,
		DestinationLat: 52.3676,
		DestinationLng: 4.9041,
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	if estimate.DistanceKm != 0 {
		t.Errorf("DistanceKm = %f, want 0", estimate.DistanceKm)
	}
	if !estimate.TotalCost.IsZero() {
		t.Errorf("TotalCost = %s, want 0", estimate.TotalCost)
	}
}

func TestCalculator_CargoWeightRaisesFuelCost(t *testing.T) {
	t.Parallel()

	calc := service.NewStaticRateCalculator(testRates(), nil)

	route := service.RouteRequest{
		OriginLat:      52.3676,
		OriginLng:      4.9041,
		DestinationLat: 51.9244,
		DestinationLng: 4.4777,
	}

	empty, err := calc.Calculate(context.Background(), route)
	if err != nil {
		t.Fatalf("Calculate(empty) error = %v", err)
	}

	route.CargoWeightKg = 20000
	loaded, err := calc.Calculate(context.Background(), route)
	if err != nil {
		t.Fatalf("Calculate(loaded) error = %v", err)
	}

	if !loaded.FuelCost.GreaterThan(empty.FuelCost) {
		t.Errorf("loaded fuel cost %s not greater than empty %s", loaded.FuelCost, empty.FuelCost)
	}
	// Tolls depend on distance only.
	if !loaded.TollCost.Equal(empty.TollCost) {
		t.Errorf("toll cost changed with cargo: %s != %s", loaded.TollCost, empty.TollCost)
	}
}

func TestCalculator_RejectsInvalidCoordinates(t *testing.T) {
	t.Parallel()

	calc := service.NewStaticRateCalculator(testRates(), nil)

	_, err := calc.Calculate(context.Background(), service.RouteRequest{
		OriginLat:      95.0,
		OriginLng:      4.9041,
		DestinationLat: 51.9244,
		DestinationLng: 4.4777,
	})
	if !errors.Is(err, service.ErrInvalidRoute) {
		t.Errorf("err = %v, want ErrInvalidRoute", err)
	}
}
