package service

import (
	"context"
	"math"

	"github.com/shopspring/decimal"

	"github.com/Zelesto/trailers-backend-sub001/internal/redis"
)

// RouteRequest carries the trip route fields the calculator needs.
type RouteRequest struct {
	OriginLat      float64
	OriginLng      float64
	DestinationLat float64
	DestinationLng float64
	CargoWeightKg  float64
}

// RouteEstimate is the calculator's result for one route.
type RouteEstimate struct {
	DistanceKm      float64
	DurationMinutes float64
	FuelCost        decimal.Decimal
	TollCost        decimal.Decimal
	TotalCost       decimal.Decimal
}

// MetricsCalculator computes route metrics for a trip and locks them once
// the trip completes. Implementations may call out to an external routing
// provider; errors abort the caller's transaction.
type MetricsCalculator interface {
	Calculate(ctx context.Context, req RouteRequest) (*RouteEstimate, error)
	LockFinal(ctx context.Context, tripID string) error
}

// RateConfig holds the cost rates for the static calculator.
type RateConfig struct {
	FuelPricePerLitre   decimal.Decimal
	LitresPerHundredKm  decimal.Decimal
	TollPerKm           decimal.Decimal
	AverageSpeedKmh     float64
	CargoFactorPerTonne decimal.Decimal
}

// StaticRateCalculator estimates route metrics from great-circle distance
// and configured rates. The fuel price can be overridden through the cache
// store, refreshed by an external price feed.
type StaticRateCalculator struct {
	rates RateConfig
	cache *redis.CacheStore
}

// NewStaticRateCalculator creates a StaticRateCalculator. cache may be nil,
// in which case the configured fuel price is always used.
func NewStaticRateCalculator(rates RateConfig, cache *redis.CacheStore) *StaticRateCalculator {
	return &StaticRateCalculator{rates: rates, cache: cache}
}

// Calculate estimates distance, duration and costs for the route.
func (c *StaticRateCalculator) Calculate(ctx context.Context, req RouteRequest) (*RouteEstimate, error) {
	if !isValidLatitude(req.OriginLat) || !isValidLongitude(req.OriginLng) ||
		!isValidLatitude(req.DestinationLat) || !isValidLongitude(req.DestinationLng) {
		return nil, ErrInvalidRoute
	}

	distanceKm := haversineKm(req.OriginLat, req.OriginLng, req.DestinationLat, req.DestinationLng)

	speed := c.rates.AverageSpeedKmh
	if speed <= 0 {
		speed = 60
	}
	durationMinutes := distanceKm / speed * 60

	distance := decimal.NewFromFloat(distanceKm)

	fuelPrice := c.fuelPrice(ctx)
	litres := distance.Mul(c.rates.LitresPerHundredKm).Div(decimal.NewFromInt(100))
	fuelCost := litres.Mul(fuelPrice)

	// Heavier cargo burns more fuel; factor is per tonne of cargo.
	if req.CargoWeightKg > 0 && !c.rates.CargoFactorPerTonne.IsZero() {
		tonnes := decimal.NewFromFloat(req.CargoWeightKg / 1000)
		fuelCost = fuelCost.Add(fuelCost.Mul(c.rates.CargoFactorPerTonne).Mul(tonnes))
	}

	tollCost := distance.Mul(c.rates.TollPerKm)

	return &RouteEstimate{
		DistanceKm:      distanceKm,
		DurationMinutes: durationMinutes,
		FuelCost:        fuelCost.Round(2),
		TollCost:        tollCost.Round(2),
		TotalCost:       fuelCost.Add(tollCost).Round(2),
	}, nil
}

// LockFinal acknowledges the metrics lock. The static calculator keeps no
// per-trip state; persistence-side locking is handled by the metrics repository.
func (c *StaticRateCalculator) LockFinal(ctx context.Context, tripID string) error {
	return nil
}

func (c *StaticRateCalculator) fuelPrice(ctx context.Context) decimal.Decimal {
	if c.cache != nil {
		if cached, err := c.cache.GetFuelPrice(ctx); err == nil && cached != "" {
			if price, err := decimal.NewFromString(cached); err == nil {
				return price
			}
		}
	}
	return c.rates.FuelPricePerLitre
}

const earthRadiusKm = 6371.0

// haversineKm returns the great-circle distance between two points.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func isValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func isValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}
