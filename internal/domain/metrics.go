package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TripMetrics holds the route metrics computed for a trip, keyed by trip ID.
// Estimated on planning, locked (Final=true) on completion; a final row is
// immutable to later recalculation.
type TripMetrics struct {
	TripID          string
	DistanceKm      float64
	DurationMinutes float64
	FuelCost        decimal.Decimal
	TollCost        decimal.Decimal
	TotalCost       decimal.Decimal
	Final           bool
	CalculatedAt    time.Time
}
