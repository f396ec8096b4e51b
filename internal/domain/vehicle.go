package domain

import "time"

// VehicleStatus represents the current status of a vehicle.
type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "AVAILABLE"
	VehicleStatusOnTrip      VehicleStatus = "ON_TRIP"
	VehicleStatusMaintenance VehicleStatus = "MAINTENANCE"
)

// Vehicle represents a fleet vehicle.
type Vehicle struct {
	ID         string
	Plate      string
	Make       string
	Model      string
	CapacityKg float64
	Status     VehicleStatus
	CreatedAt  time.Time
}
