package domain

import "time"

// DriverStatus represents the current status of a driver.
type DriverStatus string

const (
	DriverStatusAvailable DriverStatus = "AVAILABLE"
	DriverStatusOnTrip    DriverStatus = "ON_TRIP"
	DriverStatusOffDuty   DriverStatus = "OFF_DUTY"
)

// Driver represents a fleet driver.
type Driver struct {
	ID            string
	Name          string
	Phone         string
	LicenseNumber string
	Status        DriverStatus
	CreatedAt     time.Time
}
