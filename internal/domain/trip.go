package domain

import (
	"fmt"
	"time"
)

// TripStatus represents the current status of a trip.
type TripStatus string

const (
	TripStatusDraft      TripStatus = "DRAFT"
	TripStatusPlanned    TripStatus = "PLANNED"
	TripStatusAssigned   TripStatus = "ASSIGNED"
	TripStatusInProgress TripStatus = "IN_PROGRESS"
	TripStatusCompleted  TripStatus = "COMPLETED"
	TripStatusCancelled  TripStatus = "CANCELLED"

	// Carried over from legacy imports; no transition rule is defined for
	// these, so every transition from them is rejected.
	TripStatusActive    TripStatus = "ACTIVE"
	TripStatusPending   TripStatus = "PENDING"
	TripStatusClosed    TripStatus = "CLOSED"
	TripStatusFinalized TripStatus = "FINALIZED"
)

// allowedTransitions is the directed transition table for trip statuses.
// Built once at package init and never mutated. Statuses absent from the
// table have an empty allowed set.
var allowedTransitions = map[TripStatus][]TripStatus{
	TripStatusDraft:      {TripStatusPlanned, TripStatusCancelled},
	TripStatusPlanned:    {TripStatusAssigned, TripStatusCancelled},
	TripStatusAssigned:   {TripStatusInProgress, TripStatusCancelled},
	TripStatusInProgress: {TripStatusCompleted},
	TripStatusCompleted:  {},
	TripStatusCancelled:  {},
}

// InvalidTransitionError is returned when a trip status change is not
// permitted by the transition table.
type InvalidTransitionError struct {
	From TripStatus
	To   TripStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid trip transition from %s to %s", e.From, e.To)
}

// ValidateTransition checks whether a trip may move from current to next.
// Pure function over the static table: nil if allowed, otherwise
// *InvalidTransitionError carrying both statuses.
func ValidateTransition(current, next TripStatus) error {
	for _, allowed := range allowedTransitions[current] {
		if allowed == next {
			return nil
		}
	}
	return &InvalidTransitionError{From: current, To: next}
}

// Trip represents a dispatch trip from origin to destination.
type Trip struct {
	ID              string
	VehicleID       string
	DriverID        string
	Status          TripStatus
	OriginName      string
	OriginLat       float64
	OriginLng       float64
	DestinationName string
	DestinationLat  float64
	DestinationLng  float64
	CargoWeightKg   float64
	ScheduledAt     time.Time
	StartedAt       time.Time
	CompletedAt     time.Time
	CancelledAt     time.Time
	CancelReason    string
	CreatedAt       time.Time
}
