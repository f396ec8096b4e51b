package domain

// TripEvent is a lifecycle notification carrying only the trip identifier.
// Consumers re-fetch the full trip state by ID so that they observe the
// committed post-transition row, not a stale snapshot.
type TripEvent interface {
	TripID() string
}

// TripPlannedEvent is raised when a trip transitions into PLANNED.
type TripPlannedEvent struct {
	ID string
}

func (e TripPlannedEvent) TripID() string { return e.ID }

// TripCompletedEvent is raised when a trip transitions into COMPLETED.
type TripCompletedEvent struct {
	ID string
}

func (e TripCompletedEvent) TripID() string { return e.ID }
