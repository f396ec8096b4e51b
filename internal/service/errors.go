package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTripID is returned when trip ID is empty.
	ErrInvalidTripID = errors.New("invalid trip id")

	// ErrInvalidVehicleID is returned when vehicle ID is empty.
	ErrInvalidVehicleID = errors.New("invalid vehicle id")

	// ErrInvalidDriverID is returned when driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidRoute is returned when origin or destination coordinates are invalid.
	ErrInvalidRoute = errors.New("invalid route coordinates")

	// ErrInvalidLocation is returned when location coordinates are invalid.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrVehicleNotAvailable is returned when the vehicle is not free for assignment.
	ErrVehicleNotAvailable = errors.New("vehicle not available")

	// ErrDriverNotAvailable is returned when the driver is not free for assignment.
	ErrDriverNotAvailable = errors.New("driver not available")

	// ErrNoVehicleAvailable is returned when no vehicle can be matched near the origin.
	ErrNoVehicleAvailable = errors.New("no vehicle available")

	// ErrAssignmentInProgress is returned when another assignment holds the lock.
	ErrAssignmentInProgress = errors.New("assignment already in progress")

	// ErrInvalidAccountID is returned when account ID is empty.
	ErrInvalidAccountID = errors.New("invalid account id")

	// ErrInvalidAccountName is returned when account name is empty.
	ErrInvalidAccountName = errors.New("invalid account name")

	// ErrAccountInactive is returned when posting against a deactivated account.
	ErrAccountInactive = errors.New("account is inactive")

	// ErrInvalidStatementID is returned when statement ID is empty.
	ErrInvalidStatementID = errors.New("invalid statement id")

	// ErrInvalidPeriod is returned when a statement period is empty or inverted.
	ErrInvalidPeriod = errors.New("invalid statement period")

	// ErrInvalidAmount is returned when an amount is zero or negative.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidActor is returned when a reconciliation actor is empty.
	ErrInvalidActor = errors.New("invalid actor")

	// ErrInvalidDirection is returned when a transaction direction is
	// neither DEBIT nor CREDIT.
	ErrInvalidDirection = errors.New("invalid transaction direction")

	// ErrInvalidPaymentID is returned when payment ID is empty.
	ErrInvalidPaymentID = errors.New("invalid payment id")

	// ErrPaymentNotCaptured is returned when allocating a payment that is not CAPTURED.
	ErrPaymentNotCaptured = errors.New("payment not in captured state")

	// ErrPaymentNotAllocated is returned when posting a payment that is not ALLOCATED.
	ErrPaymentNotAllocated = errors.New("payment not in allocated state")

	// ErrNoAllocations is returned when allocating a payment without allocation lines.
	ErrNoAllocations = errors.New("payment has no allocations")

	// ErrInvalidStockCountID is returned when stock count ID is empty.
	ErrInvalidStockCountID = errors.New("invalid stock count id")

	// ErrInvalidItemID is returned when a stock line item ID is empty.
	ErrInvalidItemID = errors.New("invalid item id")

	// ErrStockCountPosted is returned when mutating a stock count that is already POSTED.
	ErrStockCountPosted = errors.New("stock count already posted")
)

// MetricsError wraps a failure of the external route metrics calculator.
// It aborts the enclosing lifecycle transaction: the status transition is
// rolled back rather than committed without its side effect.
type MetricsError struct {
	Cause error
}

func (e *MetricsError) Error() string {
	return fmt.Sprintf("metrics calculation failed: %v", e.Cause)
}

func (e *MetricsError) Unwrap() error { return e.Cause }
