package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the current status of a payment.
// Payments progress linearly CAPTURED -> ALLOCATED -> POSTED.
type PaymentStatus string

const (
	PaymentStatusCaptured  PaymentStatus = "CAPTURED"
	PaymentStatusAllocated PaymentStatus = "ALLOCATED"
	PaymentStatusPosted    PaymentStatus = "POSTED"
)

// PaymentMethod represents how a payment was made.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
)

// Payment is an incoming payment split across one or more allocations.
type Payment struct {
	ID             string
	Reference      string
	PayerName      string
	Amount         decimal.Decimal
	Method         PaymentMethod
	Status         PaymentStatus
	PaidAt         time.Time
	IdempotencyKey string
	CreatedAt      time.Time
}

// PaymentAllocation assigns part of a payment to a target entity, e.g. a
// supplier invoice or a trip cost.
//
// The sum of a payment's allocations is not checked against the payment
// amount here; whether that invariant is enforced upstream is unresolved.
type PaymentAllocation struct {
	ID         string
	PaymentID  string
	TargetType string
	TargetID   string
	Amount     decimal.Decimal
	CreatedAt  time.Time
}
