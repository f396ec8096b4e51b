package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationStatus classifies the outcome of a reconciliation run.
type ReconciliationStatus string

const (
	ReconciliationMatched       ReconciliationStatus = "MATCHED"
	ReconciliationVariance      ReconciliationStatus = "VARIANCE"
	ReconciliationPendingReview ReconciliationStatus = "PENDING_REVIEW"
)

// Reconciliation is an append-only audit record comparing a statement
// balance to an independently computed system balance for one account and
// period. Never mutated after creation.
type Reconciliation struct {
	ID               string
	AccountID        string
	Date             time.Time
	PeriodStart      time.Time
	PeriodEnd        time.Time
	StatementBalance decimal.Decimal
	SystemBalance    decimal.Decimal
	Variance         decimal.Decimal
	Status           ReconciliationStatus
	Notes            string
	CreatedAt        time.Time
}

// NewReconciliation builds the audit record, computing
// variance = statementBalance - systemBalance and deriving the status.
func NewReconciliation(id, accountID string, periodStart, periodEnd time.Time, statementBalance, systemBalance decimal.Decimal, notes string) *Reconciliation {
	variance := statementBalance.Sub(systemBalance)
	status := ReconciliationMatched
	if !variance.IsZero() {
		status = ReconciliationVariance
	}
	now := time.Now()
	return &Reconciliation{
		ID:               id,
		AccountID:        accountID,
		Date:             now,
		PeriodStart:      periodStart,
		PeriodEnd:        periodEnd,
		StatementBalance: statementBalance,
		SystemBalance:    systemBalance,
		Variance:         variance,
		Status:           status,
		Notes:            notes,
		CreatedAt:        now,
	}
}
