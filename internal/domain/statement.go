package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionDirection indicates whether a posting debits or credits the account.
type TransactionDirection string

const (
	Debit  TransactionDirection = "DEBIT"
	Credit TransactionDirection = "CREDIT"
)

// AccountStatement is a bounded statement period for one account.
// Balance fields are nullable; the arithmetic below degrades gracefully
// when inputs are absent instead of erroring.
type AccountStatement struct {
	ID             string
	AccountID      string
	PeriodStart    time.Time
	PeriodEnd      time.Time
	OpeningBalance decimal.NullDecimal
	ClosingBalance decimal.NullDecimal
	TotalDebits    decimal.NullDecimal
	TotalCredits   decimal.NullDecimal
	ReconDate      *time.Time
	ReconciledBy   string
	CreatedAt      time.Time
}

// IsBalanced reports whether closing == opening + credits - debits using
// exact decimal equality. Returns false if any of the four fields is absent.
func (s *AccountStatement) IsBalanced() bool {
	if !s.OpeningBalance.Valid || !s.ClosingBalance.Valid || !s.TotalDebits.Valid || !s.TotalCredits.Valid {
		return false
	}
	expected := s.OpeningBalance.Decimal.Add(s.TotalCredits.Decimal).Sub(s.TotalDebits.Decimal)
	return s.ClosingBalance.Decimal.Equal(expected)
}

// RecalculateClosingBalance sets closing = opening + credits - debits.
// Silent no-op when any of the three inputs is absent; the existing closing
// balance is left untouched in that case.
func (s *AccountStatement) RecalculateClosingBalance() {
	if !s.OpeningBalance.Valid || !s.TotalDebits.Valid || !s.TotalCredits.Valid {
		return
	}
	closing := s.OpeningBalance.Decimal.Add(s.TotalCredits.Decimal).Sub(s.TotalDebits.Decimal)
	s.ClosingBalance = decimal.NullDecimal{Decimal: closing, Valid: true}
}

// MarkReconciled stamps the statement with the current time and actor.
// Calling it again re-stamps: last write wins, there is no guard against
// re-reconciling.
func (s *AccountStatement) MarkReconciled(actor string) {
	now := time.Now()
	s.ReconDate = &now
	s.ReconciledBy = actor
}

// IsReconciled reports whether the statement carries a reconciliation stamp.
func (s *AccountStatement) IsReconciled() bool {
	return s.ReconDate != nil
}

// Variance returns credits - debits, treating absent totals as zero.
func (s *AccountStatement) Variance() decimal.Decimal {
	credits := decimal.Zero
	if s.TotalCredits.Valid {
		credits = s.TotalCredits.Decimal
	}
	debits := decimal.Zero
	if s.TotalDebits.Valid {
		debits = s.TotalDebits.Decimal
	}
	return credits.Sub(debits)
}

// PeriodDurationInDays returns the length of the statement period in whole days.
func (s *AccountStatement) PeriodDurationInDays() int {
	return int(s.PeriodEnd.Sub(s.PeriodStart).Hours() / 24)
}

// AccountTransaction is a single posting against an account. Immutable once
// posted except for the Reconciled flag.
type AccountTransaction struct {
	ID         string
	AccountID  string
	Amount     decimal.Decimal
	Direction  TransactionDirection
	SourceType string // originating document type, e.g. TRIP_COST or PAYMENT
	SourceID   string
	Reconciled bool
	PostedAt   time.Time
}

// SignedAmount returns the transaction amount signed by direction:
// credits positive, debits negative.
func (t *AccountTransaction) SignedAmount() decimal.Decimal {
	if t.Direction == Debit {
		return t.Amount.Neg()
	}
	return t.Amount
}
