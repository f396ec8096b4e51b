package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.NullDecimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

var absent = decimal.NullDecimal{}

func TestIsBalanced(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opening  decimal.NullDecimal
		closing  decimal.NullDecimal
		debits   decimal.NullDecimal
		credits  decimal.NullDecimal
		balanced bool
	}{
		{"all present and consistent", dec("100"), dec("130"), dec("20"), dec("50"), true},
		{"all present but closing off by one", dec("100"), dec("131"), dec("20"), dec("50"), false},
		{"zero activity", dec("100"), dec("100"), dec("0"), dec("0"), true},
		{"negative closing", dec("0"), dec("-20"), dec("20"), dec("0"), true},
		{"opening absent", absent, dec("130"), dec("20"), dec("50"), false},
		{"closing absent", dec("100"), absent, dec("20"), dec("50"), false},
		{"debits absent", dec("100"), dec("130"), absent, dec("50"), false},
		{"credits absent", dec("100"), dec("130"), dec("20"), absent, false},
		{"everything absent", absent, absent, absent, absent, false},
		{"scale differences still equal", dec("100.00"), dec("130"), dec("20.000"), dec("50.0"), true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := &AccountStatement{
				OpeningBalance: tc.opening,
				ClosingBalance: tc.closing,
				TotalDebits:    tc.debits,
				TotalCredits:   tc.credits,
			}
			if got := s.IsBalanced(); got != tc.balanced {
				t.Errorf("IsBalanced() = %v, want %v", got, tc.balanced)
			}
		})
	}
}

func TestRecalculateClosingBalance(t *testing.T) {
	t.Parallel()

	s := &AccountStatement{
		OpeningBalance: dec("100"),
		TotalDebits:    dec("20"),
		TotalCredits:   dec("50"),
	}
	s.RecalculateClosingBalance()

	if !s.ClosingBalance.Valid {
		t.Fatal("closing balance not set")
	}
	if !s.ClosingBalance.Decimal.Equal(decimal.RequireFromString("130")) {
		t.Errorf("closing = %s, want 130", s.ClosingBalance.Decimal)
	}
	if !s.IsBalanced() {
		t.Error("statement not balanced after recalculation")
	}
}

func TestRecalculateClosingBalance_NoOpWhenInputAbsent(t *testing.T) {
	t.Parallel()

	// A manually-set closing balance survives recalculation while the
	// opening balance is still missing.
	s := &AccountStatement{
		ClosingBalance: dec("999"),
		TotalDebits:    dec("20"),
		TotalCredits:   dec("50"),
	}
	s.RecalculateClosingBalance()

	if !s.ClosingBalance.Valid || !s.ClosingBalance.Decimal.Equal(decimal.RequireFromString("999")) {
		t.Errorf("closing = %v, want untouched 999", s.ClosingBalance)
	}
	// Asymmetry: the no-op leaves the statement unbalanced rather than erroring.
	if s.IsBalanced() {
		t.Error("statement with absent opening reported balanced")
	}
}

func TestMarkReconciled_LastWriteWins(t *testing.T) {
	t.Parallel()

	s := &AccountStatement{}
	if s.IsReconciled() {
		t.Fatal("fresh statement reported reconciled")
	}

	s.MarkReconciled("alice")
	if !s.IsReconciled() {
		t.Fatal("statement not reconciled after MarkReconciled")
	}
	first := *s.ReconDate

	time.Sleep(5 * time.Millisecond)
	s.MarkReconciled("bob")

	if s.ReconciledBy != "bob" {
		t.Errorf("ReconciledBy = %q, want bob", s.ReconciledBy)
	}
	if !s.ReconDate.After(first) {
		t.Error("second reconciliation did not re-stamp the date")
	}
}

func TestVariance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		debits  decimal.NullDecimal
		credits decimal.NullDecimal
		want    string
	}{
		{"both present", dec("20"), dec("50"), "30"},
		{"debits exceed credits", dec("80"), dec("50"), "-30"},
		{"credits absent treated as zero", dec("20"), absent, "-20"},
		{"debits absent treated as zero", absent, dec("50"), "50"},
		{"both absent", absent, absent, "0"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := &AccountStatement{TotalDebits: tc.debits, TotalCredits: tc.credits}
			if got := s.Variance(); !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Errorf("Variance() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestPeriodDurationInDays(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	s := &AccountStatement{
		PeriodStart: start,
		PeriodEnd:   start.AddDate(0, 0, 31),
	}
	if got := s.PeriodDurationInDays(); got != 31 {
		t.Errorf("PeriodDurationInDays() = %d, want 31", got)
	}
}

func TestSignedAmount(t *testing.T) {
	t.Parallel()

	amount := decimal.RequireFromString("42.50")

	credit := &AccountTransaction{Amount: amount, Direction: Credit}
	if got := credit.SignedAmount(); !got.Equal(amount) {
		t.Errorf("credit SignedAmount() = %s, want %s", got, amount)
	}

	debit := &AccountTransaction{Amount: amount, Direction: Debit}
	if got := debit.SignedAmount(); !got.Equal(amount.Neg()) {
		t.Errorf("debit SignedAmount() = %s, want %s", got, amount.Neg())
	}
}
