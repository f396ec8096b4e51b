package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewReconciliation(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	t.Run("matched when balances agree", func(t *testing.T) {
		t.Parallel()
		rec := NewReconciliation("r1", "acct-1", start, end,
			decimal.RequireFromString("130.00"), decimal.RequireFromString("130"), "")
		if rec.Status != ReconciliationMatched {
			t.Errorf("Status = %s, want MATCHED", rec.Status)
		}
		if !rec.Variance.IsZero() {
			t.Errorf("Variance = %s, want 0", rec.Variance)
		}
	})

	t.Run("variance when balances differ", func(t *testing.T) {
		t.Parallel()
		rec := NewReconciliation("r2", "acct-1", start, end,
			decimal.RequireFromString("130"), decimal.RequireFromString("120"), "bank fee missing")
		if rec.Status != ReconciliationVariance {
			t.Errorf("Status = %s, want VARIANCE", rec.Status)
		}
		if !rec.Variance.Equal(decimal.RequireFromString("10")) {
			t.Errorf("Variance = %s, want 10", rec.Variance)
		}
		if rec.Notes != "bank fee missing" {
			t.Errorf("Notes = %q", rec.Notes)
		}
	})

	t.Run("negative variance", func(t *testing.T) {
		t.Parallel()
		rec := NewReconciliation("r3", "acct-1", start, end,
			decimal.RequireFromString("100"), decimal.RequireFromString("120"), "")
		if !rec.Variance.Equal(decimal.RequireFromString("-20")) {
			t.Errorf("Variance = %s, want -20", rec.Variance)
		}
		if rec.Status != ReconciliationVariance {
			t.Errorf("Status = %s, want VARIANCE", rec.Status)
		}
	})
}
