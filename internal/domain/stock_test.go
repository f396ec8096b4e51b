package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewStockCountLine_Variance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		system  decimal.NullDecimal
		counted decimal.NullDecimal
		want    string
	}{
		{"shortage", dec("10"), dec("7"), "-3"},
		{"surplus", dec("10"), dec("12.5"), "2.5"},
		{"exact", dec("10"), dec("10"), "0"},
		{"system absent treated as zero", absent, dec("7"), "7"},
		{"counted absent treated as zero", dec("10"), absent, "-10"},
		{"both absent", absent, absent, "0"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			line := NewStockCountLine("l1", "item-1", "Diesel", tc.system, tc.counted)
			if !line.Variance.Equal(decimal.RequireFromString(tc.want)) {
				t.Errorf("Variance = %s, want %s", line.Variance, tc.want)
			}
		})
	}
}

func TestStockCountLine_SettersRecomputeVariance(t *testing.T) {
	t.Parallel()

	line := NewStockCountLine("l1", "item-1", "Diesel", dec("10"), dec("7"))

	line.SetCountedQty(dec("9"))
	if !line.Variance.Equal(decimal.RequireFromString("-1")) {
		t.Errorf("after SetCountedQty, Variance = %s, want -1", line.Variance)
	}

	line.SetSystemQty(dec("5"))
	if !line.Variance.Equal(decimal.RequireFromString("4")) {
		t.Errorf("after SetSystemQty, Variance = %s, want 4", line.Variance)
	}

	line.SetCountedQty(absent)
	if !line.Variance.Equal(decimal.RequireFromString("-5")) {
		t.Errorf("after clearing counted qty, Variance = %s, want -5", line.Variance)
	}
}

func TestStockCount_AddRemoveLine(t *testing.T) {
	t.Parallel()

	count := &StockCount{ID: "c1", Status: StockCountStatusDraft}

	line := NewStockCountLine("l1", "item-1", "Diesel", dec("10"), dec("7"))
	count.AddLine(line)

	if line.CountID != "c1" {
		t.Errorf("AddLine did not set back-reference, CountID = %q", line.CountID)
	}
	if len(count.Lines) != 1 {
		t.Fatalf("len(Lines) = %d, want 1", len(count.Lines))
	}

	count.RemoveLine("item-1")
	if len(count.Lines) != 0 {
		t.Errorf("len(Lines) = %d after remove, want 0", len(count.Lines))
	}
	if line.CountID != "" {
		t.Errorf("RemoveLine did not clear back-reference, CountID = %q", line.CountID)
	}

	// Removing a missing item is a no-op.
	count.RemoveLine("item-unknown")
}
