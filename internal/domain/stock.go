package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockCountStatus represents the status of a stock count.
type StockCountStatus string

const (
	StockCountStatusDraft  StockCountStatus = "DRAFT"
	StockCountStatusPosted StockCountStatus = "POSTED"
)

// StockCount is an inventory count at one location. It exclusively owns its
// lines; once POSTED the count is logically immutable and callers must not
// mutate it further.
type StockCount struct {
	ID        string
	Location  string
	Status    StockCountStatus
	CountedAt time.Time
	CreatedAt time.Time
	Lines     []*StockCountLine
}

// AddLine appends a line to the count and maintains the back-reference.
func (c *StockCount) AddLine(line *StockCountLine) {
	line.CountID = c.ID
	c.Lines = append(c.Lines, line)
}

// RemoveLine detaches the line for the given item, if present.
func (c *StockCount) RemoveLine(itemID string) {
	for i, line := range c.Lines {
		if line.ItemID == itemID {
			line.CountID = ""
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// StockCountLine compares one item's expected quantity to the observed one.
// Variance is recomputed inside the constructor and every setter so the
// invariant holds at all observation points, not only at write time.
type StockCountLine struct {
	ID         string
	CountID    string
	ItemID     string
	ItemName   string
	SystemQty  decimal.NullDecimal
	CountedQty decimal.NullDecimal
	Variance   decimal.Decimal
}

// NewStockCountLine builds a line and computes its variance.
func NewStockCountLine(id, itemID, itemName string, systemQty, countedQty decimal.NullDecimal) *StockCountLine {
	line := &StockCountLine{
		ID:         id,
		ItemID:     itemID,
		ItemName:   itemName,
		SystemQty:  systemQty,
		CountedQty: countedQty,
	}
	line.RecomputeVariance()
	return line
}

// SetSystemQty updates the expected quantity and recomputes variance.
func (l *StockCountLine) SetSystemQty(qty decimal.NullDecimal) {
	l.SystemQty = qty
	l.RecomputeVariance()
}

// SetCountedQty updates the observed quantity and recomputes variance.
func (l *StockCountLine) SetCountedQty(qty decimal.NullDecimal) {
	l.CountedQty = qty
	l.RecomputeVariance()
}

// RecomputeVariance sets variance = counted - system, treating absent
// quantities as zero.
func (l *StockCountLine) RecomputeVariance() {
	counted := decimal.Zero
	if l.CountedQty.Valid {
		counted = l.CountedQty.Decimal
	}
	system := decimal.Zero
	if l.SystemQty.Valid {
		system = l.SystemQty.Decimal
	}
	l.Variance = counted.Sub(system)
}
