package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	"github.com/Zelesto/trailers-backend-sub001/internal/service"
)

func qty(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func TestStockCount_CreateAndUpsertLines(t *testing.T) {
	t.Parallel()

	stockRepo := NewMockStockCountRepository()
	svc := service.NewStockCountService(stockRepo)

	count, err := svc.CreateCount(context.Background(), "utrecht-warehouse", time.Now())
	if err != nil {
		t.Fatalf("CreateCount() error = %v", err)
	}
	if count.Status != domain.StockCountStatusDraft {
		t.Fatalf("status = %s, want DRAFT", count.Status)
	}

	line, err := svc.UpsertLine(context.Background(), count.ID, service.UpsertLineRequest{
		ItemID:     "item-diesel",
		ItemName:   "Diesel (litres)",
		SystemQty:  qty("1200"),
		CountedQty: qty("1180"),
	})
	if err != nil {
		t.Fatalf("UpsertLine() error = %v", err)
	}

	if !line.Variance.Equal(decimal.RequireFromString("-20")) {
		t.Errorf("variance = %s, want -20 (counted - system)", line.Variance)
	}
	if line.CountID != count.ID {
		t.Errorf("line count ID = %s, want %s", line.CountID, count.ID)
	}
}

func TestStockCount_UpsertLine_AbsentQuantitiesCountAsZero(t *testing.T) {
	t.Parallel()

	stockRepo := NewMockStockCountRepository()
	svc := service.NewStockCountService(stockRepo)
	count, _ := svc.CreateCount(context.Background(), "utrecht-warehouse", time.Now())

	line, err := svc.UpsertLine(context.Background(), count.ID, service.UpsertLineRequest{
		ItemID:     "item-adblue",
		ItemName:   "AdBlue (litres)",
		CountedQty: qty("45"),
	})
	if err != nil {
		t.Fatalf("UpsertLine() error = %v", err)
	}

	// Absent system qty is treated as zero.
	if !line.Variance.Equal(decimal.RequireFromString("45")) {
		t.Errorf("variance = %s, want 45", line.Variance)
	}
}

func TestStockCount_Post_FreezesCount(t *testing.T) {
	t.Parallel()

	stockRepo := NewMockStockCountRepository()
	svc := service.NewStockCountService(stockRepo)
	count, _ := svc.CreateCount(context.Background(), "utrecht-warehouse", time.Now())
	_, _ = svc.UpsertLine(context.Background(), count.ID, service.UpsertLineRequest{
		ItemID:     "item-diesel",
		ItemName:   "Diesel (litres)",
		SystemQty:  qty("1200"),
		CountedQty: qty("1200"),
	})

	posted, err := svc.PostCount(context.Background(), count.ID)
	if err != nil {
		t.Fatalf("PostCount() error = %v", err)
	}
	if posted.Status != domain.StockCountStatusPosted {
		t.Fatalf("status = %s, want POSTED", posted.Status)
	}

	if _, err := svc.UpsertLine(context.Background(), count.ID, service.UpsertLineRequest{
		ItemID:     "item-diesel",
		ItemName:   "Diesel (litres)",
		SystemQty:  qty("900"),
		CountedQty: qty("900"),
	}); !errors.Is(err, service.ErrStockCountPosted) {
		t.Errorf("upsert after post: err = %v, want ErrStockCountPosted", err)
	}
	if err := svc.RemoveLine(context.Background(), count.ID, "item-diesel"); !errors.Is(err, service.ErrStockCountPosted) {
		t.Errorf("remove after post: err = %v, want ErrStockCountPosted", err)
	}
	if _, err := svc.PostCount(context.Background(), count.ID); !errors.Is(err, service.ErrStockCountPosted) {
		t.Errorf("re-post: err = %v, want ErrStockCountPosted", err)
	}
}

func TestStockCount_Validation(t *testing.T) {
	t.Parallel()

	svc := service.NewStockCountService(NewMockStockCountRepository())

	if _, err := svc.CreateCount(context.Background(), "", time.Now()); !errors.Is(err, service.ErrInvalidLocation) {
		t.Errorf("empty location: err = %v, want ErrInvalidLocation", err)
	}
	if _, err := svc.UpsertLine(context.Background(), "", service.UpsertLineRequest{ItemID: "item-1"}); !errors.Is(err, service.ErrInvalidStockCountID) {
		t.Errorf("empty count ID: err = %v, want ErrInvalidStockCountID", err)
	}
	if _, err := svc.UpsertLine(context.Background(), "count-1", service.UpsertLineRequest{}); !errors.Is(err, service.ErrInvalidItemID) {
		t.Errorf("empty item ID: err = %v, want ErrInvalidItemID", err)
	}
}
