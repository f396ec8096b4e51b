package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	"github.com/Zelesto/trailers-backend-sub001/internal/repository"
)

// StockCountService manages inventory counts. A count is mutable while DRAFT
// and frozen once POSTED.
type StockCountService struct {
	stockRepo repository.StockCountRepository
}

// NewStockCountService creates a new StockCountService.
func NewStockCountService(stockRepo repository.StockCountRepository) *StockCountService {
	return &StockCountService{stockRepo: stockRepo}
}

// CreateCount opens a new DRAFT stock count at a location.
func (s *StockCountService) CreateCount(ctx context.Context, location string, countedAt time.Time) (*domain.StockCount, error) {
	if location == "" {
		return nil, ErrInvalidLocation
	}
	if countedAt.IsZero() {
		countedAt = time.Now()
	}

	count := &domain.StockCount{
		ID:        uuid.New().String(),
		Location:  location,
		Status:    domain.StockCountStatusDraft,
		CountedAt: countedAt,
		CreatedAt: time.Now(),
	}

	if err := s.stockRepo.Create(ctx, count); err != nil {
		return nil, fmt.Errorf("failed to create stock count: %w", err)
	}

	return count, nil
}

// UpsertLineRequest carries one item's quantities. Absent quantities are
// modelled as invalid NullDecimals and count as zero in the variance.
type UpsertLineRequest struct {
	ItemID     string
	ItemName   string
	SystemQty  decimal.NullDecimal
	CountedQty decimal.NullDecimal
}

// UpsertLine adds or replaces a line on a DRAFT count. The line variance is
// recomputed before the write.
func (s *StockCountService) UpsertLine(ctx context.Context, countID string, req UpsertLineRequest) (*domain.StockCountLine, error) {
	if countID == "" {
		return nil, ErrInvalidStockCountID
	}
	if req.ItemID == "" {
		return nil, ErrInvalidItemID
	}

	count, err := s.stockRepo.GetByID(ctx, countID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock count: %w", err)
	}
	if count.Status == domain.StockCountStatusPosted {
		return nil, ErrStockCountPosted
	}

	line := domain.NewStockCountLine(uuid.New().String(), req.ItemID, req.ItemName, req.SystemQty, req.CountedQty)
	line.CountID = count.ID

	if err := s.stockRepo.UpsertLine(ctx, line); err != nil {
		return nil, fmt.Errorf("failed to upsert line: %w", err)
	}

	return line, nil
}

// RemoveLine deletes an item's line from a DRAFT count.
func (s *StockCountService) RemoveLine(ctx context.Context, countID, itemID string) error {
	if countID == "" {
		return ErrInvalidStockCountID
	}
	if itemID == "" {
		return ErrInvalidItemID
	}

	count, err := s.stockRepo.GetByID(ctx, countID)
	if err != nil {
		return fmt.Errorf("failed to get stock count: %w", err)
	}
	if count.Status == domain.StockCountStatusPosted {
		return ErrStockCountPosted
	}

	if err := s.stockRepo.DeleteLine(ctx, countID, itemID); err != nil {
		return fmt.Errorf("failed to delete line: %w", err)
	}

	return nil
}

// PostCount freezes a DRAFT count. After posting, line mutations are refused.
func (s *StockCountService) PostCount(ctx context.Context, countID string) (*domain.StockCount, error) {
	if countID == "" {
		return nil, ErrInvalidStockCountID
	}

	count, err := s.stockRepo.GetByID(ctx, countID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock count: %w", err)
	}
	if count.Status == domain.StockCountStatusPosted {
		return nil, ErrStockCountPosted
	}

	if err := s.stockRepo.UpdateStatus(ctx, count.ID, domain.StockCountStatusPosted); err != nil {
		return nil, fmt.Errorf("failed to post stock count: %w", err)
	}
	count.Status = domain.StockCountStatusPosted

	return count, nil
}

// GetCount retrieves a stock count with its lines.
func (s *StockCountService) GetCount(ctx context.Context, countID string) (*domain.StockCount, error) {
	if countID == "" {
		return nil, ErrInvalidStockCountID
	}
	count, err := s.stockRepo.GetByID(ctx, countID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock count: %w", err)
	}
	return count, nil
}

// GetAllCounts lists recent stock counts.
func (s *StockCountService) GetAllCounts(ctx context.Context) ([]*domain.StockCount, error) {
	counts, err := s.stockRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock counts: %w", err)
	}
	return counts, nil
}
