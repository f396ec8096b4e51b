package repository

import (
	"context"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
)

// StockCountRepository defines the persistence operations for stock counts.
// Line variance is recomputed before every write.
type StockCountRepository interface {
	// Create persists a new stock count with its lines.
	Create(ctx context.Context, count *domain.StockCount) error

	// GetByID retrieves a stock count with its lines.
	GetByID(ctx context.Context, id string) (*domain.StockCount, error)

	// GetAll retrieves recent stock counts without lines.
	GetAll(ctx context.Context) ([]*domain.StockCount, error)

	// UpdateStatus updates the status of a stock count.
	UpdateStatus(ctx context.Context, id string, status domain.StockCountStatus) error

	// UpsertLine inserts or updates a line within a count.
	UpsertLine(ctx context.Context, line *domain.StockCountLine) error

	// DeleteLine removes a line from a count.
	DeleteLine(ctx context.Context, countID, itemID string) error
}
