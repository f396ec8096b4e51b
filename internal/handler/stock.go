package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	"github.com/Zelesto/trailers-backend-sub001/internal/service"
)

// StockCountHandler handles HTTP requests for stock counts.
type StockCountHandler struct {
	stockService *service.StockCountService
}

// NewStockCountHandler creates a new StockCountHandler.
func NewStockCountHandler(stockService *service.StockCountService) *StockCountHandler {
	return &StockCountHandler{stockService: stockService}
}

// CreateStockCountRequest is the HTTP request body for opening a count.
type CreateStockCountRequest struct {
	Location  string `json:"location"`
	CountedAt string `json:"counted_at"`
}

// UpsertLineRequest is the HTTP request body for one line. Omitted
// quantities stay absent and count as zero in the variance.
type UpsertLineRequest struct {
	ItemID     string  `json:"item_id"`
	ItemName   string  `json:"item_name"`
	SystemQty  *string `json:"system_qty"`
	CountedQty *string `json:"counted_qty"`
}

// StockCountResponse is the HTTP response for a stock count.
type StockCountResponse struct {
	ID        string              `json:"id"`
	Location  string              `json:"location"`
	Status    string              `json:"status"`
	CountedAt string              `json:"counted_at"`
	Lines     []StockLineResponse `json:"lines,omitempty"`
}

// StockLineResponse is the HTTP response for one count line.
type StockLineResponse struct {
	ItemID     string  `json:"item_id"`
	ItemName   string  `json:"item_name"`
	SystemQty  *string `json:"system_qty"`
	CountedQty *string `json:"counted_qty"`
	Variance   string  `json:"variance"`
}

func toStockLineResponse(line *domain.StockCountLine) StockLineResponse {
	return StockLineResponse{
		ItemID:     line.ItemID,
		ItemName:   line.ItemName,
		SystemQty:  nullDecimalString(line.SystemQty),
		CountedQty: nullDecimalString(line.CountedQty),
		Variance:   line.Variance.StringFixed(2),
	}
}

func toStockCountResponse(count *domain.StockCount) StockCountResponse {
	resp := StockCountResponse{
		ID:        count.ID,
		Location:  count.Location,
		Status:    string(count.Status),
		CountedAt: count.CountedAt.Format(time.RFC3339),
	}
	for _, line := range count.Lines {
		resp.Lines = append(resp.Lines, toStockLineResponse(line))
	}
	return resp
}

func parseNullDecimal(s *string) (decimal.NullDecimal, error) {
	if s == nil {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}

// Create handles POST /v1/stock-counts
func (h *StockCountHandler) Create(c *gin.Context) {
	var req CreateStockCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	var countedAt time.Time
	if req.CountedAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.CountedAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "counted_at must be RFC3339"})
			return
		}
		countedAt = parsed
	}

	count, err := h.stockService.CreateCount(c.Request.Context(), req.Location, countedAt)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toStockCountResponse(count))
}

// Get handles GET /v1/stock-counts/:id
func (h *StockCountHandler) Get(c *gin.Context) {
	count, err := h.stockService.GetCount(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toStockCountResponse(count))
}

// GetAll handles GET /v1/stock-counts
func (h *StockCountHandler) GetAll(c *gin.Context) {
	counts, err := h.stockService.GetAllCounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]StockCountResponse, 0, len(counts))
	for _, count := range counts {
		response = append(response, toStockCountResponse(count))
	}

	respondJSON(c, http.StatusOK, response)
}

// UpsertLine handles POST /v1/stock-counts/:id/lines
func (h *StockCountHandler) UpsertLine(c *gin.Context) {
	var req UpsertLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	systemQty, err := parseNullDecimal(req.SystemQty)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "system_qty must be a decimal string"})
		return
	}
	countedQty, err := parseNullDecimal(req.CountedQty)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "counted_qty must be a decimal string"})
		return
	}

	line, err := h.stockService.UpsertLine(c.Request.Context(), c.Param("id"), service.UpsertLineRequest{
		ItemID:     req.ItemID,
		ItemName:   req.ItemName,
		SystemQty:  systemQty,
		CountedQty: countedQty,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toStockLineResponse(line))
}

// RemoveLine handles DELETE /v1/stock-counts/:id/lines/:itemId
func (h *StockCountHandler) RemoveLine(c *gin.Context) {
	if err := h.stockService.RemoveLine(c.Request.Context(), c.Param("id"), c.Param("itemId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post handles POST /v1/stock-counts/:id/post
func (h *StockCountHandler) Post(c *gin.Context) {
	count, err := h.stockService.PostCount(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toStockCountResponse(count))
}
