package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	"github.com/Zelesto/trailers-backend-sub001/internal/service"
)

// PaymentHandler handles HTTP requests for payments.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CapturePaymentRequest is the HTTP request body for capturing a payment.
type CapturePaymentRequest struct {
	Reference string `json:"reference"`
	PayerName string `json:"payer_name"`
	Amount    string `json:"amount"`
	Method    string `json:"method"`
	PaidAt    string `json:"paid_at"`
}

// AllocationLine is one allocation in an allocate request.
type AllocationLine struct {
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	Amount     string `json:"amount"`
}

// AllocatePaymentRequest is the HTTP request body for allocating a payment.
type AllocatePaymentRequest struct {
	Allocations []AllocationLine `json:"allocations"`
}

// PostPaymentRequest is the HTTP request body for posting a payment.
type PostPaymentRequest struct {
	StatementID string `json:"statement_id"`
}

// PaymentResponse is the HTTP response for payment data.
type PaymentResponse struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
	PayerName string `json:"payer_name,omitempty"`
	Amount    string `json:"amount"`
	Method    string `json:"method"`
	Status    string `json:"status"`
	PaidAt    string `json:"paid_at"`
}

// AllocationResponse is the HTTP response for one allocation.
type AllocationResponse struct {
	ID         string `json:"id"`
	PaymentID  string `json:"payment_id"`
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	Amount     string `json:"amount"`
}

func toPaymentResponse(payment *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        payment.ID,
		Reference: payment.Reference,
		PayerName: payment.PayerName,
		Amount:    payment.Amount.StringFixed(2),
		Method:    string(payment.Method),
		Status:    string(payment.Status),
		PaidAt:    payment.PaidAt.Format(time.RFC3339),
	}
}

// Capture handles POST /v1/payments
func (h *PaymentHandler) Capture(c *gin.Context) {
	var req CapturePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "amount must be a decimal string"})
		return
	}

	var paidAt time.Time
	if req.PaidAt != "" {
		paidAt, err = time.Parse(time.RFC3339, req.PaidAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "paid_at must be RFC3339"})
			return
		}
	}

	payment, err := h.paymentService.CapturePayment(c.Request.Context(), service.CapturePaymentRequest{
		Reference: req.Reference,
		PayerName: req.PayerName,
		Amount:    amount,
		Method:    domain.PaymentMethod(req.Method),
		PaidAt:    paidAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toPaymentResponse(payment))
}

// Allocate handles POST /v1/payments/:id/allocate
func (h *PaymentHandler) Allocate(c *gin.Context) {
	var req AllocatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	allocations := make([]service.AllocationRequest, 0, len(req.Allocations))
	for _, line := range req.Allocations {
		amount, err := decimal.NewFromString(line.Amount)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "allocation amount must be a decimal string"})
			return
		}
		allocations = append(allocations, service.AllocationRequest{
			TargetType: line.TargetType,
			TargetID:   line.TargetID,
			Amount:     amount,
		})
	}

	payment, err := h.paymentService.AllocatePayment(c.Request.Context(), c.Param("id"), allocations)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toPaymentResponse(payment))
}

// Post handles POST /v1/payments/:id/post
func (h *PaymentHandler) Post(c *gin.Context) {
	var req PostPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	payment, err := h.paymentService.PostPayment(c.Request.Context(), c.Param("id"), req.StatementID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toPaymentResponse(payment))
}

// Get handles GET /v1/payments/:id
func (h *PaymentHandler) Get(c *gin.Context) {
	payment, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toPaymentResponse(payment))
}

// GetAllocations handles GET /v1/payments/:id/allocations
func (h *PaymentHandler) GetAllocations(c *gin.Context) {
	allocations, err := h.paymentService.GetAllocations(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]AllocationResponse, 0, len(allocations))
	for _, allocation := range allocations {
		response = append(response, AllocationResponse{
			ID:         allocation.ID,
			PaymentID:  allocation.PaymentID,
			TargetType: allocation.TargetType,
			TargetID:   allocation.TargetID,
			Amount:     allocation.Amount.StringFixed(2),
		})
	}

	respondJSON(c, http.StatusOK, response)
}
