package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	"github.com/Zelesto/trailers-backend-sub001/internal/service"
)

// ReconciliationHandler handles HTTP requests for reconciliation runs.
type ReconciliationHandler struct {
	reconciliationService *service.ReconciliationService
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(reconciliationService *service.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{reconciliationService: reconciliationService}
}

// RunReconciliationRequest is the HTTP request body for a reconciliation run.
type RunReconciliationRequest struct {
	StatementID string `json:"statement_id"`
	Notes       string `json:"notes"`
}

// ReconciliationResponse is the HTTP response for a reconciliation record.
type ReconciliationResponse struct {
	ID               string `json:"id"`
	AccountID        string `json:"account_id"`
	Date             string `json:"date"`
	PeriodStart      string `json:"period_start"`
	PeriodEnd        string `json:"period_end"`
	StatementBalance string `json:"statement_balance"`
	SystemBalance    string `json:"system_balance"`
	Variance         string `json:"variance"`
	Status           string `json:"status"`
	Notes            string `json:"notes,omitempty"`
}

func toReconciliationResponse(rec *domain.Reconciliation) ReconciliationResponse {
	return ReconciliationResponse{
		ID:               rec.ID,
		AccountID:        rec.AccountID,
		Date:             rec.Date.Format(time.RFC3339),
		PeriodStart:      rec.PeriodStart.Format(time.RFC3339),
		PeriodEnd:        rec.PeriodEnd.Format(time.RFC3339),
		StatementBalance: rec.StatementBalance.StringFixed(2),
		SystemBalance:    rec.SystemBalance.StringFixed(2),
		Variance:         rec.Variance.StringFixed(2),
		Status:           string(rec.Status),
		Notes:            rec.Notes,
	}
}

// Run handles POST /v1/reconciliations/run
func (h *ReconciliationHandler) Run(c *gin.Context) {
	var req RunReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	rec, err := h.reconciliationService.Run(c.Request.Context(), req.StatementID, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toReconciliationResponse(rec))
}

// GetAll handles GET /v1/reconciliations
func (h *ReconciliationHandler) GetAll(c *gin.Context) {
	recs, err := h.reconciliationService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ReconciliationResponse, 0, len(recs))
	for _, rec := range recs {
		response = append(response, toReconciliationResponse(rec))
	}

	respondJSON(c, http.StatusOK, response)
}

// GetByAccount handles GET /v1/accounts/:id/reconciliations
func (h *ReconciliationHandler) GetByAccount(c *gin.Context) {
	recs, err := h.reconciliationService.GetByAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ReconciliationResponse, 0, len(recs))
	for _, rec := range recs {
		response = append(response, toReconciliationResponse(rec))
	}

	respondJSON(c, http.StatusOK, response)
}
