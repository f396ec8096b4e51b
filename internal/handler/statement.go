package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	"github.com/Zelesto/trailers-backend-sub001/internal/service"
)

// StatementHandler handles HTTP requests for account statements.
type StatementHandler struct {
	statementService *service.StatementService
}

// NewStatementHandler creates a new StatementHandler.
func NewStatementHandler(statementService *service.StatementService) *StatementHandler {
	return &StatementHandler{statementService: statementService}
}

// CreateStatementRequest is the HTTP request body for opening a statement.
type CreateStatementRequest struct {
	AccountID   string `json:"account_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

// SetOpeningBalanceRequest is the HTTP request body for supplying an
// opening balance.
type SetOpeningBalanceRequest struct {
	OpeningBalance string `json:"opening_balance"`
}

// PostTransactionRequest is the HTTP request body for posting a transaction.
type PostTransactionRequest struct {
	Amount     string `json:"amount"`
	Direction  string `json:"direction"`
	SourceType string `json:"source_type"`
	SourceID   string `json:"source_id"`
}

// ReconcileStatementRequest is the HTTP request body for reconciling a statement.
type ReconcileStatementRequest struct {
	Actor string `json:"actor"`
}

// StatementResponse is the HTTP response for statement data. Absent balance
// fields are rendered as null.
type StatementResponse struct {
	ID             string  `json:"id"`
	AccountID      string  `json:"account_id"`
	PeriodStart    string  `json:"period_start"`
	PeriodEnd      string  `json:"period_end"`
	OpeningBalance *string `json:"opening_balance"`
	ClosingBalance *string `json:"closing_balance"`
	TotalDebits    *string `json:"total_debits"`
	TotalCredits   *string `json:"total_credits"`
	Balanced       bool    `json:"balanced"`
	Reconciled     bool    `json:"reconciled"`
	ReconDate      string  `json:"recon_date,omitempty"`
	ReconciledBy   string  `json:"reconciled_by,omitempty"`
}

// TransactionResponse is the HTTP response for a posted transaction.
type TransactionResponse struct {
	ID         string `json:"id"`
	AccountID  string `json:"account_id"`
	Amount     string `json:"amount"`
	Direction  string `json:"direction"`
	SourceType string `json:"source_type,omitempty"`
	SourceID   string `json:"source_id,omitempty"`
	Reconciled bool   `json:"reconciled"`
	PostedAt   string `json:"posted_at"`
}

func nullDecimalString(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.StringFixed(2)
	return &s
}

func toStatementResponse(statement *domain.AccountStatement) StatementResponse {
	resp := StatementResponse{
		ID:             statement.ID,
		AccountID:      statement.AccountID,
		PeriodStart:    statement.PeriodStart.Format(time.RFC3339),
		PeriodEnd:      statement.PeriodEnd.Format(time.RFC3339),
		OpeningBalance: nullDecimalString(statement.OpeningBalance),
		ClosingBalance: nullDecimalString(statement.ClosingBalance),
		TotalDebits:    nullDecimalString(statement.TotalDebits),
		TotalCredits:   nullDecimalString(statement.TotalCredits),
		Balanced:       statement.IsBalanced(),
		Reconciled:     statement.IsReconciled(),
		ReconciledBy:   statement.ReconciledBy,
	}
	if statement.ReconDate != nil {
		resp.ReconDate = statement.ReconDate.Format(time.RFC3339)
	}
	return resp
}

// Create handles POST /v1/statements
func (h *StatementHandler) Create(c *gin.Context) {
	var req CreateStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	periodStart, err := time.Parse(time.RFC3339, req.PeriodStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "period_start must be RFC3339"})
		return
	}
	periodEnd, err := time.Parse(time.RFC3339, req.PeriodEnd)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "period_end must be RFC3339"})
		return
	}

	statement, err := h.statementService.CreateStatement(c.Request.Context(), req.AccountID, periodStart, periodEnd)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toStatementResponse(statement))
}

// Get handles GET /v1/statements/:id
func (h *StatementHandler) Get(c *gin.Context) {
	statement, err := h.statementService.GetStatement(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toStatementResponse(statement))
}

// GetByAccount handles GET /v1/accounts/:id/statements
func (h *StatementHandler) GetByAccount(c *gin.Context) {
	statements, err := h.statementService.GetStatementsByAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]StatementResponse, 0, len(statements))
	for _, statement := range statements {
		response = append(response, toStatementResponse(statement))
	}

	respondJSON(c, http.StatusOK, response)
}

// SetOpeningBalance handles POST /v1/statements/:id/opening-balance
func (h *StatementHandler) SetOpeningBalance(c *gin.Context) {
	var req SetOpeningBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	opening, err := decimal.NewFromString(req.OpeningBalance)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "opening_balance must be a decimal string"})
		return
	}

	statement, err := h.statementService.SetOpeningBalance(c.Request.Context(), c.Param("id"), opening)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toStatementResponse(statement))
}

// PostTransaction handles POST /v1/statements/:id/transactions
func (h *StatementHandler) PostTransaction(c *gin.Context) {
	var req PostTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "amount must be a decimal string"})
		return
	}

	txn, err := h.statementService.PostTransaction(c.Request.Context(), c.Param("id"), amount, domain.TransactionDirection(req.Direction), req.SourceType, req.SourceID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, TransactionResponse{
		ID:         txn.ID,
		AccountID:  txn.AccountID,
		Amount:     txn.Amount.StringFixed(2),
		Direction:  string(txn.Direction),
		SourceType: txn.SourceType,
		SourceID:   txn.SourceID,
		Reconciled: txn.Reconciled,
		PostedAt:   txn.PostedAt.Format(time.RFC3339),
	})
}

// Reconcile handles POST /v1/statements/:id/reconcile
func (h *StatementHandler) Reconcile(c *gin.Context) {
	var req ReconcileStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	statement, err := h.statementService.ReconcileStatement(c.Request.Context(), c.Param("id"), req.Actor)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toStatementResponse(statement))
}
