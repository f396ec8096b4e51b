package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	"github.com/Zelesto/trailers-backend-sub001/internal/service"
)

// AccountHandler handles HTTP requests for ledger accounts.
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccountRequest is the HTTP request body for creating an account.
type CreateAccountRequest struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Number string `json:"number"`
}

// AccountResponse is the HTTP response for account data.
type AccountResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Number    string `json:"number,omitempty"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
}

func toAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		Name:      account.Name,
		Type:      string(account.Type),
		Number:    account.Number,
		Active:    account.Active,
		CreatedAt: account.CreatedAt.Format(time.RFC3339),
	}
}

// Create handles POST /v1/accounts
func (h *AccountHandler) Create(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req.Name, domain.AccountType(req.Type), req.Number)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toAccountResponse(account))
}

// GetAll handles GET /v1/accounts
func (h *AccountHandler) GetAll(c *gin.Context) {
	accounts, err := h.accountService.GetAllAccounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		response = append(response, toAccountResponse(account))
	}

	respondJSON(c, http.StatusOK, response)
}

// Get handles GET /v1/accounts/:id
func (h *AccountHandler) Get(c *gin.Context) {
	account, err := h.accountService.GetAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toAccountResponse(account))
}

// Deactivate handles POST /v1/accounts/:id/deactivate
func (h *AccountHandler) Deactivate(c *gin.Context) {
	if err := h.accountService.DeactivateAccount(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
