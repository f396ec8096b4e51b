package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	"github.com/Zelesto/trailers-backend-sub001/internal/repository"
)

// AccountService manages the chart of ledger accounts.
type AccountService struct {
	accountRepo repository.AccountRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo repository.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// CreateAccount registers a new active account.
func (s *AccountService) CreateAccount(ctx context.Context, name string, accountType domain.AccountType, number string) (*domain.Account, error) {
	if name == "" {
		return nil, ErrInvalidAccountName
	}

	account := &domain.Account{
		ID:        uuid.New().String(),
		Name:      name,
		Type:      accountType,
		Number:    number,
		Active:    true,
		CreatedAt: time.Now(),
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (s *AccountService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	if accountID == "" {
		return nil, ErrInvalidAccountID
	}
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// GetAllAccounts lists all accounts.
func (s *AccountService) GetAllAccounts(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := s.accountRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}
	return accounts, nil
}

// DeactivateAccount soft-deletes an account. Existing statements and
// transactions are untouched; new statements cannot be opened against it.
func (s *AccountService) DeactivateAccount(ctx context.Context, accountID string) error {
	if accountID == "" {
		return ErrInvalidAccountID
	}
	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		return fmt.Errorf("failed to get account: %w", err)
	}
	if err := s.accountRepo.SetActive(ctx, accountID, false); err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	return nil
}
