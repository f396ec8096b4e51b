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

// StatementService manages account statements and the transactions
// posted against them.
type StatementService struct {
	accountRepo   repository.AccountRepository
	statementRepo repository.StatementRepository
	txnRepo       repository.TransactionRepository
}

// NewStatementService creates a new StatementService.
func NewStatementService(
	accountRepo repository.AccountRepository,
	statementRepo repository.StatementRepository,
	txnRepo repository.TransactionRepository,
) *StatementService {
	return &StatementService{
		accountRepo:   accountRepo,
		statementRepo: statementRepo,
		txnRepo:       txnRepo,
	}
}

// CreateStatement opens a new statement period for an account. The opening
// balance is carried forward from the latest statement's closing balance when
// one exists; otherwise it starts absent and must be supplied later.
func (s *StatementService) CreateStatement(ctx context.Context, accountID string, periodStart, periodEnd time.Time) (*domain.AccountStatement, error) {
	if accountID == "" {
		return nil, ErrInvalidAccountID
	}
	if periodEnd.Before(periodStart) || periodEnd.Equal(periodStart) {
		return nil, ErrInvalidPeriod
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if !account.Active {
		return nil, ErrAccountInactive
	}

	statement := &domain.AccountStatement{
		ID:           uuid.New().String(),
		AccountID:    accountID,
		PeriodStart:  periodStart,
		PeriodEnd:    periodEnd,
		TotalDebits:  decimal.NullDecimal{Decimal: decimal.Zero, Valid: true},
		TotalCredits: decimal.NullDecimal{Decimal: decimal.Zero, Valid: true},
		CreatedAt:    time.Now(),
	}

	latest, err := s.statementRepo.GetLatestByAccount(ctx, accountID)
	if err != nil && err != repository.ErrNotFound {
		return nil, fmt.Errorf("failed to get latest statement: %w", err)
	}
	if latest != nil && latest.ClosingBalance.Valid {
		statement.OpeningBalance = latest.ClosingBalance
		statement.RecalculateClosingBalance()
	}

	if err := s.statementRepo.Create(ctx, statement); err != nil {
		return nil, fmt.Errorf("failed to create statement: %w", err)
	}

	return statement, nil
}

// SetOpeningBalance supplies an opening balance for a statement that started
// without one, then recalculates the closing balance.
func (s *StatementService) SetOpeningBalance(ctx context.Context, statementID string, opening decimal.Decimal) (*domain.AccountStatement, error) {
	if statementID == "" {
		return nil, ErrInvalidStatementID
	}

	statement, err := s.statementRepo.GetByID(ctx, statementID)
	if err != nil {
		return nil, fmt.Errorf("failed to get statement: %w", err)
	}

	statement.OpeningBalance = decimal.NullDecimal{Decimal: opening, Valid: true}
	statement.RecalculateClosingBalance()

	if err := s.statementRepo.Update(ctx, statement); err != nil {
		return nil, fmt.Errorf("failed to update statement: %w", err)
	}

	return statement, nil
}

// PostTransaction records a transaction against the statement's account and
// folds it into the statement totals. The closing balance is recalculated
// afterwards; if the opening balance is still absent the recalculation is a
// no-op and the closing balance stays as it was.
func (s *StatementService) PostTransaction(ctx context.Context, statementID string, amount decimal.Decimal, direction domain.TransactionDirection, sourceType, sourceID string) (*domain.AccountTransaction, error) {
	if statementID == "" {
		return nil, ErrInvalidStatementID
	}
	if amount.IsNegative() || amount.IsZero() {
		return nil, ErrInvalidAmount
	}
	if direction != domain.Debit && direction != domain.Credit {
		return nil, ErrInvalidDirection
	}

	statement, err := s.statementRepo.GetByID(ctx, statementID)
	if err != nil {
		return nil, fmt.Errorf("failed to get statement: %w", err)
	}

	txn := &domain.AccountTransaction{
		ID:         uuid.New().String(),
		AccountID:  statement.AccountID,
		Amount:     amount,
		Direction:  direction,
		SourceType: sourceType,
		SourceID:   sourceID,
		PostedAt:   time.Now(),
	}

	if err := s.txnRepo.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	switch direction {
	case domain.Debit:
		total := decimal.Zero
		if statement.TotalDebits.Valid {
			total = statement.TotalDebits.Decimal
		}
		statement.TotalDebits = decimal.NullDecimal{Decimal: total.Add(amount), Valid: true}
	case domain.Credit:
		total := decimal.Zero
		if statement.TotalCredits.Valid {
			total = statement.TotalCredits.Decimal
		}
		statement.TotalCredits = decimal.NullDecimal{Decimal: total.Add(amount), Valid: true}
	}
	statement.RecalculateClosingBalance()

	if err := s.statementRepo.Update(ctx, statement); err != nil {
		return nil, fmt.Errorf("failed to update statement totals: %w", err)
	}

	return txn, nil
}

// ReconcileStatement stamps the statement as reconciled by the given actor.
// Re-reconciling is allowed; the newer stamp replaces the older one.
func (s *StatementService) ReconcileStatement(ctx context.Context, statementID, actor string) (*domain.AccountStatement, error) {
	if statementID == "" {
		return nil, ErrInvalidStatementID
	}
	if actor == "" {
		return nil, ErrInvalidActor
	}

	statement, err := s.statementRepo.GetByID(ctx, statementID)
	if err != nil {
		return nil, fmt.Errorf("failed to get statement: %w", err)
	}

	statement.MarkReconciled(actor)

	if err := s.statementRepo.Update(ctx, statement); err != nil {
		return nil, fmt.Errorf("failed to update statement: %w", err)
	}

	return statement, nil
}

// GetStatement retrieves a statement by ID.
func (s *StatementService) GetStatement(ctx context.Context, statementID string) (*domain.AccountStatement, error) {
	if statementID == "" {
		return nil, ErrInvalidStatementID
	}
	statement, err := s.statementRepo.GetByID(ctx, statementID)
	if err != nil {
		return nil, fmt.Errorf("failed to get statement: %w", err)
	}
	return statement, nil
}

// GetStatementsByAccount lists statements for an account, newest first.
func (s *StatementService) GetStatementsByAccount(ctx context.Context, accountID string) ([]*domain.AccountStatement, error) {
	if accountID == "" {
		return nil, ErrInvalidAccountID
	}
	statements, err := s.statementRepo.GetByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get statements: %w", err)
	}
	return statements, nil
}
