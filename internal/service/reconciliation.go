package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	"github.com/Zelesto/trailers-backend-sub001/internal/repository"
)

// ReconciliationService compares statement balances against an
// independently computed system balance and records the outcome as an
// append-only audit trail.
type ReconciliationService struct {
	statementRepo       repository.StatementRepository
	txnRepo             repository.TransactionRepository
	reconRepo           repository.ReconciliationRepository
	notificationService *NotificationService
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(
	statementRepo repository.StatementRepository,
	txnRepo repository.TransactionRepository,
	reconRepo repository.ReconciliationRepository,
	notificationService *NotificationService,
) *ReconciliationService {
	return &ReconciliationService{
		statementRepo:       statementRepo,
		txnRepo:             txnRepo,
		reconRepo:           reconRepo,
		notificationService: notificationService,
	}
}

// Run reconciles one statement. The statement's closing balance is taken as
// the reported figure; the system balance is recomputed from the posted
// transactions in the period, not from the statement totals, so that drift
// between the two surfaces as a variance. Transactions covered by the run
// are flagged reconciled.
func (s *ReconciliationService) Run(ctx context.Context, statementID, notes string) (*domain.Reconciliation, error) {
	if statementID == "" {
		return nil, ErrInvalidStatementID
	}

	statement, err := s.statementRepo.GetByID(ctx, statementID)
	if err != nil {
		return nil, fmt.Errorf("failed to get statement: %w", err)
	}

	statementBalance := decimal.Zero
	if statement.ClosingBalance.Valid {
		statementBalance = statement.ClosingBalance.Decimal
	}

	txns, err := s.txnRepo.GetByAccountAndPeriod(ctx, statement.AccountID, statement.PeriodStart, statement.PeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	systemBalance := decimal.Zero
	if statement.OpeningBalance.Valid {
		systemBalance = statement.OpeningBalance.Decimal
	}
	txnIDs := make([]string, 0, len(txns))
	for _, txn := range txns {
		systemBalance = systemBalance.Add(txn.SignedAmount())
		txnIDs = append(txnIDs, txn.ID)
	}

	rec := domain.NewReconciliation(
		uuid.New().String(),
		statement.AccountID,
		statement.PeriodStart,
		statement.PeriodEnd,
		statementBalance,
		systemBalance,
		notes,
	)

	if err := s.reconRepo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create reconciliation record: %w", err)
	}

	if len(txnIDs) > 0 {
		if err := s.txnRepo.MarkReconciled(ctx, txnIDs); err != nil {
			return nil, fmt.Errorf("failed to mark transactions reconciled: %w", err)
		}
	}

	if rec.Status == domain.ReconciliationVariance && s.notificationService != nil {
		_ = s.notificationService.NotifyVarianceDetected(ctx, rec)
	}

	return rec, nil
}

// GetAll lists recent reconciliation records.
func (s *ReconciliationService) GetAll(ctx context.Context) ([]*domain.Reconciliation, error) {
	recs, err := s.reconRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get reconciliations: %w", err)
	}
	return recs, nil
}

// GetByAccount lists reconciliation records for one account.
func (s *ReconciliationService) GetByAccount(ctx context.Context, accountID string) ([]*domain.Reconciliation, error) {
	if accountID == "" {
		return nil, ErrInvalidAccountID
	}
	recs, err := s.reconRepo.GetByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reconciliations: %w", err)
	}
	return recs, nil
}
