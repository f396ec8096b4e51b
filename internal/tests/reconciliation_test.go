package tests

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	"github.com/Zelesto/trailers-backend-sub001/internal/service"
)

func newReconciliationFixture() (*service.ReconciliationService, *MockStatementRepository, *MockTransactionRepository, *MockReconciliationRepository) {
	statementRepo := NewMockStatementRepository()
	txnRepo := NewMockTransactionRepository()
	reconRepo := NewMockReconciliationRepository()
	svc := service.NewReconciliationService(statementRepo, txnRepo, reconRepo, nil)
	return svc, statementRepo, txnRepo, reconRepo
}

var (
	periodStart = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	periodEnd   = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
)

func reconStatement(closing string) *domain.AccountStatement {
	return &domain.AccountStatement{
		ID:             "stmt-1",
		AccountID:      "acc-1",
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		OpeningBalance: decimal.NullDecimal{Decimal: decimal.RequireFromString("100.00"), Valid: true},
		ClosingBalance: decimal.NullDecimal{Decimal: decimal.RequireFromString(closing), Valid: true},
	}
}

func postedTxn(id, amount string, direction domain.TransactionDirection) *domain.AccountTransaction {
	return &domain.AccountTransaction{
		ID:        id,
		AccountID: "acc-1",
		Amount:    decimal.RequireFromString(amount),
		Direction: direction,
		PostedAt:  periodStart.Add(24 * time.Hour),
	}
}

func TestReconciliation_Run_MatchedWhenBalancesAgree(t *testing.T) {
	t.Parallel()

	svc, statementRepo, txnRepo, reconRepo := newReconciliationFixture()
	// system balance: 100 + 250 - 40 = 310
	statementRepo.AddStatement(reconStatement("310.00"))
	txnRepo.AddTransaction(postedTxn("txn-1", "250.00", domain.Credit))
	txnRepo.AddTransaction(postedTxn("txn-2", "40.00", domain.Debit))

	rec, err := svc.Run(context.Background(), "stmt-1", "monthly close")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if rec.Status != domain.ReconciliationMatched {
		t.Errorf("status = %s, want MATCHED", rec.Status)
	}
	if !rec.Variance.IsZero() {
		t.Errorf("variance = %s, want 0", rec.Variance)
	}
	if reconRepo.CountRecords() != 1 {
		t.Errorf("records stored = %d, want 1", reconRepo.CountRecords())
	}
	if txnRepo.ReconciledCount() != 2 {
		t.Errorf("reconciled transactions = %d, want 2", txnRepo.ReconciledCount())
	}
}

func TestReconciliation_Run_VarianceWhenBalancesDiverge(t *testing.T) {
	t.Parallel()

	svc, statementRepo, txnRepo, _ := newReconciliationFixture()
	// system balance 310, statement claims 325 -> variance 15
	statementRepo.AddStatement(reconStatement("325.00"))
	txnRepo.AddTransaction(postedTxn("txn-1", "250.00", domain.Credit))
	txnRepo.AddTransaction(postedTxn("txn-2", "40.00", domain.Debit))

	rec, err := svc.Run(context.Background(), "stmt-1", "")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if rec.Status != domain.ReconciliationVariance {
		t.Errorf("status = %s, want VARIANCE", rec.Status)
	}
	if !rec.Variance.Equal(decimal.RequireFromString("15.00")) {
		t.Errorf("variance = %s, want 15.00", rec.Variance)
	}
}

func TestReconciliation_Run_IgnoresTransactionsOutsidePeriod(t *testing.T) {
	t.Parallel()

	svc, statementRepo, txnRepo, _ := newReconciliationFixture()
	statementRepo.AddStatement(reconStatement("100.00"))

	stray := postedTxn("txn-out", "999.00", domain.Credit)
	stray.PostedAt = periodEnd.Add(48 * time.Hour)
	txnRepo.AddTransaction(stray)

	rec, err := svc.Run(context.Background(), "stmt-1", "")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// No in-period transactions: system balance is just the opening balance.
	if rec.Status != domain.ReconciliationMatched {
		t.Errorf("status = %s, want MATCHED", rec.Status)
	}
	if txnRepo.ReconciledCount() != 0 {
		t.Error("out-of-period transaction was marked reconciled")
	}
}

func TestReconciliation_Run_AbsentClosingTreatedAsZero(t *testing.T) {
	t.Parallel()

	svc, statementRepo, txnRepo, _ := newReconciliationFixture()
	statement := reconStatement("0")
	statement.OpeningBalance = decimal.NullDecimal{}
	statement.ClosingBalance = decimal.NullDecimal{}
	statementRepo.AddStatement(statement)
	txnRepo.AddTransaction(postedTxn("txn-1", "50.00", domain.Credit))

	rec, err := svc.Run(context.Background(), "stmt-1", "")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// statement balance 0, system balance 50 -> variance -50
	if rec.Status != domain.ReconciliationVariance {
		t.Errorf("status = %s, want VARIANCE", rec.Status)
	}
	if !rec.Variance.Equal(decimal.RequireFromString("-50.00")) {
		t.Errorf("variance = %s, want -50.00", rec.Variance)
	}
}

func TestReconciliation_Run_AppendOnly(t *testing.T) {
	t.Parallel()

	svc, statementRepo, txnRepo, reconRepo := newReconciliationFixture()
	statementRepo.AddStatement(reconStatement("310.00"))
	txnRepo.AddTransaction(postedTxn("txn-1", "250.00", domain.Credit))
	txnRepo.AddTransaction(postedTxn("txn-2", "40.00", domain.Debit))

	for i := 0; i < 3; i++ {
		if _, err := svc.Run(context.Background(), "stmt-1", ""); err != nil {
			t.Fatalf("Run() #%d error = %v", i+1, err)
		}
	}

	if reconRepo.CountRecords() != 3 {
		t.Errorf("records stored = %d, want 3 (one per run)", reconRepo.CountRecords())
	}
}
