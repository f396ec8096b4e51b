package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	"github.com/Zelesto/trailers-backend-sub001/internal/service"
)

func newStatementFixture() (*service.StatementService, *MockAccountRepository, *MockStatementRepository, *MockTransactionRepository) {
	accountRepo := NewMockAccountRepository()
	statementRepo := NewMockStatementRepository()
	txnRepo := NewMockTransactionRepository()
	svc := service.NewStatementService(accountRepo, statementRepo, txnRepo)
	return svc, accountRepo, statementRepo, txnRepo
}

func activeAccount(id string) *domain.Account {
	return &domain.Account{
		ID:     id,
		Name:   "Rotterdam depot",
		Type:   domain.AccountTypeBank,
		Active: true,
	}
}

func TestStatement_Create_CarriesForwardClosingBalance(t *testing.T) {
	t.Parallel()

	svc, accountRepo, statementRepo, _ := newStatementFixture()
	accountRepo.AddAccount(activeAccount("acc-1"))

	statementRepo.AddStatement(&domain.AccountStatement{
		ID:             "stmt-0",
		AccountID:      "acc-1",
		PeriodStart:    time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:      time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		ClosingBalance: decimal.NullDecimal{Decimal: decimal.RequireFromString("1250.75"), Valid: true},
	})

	statement, err := svc.CreateStatement(context.Background(), "acc-1",
		time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("CreateStatement() error = %v", err)
	}

	if !statement.OpeningBalance.Valid {
		t.Fatal("opening balance not carried forward")
	}
	if !statement.OpeningBalance.Decimal.Equal(decimal.RequireFromString("1250.75")) {
		t.Errorf("opening balance = %s, want 1250.75", statement.OpeningBalance.Decimal)
	}
	// With zero totals, closing equals opening straight away.
	if !statement.ClosingBalance.Valid || !statement.ClosingBalance.Decimal.Equal(decimal.RequireFromString("1250.75")) {
		t.Errorf("closing balance = %+v, want 1250.75", statement.ClosingBalance)
	}
}

func TestStatement_Create_FirstStatementStartsWithoutOpening(t *testing.T) {
	t.Parallel()

	svc, accountRepo, _, _ := newStatementFixture()
	accountRepo.AddAccount(activeAccount("acc-1"))

	statement, err := svc.CreateStatement(context.Background(), "acc-1",
		time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("CreateStatement() error = %v", err)
	}

	if statement.OpeningBalance.Valid {
		t.Error("first statement should start with an absent opening balance")
	}
	if statement.ClosingBalance.Valid {
		t.Error("closing balance should stay absent until the opening is supplied")
	}
	if !statement.TotalDebits.Valid || !statement.TotalDebits.Decimal.IsZero() {
		t.Errorf("total debits = %+v, want zero", statement.TotalDebits)
	}
}

func TestStatement_Create_Validation(t *testing.T) {
	t.Parallel()

	svc, accountRepo, _, _ := newStatementFixture()
	accountRepo.AddAccount(activeAccount("acc-1"))
	inactive := activeAccount("acc-2")
	inactive.Active = false
	accountRepo.AddAccount(inactive)

	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	if _, err := svc.CreateStatement(context.Background(), "", start, end); !errors.Is(err, service.ErrInvalidAccountID) {
		t.Errorf("empty account: err = %v, want ErrInvalidAccountID", err)
	}
	if _, err := svc.CreateStatement(context.Background(), "acc-1", end, start); !errors.Is(err, service.ErrInvalidPeriod) {
		t.Errorf("inverted period: err = %v, want ErrInvalidPeriod", err)
	}
	if _, err := svc.CreateStatement(context.Background(), "acc-1", start, start); !errors.Is(err, service.ErrInvalidPeriod) {
		t.Errorf("empty period: err = %v, want ErrInvalidPeriod", err)
	}
	if _, err := svc.CreateStatement(context.Background(), "acc-2", start, end); !errors.Is(err, service.ErrAccountInactive) {
		t.Errorf("inactive account: err = %v, want ErrAccountInactive", err)
	}
}

func TestStatement_PostTransaction_UpdatesTotalsAndClosing(t *testing.T) {
	t.Parallel()

	svc, accountRepo, statementRepo, txnRepo := newStatementFixture()
	accountRepo.AddAccount(activeAccount("acc-1"))
	statementRepo.AddStatement(&domain.AccountStatement{
		ID:             "stmt-1",
		AccountID:      "acc-1",
		OpeningBalance: decimal.NullDecimal{Decimal: decimal.RequireFromString("100.00"), Valid: true},
		TotalDebits:    decimal.NullDecimal{Decimal: decimal.Zero, Valid: true},
		TotalCredits:   decimal.NullDecimal{Decimal: decimal.Zero, Valid: true},
	})

	if _, err := svc.PostTransaction(context.Background(), "stmt-1", decimal.RequireFromString("250.00"), domain.Credit, "payment", "pay-1"); err != nil {
		t.Fatalf("PostTransaction(credit) error = %v", err)
	}
	txn, err := svc.PostTransaction(context.Background(), "stmt-1", decimal.RequireFromString("40.50"), domain.Debit, "fuel", "rcpt-9")
	if err != nil {
		t.Fatalf("PostTransaction(debit) error = %v", err)
	}

	if txn.AccountID != "acc-1" {
		t.Errorf("transaction account = %s, want acc-1", txn.AccountID)
	}
	if txnRepo.CountTransactions() != 2 {
		t.Fatalf("transactions stored = %d, want 2", txnRepo.CountTransactions())
	}

	statement := statementRepo.GetStatement("stmt-1")
	if !statement.TotalCredits.Decimal.Equal(decimal.RequireFromString("250.00")) {
		t.Errorf("total credits = %s, want 250.00", statement.TotalCredits.Decimal)
	}
	if !statement.TotalDebits.Decimal.Equal(decimal.RequireFromString("40.50")) {
		t.Errorf("total debits = %s, want 40.50", statement.TotalDebits.Decimal)
	}
	// closing = 100 + 250 - 40.50
	if !statement.ClosingBalance.Valid || !statement.ClosingBalance.Decimal.Equal(decimal.RequireFromString("309.50")) {
		t.Errorf("closing balance = %+v, want 309.50", statement.ClosingBalance)
	}
}

func TestStatement_PostTransaction_AbsentOpeningLeavesClosingUntouched(t *testing.T) {
	t.Parallel()

	svc, _, statementRepo, _ := newStatementFixture()
	statementRepo.AddStatement(&domain.AccountStatement{
		ID:           "stmt-1",
		AccountID:    "acc-1",
		TotalDebits:  decimal.NullDecimal{Decimal: decimal.Zero, Valid: true},
		TotalCredits: decimal.NullDecimal{Decimal: decimal.Zero, Valid: true},
	})

	if _, err := svc.PostTransaction(context.Background(), "stmt-1", decimal.RequireFromString("75.00"), domain.Credit, "payment", "pay-1"); err != nil {
		t.Fatalf("PostTransaction() error = %v", err)
	}

	statement := statementRepo.GetStatement("stmt-1")
	if !statement.TotalCredits.Decimal.Equal(decimal.RequireFromString("75.00")) {
		t.Errorf("total credits = %s, want 75.00", statement.TotalCredits.Decimal)
	}
	if statement.ClosingBalance.Valid {
		t.Error("closing balance derived without an opening balance")
	}
}

func TestStatement_PostTransaction_Validation(t *testing.T) {
	t.Parallel()

	svc, _, statementRepo, _ := newStatementFixture()
	statementRepo.AddStatement(&domain.AccountStatement{ID: "stmt-1", AccountID: "acc-1"})

	if _, err := svc.PostTransaction(context.Background(), "", decimal.RequireFromString("10"), domain.Debit, "fuel", "r-1"); !errors.Is(err, service.ErrInvalidStatementID) {
		t.Errorf("empty statement: err = %v, want ErrInvalidStatementID", err)
	}
	if _, err := svc.PostTransaction(context.Background(), "stmt-1", decimal.Zero, domain.Debit, "fuel", "r-1"); !errors.Is(err, service.ErrInvalidAmount) {
		t.Errorf("zero amount: err = %v, want ErrInvalidAmount", err)
	}
	if _, err := svc.PostTransaction(context.Background(), "stmt-1", decimal.RequireFromString("-5"), domain.Debit, "fuel", "r-1"); !errors.Is(err, service.ErrInvalidAmount) {
		t.Errorf("negative amount: err = %v, want ErrInvalidAmount", err)
	}
	if _, err := svc.PostTransaction(context.Background(), "stmt-1", decimal.RequireFromString("10"), domain.TransactionDirection("SIDEWAYS"), "fuel", "r-1"); !errors.Is(err, service.ErrInvalidDirection) {
		t.Errorf("bad direction: err = %v, want ErrInvalidDirection", err)
	}
}

func TestStatement_SetOpeningBalance_RecalculatesClosing(t *testing.T) {
	t.Parallel()

	svc, _, statementRepo, _ := newStatementFixture()
	statementRepo.AddStatement(&domain.AccountStatement{
		ID:           "stmt-1",
		AccountID:    "acc-1",
		TotalDebits:  decimal.NullDecimal{Decimal: decimal.RequireFromString("30.00"), Valid: true},
		TotalCredits: decimal.NullDecimal{Decimal: decimal.RequireFromString("80.00"), Valid: true},
	})

	statement, err := svc.SetOpeningBalance(context.Background(), "stmt-1", decimal.RequireFromString("500.00"))
	if err != nil {
		t.Fatalf("SetOpeningBalance() error = %v", err)
	}

	if !statement.ClosingBalance.Valid || !statement.ClosingBalance.Decimal.Equal(decimal.RequireFromString("550.00")) {
		t.Errorf("closing balance = %+v, want 550.00", statement.ClosingBalance)
	}
}

func TestStatement_Reconcile_StampsActorAndAllowsRestamp(t *testing.T) {
	t.Parallel()

	svc, _, statementRepo, _ := newStatementFixture()
	statementRepo.AddStatement(&domain.AccountStatement{ID: "stmt-1", AccountID: "acc-1"})

	first, err := svc.ReconcileStatement(context.Background(), "stmt-1", "alice")
	if err != nil {
		t.Fatalf("ReconcileStatement() error = %v", err)
	}
	if !first.IsReconciled() || first.ReconciledBy != "alice" {
		t.Fatalf("statement not stamped by alice: %+v", first)
	}

	second, err := svc.ReconcileStatement(context.Background(), "stmt-1", "bob")
	if err != nil {
		t.Fatalf("ReconcileStatement() retry error = %v", err)
	}
	if second.ReconciledBy != "bob" {
		t.Error("later reconciliation did not replace the earlier stamp")
	}

	if _, err := svc.ReconcileStatement(context.Background(), "stmt-1", ""); !errors.Is(err, service.ErrInvalidActor) {
		t.Errorf("empty actor: err = %v, want ErrInvalidActor", err)
	}
}
