package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	"github.com/Zelesto/trailers-backend-sub001/internal/service"
)

func newPaymentFixture() (*service.PaymentService, *MockPaymentRepository, *MockStatementRepository, *MockTransactionRepository) {
	paymentRepo := NewMockPaymentRepository()
	accountRepo := NewMockAccountRepository()
	statementRepo := NewMockStatementRepository()
	txnRepo := NewMockTransactionRepository()
	statementService := service.NewStatementService(accountRepo, statementRepo, txnRepo)
	svc := service.NewPaymentService(paymentRepo, statementService, nil)
	return svc, paymentRepo, statementRepo, txnRepo
}

func captureRequest(reference string) service.CapturePaymentRequest {
	return service.CapturePaymentRequest{
		Reference: reference,
		PayerName: "Jansen Transport BV",
		Amount:    decimal.RequireFromString("480.00"),
		Method:    domain.PaymentMethodTransfer,
	}
}

func TestPayment_Capture_CreatesCapturedPayment(t *testing.T) {
	t.Parallel()

	svc, paymentRepo, _, _ := newPaymentFixture()

	payment, err := svc.CapturePayment(context.Background(), captureRequest("INV-2026-001"))
	if err != nil {
		t.Fatalf("CapturePayment() error = %v", err)
	}

	if payment.Status != domain.PaymentStatusCaptured {
		t.Errorf("status = %s, want CAPTURED", payment.Status)
	}
	if payment.IdempotencyKey != "payment:INV-2026-001" {
		t.Errorf("idempotency key = %q", payment.IdempotencyKey)
	}
	if paymentRepo.CountPayments() != 1 {
		t.Errorf("payments stored = %d, want 1", paymentRepo.CountPayments())
	}
}

func TestPayment_Capture_SameReferenceIsIdempotent(t *testing.T) {
	t.Parallel()

	svc, paymentRepo, _, _ := newPaymentFixture()

	first, err := svc.CapturePayment(context.Background(), captureRequest("INV-2026-001"))
	if err != nil {
		t.Fatalf("first CapturePayment() error = %v", err)
	}
	second, err := svc.CapturePayment(context.Background(), captureRequest("INV-2026-001"))
	if err != nil {
		t.Fatalf("second CapturePayment() error = %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("replay created a new payment: %s != %s", second.ID, first.ID)
	}
	if paymentRepo.CountPayments() != 1 {
		t.Errorf("payments stored = %d, want 1", paymentRepo.CountPayments())
	}
}

func TestPayment_Capture_Validation(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newPaymentFixture()

	req := captureRequest("")
	if _, err := svc.CapturePayment(context.Background(), req); !errors.Is(err, service.ErrInvalidPaymentID) {
		t.Errorf("empty reference: err = %v, want ErrInvalidPaymentID", err)
	}

	req = captureRequest("INV-1")
	req.Amount = decimal.Zero
	if _, err := svc.CapturePayment(context.Background(), req); !errors.Is(err, service.ErrInvalidAmount) {
		t.Errorf("zero amount: err = %v, want ErrInvalidAmount", err)
	}
}

func TestPayment_Allocate_MovesToAllocated(t *testing.T) {
	t.Parallel()

	svc, paymentRepo, _, _ := newPaymentFixture()
	captured, _ := svc.CapturePayment(context.Background(), captureRequest("INV-1"))

	payment, err := svc.AllocatePayment(context.Background(), captured.ID, []service.AllocationRequest{
		{TargetType: "TRIP", TargetID: "trip-1", Amount: decimal.RequireFromString("300.00")},
		{TargetType: "TRIP", TargetID: "trip-2", Amount: decimal.RequireFromString("180.00")},
	})
	if err != nil {
		t.Fatalf("AllocatePayment() error = %v", err)
	}

	if payment.Status != domain.PaymentStatusAllocated {
		t.Errorf("status = %s, want ALLOCATED", payment.Status)
	}
	allocations, _ := paymentRepo.GetAllocations(context.Background(), captured.ID)
	if len(allocations) != 2 {
		t.Errorf("allocations stored = %d, want 2", len(allocations))
	}
}

func TestPayment_Allocate_SumNotCheckedAgainstPayment(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newPaymentFixture()
	captured, _ := svc.CapturePayment(context.Background(), captureRequest("INV-1"))

	// Over-allocation (600 against a 480 payment) is accepted; the gap
	// surfaces later as a reconciliation variance.
	_, err := svc.AllocatePayment(context.Background(), captured.ID, []service.AllocationRequest{
		{TargetType: "TRIP", TargetID: "trip-1", Amount: decimal.RequireFromString("600.00")},
	})
	if err != nil {
		t.Fatalf("AllocatePayment() over-allocation error = %v", err)
	}
}

func TestPayment_Allocate_Guards(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newPaymentFixture()
	captured, _ := svc.CapturePayment(context.Background(), captureRequest("INV-1"))

	if _, err := svc.AllocatePayment(context.Background(), captured.ID, nil); !errors.Is(err, service.ErrNoAllocations) {
		t.Errorf("no allocations: err = %v, want ErrNoAllocations", err)
	}
	if _, err := svc.AllocatePayment(context.Background(), captured.ID, []service.AllocationRequest{
		{TargetType: "TRIP", TargetID: "trip-1", Amount: decimal.Zero},
	}); !errors.Is(err, service.ErrInvalidAmount) {
		t.Errorf("zero allocation: err = %v, want ErrInvalidAmount", err)
	}

	// Allocating twice: the payment is no longer CAPTURED.
	if _, err := svc.AllocatePayment(context.Background(), captured.ID, []service.AllocationRequest{
		{TargetType: "TRIP", TargetID: "trip-1", Amount: decimal.RequireFromString("480.00")},
	}); err != nil {
		t.Fatalf("first AllocatePayment() error = %v", err)
	}
	if _, err := svc.AllocatePayment(context.Background(), captured.ID, []service.AllocationRequest{
		{TargetType: "TRIP", TargetID: "trip-1", Amount: decimal.RequireFromString("480.00")},
	}); !errors.Is(err, service.ErrPaymentNotCaptured) {
		t.Errorf("re-allocate: err = %v, want ErrPaymentNotCaptured", err)
	}
}

func TestPayment_Post_WritesCreditPerAllocation(t *testing.T) {
	t.Parallel()

	svc, paymentRepo, statementRepo, txnRepo := newPaymentFixture()
	statementRepo.AddStatement(&domain.AccountStatement{
		ID:             "stmt-1",
		AccountID:      "acc-1",
		OpeningBalance: decimal.NullDecimal{Decimal: decimal.Zero, Valid: true},
		TotalDebits:    decimal.NullDecimal{Decimal: decimal.Zero, Valid: true},
		TotalCredits:   decimal.NullDecimal{Decimal: decimal.Zero, Valid: true},
	})

	captured, _ := svc.CapturePayment(context.Background(), captureRequest("INV-1"))
	_, _ = svc.AllocatePayment(context.Background(), captured.ID, []service.AllocationRequest{
		{TargetType: "TRIP", TargetID: "trip-1", Amount: decimal.RequireFromString("300.00")},
		{TargetType: "TRIP", TargetID: "trip-2", Amount: decimal.RequireFromString("180.00")},
	})

	payment, err := svc.PostPayment(context.Background(), captured.ID, "stmt-1")
	if err != nil {
		t.Fatalf("PostPayment() error = %v", err)
	}

	if payment.Status != domain.PaymentStatusPosted {
		t.Errorf("status = %s, want POSTED", payment.Status)
	}
	if txnRepo.CountTransactions() != 2 {
		t.Errorf("ledger transactions = %d, want 2", txnRepo.CountTransactions())
	}

	statement := statementRepo.GetStatement("stmt-1")
	if !statement.TotalCredits.Decimal.Equal(decimal.RequireFromString("480.00")) {
		t.Errorf("total credits = %s, want 480.00", statement.TotalCredits.Decimal)
	}
	if stored := paymentRepo.GetPayment(captured.ID); stored.Status != domain.PaymentStatusPosted {
		t.Errorf("stored status = %s, want POSTED", stored.Status)
	}
}

func TestPayment_Post_RequiresAllocatedState(t *testing.T) {
	t.Parallel()

	svc, _, statementRepo, _ := newPaymentFixture()
	statementRepo.AddStatement(&domain.AccountStatement{ID: "stmt-1", AccountID: "acc-1"})

	captured, _ := svc.CapturePayment(context.Background(), captureRequest("INV-1"))

	if _, err := svc.PostPayment(context.Background(), captured.ID, "stmt-1"); !errors.Is(err, service.ErrPaymentNotAllocated) {
		t.Errorf("post from CAPTURED: err = %v, want ErrPaymentNotAllocated", err)
	}

	_, _ = svc.AllocatePayment(context.Background(), captured.ID, []service.AllocationRequest{
		{TargetType: "TRIP", TargetID: "trip-1", Amount: decimal.RequireFromString("480.00")},
	})
	if _, err := svc.PostPayment(context.Background(), captured.ID, "stmt-1"); err != nil {
		t.Fatalf("PostPayment() error = %v", err)
	}

	// POSTED is terminal for the posting operation.
	if _, err := svc.PostPayment(context.Background(), captured.ID, "stmt-1"); !errors.Is(err, service.ErrPaymentNotAllocated) {
		t.Errorf("re-post: err = %v, want ErrPaymentNotAllocated", err)
	}
}
