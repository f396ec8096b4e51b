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

// PaymentService moves payments through CAPTURED -> ALLOCATED -> POSTED and
// writes the resulting ledger entries via the StatementService.
type PaymentService struct {
	paymentRepo         repository.PaymentRepository
	statementService    *StatementService
	notificationService *NotificationService
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	statementService *StatementService,
	notificationService *NotificationService,
) *PaymentService {
	return &PaymentService{
		paymentRepo:         paymentRepo,
		statementService:    statementService,
		notificationService: notificationService,
	}
}

// CapturePaymentRequest contains the parameters for capturing a payment.
type CapturePaymentRequest struct {
	Reference string
	PayerName string
	Amount    decimal.Decimal
	Method    domain.PaymentMethod
	PaidAt    time.Time
}

// CapturePayment records an incoming payment in CAPTURED state. The payment
// reference doubles as an idempotency key: capturing the same reference twice
// returns the existing payment instead of creating a duplicate.
func (s *PaymentService) CapturePayment(ctx context.Context, req CapturePaymentRequest) (*domain.Payment, error) {
	if req.Reference == "" {
		return nil, ErrInvalidPaymentID
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, ErrInvalidAmount
	}

	idempotencyKey := fmt.Sprintf("payment:%s", req.Reference)

	existing, err := s.paymentRepo.GetByIdempotencyKey(ctx, idempotencyKey)
	if err != nil {
		return nil, fmt.Errorf("failed to check idempotency key: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	paidAt := req.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	payment := &domain.Payment{
		ID:             uuid.New().String(),
		Reference:      req.Reference,
		PayerName:      req.PayerName,
		Amount:         req.Amount,
		Method:         req.Method,
		Status:         domain.PaymentStatusCaptured,
		PaidAt:         paidAt,
		IdempotencyKey: idempotencyKey,
		CreatedAt:      time.Now(),
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	return payment, nil
}

// AllocationRequest assigns part of a payment to a target entity.
type AllocationRequest struct {
	TargetType string
	TargetID   string
	Amount     decimal.Decimal
}

// AllocatePayment attaches allocation lines to a CAPTURED payment and moves
// it to ALLOCATED. The allocation amounts are not checked against the payment
// amount; over- and under-allocation are accepted and surface later as
// reconciliation variances.
func (s *PaymentService) AllocatePayment(ctx context.Context, paymentID string, allocations []AllocationRequest) (*domain.Payment, error) {
	if paymentID == "" {
		return nil, ErrInvalidPaymentID
	}
	if len(allocations) == 0 {
		return nil, ErrNoAllocations
	}
	for _, a := range allocations {
		if a.Amount.IsNegative() || a.Amount.IsZero() {
			return nil, ErrInvalidAmount
		}
	}

	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	if payment.Status != domain.PaymentStatusCaptured {
		return nil, ErrPaymentNotCaptured
	}

	for _, a := range allocations {
		allocation := &domain.PaymentAllocation{
			ID:         uuid.New().String(),
			PaymentID:  payment.ID,
			TargetType: a.TargetType,
			TargetID:   a.TargetID,
			Amount:     a.Amount,
			CreatedAt:  time.Now(),
		}
		if err := s.paymentRepo.CreateAllocation(ctx, allocation); err != nil {
			return nil, fmt.Errorf("failed to create allocation: %w", err)
		}
	}

	if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, domain.PaymentStatusAllocated); err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	payment.Status = domain.PaymentStatusAllocated

	return payment, nil
}

// PostPayment posts an ALLOCATED payment to the ledger: one CREDIT
// transaction per allocation against the given statement, then the payment
// moves to POSTED.
func (s *PaymentService) PostPayment(ctx context.Context, paymentID, statementID string) (*domain.Payment, error) {
	if paymentID == "" {
		return nil, ErrInvalidPaymentID
	}
	if statementID == "" {
		return nil, ErrInvalidStatementID
	}

	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	if payment.Status != domain.PaymentStatusAllocated {
		return nil, ErrPaymentNotAllocated
	}

	allocations, err := s.paymentRepo.GetAllocations(ctx, payment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get allocations: %w", err)
	}
	if len(allocations) == 0 {
		return nil, ErrNoAllocations
	}

	for _, allocation := range allocations {
		if _, err := s.statementService.PostTransaction(ctx, statementID, allocation.Amount, domain.Credit, "PAYMENT", payment.ID); err != nil {
			return nil, fmt.Errorf("failed to post allocation %s: %w", allocation.ID, err)
		}
	}

	if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, domain.PaymentStatusPosted); err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	payment.Status = domain.PaymentStatusPosted

	if s.notificationService != nil {
		_ = s.notificationService.NotifyPaymentPosted(ctx, payment)
	}

	return payment, nil
}

// GetPayment retrieves a payment by ID.
func (s *PaymentService) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if paymentID == "" {
		return nil, ErrInvalidPaymentID
	}
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return payment, nil
}

// GetAllocations lists the allocations for a payment.
func (s *PaymentService) GetAllocations(ctx context.Context, paymentID string) ([]*domain.PaymentAllocation, error) {
	if paymentID == "" {
		return nil, ErrInvalidPaymentID
	}
	allocations, err := s.paymentRepo.GetAllocations(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get allocations: %w", err)
	}
	return allocations, nil
}
