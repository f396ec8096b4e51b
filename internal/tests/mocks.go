package tests

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	internalRedis "github.com/Zelesto/trailers-backend-sub001/internal/redis"
	"github.com/Zelesto/trailers-backend-sub001/internal/repository"
	"github.com/Zelesto/trailers-backend-sub001/internal/service"
)

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	mu    sync.RWMutex
	trips map[string]*domain.Trip

	// Counters
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{
		trips: make(map[string]*domain.Trip),
	}
}

// AddTrip adds a trip to the mock repository.
func (m *MockTripRepository) AddTrip(trip *domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
}

func (m *MockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
	return nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *trip
	return &copy, nil
}

func (m *MockTripRepository) GetAll(ctx context.Context) ([]*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Trip, 0, len(m.trips))
	for _, t := range m.trips {
		copy := *t
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockTripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[trip.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *trip
	m.trips[trip.ID] = &copy
	return nil
}

func (m *MockTripRepository) GetActiveByVehicleID(ctx context.Context, vehicleID string) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.trips {
		if t.VehicleID == vehicleID && (t.Status == domain.TripStatusAssigned || t.Status == domain.TripStatusInProgress) {
			copy := *t
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockTripRepository) GetActiveByDriverID(ctx context.Context, driverID string) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.trips {
		if t.DriverID == driverID && (t.Status == domain.TripStatusAssigned || t.Status == domain.TripStatusInProgress) {
			copy := *t
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetTrip returns trip for assertions.
func (m *MockTripRepository) GetTrip(id string) *domain.Trip {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trips[id]
}

// ──────────────────────────────────────────────
// MOCK TRIP METRICS REPOSITORY
// ──────────────────────────────────────────────

// MockTripMetricsRepository is a mock implementation of TripMetricsRepository.
type MockTripMetricsRepository struct {
	mu      sync.RWMutex
	metrics map[string]*domain.TripMetrics

	// Counters
	UpsertCallCount    int32
	MarkFinalCallCount int32

	// Error injection
	UpsertError    error
	MarkFinalError error
}

// NewMockTripMetricsRepository creates a new mock metrics repository.
func NewMockTripMetricsRepository() *MockTripMetricsRepository {
	return &MockTripMetricsRepository{
		metrics: make(map[string]*domain.TripMetrics),
	}
}

func (m *MockTripMetricsRepository) Upsert(ctx context.Context, metrics *domain.TripMetrics) error {
	atomic.AddInt32(&m.UpsertCallCount, 1)
	if m.UpsertError != nil {
		return m.UpsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.metrics[metrics.TripID]; ok && existing.Final {
		return repository.ErrMetricsFinal
	}
	copy := *metrics
	m.metrics[metrics.TripID] = &copy
	return nil
}

func (m *MockTripMetricsRepository) GetByTripID(ctx context.Context, tripID string) (*domain.TripMetrics, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	metrics, ok := m.metrics[tripID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *metrics
	return &copy, nil
}

func (m *MockTripMetricsRepository) MarkFinal(ctx context.Context, tripID string) error {
	atomic.AddInt32(&m.MarkFinalCallCount, 1)
	if m.MarkFinalError != nil {
		return m.MarkFinalError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	metrics, ok := m.metrics[tripID]
	if !ok {
		return repository.ErrNotFound
	}
	metrics.Final = true
	return nil
}

// GetMetrics returns metrics for assertions.
func (m *MockTripMetricsRepository) GetMetrics(tripID string) *domain.TripMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.metrics[tripID]
}

// ──────────────────────────────────────────────
// MOCK VEHICLE REPOSITORY
// ──────────────────────────────────────────────

// MockVehicleRepository is a mock implementation of VehicleRepository.
type MockVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*domain.Vehicle

	// Counters
	CreateCallCount       int32
	UpdateStatusCallCount int32

	// Error injection
	CreateError       error
	UpdateStatusError error
}

// NewMockVehicleRepository creates a new mock vehicle repository.
func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{
		vehicles: make(map[string]*domain.Vehicle),
	}
}

// AddVehicle adds a vehicle to the mock repository.
func (m *MockVehicleRepository) AddVehicle(vehicle *domain.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
	return nil
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *vehicle
	return &copy, nil
}

func (m *MockVehicleRepository) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, v := range m.vehicles {
		if v.Plate == plate {
			copy := *v
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockVehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Vehicle, 0, len(m.vehicles))
	for _, v := range m.vehicles {
		copy := *v
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockVehicleRepository) UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) error {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return repository.ErrNotFound
	}
	vehicle.Status = status
	return nil
}

// GetVehicle returns vehicle for assertions.
func (m *MockVehicleRepository) GetVehicle(id string) *domain.Vehicle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vehicles[id]
}

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

// MockDriverRepository is a mock implementation of DriverRepository.
type MockDriverRepository struct {
	mu      sync.RWMutex
	drivers map[string]*domain.Driver

	// Counters
	CreateCallCount       int32
	UpdateStatusCallCount int32

	// Error injection
	CreateError       error
	UpdateStatusError error
}

// NewMockDriverRepository creates a new mock driver repository.
func NewMockDriverRepository() *MockDriverRepository {
	return &MockDriverRepository{
		drivers: make(map[string]*domain.Driver),
	}
}

// AddDriver adds a driver to the mock repository.
func (m *MockDriverRepository) AddDriver(driver *domain.Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
	return nil
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *driver
	return &copy, nil
}

func (m *MockDriverRepository) GetByPhone(ctx context.Context, phone string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.drivers {
		if d.Phone == phone {
			copy := *d
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockDriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Driver, 0, len(m.drivers))
	for _, d := range m.drivers {
		copy := *d
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockDriverRepository) UpdateStatus(ctx context.Context, id string, status domain.DriverStatus) error {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	driver.Status = status
	return nil
}

// GetDriver returns driver for assertions.
func (m *MockDriverRepository) GetDriver(id string) *domain.Driver {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.drivers[id]
}

// ──────────────────────────────────────────────
// MOCK ACCOUNT REPOSITORY
// ──────────────────────────────────────────────

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	// Error injection
	CreateError error
}

// NewMockAccountRepository creates a new mock account repository.
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// AddAccount adds an account to the mock repository.
func (m *MockAccountRepository) AddAccount(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	account, ok := m.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *account
	return &copy, nil
}

func (m *MockAccountRepository) GetAll(ctx context.Context) ([]*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		copy := *a
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockAccountRepository) SetActive(ctx context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	account.Active = active
	return nil
}

// ──────────────────────────────────────────────
// MOCK STATEMENT REPOSITORY
// ──────────────────────────────────────────────

// MockStatementRepository is a mock implementation of StatementRepository.
type MockStatementRepository struct {
	mu         sync.RWMutex
	statements map[string]*domain.AccountStatement
	order      []string

	// Counters
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockStatementRepository creates a new mock statement repository.
func NewMockStatementRepository() *MockStatementRepository {
	return &MockStatementRepository{
		statements: make(map[string]*domain.AccountStatement),
	}
}

// AddStatement adds a statement to the mock repository.
func (m *MockStatementRepository) AddStatement(statement *domain.AccountStatement) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statements[statement.ID] = statement
	m.order = append(m.order, statement.ID)
}

func (m *MockStatementRepository) Create(ctx context.Context, statement *domain.AccountStatement) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *statement
	m.statements[statement.ID] = &copy
	m.order = append(m.order, statement.ID)
	return nil
}

func (m *MockStatementRepository) GetByID(ctx context.Context, id string) (*domain.AccountStatement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	statement, ok := m.statements[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *statement
	return &copy, nil
}

func (m *MockStatementRepository) GetByAccount(ctx context.Context, accountID string) ([]*domain.AccountStatement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.AccountStatement, 0)
	for i := len(m.order) - 1; i >= 0; i-- {
		s := m.statements[m.order[i]]
		if s.AccountID == accountID {
			copy := *s
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockStatementRepository) GetLatestByAccount(ctx context.Context, accountID string) (*domain.AccountStatement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := len(m.order) - 1; i >= 0; i-- {
		s := m.statements[m.order[i]]
		if s.AccountID == accountID {
			copy := *s
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockStatementRepository) Update(ctx context.Context, statement *domain.AccountStatement) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.statements[statement.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *statement
	m.statements[statement.ID] = &copy
	return nil
}

// GetStatement returns statement for assertions.
func (m *MockStatementRepository) GetStatement(id string) *domain.AccountStatement {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.statements[id]
}

// ──────────────────────────────────────────────
// MOCK TRANSACTION REPOSITORY
// ──────────────────────────────────────────────

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu   sync.RWMutex
	txns []*domain.AccountTransaction

	// Counters
	CreateCallCount         int32
	MarkReconciledCallCount int32

	// Error injection
	CreateError         error
	MarkReconciledError error
}

// NewMockTransactionRepository creates a new mock transaction repository.
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

// AddTransaction adds a transaction to the mock repository.
func (m *MockTransactionRepository) AddTransaction(txn *domain.AccountTransaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txns = append(m.txns, txn)
}

func (m *MockTransactionRepository) Create(ctx context.Context, txn *domain.AccountTransaction) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *txn
	m.txns = append(m.txns, &copy)
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.AccountTransaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.txns {
		if t.ID == id {
			copy := *t
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockTransactionRepository) GetByAccountAndPeriod(ctx context.Context, accountID string, start, end time.Time) ([]*domain.AccountTransaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.AccountTransaction, 0)
	for _, t := range m.txns {
		if t.AccountID == accountID && !t.PostedAt.Before(start) && !t.PostedAt.After(end) {
			copy := *t
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockTransactionRepository) MarkReconciled(ctx context.Context, ids []string) error {
	atomic.AddInt32(&m.MarkReconciledCallCount, 1)
	if m.MarkReconciledError != nil {
		return m.MarkReconciledError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}
	for _, t := range m.txns {
		if idSet[t.ID] {
			t.Reconciled = true
		}
	}
	return nil
}

// CountTransactions returns the number of transactions.
func (m *MockTransactionRepository) CountTransactions() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.txns)
}

// ReconciledCount returns the number of reconciled transactions.
func (m *MockTransactionRepository) ReconciledCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, t := range m.txns {
		if t.Reconciled {
			count++
		}
	}
	return count
}

// ──────────────────────────────────────────────
// MOCK RECONCILIATION REPOSITORY
// ──────────────────────────────────────────────

// MockReconciliationRepository is a mock implementation of ReconciliationRepository.
type MockReconciliationRepository struct {
	mu      sync.RWMutex
	records []*domain.Reconciliation

	// Error injection
	CreateError error
}

// NewMockReconciliationRepository creates a new mock reconciliation repository.
func NewMockReconciliationRepository() *MockReconciliationRepository {
	return &MockReconciliationRepository{}
}

func (m *MockReconciliationRepository) Create(ctx context.Context, rec *domain.Reconciliation) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *rec
	m.records = append(m.records, &copy)
	return nil
}

func (m *MockReconciliationRepository) GetAll(ctx context.Context) ([]*domain.Reconciliation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Reconciliation, 0, len(m.records))
	for _, r := range m.records {
		copy := *r
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockReconciliationRepository) GetByAccount(ctx context.Context, accountID string) ([]*domain.Reconciliation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Reconciliation, 0)
	for _, r := range m.records {
		if r.AccountID == accountID {
			copy := *r
			result = append(result, &copy)
		}
	}
	return result, nil
}

// CountRecords returns the number of reconciliation records.
func (m *MockReconciliationRepository) CountRecords() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// ──────────────────────────────────────────────
// MOCK PAYMENT REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mu          sync.RWMutex
	payments    map[string]*domain.Payment
	allocations []*domain.PaymentAllocation

	// Counters
	CreateCallCount int32

	// Error injection
	CreateError           error
	CreateAllocationError error
}

// NewMockPaymentRepository creates a new mock payment repository.
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		payments: make(map[string]*domain.Payment),
	}
}

// AddPayment adds a payment to the mock repository.
func (m *MockPaymentRepository) AddPayment(payment *domain.Payment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[payment.ID] = payment
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *payment
	m.payments[payment.ID] = &copy
	return nil
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payment, ok := m.payments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *payment
	return &copy, nil
}

func (m *MockPaymentRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.payments {
		if p.IdempotencyKey == key {
			copy := *p
			return &copy, nil
		}
	}
	return nil, nil // Not found, but not an error for idempotency check
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	payment, ok := m.payments[id]
	if !ok {
		return repository.ErrNotFound
	}
	payment.Status = status
	return nil
}

func (m *MockPaymentRepository) CreateAllocation(ctx context.Context, allocation *domain.PaymentAllocation) error {
	if m.CreateAllocationError != nil {
		return m.CreateAllocationError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *allocation
	m.allocations = append(m.allocations, &copy)
	return nil
}

func (m *MockPaymentRepository) GetAllocations(ctx context.Context, paymentID string) ([]*domain.PaymentAllocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.PaymentAllocation, 0)
	for _, a := range m.allocations {
		if a.PaymentID == paymentID {
			copy := *a
			result = append(result, &copy)
		}
	}
	return result, nil
}

// GetPayment returns payment for assertions.
func (m *MockPaymentRepository) GetPayment(id string) *domain.Payment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.payments[id]
}

// CountPayments returns the number of payments.
func (m *MockPaymentRepository) CountPayments() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.payments)
}

// ──────────────────────────────────────────────
// MOCK STOCK COUNT REPOSITORY
// ──────────────────────────────────────────────

// MockStockCountRepository is a mock implementation of StockCountRepository.
type MockStockCountRepository struct {
	mu     sync.RWMutex
	counts map[string]*domain.StockCount

	// Counters
	UpsertLineCallCount int32

	// Error injection
	CreateError     error
	UpsertLineError error
}

// NewMockStockCountRepository creates a new mock stock count repository.
func NewMockStockCountRepository() *MockStockCountRepository {
	return &MockStockCountRepository{
		counts: make(map[string]*domain.StockCount),
	}
}

// AddCount adds a stock count to the mock repository.
func (m *MockStockCountRepository) AddCount(count *domain.StockCount) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[count.ID] = count
}

func (m *MockStockCountRepository) Create(ctx context.Context, count *domain.StockCount) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[count.ID] = count
	return nil
}

func (m *MockStockCountRepository) GetByID(ctx context.Context, id string) (*domain.StockCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count, ok := m.counts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return count, nil
}

func (m *MockStockCountRepository) GetAll(ctx context.Context) ([]*domain.StockCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.StockCount, 0, len(m.counts))
	for _, c := range m.counts {
		result = append(result, c)
	}
	return result, nil
}

func (m *MockStockCountRepository) UpdateStatus(ctx context.Context, id string, status domain.StockCountStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	count, ok := m.counts[id]
	if !ok {
		return repository.ErrNotFound
	}
	count.Status = status
	return nil
}

func (m *MockStockCountRepository) UpsertLine(ctx context.Context, line *domain.StockCountLine) error {
	atomic.AddInt32(&m.UpsertLineCallCount, 1)
	if m.UpsertLineError != nil {
		return m.UpsertLineError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	count, ok := m.counts[line.CountID]
	if !ok {
		return repository.ErrNotFound
	}
	for i, existing := range count.Lines {
		if existing.ItemID == line.ItemID {
			count.Lines[i] = line
			return nil
		}
	}
	count.Lines = append(count.Lines, line)
	return nil
}

func (m *MockStockCountRepository) DeleteLine(ctx context.Context, countID, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	count, ok := m.counts[countID]
	if !ok {
		return repository.ErrNotFound
	}
	count.RemoveLine(itemID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK LOCATION STORE
// ──────────────────────────────────────────────

// MockLocationStore is a mock implementation of LocationStoreInterface.
type MockLocationStore struct {
	mu        sync.RWMutex
	locations []internalRedis.VehicleLocation

	// Counters
	UpdateLocationCallCount int32

	// Error injection
	UpdateLocationError     error
	FindNearbyVehiclesError error
}

// NewMockLocationStore creates a new mock location store.
func NewMockLocationStore() *MockLocationStore {
	return &MockLocationStore{
		locations: make([]internalRedis.VehicleLocation, 0),
	}
}

// AddVehicleLocation adds a vehicle location to the mock store.
func (m *MockLocationStore) AddVehicleLocation(loc internalRedis.VehicleLocation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations = append(m.locations, loc)
}

func (m *MockLocationStore) UpdateLocation(ctx context.Context, vehicleID string, lat, lng float64) error {
	atomic.AddInt32(&m.UpdateLocationCallCount, 1)
	if m.UpdateLocationError != nil {
		return m.UpdateLocationError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, loc := range m.locations {
		if loc.VehicleID == vehicleID {
			m.locations[i].Lat = lat
			m.locations[i].Lng = lng
			return nil
		}
	}
	m.locations = append(m.locations, internalRedis.VehicleLocation{
		VehicleID: vehicleID,
		Lat:       lat,
		Lng:       lng,
	})
	return nil
}

func (m *MockLocationStore) FindNearbyVehicles(ctx context.Context, lat, lng, radiusKm float64) ([]internalRedis.VehicleLocation, error) {
	if m.FindNearbyVehiclesError != nil {
		return nil, m.FindNearbyVehiclesError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	// Return all locations in insertion order (mock doesn't do real geo filtering).
	result := make([]internalRedis.VehicleLocation, len(m.locations))
	copy(result, m.locations)
	return result, nil
}

func (m *MockLocationStore) RemoveLocation(ctx context.Context, vehicleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, loc := range m.locations {
		if loc.VehicleID == vehicleID {
			m.locations = append(m.locations[:i], m.locations[i+1:]...)
			return nil
		}
	}
	return nil
}

// HasLocation checks if a vehicle location exists.
func (m *MockLocationStore) HasLocation(vehicleID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, loc := range m.locations {
		if loc.VehicleID == vehicleID {
			return true
		}
	}
	return false
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]time.Time

	// Counters
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error

	// Force lock failure
	ForceAcquireFailure bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]time.Time),
	}
}

func (m *MockLockStore) acquire(key string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	if m.ForceAcquireFailure {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if expiry, exists := m.locks[key]; exists {
		if time.Now().Before(expiry) {
			return false, nil // Lock still held.
		}
	}

	m.locks[key] = time.Now().Add(ttl)
	return true, nil
}

func (m *MockLockStore) release(key string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, key)
	return nil
}

func (m *MockLockStore) AcquireVehicleLock(ctx context.Context, vehicleID string, ttl time.Duration) (bool, error) {
	return m.acquire("lock:vehicle:"+vehicleID, ttl)
}

func (m *MockLockStore) ReleaseVehicleLock(ctx context.Context, vehicleID string) error {
	return m.release("lock:vehicle:" + vehicleID)
}

func (m *MockLockStore) AcquireDriverLock(ctx context.Context, driverID string, ttl time.Duration) (bool, error) {
	return m.acquire("lock:driver:"+driverID, ttl)
}

func (m *MockLockStore) ReleaseDriverLock(ctx context.Context, driverID string) error {
	return m.release("lock:driver:" + driverID)
}

// ──────────────────────────────────────────────
// MOCK METRICS CALCULATOR
// ──────────────────────────────────────────────

// MockCalculator is a mock implementation of MetricsCalculator.
type MockCalculator struct {
	mu sync.Mutex

	// Result returned by Calculate.
	Estimate *service.RouteEstimate

	// Counters
	CalculateCallCount int32
	LockFinalCallCount int32

	// Error injection
	CalculateError error
	LockFinalError error
}

// NewMockCalculator creates a new mock calculator.
func NewMockCalculator() *MockCalculator {
	return &MockCalculator{
		Estimate: &service.RouteEstimate{},
	}
}

func (m *MockCalculator) Calculate(ctx context.Context, req service.RouteRequest) (*service.RouteEstimate, error) {
	atomic.AddInt32(&m.CalculateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CalculateError != nil {
		return nil, m.CalculateError
	}
	copy := *m.Estimate
	return &copy, nil
}

func (m *MockCalculator) LockFinal(ctx context.Context, tripID string) error {
	atomic.AddInt32(&m.LockFinalCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.LockFinalError
}

// ──────────────────────────────────────────────
// HELPER ERRORS
// ──────────────────────────────────────────────

var (
	ErrMockDBConstraint = errors.New("mock: unique constraint violation")
	ErrMockTimeout      = errors.New("mock: operation timeout")
	ErrMockUpstream     = errors.New("mock: upstream provider unavailable")
)
