package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	internalRedis "github.com/Zelesto/trailers-backend-sub001/internal/redis"
	"github.com/Zelesto/trailers-backend-sub001/internal/repository"
	"github.com/Zelesto/trailers-backend-sub001/internal/repository/postgres"
)

const assignmentLockTTL = 10 * time.Second

// TripService owns the trip lifecycle. Every status change goes through
// domain.ValidateTransition; transitions into PLANNED and COMPLETED raise
// lifecycle events that are handled inside the same database transaction
// as the status write.
type TripService struct {
	db                  *sql.DB
	tripRepo            repository.TripRepository
	vehicleRepo         repository.VehicleRepository
	driverRepo          repository.DriverRepository
	metricsRepo         repository.TripMetricsRepository
	dispatcher          *LifecycleDispatcher
	matcher             *AssignmentService
	lockStore           internalRedis.LockStoreInterface
	cacheStore          *internalRedis.CacheStore
	notificationService *NotificationService
}

// NewTripService creates a new TripService.
func NewTripService(
	db *sql.DB,
	tripRepo repository.TripRepository,
	vehicleRepo repository.VehicleRepository,
	driverRepo repository.DriverRepository,
	metricsRepo repository.TripMetricsRepository,
	dispatcher *LifecycleDispatcher,
	matcher *AssignmentService,
	lockStore internalRedis.LockStoreInterface,
	cacheStore *internalRedis.CacheStore,
	notificationService *NotificationService,
) *TripService {
	return &TripService{
		db:                  db,
		tripRepo:            tripRepo,
		vehicleRepo:         vehicleRepo,
		driverRepo:          driverRepo,
		metricsRepo:         metricsRepo,
		dispatcher:          dispatcher,
		matcher:             matcher,
		lockStore:           lockStore,
		cacheStore:          cacheStore,
		notificationService: notificationService,
	}
}

// CreateTripRequest contains the parameters for creating a trip.
type CreateTripRequest struct {
	OriginName      string
	OriginLat       float64
	OriginLng       float64
	DestinationName string
	DestinationLat  float64
	DestinationLng  float64
	CargoWeightKg   float64
	ScheduledAt     time.Time
}

// CreateTrip creates a new trip in DRAFT.
func (s *TripService) CreateTrip(ctx context.Context, req CreateTripRequest) (*domain.Trip, error) {
	if !isValidLatitude(req.OriginLat) || !isValidLongitude(req.OriginLng) ||
		!isValidLatitude(req.DestinationLat) || !isValidLongitude(req.DestinationLng) {
		return nil, ErrInvalidRoute
	}

	trip := &domain.Trip{
		ID:              uuid.New().String(),
		Status:          domain.TripStatusDraft,
		OriginName:      req.OriginName,
		OriginLat:       req.OriginLat,
		OriginLng:       req.OriginLng,
		DestinationName: req.DestinationName,
		DestinationLat:  req.DestinationLat,
		DestinationLng:  req.DestinationLng,
		CargoWeightKg:   req.CargoWeightKg,
		ScheduledAt:     req.ScheduledAt,
		CreatedAt:       time.Now(),
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}

	return trip, nil
}

// PlanTrip moves a trip into PLANNED and, in the same transaction, computes
// and persists its estimated route metrics. If the metrics calculation fails
// the transition is rolled back.
func (s *TripService) PlanTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txTripRepo := postgres.NewTripRepositoryWithTx(tx)
	txMetricsRepo := postgres.NewTripMetricsRepositoryWithTx(tx)

	var trip *domain.Trip
	trip, err = txTripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if err = domain.ValidateTransition(trip.Status, domain.TripStatusPlanned); err != nil {
		return nil, err
	}

	trip.Status = domain.TripStatusPlanned
	if err = txTripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}

	// Same transaction as the status write: an error here aborts the transition.
	if err = s.dispatcher.TripPlanned(ctx, txTripRepo, txMetricsRepo, domain.TripPlannedEvent{ID: trip.ID}); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	s.invalidateTrip(ctx, trip.ID)
	if s.notificationService != nil {
		_ = s.notificationService.NotifyTripPlanned(ctx, trip)
	}

	return trip, nil
}

// AssignTripRequest contains the parameters for assigning a trip.
// Empty VehicleID requests automatic matching against the origin.
type AssignTripRequest struct {
	TripID    string
	VehicleID string
	DriverID  string
}

// AssignTrip attaches a vehicle and driver to a PLANNED trip and reserves
// both. Assignment locks prevent attaching the same asset to two trips at once.
func (s *TripService) AssignTrip(ctx context.Context, req AssignTripRequest) (*domain.Trip, error) {
	if req.TripID == "" {
		return nil, ErrInvalidTripID
	}

	trip, err := s.tripRepo.GetByID(ctx, req.TripID)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateTransition(trip.Status, domain.TripStatusAssigned); err != nil {
		return nil, err
	}

	vehicleID := req.VehicleID
	if vehicleID == "" {
		if s.matcher == nil {
			return nil, ErrInvalidVehicleID
		}
		vehicleID, err = s.matcher.FindNearestAvailableVehicle(ctx, trip.OriginLat, trip.OriginLng)
		if err != nil {
			return nil, err
		}
	}

	driverID := req.DriverID
	if driverID == "" {
		driverID, err = s.firstAvailableDriver(ctx)
		if err != nil {
			return nil, err
		}
	}

	if s.lockStore != nil {
		locked, err := s.lockStore.AcquireVehicleLock(ctx, vehicleID, assignmentLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrAssignmentInProgress
		}
		defer s.lockStore.ReleaseVehicleLock(ctx, vehicleID)

		locked, err = s.lockStore.AcquireDriverLock(ctx, driverID, assignmentLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrAssignmentInProgress
		}
		defer s.lockStore.ReleaseDriverLock(ctx, driverID)
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.Status != domain.VehicleStatusAvailable {
		return nil, ErrVehicleNotAvailable
	}

	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver.Status != domain.DriverStatusAvailable {
		return nil, ErrDriverNotAvailable
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txTripRepo := postgres.NewTripRepositoryWithTx(tx)
	txVehicleRepo := postgres.NewVehicleRepositoryWithTx(tx)
	txDriverRepo := postgres.NewDriverRepositoryWithTx(tx)

	trip.Status = domain.TripStatusAssigned
	trip.VehicleID = vehicleID
	trip.DriverID = driverID

	if err = txTripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}

	if err = txVehicleRepo.UpdateStatus(ctx, vehicleID, domain.VehicleStatusOnTrip); err != nil {
		return nil, err
	}

	if err = txDriverRepo.UpdateStatus(ctx, driverID, domain.DriverStatusOnTrip); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	s.invalidateTrip(ctx, trip.ID)
	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateVehicle(ctx, vehicleID)
		_ = s.cacheStore.InvalidateDriver(ctx, driverID)
		_ = s.cacheStore.RemoveAvailableVehicle(ctx, vehicleID)
	}
	if s.notificationService != nil {
		_ = s.notificationService.NotifyTripAssigned(ctx, trip, driverID)
	}

	return trip, nil
}

// StartTrip moves an ASSIGNED trip into IN_PROGRESS.
func (s *TripService) StartTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateTransition(trip.Status, domain.TripStatusInProgress); err != nil {
		return nil, err
	}

	trip.Status = domain.TripStatusInProgress
	trip.StartedAt = time.Now()

	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}

	s.invalidateTrip(ctx, trip.ID)
	return trip, nil
}

// CompleteTrip moves an IN_PROGRESS trip into COMPLETED, releases its
// vehicle and driver, and locks the trip's metrics — all in one transaction.
// A failure locking the metrics rolls the completion back.
func (s *TripService) CompleteTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txTripRepo := postgres.NewTripRepositoryWithTx(tx)
	txVehicleRepo := postgres.NewVehicleRepositoryWithTx(tx)
	txDriverRepo := postgres.NewDriverRepositoryWithTx(tx)
	txMetricsRepo := postgres.NewTripMetricsRepositoryWithTx(tx)

	var trip *domain.Trip
	trip, err = txTripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if err = domain.ValidateTransition(trip.Status, domain.TripStatusCompleted); err != nil {
		return nil, err
	}

	trip.Status = domain.TripStatusCompleted
	trip.CompletedAt = time.Now()

	if err = txTripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}

	if trip.VehicleID != "" {
		if err = txVehicleRepo.UpdateStatus(ctx, trip.VehicleID, domain.VehicleStatusAvailable); err != nil {
			return nil, err
		}
	}

	if trip.DriverID != "" {
		if err = txDriverRepo.UpdateStatus(ctx, trip.DriverID, domain.DriverStatusAvailable); err != nil {
			return nil, err
		}
	}

	// Same transaction as the status write: an error here aborts the transition.
	if err = s.dispatcher.TripCompleted(ctx, txTripRepo, txMetricsRepo, domain.TripCompletedEvent{ID: trip.ID}); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	s.invalidateTrip(ctx, trip.ID)
	if s.cacheStore != nil && trip.VehicleID != "" {
		_ = s.cacheStore.InvalidateVehicle(ctx, trip.VehicleID)
		_ = s.cacheStore.AddAvailableVehicle(ctx, trip.VehicleID)
	}
	if s.notificationService != nil {
		_ = s.notificationService.NotifyTripCompleted(ctx, trip)
	}

	return trip, nil
}

// CancelTrip moves a trip into CANCELLED and releases any assigned assets.
func (s *TripService) CancelTrip(ctx context.Context, tripID, reason string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txTripRepo := postgres.NewTripRepositoryWithTx(tx)
	txVehicleRepo := postgres.NewVehicleRepositoryWithTx(tx)
	txDriverRepo := postgres.NewDriverRepositoryWithTx(tx)

	var trip *domain.Trip
	trip, err = txTripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if err = domain.ValidateTransition(trip.Status, domain.TripStatusCancelled); err != nil {
		return nil, err
	}

	trip.Status = domain.TripStatusCancelled
	trip.CancelledAt = time.Now()
	trip.CancelReason = reason

	if err = txTripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}

	if trip.VehicleID != "" {
		if err = txVehicleRepo.UpdateStatus(ctx, trip.VehicleID, domain.VehicleStatusAvailable); err != nil {
			return nil, err
		}
	}

	if trip.DriverID != "" {
		if err = txDriverRepo.UpdateStatus(ctx, trip.DriverID, domain.DriverStatusAvailable); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	s.invalidateTrip(ctx, trip.ID)
	if s.notificationService != nil {
		_ = s.notificationService.NotifyTripCancelled(ctx, trip)
	}

	return trip, nil
}

// GetTrip retrieves a trip by ID.
func (s *TripService) GetTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}
	return s.tripRepo.GetByID(ctx, tripID)
}

// GetAllTrips retrieves recent trips.
func (s *TripService) GetAllTrips(ctx context.Context) ([]*domain.Trip, error) {
	return s.tripRepo.GetAll(ctx)
}

// GetTripMetrics retrieves the metrics for a trip.
func (s *TripService) GetTripMetrics(ctx context.Context, tripID string) (*domain.TripMetrics, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}
	return s.metricsRepo.GetByTripID(ctx, tripID)
}

func (s *TripService) firstAvailableDriver(ctx context.Context) (string, error) {
	drivers, err := s.driverRepo.GetAll(ctx)
	if err != nil {
		return "", err
	}
	for _, driver := range drivers {
		if driver.Status == domain.DriverStatusAvailable {
			return driver.ID, nil
		}
	}
	return "", ErrDriverNotAvailable
}

func (s *TripService) invalidateTrip(ctx context.Context, tripID string) {
	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateTrip(ctx, tripID)
	}
}
