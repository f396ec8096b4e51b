package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	internalRedis "github.com/Zelesto/trailers-backend-sub001/internal/redis"
	"github.com/Zelesto/trailers-backend-sub001/internal/repository"
)

// VehicleService handles the vehicle fleet: registration, status and
// real-time position tracking.
type VehicleService struct {
	locationStore internalRedis.LocationStoreInterface
	cacheStore    *internalRedis.CacheStore
	vehicleRepo   repository.VehicleRepository
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(
	locationStore internalRedis.LocationStoreInterface,
	cacheStore *internalRedis.CacheStore,
	vehicleRepo repository.VehicleRepository,
) *VehicleService {
	return &VehicleService{
		locationStore: locationStore,
		cacheStore:    cacheStore,
		vehicleRepo:   vehicleRepo,
	}
}

// RegisterVehicleRequest contains the parameters for registering a vehicle.
type RegisterVehicleRequest struct {
	Plate      string
	Make       string
	Model      string
	CapacityKg float64
}

// RegisterVehicle adds a vehicle to the fleet in AVAILABLE state.
func (s *VehicleService) RegisterVehicle(ctx context.Context, req RegisterVehicleRequest) (*domain.Vehicle, error) {
	if req.Plate == "" {
		return nil, ErrInvalidVehicleID
	}

	vehicle := &domain.Vehicle{
		ID:         uuid.New().String(),
		Plate:      req.Plate,
		Make:       req.Make,
		Model:      req.Model,
		CapacityKg: req.CapacityKg,
		Status:     domain.VehicleStatusAvailable,
		CreatedAt:  time.Now(),
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.AddAvailableVehicle(ctx, vehicle.ID)
	}

	return vehicle, nil
}

// UpdateVehicleLocationRequest contains the parameters for a position report.
type UpdateVehicleLocationRequest struct {
	VehicleID string
	Lat       float64
	Lng       float64
}

// UpdateLocation records a vehicle position report in the redis geo index
// and refreshes the vehicle cache.
func (s *VehicleService) UpdateLocation(ctx context.Context, req UpdateVehicleLocationRequest) error {
	if req.VehicleID == "" {
		return ErrInvalidVehicleID
	}
	if !isValidLatitude(req.Lat) || !isValidLongitude(req.Lng) {
		return ErrInvalidLocation
	}

	// Redis is the primary store for real-time positions.
	if err := s.locationStore.UpdateLocation(ctx, req.VehicleID, req.Lat, req.Lng); err != nil {
		return err
	}

	if s.cacheStore != nil {
		vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
		if err == nil {
			_ = s.cacheStore.SetVehicle(ctx, &internalRedis.CachedVehicle{
				ID:         vehicle.ID,
				Plate:      vehicle.Plate,
				Status:     string(vehicle.Status),
				CapacityKg: vehicle.CapacityKg,
			})
			if vehicle.Status == domain.VehicleStatusAvailable {
				_ = s.cacheStore.AddAvailableVehicle(ctx, vehicle.ID)
			}
		}
	}

	return nil
}

// SetMaintenance takes a vehicle out of service and removes it from the geo
// index so the matcher stops considering it.
func (s *VehicleService) SetMaintenance(ctx context.Context, vehicleID string) error {
	if vehicleID == "" {
		return ErrInvalidVehicleID
	}

	if err := s.vehicleRepo.UpdateStatus(ctx, vehicleID, domain.VehicleStatusMaintenance); err != nil {
		return err
	}

	if err := s.locationStore.RemoveLocation(ctx, vehicleID); err != nil {
		return err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateVehicle(ctx, vehicleID)
		_ = s.cacheStore.RemoveAvailableVehicle(ctx, vehicleID)
	}

	return nil
}

// ReturnToService puts a MAINTENANCE vehicle back in the available pool.
func (s *VehicleService) ReturnToService(ctx context.Context, vehicleID string) error {
	if vehicleID == "" {
		return ErrInvalidVehicleID
	}

	if err := s.vehicleRepo.UpdateStatus(ctx, vehicleID, domain.VehicleStatusAvailable); err != nil {
		return err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateVehicle(ctx, vehicleID)
		_ = s.cacheStore.AddAvailableVehicle(ctx, vehicleID)
	}

	return nil
}

// GetVehicle retrieves a vehicle by ID.
func (s *VehicleService) GetVehicle(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	if vehicleID == "" {
		return nil, ErrInvalidVehicleID
	}
	return s.vehicleRepo.GetByID(ctx, vehicleID)
}

// GetAllVehicles lists the fleet.
func (s *VehicleService) GetAllVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	return s.vehicleRepo.GetAll(ctx)
}
