package service

import (
	"context"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	internalRedis "github.com/Zelesto/trailers-backend-sub001/internal/redis"
	"github.com/Zelesto/trailers-backend-sub001/internal/repository"
)

const defaultSearchRadiusKm = 50.0

// AssignmentService matches trips to the nearest free vehicle using the
// redis geo index, with the vehicle cache consulted before the database.
type AssignmentService struct {
	locationStore internalRedis.LocationStoreInterface
	cacheStore    *internalRedis.CacheStore
	vehicleRepo   repository.VehicleRepository
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(
	locationStore internalRedis.LocationStoreInterface,
	cacheStore *internalRedis.CacheStore,
	vehicleRepo repository.VehicleRepository,
) *AssignmentService {
	return &AssignmentService{
		locationStore: locationStore,
		cacheStore:    cacheStore,
		vehicleRepo:   vehicleRepo,
	}
}

// FindNearestAvailableVehicle returns the closest AVAILABLE vehicle to the
// given point, searching the geo index nearest-first.
func (s *AssignmentService) FindNearestAvailableVehicle(ctx context.Context, lat, lng float64) (string, error) {
	if !isValidLatitude(lat) || !isValidLongitude(lng) {
		return "", ErrInvalidLocation
	}

	nearby, err := s.locationStore.FindNearbyVehicles(ctx, lat, lng, defaultSearchRadiusKm)
	if err != nil {
		return "", err
	}

	if len(nearby) == 0 {
		return "", ErrNoVehicleAvailable
	}

	vehicleIDs := make([]string, len(nearby))
	for i, loc := range nearby {
		vehicleIDs[i] = loc.VehicleID
	}

	cached := make(map[string]*internalRedis.CachedVehicle)
	missing := vehicleIDs
	if s.cacheStore != nil {
		cached, missing, _ = s.cacheStore.GetVehiclesBatch(ctx, vehicleIDs)
	}

	statuses := make(map[string]domain.VehicleStatus, len(vehicleIDs))
	for id, vehicle := range cached {
		statuses[id] = domain.VehicleStatus(vehicle.Status)
	}

	for _, id := range missing {
		vehicle, err := s.vehicleRepo.GetByID(ctx, id)
		if err != nil {
			if err == repository.ErrNotFound {
				// Stale geo entry; drop it so the next search skips it.
				_ = s.locationStore.RemoveLocation(ctx, id)
				continue
			}
			return "", err
		}
		statuses[id] = vehicle.Status
		if s.cacheStore != nil {
			_ = s.cacheStore.SetVehicle(ctx, &internalRedis.CachedVehicle{
				ID:         vehicle.ID,
				Plate:      vehicle.Plate,
				Status:     string(vehicle.Status),
				CapacityKg: vehicle.CapacityKg,
			})
		}
	}

	// nearby is sorted nearest-first; take the first free vehicle.
	for _, loc := range nearby {
		if statuses[loc.VehicleID] == domain.VehicleStatusAvailable {
			return loc.VehicleID, nil
		}
	}

	return "", ErrNoVehicleAvailable
}
