package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants
const (
	VehicleCacheTTL  = 30 * time.Second // Availability flips on assignment
	DriverCacheTTL   = 30 * time.Second
	TripCacheTTL     = 60 * time.Second
	FuelPriceCacheTTL = 10 * time.Minute // Price feed refreshes slowly
)

// Key prefixes
const (
	vehicleCachePrefix = "cache:vehicle:"
	driverCachePrefix  = "cache:driver:"
	tripCachePrefix    = "cache:trip:"
	fuelPriceKey       = "rates:fuel_price_per_litre"
)

// CachedVehicle represents a cached vehicle entity.
type CachedVehicle struct {
	ID         string  `json:"id"`
	Plate      string  `json:"plate"`
	Status     string  `json:"status"`
	CapacityKg float64 `json:"capacity_kg"`
}

// CachedDriver represents a cached driver entity.
type CachedDriver struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Status string `json:"status"`
}

// GetVehicle retrieves a vehicle from cache. Returns nil on cache miss.
func (s *CacheStore) GetVehicle(ctx context.Context, vehicleID string) (*CachedVehicle, error) {
	data, err := s.client.Get(ctx, vehicleCachePrefix+vehicleID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var vehicle CachedVehicle
	if err := json.Unmarshal(data, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// SetVehicle stores a vehicle in cache.
func (s *CacheStore) SetVehicle(ctx context.Context, vehicle *CachedVehicle) error {
	data, err := json.Marshal(vehicle)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, vehicleCachePrefix+vehicle.ID, data, VehicleCacheTTL).Err()
}

// InvalidateVehicle removes a vehicle from cache.
func (s *CacheStore) InvalidateVehicle(ctx context.Context, vehicleID string) error {
	return s.client.Del(ctx, vehicleCachePrefix+vehicleID).Err()
}

// GetDriver retrieves a driver from cache. Returns nil on cache miss.
func (s *CacheStore) GetDriver(ctx context.Context, driverID string) (*CachedDriver, error) {
	data, err := s.client.Get(ctx, driverCachePrefix+driverID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var driver CachedDriver
	if err := json.Unmarshal(data, &driver); err != nil {
		return nil, err
	}
	return &driver, nil
}

// SetDriver stores a driver in cache.
func (s *CacheStore) SetDriver(ctx context.Context, driver *CachedDriver) error {
	data, err := json.Marshal(driver)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, driverCachePrefix+driver.ID, data, DriverCacheTTL).Err()
}

// InvalidateDriver removes a driver from cache.
func (s *CacheStore) InvalidateDriver(ctx context.Context, driverID string) error {
	return s.client.Del(ctx, driverCachePrefix+driverID).Err()
}

// InvalidateTrip removes a trip from cache.
func (s *CacheStore) InvalidateTrip(ctx context.Context, tripID string) error {
	return s.client.Del(ctx, tripCachePrefix+tripID).Err()
}

// GetVehiclesBatch retrieves multiple vehicles from cache using a pipeline.
// Returns the cached vehicles keyed by ID plus the IDs that missed.
func (s *CacheStore) GetVehiclesBatch(ctx context.Context, vehicleIDs []string) (map[string]*CachedVehicle, []string, error) {
	if len(vehicleIDs) == 0 {
		return make(map[string]*CachedVehicle), nil, nil
	}

	pipe := s.client.Pipeline()
	cmds := make(map[string]*redis.StringCmd, len(vehicleIDs))
	for _, id := range vehicleIDs {
		cmds[id] = pipe.Get(ctx, vehicleCachePrefix+id)
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, vehicleIDs, nil
	}

	result := make(map[string]*CachedVehicle)
	var missing []string
	for id, cmd := range cmds {
		data, err := cmd.Bytes()
		if err != nil {
			missing = append(missing, id)
			continue
		}
		var vehicle CachedVehicle
		if err := json.Unmarshal(data, &vehicle); err != nil {
			missing = append(missing, id)
			continue
		}
		result[id] = &vehicle
	}

	return result, missing, nil
}

// AddAvailableVehicle adds a vehicle to the availability set for fast lookup.
func (s *CacheStore) AddAvailableVehicle(ctx context.Context, vehicleID string) error {
	return s.client.SAdd(ctx, "available_vehicles", vehicleID).Err()
}

// RemoveAvailableVehicle removes a vehicle from the availability set.
func (s *CacheStore) RemoveAvailableVehicle(ctx context.Context, vehicleID string) error {
	return s.client.SRem(ctx, "available_vehicles", vehicleID).Err()
}

// IsVehicleAvailable checks the availability set for a vehicle.
func (s *CacheStore) IsVehicleAvailable(ctx context.Context, vehicleID string) (bool, error) {
	return s.client.SIsMember(ctx, "available_vehicles", vehicleID).Result()
}

// GetFuelPrice retrieves the cached fuel price per litre.
// Returns an empty string on cache miss.
func (s *CacheStore) GetFuelPrice(ctx context.Context) (string, error) {
	price, err := s.client.Get(ctx, fuelPriceKey).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return price, nil
}

// SetFuelPrice caches the fuel price per litre, stored as a decimal string.
func (s *CacheStore) SetFuelPrice(ctx context.Context, price string) error {
	return s.client.Set(ctx, fuelPriceKey, price, FuelPriceCacheTTL).Err()
}
