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

// DriverService handles driver registration and duty status.
type DriverService struct {
	cacheStore *internalRedis.CacheStore
	driverRepo repository.DriverRepository
}

// NewDriverService creates a new DriverService.
func NewDriverService(cacheStore *internalRedis.CacheStore, driverRepo repository.DriverRepository) *DriverService {
	return &DriverService{
		cacheStore: cacheStore,
		driverRepo: driverRepo,
	}
}

// RegisterDriverRequest contains the parameters for registering a driver.
type RegisterDriverRequest struct {
	Name          string
	Phone         string
	LicenseNumber string
}

// RegisterDriver adds a driver to the roster in AVAILABLE state.
func (s *DriverService) RegisterDriver(ctx context.Context, req RegisterDriverRequest) (*domain.Driver, error) {
	if req.Name == "" || req.LicenseNumber == "" {
		return nil, ErrInvalidDriverID
	}

	driver := &domain.Driver{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Phone:         req.Phone,
		LicenseNumber: req.LicenseNumber,
		Status:        domain.DriverStatusAvailable,
		CreatedAt:     time.Now(),
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	return driver, nil
}

// SetOffDuty marks a driver off duty and drops their cache entry.
func (s *DriverService) SetOffDuty(ctx context.Context, driverID string) error {
	if driverID == "" {
		return ErrInvalidDriverID
	}

	if err := s.driverRepo.UpdateStatus(ctx, driverID, domain.DriverStatusOffDuty); err != nil {
		return err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateDriver(ctx, driverID)
	}

	return nil
}

// SetAvailable marks a driver back on duty.
func (s *DriverService) SetAvailable(ctx context.Context, driverID string) error {
	if driverID == "" {
		return ErrInvalidDriverID
	}

	if err := s.driverRepo.UpdateStatus(ctx, driverID, domain.DriverStatusAvailable); err != nil {
		return err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateDriver(ctx, driverID)
	}

	return nil
}

// GetDriver retrieves a driver by ID, consulting the cache first.
func (s *DriverService) GetDriver(ctx context.Context, driverID string) (*domain.Driver, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	if s.cacheStore != nil {
		cached, err := s.cacheStore.GetDriver(ctx, driverID)
		if err == nil && cached != nil {
			return &domain.Driver{
				ID:     cached.ID,
				Name:   cached.Name,
				Phone:  cached.Phone,
				Status: domain.DriverStatus(cached.Status),
			}, nil
		}
	}

	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetDriver(ctx, &internalRedis.CachedDriver{
			ID:     driver.ID,
			Name:   driver.Name,
			Phone:  driver.Phone,
			Status: string(driver.Status),
		})
	}

	return driver, nil
}

// GetAllDrivers lists the roster.
func (s *DriverService) GetAllDrivers(ctx context.Context) ([]*domain.Driver, error) {
	return s.driverRepo.GetAll(ctx)
}
