package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	internalRedis "github.com/Zelesto/trailers-backend-sub001/internal/redis"
	"github.com/Zelesto/trailers-backend-sub001/internal/service"
)

func newAssignmentFixture() (*service.AssignmentService, *MockLocationStore, *MockVehicleRepository) {
	locationStore := NewMockLocationStore()
	vehicleRepo := NewMockVehicleRepository()
	svc := service.NewAssignmentService(locationStore, nil, vehicleRepo)
	return svc, locationStore, vehicleRepo
}

func availableVehicle(id, plate string) *domain.Vehicle {
	return &domain.Vehicle{
		ID:         id,
		Plate:      plate,
		CapacityKg: 24000,
		Status:     domain.VehicleStatusAvailable,
	}
}

func TestAssignment_PicksNearestAvailableVehicle(t *testing.T) {
	t.Parallel()

	svc, locationStore, vehicleRepo := newAssignmentFixture()

	// The geo index returns nearest-first; the mock preserves insertion order.
	locationStore.AddVehicleLocation(internalRedis.VehicleLocation{VehicleID: "veh-near", Lat: 52.37, Lng: 4.89})
	locationStore.AddVehicleLocation(internalRedis.VehicleLocation{VehicleID: "veh-far", Lat: 52.50, Lng: 5.10})
	vehicleRepo.AddVehicle(availableVehicle("veh-near", "TR-101-X"))
	vehicleRepo.AddVehicle(availableVehicle("veh-far", "TR-102-X"))

	vehicleID, err := svc.FindNearestAvailableVehicle(context.Background(), 52.37, 4.89)
	if err != nil {
		t.Fatalf("FindNearestAvailableVehicle() error = %v", err)
	}
	if vehicleID != "veh-near" {
		t.Errorf("picked %s, want veh-near", vehicleID)
	}
}

func TestAssignment_SkipsBusyVehicles(t *testing.T) {
	t.Parallel()

	svc, locationStore, vehicleRepo := newAssignmentFixture()

	onTrip := availableVehicle("veh-busy", "TR-101-X")
	onTrip.Status = domain.VehicleStatusOnTrip
	maintenance := availableVehicle("veh-shop", "TR-102-X")
	maintenance.Status = domain.VehicleStatusMaintenance

	locationStore.AddVehicleLocation(internalRedis.VehicleLocation{VehicleID: "veh-busy", Lat: 52.37, Lng: 4.89})
	locationStore.AddVehicleLocation(internalRedis.VehicleLocation{VehicleID: "veh-shop", Lat: 52.38, Lng: 4.90})
	locationStore.AddVehicleLocation(internalRedis.VehicleLocation{VehicleID: "veh-free", Lat: 52.40, Lng: 4.95})
	vehicleRepo.AddVehicle(onTrip)
	vehicleRepo.AddVehicle(maintenance)
	vehicleRepo.AddVehicle(availableVehicle("veh-free", "TR-103-X"))

	vehicleID, err := svc.FindNearestAvailableVehicle(context.Background(), 52.37, 4.89)
	if err != nil {
		t.Fatalf("FindNearestAvailableVehicle() error = %v", err)
	}
	if vehicleID != "veh-free" {
		t.Errorf("picked %s, want veh-free", vehicleID)
	}
}

func TestAssignment_NoVehiclesInRange(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAssignmentFixture()

	_, err := svc.FindNearestAvailableVehicle(context.Background(), 52.37, 4.89)
	if !errors.Is(err, service.ErrNoVehicleAvailable) {
		t.Errorf("err = %v, want ErrNoVehicleAvailable", err)
	}
}

func TestAssignment_AllVehiclesBusy(t *testing.T) {
	t.Parallel()

	svc, locationStore, vehicleRepo := newAssignmentFixture()

	busy := availableVehicle("veh-1", "TR-101-X")
	busy.Status = domain.VehicleStatusOnTrip
	locationStore.AddVehicleLocation(internalRedis.VehicleLocation{VehicleID: "veh-1", Lat: 52.37, Lng: 4.89})
	vehicleRepo.AddVehicle(busy)

	_, err := svc.FindNearestAvailableVehicle(context.Background(), 52.37, 4.89)
	if !errors.Is(err, service.ErrNoVehicleAvailable) {
		t.Errorf("err = %v, want ErrNoVehicleAvailable", err)
	}
}

func TestAssignment_PrunesStaleGeoEntries(t *testing.T) {
	t.Parallel()

	svc, locationStore, vehicleRepo := newAssignmentFixture()

	// "veh-ghost" is in the geo index but no longer in the database.
	locationStore.AddVehicleLocation(internalRedis.VehicleLocation{VehicleID: "veh-ghost", Lat: 52.37, Lng: 4.89})
	locationStore.AddVehicleLocation(internalRedis.VehicleLocation{VehicleID: "veh-real", Lat: 52.40, Lng: 4.95})
	vehicleRepo.AddVehicle(availableVehicle("veh-real", "TR-101-X"))

	vehicleID, err := svc.FindNearestAvailableVehicle(context.Background(), 52.37, 4.89)
	if err != nil {
		t.Fatalf("FindNearestAvailableVehicle() error = %v", err)
	}
	if vehicleID != "veh-real" {
		t.Errorf("picked %s, want veh-real", vehicleID)
	}
	if locationStore.HasLocation("veh-ghost") {
		t.Error("stale geo entry was not removed")
	}
}

func TestAssignment_RejectsInvalidCoordinates(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAssignmentFixture()

	if _, err := svc.FindNearestAvailableVehicle(context.Background(), 91.0, 4.89); !errors.Is(err, service.ErrInvalidLocation) {
		t.Errorf("bad latitude: err = %v, want ErrInvalidLocation", err)
	}
	if _, err := svc.FindNearestAvailableVehicle(context.Background(), 52.37, 181.0); !errors.Is(err, service.ErrInvalidLocation) {
		t.Errorf("bad longitude: err = %v, want ErrInvalidLocation", err)
	}
}
