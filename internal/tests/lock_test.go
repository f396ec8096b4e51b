package tests

import (
	"context"
	"testing"
	"time"
)

func TestLock_VehicleLockIsExclusive(t *testing.T) {
	t.Parallel()

	locks := NewMockLockStore()
	ctx := context.Background()

	acquired, err := locks.AcquireVehicleLock(ctx, "veh-1", time.Minute)
	if err != nil || !acquired {
		t.Fatalf("first acquire = (%v, %v), want (true, nil)", acquired, err)
	}

	acquired, err = locks.AcquireVehicleLock(ctx, "veh-1", time.Minute)
	if err != nil {
		t.Fatalf("second acquire error = %v", err)
	}
	if acquired {
		t.Error("second acquire succeeded while lock held")
	}

	if err := locks.ReleaseVehicleLock(ctx, "veh-1"); err != nil {
		t.Fatalf("release error = %v", err)
	}
	acquired, _ = locks.AcquireVehicleLock(ctx, "veh-1", time.Minute)
	if !acquired {
		t.Error("acquire after release failed")
	}
}

func TestLock_VehicleAndDriverLocksAreIndependent(t *testing.T) {
	t.Parallel()

	locks := NewMockLockStore()
	ctx := context.Background()

	if acquired, _ := locks.AcquireVehicleLock(ctx, "x-1", time.Minute); !acquired {
		t.Fatal("vehicle lock acquire failed")
	}
	// Same ID under the driver namespace must not collide.
	if acquired, _ := locks.AcquireDriverLock(ctx, "x-1", time.Minute); !acquired {
		t.Error("driver lock blocked by a vehicle lock with the same ID")
	}
}

func TestLock_ExpiredLockCanBeReacquired(t *testing.T) {
	t.Parallel()

	locks := NewMockLockStore()
	ctx := context.Background()

	if acquired, _ := locks.AcquireVehicleLock(ctx, "veh-1", time.Millisecond); !acquired {
		t.Fatal("initial acquire failed")
	}
	time.Sleep(5 * time.Millisecond)

	if acquired, _ := locks.AcquireVehicleLock(ctx, "veh-1", time.Minute); !acquired {
		t.Error("acquire after TTL expiry failed")
	}
}
