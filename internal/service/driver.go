package service

import (
	"context"
	"database/sql"
	"errors"
)

var ErrDriverUnavailable = errors.New("no delivery driver available")

// FixedDriver always assigns the same driver id. Useful for single-driver
// deployments and tests.
type FixedDriver struct {
	DriverID int
}

func (f FixedDriver) AssignDriver(ctx context.Context) (int, error) {
	if f.DriverID <= 0 {
		return 0, ErrDriverUnavailable
	}
	return f.DriverID, nil
}

// PoolAssigner picks the least-loaded driver from the user pool.
type PoolAssigner struct {
	Drivers DriverRepository
}

func (p PoolAssigner) AssignDriver(ctx context.Context) (int, error) {
	driverID, err := p.Drivers.NextAvailableDriver(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrDriverUnavailable
		}
		return 0, err
	}
	return driverID, nil
}

var (
	_ DriverAssigner = FixedDriver{}
	_ DriverAssigner = PoolAssigner{}
)
