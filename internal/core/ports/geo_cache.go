// Package ports defines the contracts between the planning core and
// infrastructure: storage of shops, orders, couriers and plans, and the
// distance/time cache.
package ports

import (
	"context"

	"deliveryplanner/internal/core/domain/model/geo"
	"deliveryplanner/internal/core/domain/model/kernel"
)

// GeoCache supplies pairwise travel distance and time per vehicle type.
type GeoCache interface {
	// PutLocationInfo registers the points so the cache can prepare every pair
	// between them for the given vehicle type.
	PutLocationInfo(ctx context.Context, points []geo.Point, vehicleType kernel.VehicleType) error

	// GetPointsDataTable returns the square matrix for points, row and column
	// i matching points[i]. Any missing pair is an error.
	GetPointsDataTable(ctx context.Context, points []geo.Point, vehicleType kernel.VehicleType) ([][]geo.Cell, error)
}
