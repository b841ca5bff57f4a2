package services

import (
	"context"
	"errors"
	"fmt"

	"deliveryplanner/internal/core/domain/model/geo"
	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/core/domain/model/order"
	"deliveryplanner/internal/core/domain/model/shop"
	"deliveryplanner/internal/core/ports"
)

// DistanceTimeProvider builds per-call distance/time matrices from the geo
// cache. Orders take indices 0..n-1 in input order and the shop takes n.
type DistanceTimeProvider struct {
	cache ports.GeoCache
}

// NewDistanceTimeProvider wraps a geo cache.
func NewDistanceTimeProvider(cache ports.GeoCache) (*DistanceTimeProvider, error) {
	if cache == nil {
		return nil, errors.New("geo cache is required")
	}
	return &DistanceTimeProvider{cache: cache}, nil
}

// MatrixFor returns the matrix over orders and shop for one vehicle type.
// Every failure wraps ErrMatrixUnavailable.
func (p *DistanceTimeProvider) MatrixFor(
	ctx context.Context,
	s *shop.Shop,
	orders []*order.Order,
	vehicleType kernel.VehicleType,
) (*geo.Matrix, error) {
	points := make([]geo.Point, 0, len(orders)+1)
	for _, o := range orders {
		points = append(points, geo.Point{ID: o.ID(), Location: o.Location()})
	}
	points = append(points, geo.Point{ID: s.ID(), Location: s.Location()})

	if err := p.cache.PutLocationInfo(ctx, points, vehicleType); err != nil {
		return nil, fmt.Errorf("%w: %s: put locations: %w", ErrMatrixUnavailable, vehicleType, err)
	}

	cells, err := p.cache.GetPointsDataTable(ctx, points, vehicleType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMatrixUnavailable, vehicleType, err)
	}

	m, err := geo.NewMatrix(vehicleType, points, cells)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMatrixUnavailable, vehicleType, err)
	}
	return m, nil
}
