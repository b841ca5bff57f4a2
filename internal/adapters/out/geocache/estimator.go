package geocache

import (
	"errors"
	"fmt"
	"time"

	"deliveryplanner/internal/core/domain/model/geo"
	"deliveryplanner/internal/core/domain/model/kernel"
)

// DefaultDetourFactor stretches great-circle distance to approximate streets.
const DefaultDetourFactor = 1.3

// ErrPairMissing is returned when a requested pair was never put.
var ErrPairMissing = errors.New("distance/time pair is missing")

// DefaultSpeedsKmh are average door-to-door speeds per vehicle type.
var DefaultSpeedsKmh = map[kernel.VehicleType]float64{
	kernel.Foot:    5,
	kernel.Bicycle: 15,
	kernel.Scooter: 25,
	kernel.Car:     30,
	kernel.Truck:   25,
}

// Estimator derives travel distance and time from coordinates.
type Estimator struct {
	detour float64
	speeds map[kernel.VehicleType]float64
}

// NewEstimator uses DefaultDetourFactor and DefaultSpeedsKmh.
func NewEstimator() *Estimator {
	return &Estimator{detour: DefaultDetourFactor, speeds: DefaultSpeedsKmh}
}

// Estimate returns the cell for travelling from one location to another.
// Time is rounded to whole seconds.
func (e *Estimator) Estimate(from, to kernel.Location, vt kernel.VehicleType) (geo.Cell, error) {
	speed, ok := e.speeds[vt]
	if !ok || speed <= 0 {
		return geo.Cell{}, fmt.Errorf("no speed for vehicle type %s", vt)
	}
	km, err := from.DistanceKm(to)
	if err != nil {
		return geo.Cell{}, err
	}
	km *= e.detour
	return geo.Cell{
		DistanceKm: km,
		Time:       time.Duration(km / speed * float64(time.Hour)).Round(time.Second),
	}, nil
}

type pairKey struct {
	from, to kernel.UUID
}

func (k pairKey) field() string {
	return k.from.String() + "|" + k.to.String()
}
