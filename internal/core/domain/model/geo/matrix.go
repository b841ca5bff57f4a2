package geo

import (
	"errors"
	"fmt"
	"time"

	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/pkg/errs"
)

// ErrPointNotInMatrix is returned when a route references a location the
// matrix was not built for.
var ErrPointNotInMatrix = errors.New("point is not in distance matrix")

// Point is a location that takes part in a distance matrix: an order
// destination or a shop.
type Point struct {
	ID       kernel.UUID
	Location kernel.Location
}

// Cell is the travel distance and time between two points for one vehicle type.
type Cell struct {
	DistanceKm float64
	Time       time.Duration
}

// Matrix is a square distance/time matrix for one vehicle type. Point indices
// are assigned per call by whoever builds the matrix and never outlive it.
type Matrix struct {
	vehicleType kernel.VehicleType
	points      []Point
	index       map[kernel.UUID]int
	cells       [][]Cell
}

// NewMatrix indexes points in the given order and checks cells is len(points)
// squared.
func NewMatrix(vehicleType kernel.VehicleType, points []Point, cells [][]Cell) (*Matrix, error) {
	if err := vehicleType.Validate(); err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, errs.NewValueIsRequiredError("points")
	}
	if len(cells) != len(points) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"matrix",
			fmt.Errorf("%d rows for %d points", len(cells), len(points)),
		)
	}

	index := make(map[kernel.UUID]int, len(points))
	for i, p := range points {
		if _, dup := index[p.ID]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("points", fmt.Errorf("duplicate point %s", p.ID))
		}
		if len(cells[i]) != len(points) {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"matrix",
				fmt.Errorf("row %d has %d cells for %d points", i, len(cells[i]), len(points)),
			)
		}
		index[p.ID] = i
	}

	return &Matrix{
		vehicleType: vehicleType,
		points:      append([]Point(nil), points...),
		index:       index,
		cells:       cells,
	}, nil
}

// VehicleType returns the vehicle type the matrix was computed for.
func (m *Matrix) VehicleType() kernel.VehicleType {
	return m.vehicleType
}

// Size returns the number of indexed points.
func (m *Matrix) Size() int {
	return len(m.points)
}

// Points returns the indexed points in index order.
func (m *Matrix) Points() []Point {
	return append([]Point(nil), m.points...)
}

// IndexOf returns the index of id.
func (m *Matrix) IndexOf(id kernel.UUID) (int, bool) {
	i, ok := m.index[id]
	return i, ok
}

// At returns the cell for the (from, to) index pair.
func (m *Matrix) At(from, to int) Cell {
	return m.cells[from][to]
}

// Leg returns the cell between two indexed points.
func (m *Matrix) Leg(from, to kernel.UUID) (Cell, error) {
	i, ok := m.index[from]
	if !ok {
		return Cell{}, fmt.Errorf("%w: %s", ErrPointNotInMatrix, from)
	}
	j, ok := m.index[to]
	if !ok {
		return Cell{}, fmt.Errorf("%w: %s", ErrPointNotInMatrix, to)
	}
	return m.cells[i][j], nil
}
