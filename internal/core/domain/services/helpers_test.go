package services_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"deliveryplanner/internal/core/domain/model/courier"
	"deliveryplanner/internal/core/domain/model/geo"
	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/core/domain/model/order"
	"deliveryplanner/internal/core/domain/model/shop"
	"deliveryplanner/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

var ref = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

var errCacheDown = errors.New("cache down")

// fakeGeoCache measures distance as 100 km per degree along each axis
// (so 0.01 degree is 1 km) and derives time from a per-vehicle speed.
type fakeGeoCache struct {
	mu       sync.Mutex
	calls    int
	failFor  map[kernel.VehicleType]bool
	panicFor map[kernel.VehicleType]bool
	// failAfter makes every call after the given count fail; 0 disables it.
	failAfter int
	// panicAfter makes every call after the given count panic; 0 disables it.
	panicAfter int
}

var speedKmh = map[kernel.VehicleType]float64{
	kernel.Foot:    5,
	kernel.Bicycle: 15,
	kernel.Scooter: 20,
	kernel.Car:     30,
	kernel.Truck:   30,
}

func newFakeGeoCache() *fakeGeoCache {
	return &fakeGeoCache{
		failFor:  make(map[kernel.VehicleType]bool),
		panicFor: make(map[kernel.VehicleType]bool),
	}
}

func (f *fakeGeoCache) PutLocationInfo(_ context.Context, _ []geo.Point, _ kernel.VehicleType) error {
	return nil
}

func (f *fakeGeoCache) GetPointsDataTable(_ context.Context, points []geo.Point, vt kernel.VehicleType) ([][]geo.Cell, error) {
	f.mu.Lock()
	f.calls++
	calls := f.calls
	shouldPanic := f.panicFor[vt] || (f.panicAfter > 0 && calls > f.panicAfter)
	shouldFail := f.failFor[vt] || (f.failAfter > 0 && calls > f.failAfter)
	f.mu.Unlock()

	if shouldPanic {
		panic("geo cache exploded")
	}
	if shouldFail {
		return nil, errCacheDown
	}

	cells := make([][]geo.Cell, len(points))
	for i, from := range points {
		cells[i] = make([]geo.Cell, len(points))
		for j, to := range points {
			d := 100 * (math.Abs(from.Location.Latitude()-to.Location.Latitude()) +
				math.Abs(from.Location.Longitude()-to.Location.Longitude()))
			cells[i][j] = geo.Cell{
				DistanceKm: d,
				Time:       time.Duration(d / speedKmh[vt] * float64(time.Hour)).Round(time.Second),
			}
		}
	}
	return cells, nil
}

func (f *fakeGeoCache) setPanic(vt kernel.VehicleType) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.panicFor[vt] = true
}

func location(t *testing.T, lat, lon float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	return loc
}

func createShop(t *testing.T) *shop.Shop {
	t.Helper()
	s, err := shop.NewShop(kernel.NewUUID(), "Central", location(t, 55.75, 37.60), kernel.FullDay())
	require.NoError(t, err)
	return s
}

type orderSpec struct {
	kmNorth   float64
	kmEast    float64
	weight    float64
	deadline  time.Duration
	assembled bool
	vehicles  []kernel.VehicleType
}

func createOrder(t *testing.T, s *shop.Shop, spec orderSpec) *order.Order {
	t.Helper()
	if spec.weight == 0 {
		spec.weight = 1
	}
	if spec.vehicles == nil {
		spec.vehicles = []kernel.VehicleType{kernel.Bicycle, kernel.Car}
	}
	window, err := kernel.NewInterval(ref.Add(-2*time.Hour), ref.Add(spec.deadline))
	require.NoError(t, err)
	o, err := order.NewOrder(
		kernel.NewUUID(),
		s.ID(),
		location(t, s.Location().Latitude()+spec.kmNorth/100, s.Location().Longitude()+spec.kmEast/100),
		spec.weight,
		window,
		spec.vehicles,
	)
	require.NoError(t, err)
	if spec.assembled {
		require.NoError(t, o.Assemble())
	}
	return o
}

func createTariff(t *testing.T, baseCost float64) courier.Tariff {
	t.Helper()
	tariff, err := courier.NewTariff(courier.TariffParams{
		MaxWeight:     20,
		MaxDistanceKm: 30,
		ServiceTime:   2 * time.Minute,
		BaseCost:      baseCost,
		CostPerKm:     10,
	})
	require.NoError(t, err)
	return tariff
}

func createCourier(t *testing.T, s *shop.Shop, vt kernel.VehicleType, baseCost float64) *courier.Courier {
	t.Helper()
	shift, err := kernel.NewDailyWindow(8*time.Hour, 20*time.Hour)
	require.NoError(t, err)
	c, err := courier.NewCourier(kernel.NewUUID(), "Courier", vt, s.ID(), shift, createTariff(t, baseCost))
	require.NoError(t, err)
	return c
}

func createTaxi(t *testing.T, vt kernel.VehicleType, baseCost float64) *courier.Courier {
	t.Helper()
	c, err := courier.NewTaxi(kernel.NewUUID(), "Taxi", vt, createTariff(t, baseCost))
	require.NoError(t, err)
	return c
}

func newProvider(t *testing.T, cache *fakeGeoCache) *services.DistanceTimeProvider {
	t.Helper()
	p, err := services.NewDistanceTimeProvider(cache)
	require.NoError(t, err)
	return p
}

func idsOf(orders []*order.Order) []kernel.UUID {
	ids := make([]kernel.UUID, len(orders))
	for i, o := range orders {
		ids[i] = o.ID()
	}
	return ids
}
