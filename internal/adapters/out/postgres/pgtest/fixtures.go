package pgtest

import (
	"testing"
	"time"

	"deliveryplanner/internal/core/domain/model/courier"
	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/core/domain/model/order"
	"deliveryplanner/internal/core/domain/model/shop"

	"github.com/stretchr/testify/require"
)

// Tables lists every table Migrate creates, for TRUNCATE between tests.
const Tables = "plan_routes, plans, orders, couriers, shops"

// NewShop returns a shop open 08:00-22:00.
func NewShop(t testing.TB) *shop.Shop {
	t.Helper()
	loc, err := kernel.NewLocation(55.75, 37.60)
	require.NoError(t, err)
	hours, err := kernel.NewDailyWindow(8*time.Hour, 22*time.Hour)
	require.NoError(t, err)
	s, err := shop.NewShop(kernel.NewUUID(), "Central", loc, hours)
	require.NoError(t, err)
	return s
}

// NewOrder returns a Receipted order near s due an hour after from.
func NewOrder(t testing.TB, s *shop.Shop, from time.Time) *order.Order {
	t.Helper()
	loc, err := kernel.NewLocation(s.Location().Latitude()+0.01, s.Location().Longitude())
	require.NoError(t, err)
	window, err := kernel.NewInterval(from, from.Add(time.Hour))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), s.ID(), loc, 2.5, window, []kernel.VehicleType{kernel.Bicycle, kernel.Car})
	require.NoError(t, err)
	return o
}

// NewTariff returns a small-vehicle tariff.
func NewTariff(t testing.TB) courier.Tariff {
	t.Helper()
	tariff, err := courier.NewTariff(courier.TariffParams{
		MaxWeight:     15,
		MaxDistanceKm: 20,
		ServiceTime:   3 * time.Minute,
		BaseCost:      50,
		CostPerKm:     12,
		CostPerHour:   300,
	})
	require.NoError(t, err)
	return tariff
}

// NewCourier returns a Ready bicycle courier of s on a 09:00-18:00 shift.
func NewCourier(t testing.TB, s *shop.Shop, name string) *courier.Courier {
	t.Helper()
	shift, err := kernel.NewDailyWindow(9*time.Hour, 18*time.Hour)
	require.NoError(t, err)
	c, err := courier.NewCourier(kernel.NewUUID(), name, kernel.Bicycle, s.ID(), shift, NewTariff(t))
	require.NoError(t, err)
	return c
}

// NewTaxi returns a car taxi.
func NewTaxi(t testing.TB, name string) *courier.Courier {
	t.Helper()
	c, err := courier.NewTaxi(kernel.NewUUID(), name, kernel.Car, NewTariff(t))
	require.NoError(t, err)
	return c
}
