package commands_test

import (
	"testing"
	"time"

	"deliveryplanner/internal/core/domain/model/courier"
	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/core/domain/model/order"
	"deliveryplanner/internal/core/domain/model/shop"

	"github.com/stretchr/testify/require"
)

var referenceTime = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func newLocation(t *testing.T) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(55.75, 37.61)
	require.NoError(t, err)
	return loc
}

func newHours(t *testing.T, from, to time.Duration) kernel.DailyWindow {
	t.Helper()
	w, err := kernel.NewDailyWindow(from, to)
	require.NoError(t, err)
	return w
}

func newWindow(t *testing.T) kernel.Interval {
	t.Helper()
	w, err := kernel.NewInterval(referenceTime, referenceTime.Add(time.Hour))
	require.NoError(t, err)
	return w
}

func newShop(t *testing.T) *shop.Shop {
	t.Helper()
	s, err := shop.NewShop(kernel.NewUUID(), "Central", newLocation(t), newHours(t, 8*time.Hour, 22*time.Hour))
	require.NoError(t, err)
	return s
}

func newOrder(t *testing.T, s *shop.Shop) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), s.ID(), newLocation(t), 2, newWindow(t), []kernel.VehicleType{kernel.Bicycle})
	require.NoError(t, err)
	return o
}

func tariffParams() courier.TariffParams {
	return courier.TariffParams{
		MaxWeight:     15,
		MaxDistanceKm: 20,
		ServiceTime:   3 * time.Minute,
		BaseCost:      50,
		CostPerKm:     12,
		CostPerHour:   300,
	}
}

func newCourier(t *testing.T, s *shop.Shop) *courier.Courier {
	t.Helper()
	tariff, err := courier.NewTariff(tariffParams())
	require.NoError(t, err)
	c, err := courier.NewCourier(kernel.NewUUID(), "Anna", kernel.Bicycle, s.ID(), newHours(t, 9*time.Hour, 18*time.Hour), tariff)
	require.NoError(t, err)
	return c
}
