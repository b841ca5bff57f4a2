package services_test

import (
	"context"
	"testing"
	"time"

	"deliveryplanner/internal/core/domain/model/courier"
	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/core/domain/model/order"
	"deliveryplanner/internal/core/domain/model/route"
	"deliveryplanner/internal/core/domain/model/shop"
	"deliveryplanner/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// candidateRoute builds an unbound route the way the enumerator would.
func candidateRoute(
	t *testing.T,
	cache *fakeGeoCache,
	s *shop.Shop,
	carrier courier.DeliveryChecker,
	orders ...*order.Order,
) *route.Route {
	t.Helper()
	matrix, err := newProvider(t, cache).MatrixFor(context.Background(), s, orders, carrier.VehicleType())
	require.NoError(t, err)
	result, err := carrier.CheckDelivery(courier.DeliveryRequest{ReferenceTime: ref, Shop: s, Orders: orders, Matrix: matrix})
	require.NoError(t, err)
	require.True(t, result.IsComplete(len(orders)))
	r, err := route.NewRoute(s, carrier, orders, false, ref, result)
	require.NoError(t, err)
	return r
}

func assertDisjoint(t *testing.T, routes []*route.Route) {
	t.Helper()
	seen := make(map[kernel.UUID]bool)
	for _, r := range routes {
		for _, id := range r.OrderIDs() {
			assert.False(t, seen[id], "order %s is on two routes", id)
			seen[id] = true
		}
	}
}

func TestCoverBuilder_Build(t *testing.T) {
	s := createShop(t)

	t.Run("accepted routes are disjoint and cheapest per order first", func(t *testing.T) {
		// Given
		cache := newFakeGeoCache()
		a := createOrder(t, s, orderSpec{kmNorth: 1, deadline: time.Hour, assembled: true})
		b := createOrder(t, s, orderSpec{kmNorth: 2, deadline: time.Hour, assembled: true})
		taxi := createTaxi(t, kernel.Car, 100)
		profile := taxi.ExplorationProfile()
		pair := candidateRoute(t, cache, s, profile, a, b)
		routes := []*route.Route{
			candidateRoute(t, cache, s, profile, a),
			candidateRoute(t, cache, s, profile, b),
			pair,
		}

		// When
		cover, err := services.NewCoverBuilder(newProvider(t, cache), nil).Build(context.Background(), services.CoverRequest{
			Shop: s, ReferenceTime: ref, Routes: routes, Orders: []*order.Order{a, b},
			Pool: services.NewCourierPool([]*courier.Courier{taxi}),
		})

		// Then
		require.NoError(t, err)
		require.Len(t, cover.Routes, 1)
		assert.Equal(t, pair.OrderIDs(), cover.Routes[0].OrderIDs())
		bound, ok := cover.Routes[0].Courier()
		require.True(t, ok)
		assert.True(t, bound.IsEqual(taxi))
		assert.True(t, cover.IsCovered(a.ID()))
		assert.True(t, cover.IsCovered(b.ID()))
	})

	t.Run("a taxi serves any number of routes", func(t *testing.T) {
		cache := newFakeGeoCache()
		a := createOrder(t, s, orderSpec{kmNorth: 1, deadline: time.Hour, assembled: true})
		b := createOrder(t, s, orderSpec{kmNorth: -1, deadline: time.Hour, assembled: true})
		taxi := createTaxi(t, kernel.Car, 100)

		cover, err := services.NewCoverBuilder(newProvider(t, cache), nil).Build(context.Background(), services.CoverRequest{
			Shop: s, ReferenceTime: ref,
			Routes: []*route.Route{
				candidateRoute(t, cache, s, taxi.ExplorationProfile(), a),
				candidateRoute(t, cache, s, taxi.ExplorationProfile(), b),
			},
			Orders: []*order.Order{a, b},
			Pool:   services.NewCourierPool([]*courier.Courier{taxi}),
		})

		require.NoError(t, err)
		assert.Len(t, cover.Routes, 2)
		assertDisjoint(t, cover.Routes)
		for _, r := range cover.Routes {
			c, ok := r.Courier()
			require.True(t, ok)
			assert.True(t, c.IsEqual(taxi))
		}
	})

	t.Run("a shop courier is bound at most once", func(t *testing.T) {
		cache := newFakeGeoCache()
		a := createOrder(t, s, orderSpec{kmNorth: 1, deadline: time.Hour, assembled: true})
		b := createOrder(t, s, orderSpec{kmNorth: -1, deadline: time.Hour, assembled: true})
		bike := createCourier(t, s, kernel.Bicycle, 50)
		pool := services.NewCourierPool([]*courier.Courier{bike})

		cover, err := services.NewCoverBuilder(newProvider(t, cache), nil).Build(context.Background(), services.CoverRequest{
			Shop: s, ReferenceTime: ref,
			Routes: []*route.Route{
				candidateRoute(t, cache, s, bike.ExplorationProfile(), a),
				candidateRoute(t, cache, s, bike.ExplorationProfile(), b),
			},
			Orders: []*order.Order{a, b},
			Pool:   pool,
		})

		require.NoError(t, err)
		require.Len(t, cover.Routes, 1)
		assert.Equal(t, 1, cover.Discarded)
		assert.True(t, pool.IsConsumed(bike))
		assert.Empty(t, pool.Available(kernel.Bicycle))
	})

	t.Run("a route the real courier cannot serve is discarded", func(t *testing.T) {
		cache := newFakeGeoCache()
		a := createOrder(t, s, orderSpec{kmNorth: 1, deadline: time.Hour, assembled: true})
		lateShift, err := kernel.NewDailyWindow(15*time.Hour, 20*time.Hour)
		require.NoError(t, err)
		sleeper, err := courier.NewCourier(kernel.NewUUID(), "Late shift", kernel.Bicycle, s.ID(), lateShift, createTariff(t, 50))
		require.NoError(t, err)

		cover, err := services.NewCoverBuilder(newProvider(t, cache), nil).Build(context.Background(), services.CoverRequest{
			Shop: s, ReferenceTime: ref,
			Routes: []*route.Route{candidateRoute(t, cache, s, sleeper.ExplorationProfile(), a)},
			Orders: []*order.Order{a},
			Pool:   services.NewCourierPool([]*courier.Courier{sleeper}),
		})

		require.NoError(t, err)
		assert.Empty(t, cover.Routes)
		assert.Equal(t, 1, cover.Discarded)
	})

	t.Run("require assembled skips receipted routes", func(t *testing.T) {
		cache := newFakeGeoCache()
		a := createOrder(t, s, orderSpec{kmNorth: 1, deadline: time.Hour})
		taxi := createTaxi(t, kernel.Car, 100)

		cover, err := services.NewCoverBuilder(newProvider(t, cache), nil).Build(context.Background(), services.CoverRequest{
			Shop: s, ReferenceTime: ref,
			Routes: []*route.Route{candidateRoute(t, cache, s, taxi.ExplorationProfile(), a)},
			Orders: []*order.Order{a},
			Pool:   services.NewCourierPool([]*courier.Courier{taxi}),
			Policy: services.RequireAssembled,
		})

		require.NoError(t, err)
		assert.Empty(t, cover.Routes)
		assert.Zero(t, cover.Discarded)
	})

	t.Run("require assembled after lead ignores the first stop", func(t *testing.T) {
		cache := newFakeGeoCache()
		lead := createOrder(t, s, orderSpec{kmNorth: 1, deadline: time.Hour})
		follower := createOrder(t, s, orderSpec{kmNorth: 2, deadline: time.Hour, assembled: true})
		taxi := createTaxi(t, kernel.Car, 100)

		cover, err := services.NewCoverBuilder(newProvider(t, cache), nil).Build(context.Background(), services.CoverRequest{
			Shop: s, ReferenceTime: ref,
			Routes: []*route.Route{candidateRoute(t, cache, s, taxi.ExplorationProfile(), lead, follower)},
			Orders: []*order.Order{lead, follower},
			Pool:   services.NewCourierPool([]*courier.Courier{taxi}),
			Policy: services.RequireAssembledAfterLead,
		})

		require.NoError(t, err)
		assert.Len(t, cover.Routes, 1)
	})

	t.Run("urgency sort prefers the earliest second stop per lead", func(t *testing.T) {
		cache := newFakeGeoCache()
		lead := createOrder(t, s, orderSpec{kmNorth: 1, deadline: time.Hour})
		near := createOrder(t, s, orderSpec{kmNorth: 1.5, deadline: time.Hour, assembled: true})
		far := createOrder(t, s, orderSpec{kmNorth: 5, deadline: time.Hour, assembled: true})
		taxi := createTaxi(t, kernel.Car, 100)
		profile := taxi.ExplorationProfile()

		cover, err := services.NewCoverBuilder(newProvider(t, cache), nil).Build(context.Background(), services.CoverRequest{
			Shop: s, ReferenceTime: ref,
			Routes: []*route.Route{
				candidateRoute(t, cache, s, profile, lead, far),
				candidateRoute(t, cache, s, profile, lead, near),
			},
			Orders: []*order.Order{lead, near, far},
			Pool:   services.NewCourierPool([]*courier.Courier{taxi}),
			Sort:   services.SortByUrgency,
		})

		require.NoError(t, err)
		require.Len(t, cover.Routes, 1)
		assert.True(t, cover.Routes[0].Contains(near.ID()))
	})

	t.Run("nothing to cover", func(t *testing.T) {
		_, err := services.NewCoverBuilder(newProvider(t, newFakeGeoCache()), nil).Build(context.Background(), services.CoverRequest{
			Shop: s, ReferenceTime: ref, Pool: services.NewCourierPool(nil),
		})

		require.ErrorIs(t, err, services.ErrNothingToCover)
	})
}

func TestCoverBuilder_BuildRefined(t *testing.T) {
	s := createShop(t)

	t.Run("receipted orders trigger an assembled only pass", func(t *testing.T) {
		// Given
		cache := newFakeGeoCache()
		ready := createOrder(t, s, orderSpec{kmNorth: 1, deadline: time.Hour, assembled: true})
		picking := createOrder(t, s, orderSpec{kmNorth: -1, deadline: time.Hour})
		bike := createCourier(t, s, kernel.Bicycle, 50)
		profile := bike.ExplorationProfile()
		pool := services.NewCourierPool([]*courier.Courier{bike})

		// When
		refined, err := services.NewCoverBuilder(newProvider(t, cache), nil).BuildRefined(context.Background(), services.CoverRequest{
			Shop: s, ReferenceTime: ref,
			Routes: []*route.Route{
				candidateRoute(t, cache, s, profile, ready, picking),
				candidateRoute(t, cache, s, profile, ready),
			},
			Orders: []*order.Order{ready, picking},
			Pool:   pool,
		})

		// Then
		require.NoError(t, err)
		assert.True(t, refined.Refined)
		assert.True(t, refined.First.HasReceipted())
		require.Len(t, refined.Final.Routes, 1)
		assert.Equal(t, []kernel.UUID{ready.ID()}, refined.Final.Routes[0].OrderIDs())
		assert.True(t, pool.IsConsumed(bike))
	})

	t.Run("an assembled first pass is final and consumes its couriers", func(t *testing.T) {
		cache := newFakeGeoCache()
		ready := createOrder(t, s, orderSpec{kmNorth: 1, deadline: time.Hour, assembled: true})
		bike := createCourier(t, s, kernel.Bicycle, 50)
		pool := services.NewCourierPool([]*courier.Courier{bike})

		refined, err := services.NewCoverBuilder(newProvider(t, cache), nil).BuildRefined(context.Background(), services.CoverRequest{
			Shop: s, ReferenceTime: ref,
			Routes: []*route.Route{candidateRoute(t, cache, s, bike.ExplorationProfile(), ready)},
			Orders: []*order.Order{ready},
			Pool:   pool,
		})

		require.NoError(t, err)
		assert.False(t, refined.Refined)
		assert.Len(t, refined.Final.Routes, 1)
		assert.True(t, pool.IsConsumed(bike))
	})
}

func TestCourierPool(t *testing.T) {
	s := createShop(t)
	bike := createCourier(t, s, kernel.Bicycle, 50)
	taxi := createTaxi(t, kernel.Car, 100)
	other := createTaxi(t, kernel.Car, 90)
	pool := services.NewCourierPool([]*courier.Courier{bike, taxi, other})

	t.Run("taxi prefers the requested id", func(t *testing.T) {
		got, ok := pool.Taxi(kernel.Car, other.ID())
		require.True(t, ok)
		assert.True(t, got.IsEqual(other))

		got, ok = pool.Taxi(kernel.Car, kernel.NewUUID())
		require.True(t, ok)
		assert.True(t, got.IsEqual(taxi))

		_, ok = pool.Taxi(kernel.Truck, kernel.NewUUID())
		assert.False(t, ok)
	})

	t.Run("consuming a taxi is a no-op", func(t *testing.T) {
		pool.Consume(taxi)
		assert.False(t, pool.IsConsumed(taxi))
	})

	t.Run("clone keeps consumption separate", func(t *testing.T) {
		clone := pool.Clone()
		clone.Consume(bike)

		assert.True(t, clone.IsConsumed(bike))
		assert.False(t, pool.IsConsumed(bike))
		assert.Len(t, pool.Remaining(), 3)
		assert.Len(t, clone.Remaining(), 2)
	})
}
