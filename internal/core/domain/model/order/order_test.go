package order_test

import (
	"testing"
	"time"

	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/core/domain/model/order"
	"deliveryplanner/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func createValidLocation(t *testing.T) kernel.Location {
	t.Helper()
	location, err := kernel.NewLocation(55.75, 37.61)
	require.NoError(t, err)
	return location
}

func createValidWindow(t *testing.T) kernel.Interval {
	t.Helper()
	window, err := kernel.NewInterval(now, now.Add(time.Hour))
	require.NoError(t, err)
	return window
}

func createValidOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		createValidLocation(t),
		2.5,
		createValidWindow(t),
		[]kernel.VehicleType{kernel.Bicycle, kernel.Car},
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	id := kernel.NewUUID()
	shopID := kernel.NewUUID()
	location := createValidLocation(t)
	window := createValidWindow(t)
	vehicles := []kernel.VehicleType{kernel.Foot}

	t.Run("should create receipted order with valid parameters", func(t *testing.T) {
		o, err := order.NewOrder(id, shopID, location, 1.2, window, vehicles)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.ShopID().IsEqual(shopID))
		assert.Equal(t, location, o.Location())
		assert.InDelta(t, 1.2, o.Weight(), 1e-9)
		assert.Equal(t, window.To(), o.Deadline())
		assert.Equal(t, order.Receipted, o.Status())
		assert.Equal(t, order.None, o.Rejection())
		assert.False(t, o.IsAssembled())
	})

	t.Run("should return joined errors for every invalid parameter", func(t *testing.T) {
		o, err := order.NewOrder(kernel.UUID{}, shopID, location, 0, kernel.Interval{}, nil)

		require.Error(t, err)
		assert.Nil(t, o)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "weight")
		assert.Contains(t, err.Error(), "delivery window")
		assert.Contains(t, err.Error(), "vehicle types")
	})

	t.Run("should reject unknown vehicle type", func(t *testing.T) {
		_, err := order.NewOrder(id, shopID, location, 1, window, []kernel.VehicleType{kernel.UnknownVehicle})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should not share vehicle slice with caller", func(t *testing.T) {
		in := []kernel.VehicleType{kernel.Foot}
		o, err := order.NewOrder(id, shopID, location, 1, window, in)
		require.NoError(t, err)

		in[0] = kernel.Truck

		assert.True(t, o.AllowsVehicle(kernel.Foot))
		assert.False(t, o.AllowsVehicle(kernel.Truck))
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should keep persisted status and rejection", func(t *testing.T) {
		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), createValidLocation(t), 3, createValidWindow(t),
			[]kernel.VehicleType{kernel.Car}, order.Assembled, order.Late,
		)

		require.NoError(t, err)
		assert.True(t, o.IsAssembled())
		assert.Equal(t, order.Late, o.Rejection())
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), createValidLocation(t), 3, createValidWindow(t),
			[]kernel.VehicleType{kernel.Car}, order.Unknown, order.None,
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	var zero order.Order
	var nilOrder *order.Order

	require.ErrorIs(t, zero.Validate(), order.ErrOrderIsNotConstructed)
	require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)
}

func TestOrder_Lifecycle(t *testing.T) {
	t.Run("should go receipted to assembled to completed", func(t *testing.T) {
		o := createValidOrder(t)

		require.NoError(t, o.Assemble())
		assert.True(t, o.IsAssembled())
		require.NoError(t, o.Complete())
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("should not complete a receipted order", func(t *testing.T) {
		o := createValidOrder(t)

		err := o.Complete()

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Receipted, o.Status())
	})

	t.Run("should not assemble twice", func(t *testing.T) {
		o := createValidOrder(t)
		require.NoError(t, o.Assemble())

		require.Error(t, o.Assemble())
	})
}

func TestOrder_Rejection(t *testing.T) {
	o := createValidOrder(t)

	o.Reject(order.OverWeight)
	assert.Equal(t, order.OverWeight, o.Rejection())

	o.ClearRejection()
	assert.Equal(t, order.None, o.Rejection())
}

func TestOrder_OverrideDeadline(t *testing.T) {
	t.Run("should widen deadline until restored", func(t *testing.T) {
		// Given
		o := createValidOrder(t)
		original := o.Deadline()
		widened := now.Add(3 * time.Hour)

		// When
		restore := o.OverrideDeadline(widened)

		// Then
		assert.Equal(t, widened, o.Deadline())
		restore()
		assert.Equal(t, original, o.Deadline())
	})

	t.Run("should be idempotent on repeated restore", func(t *testing.T) {
		o := createValidOrder(t)
		original := o.Deadline()

		restore := o.OverrideDeadline(now.Add(5 * time.Hour))
		restore()
		restore()

		assert.Equal(t, original, o.Deadline())
	})

	t.Run("should keep window start", func(t *testing.T) {
		o := createValidOrder(t)

		defer o.OverrideDeadline(now.Add(-time.Hour))()

		assert.Equal(t, now, o.Window().From())
		assert.Equal(t, now, o.Deadline())
	})
}
