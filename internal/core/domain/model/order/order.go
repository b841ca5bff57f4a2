package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/pkg/errs"
	"deliveryplanner/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order bypassed NewOrder/RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is a customer order waiting to be delivered from a shop.
//
// Order follows these invariants:
//   - Identifier, shop identifier and location are valid
//   - Weight is positive
//   - The delivery window is a valid interval; its end is the deadline
//   - At least one vehicle type is allowed to carry it
//
// The rejection reason is planner output: it is overwritten on every planning
// cycle and never drives the lifecycle.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// shopID is the shop the order ships from
	shopID kernel.UUID

	// location is the delivery destination
	location kernel.Location

	// weight is the order weight in kilograms
	weight float64

	// window is the delivery window; window.To() is the deadline
	window kernel.Interval

	// status is the warehouse lifecycle state
	status Status

	// vehicleTypes are the vehicle types allowed to carry the order
	vehicleTypes []kernel.VehicleType

	// rejection is the reason set by the last planning cycle
	rejection RejectionReason

	// guard ensures the order was created via a constructor
	guard guard.ConstructorGuard
}

// NewOrder creates a Receipted order.
//
// Parameters:
//   - id: order identifier
//   - shopID: identifier of the shop the order ships from
//   - location: delivery destination
//   - weight: weight in kilograms, must be positive
//   - window: delivery window, its end is the deadline
//   - vehicleTypes: vehicle types allowed to carry the order, at least one
//
// Example:
//
//	window, _ := kernel.NewInterval(now, now.Add(time.Hour))
//	o, err := order.NewOrder(kernel.NewUUID(), shopID, location, 2.5, window,
//	    []kernel.VehicleType{kernel.Bicycle, kernel.Car})
func NewOrder(
	id kernel.UUID,
	shopID kernel.UUID,
	location kernel.Location,
	weight float64,
	window kernel.Interval,
	vehicleTypes []kernel.VehicleType,
) (*Order, error) {
	return RestoreOrder(id, shopID, location, weight, window, vehicleTypes, Receipted, None)
}

// RestoreOrder rebuilds an order from storage with its persisted status and
// last rejection reason.
func RestoreOrder(
	id kernel.UUID,
	shopID kernel.UUID,
	location kernel.Location,
	weight float64,
	window kernel.Interval,
	vehicleTypes []kernel.VehicleType,
	status Status,
	rejection RejectionReason,
) (*Order, error) {
	o := &Order{
		rejection: rejection,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setShopID(shopID),
		o.setLocation(location),
		o.setWeight(weight),
		o.setWindow(window),
		o.setVehicleTypes(vehicleTypes),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ShopID returns the identifier of the shop the order ships from.
func (o *Order) ShopID() kernel.UUID {
	return o.shopID
}

// Location returns the delivery destination.
func (o *Order) Location() kernel.Location {
	return o.location
}

// Weight returns the weight in kilograms.
func (o *Order) Weight() float64 {
	return o.weight
}

// Window returns the delivery window.
func (o *Order) Window() kernel.Interval {
	return o.window
}

// Deadline returns the latest acceptable delivery time.
func (o *Order) Deadline() time.Time {
	return o.window.To()
}

// Status returns the lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// IsAssembled reports whether the order is picked and ready to ship.
func (o *Order) IsAssembled() bool {
	return o.status == Assembled
}

// VehicleTypes returns a copy of the allowed vehicle types.
func (o *Order) VehicleTypes() []kernel.VehicleType {
	return slices.Clone(o.vehicleTypes)
}

// AllowsVehicle reports whether vt may carry the order.
func (o *Order) AllowsVehicle(vt kernel.VehicleType) bool {
	return slices.Contains(o.vehicleTypes, vt)
}

// Rejection returns the reason set by the last planning cycle.
func (o *Order) Rejection() RejectionReason {
	return o.rejection
}

// Reject records why the order cannot be delivered in this cycle.
func (o *Order) Reject(reason RejectionReason) {
	o.rejection = reason
}

// ClearRejection marks the order as deliverable.
func (o *Order) ClearRejection() {
	o.rejection = None
}

// Assemble marks a Receipted order as picked.
func (o *Order) Assemble() error {
	next, err := o.status.Assemble()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// Complete marks an Assembled order as delivered.
func (o *Order) Complete() error {
	next, err := o.status.Complete()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// OverrideDeadline moves the deadline to deadline for the duration of a
// planning phase. The returned function restores the previous deadline and is
// safe to call more than once.
//
// Example:
//
//	restore := o.OverrideDeadline(now.Add(2 * time.Hour))
//	defer restore()
func (o *Order) OverrideDeadline(deadline time.Time) (restore func()) {
	previous := o.window
	o.window = o.window.WithTo(deadline)
	return func() {
		o.window = previous
	}
}

func (o *Order) String() string {
	return fmt.Sprintf("Order(%s, %s)", o.id, o.status)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setShopID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shop id", err)
	}
	o.shopID = id
	return nil
}

func (o *Order) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.location = location
	return nil
}

func (o *Order) setWeight(weight float64) error {
	if weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight is invalid", fmt.Errorf("%v is not greater than 0", weight))
	}
	o.weight = weight
	return nil
}

func (o *Order) setWindow(window kernel.Interval) error {
	if window.IsZero() {
		return errs.NewValueIsRequiredError("delivery window")
	}
	o.window = window
	return nil
}

func (o *Order) setVehicleTypes(vehicleTypes []kernel.VehicleType) error {
	if len(vehicleTypes) == 0 {
		return errs.NewValueIsRequiredError("vehicle types")
	}
	for _, vt := range vehicleTypes {
		if err := vt.Validate(); err != nil {
			return err
		}
	}
	o.vehicleTypes = slices.Clone(vehicleTypes)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
