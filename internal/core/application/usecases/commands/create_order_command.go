package commands

import (
	"errors"
	"slices"

	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrWeightIsInvalid         = errors.New("weight must be greater than 0")
	ErrWindowIsRequired        = errors.New("delivery window is required")
	ErrVehicleTypesAreRequired = errors.New("at least one vehicle type is required")
)

// CreateOrderCommand represents a request to accept a new delivery order at a
// shop. The order starts Receipted: it is being picked.
//
// Example:
//
//	window, _ := kernel.NewInterval(now, now.Add(90*time.Minute))
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), shopID, location, 2.5, window,
//	    []kernel.VehicleType{kernel.Bicycle, kernel.Car})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	shopID       kernel.UUID
	location     kernel.Location
	weight       float64
	window       kernel.Interval
	vehicleTypes []kernel.VehicleType

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// Validates identifiers and location, a positive weight, a non-empty window and
// at least one vehicle type. Returns every validation error joined.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	shopID kernel.UUID,
	location kernel.Location,
	weight float64,
	window kernel.Interval,
	vehicleTypes []kernel.VehicleType,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setShopID(shopID),
		orderCommand.setLocation(location),
		orderCommand.setWeight(weight),
		orderCommand.setWindow(window),
		orderCommand.setVehicleTypes(vehicleTypes),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ShopID returns the shop the order ships from.
func (c CreateOrderCommand) ShopID() kernel.UUID {
	return c.shopID
}

// Location returns the delivery destination.
func (c CreateOrderCommand) Location() kernel.Location {
	return c.location
}

// Weight returns the order weight in kilograms.
func (c CreateOrderCommand) Weight() float64 {
	return c.weight
}

// Window returns the delivery window.
func (c CreateOrderCommand) Window() kernel.Interval {
	return c.window
}

// VehicleTypes returns the vehicle types allowed to carry the order.
func (c CreateOrderCommand) VehicleTypes() []kernel.VehicleType {
	return slices.Clone(c.vehicleTypes)
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setShopID(shopID kernel.UUID) error {
	if err := shopID.Validate(); err != nil {
		return err
	}

	c.shopID = shopID
	return nil
}

func (c *CreateOrderCommand) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}

func (c *CreateOrderCommand) setWeight(weight float64) error {
	if weight <= 0 {
		return ErrWeightIsInvalid
	}

	c.weight = weight
	return nil
}

func (c *CreateOrderCommand) setWindow(window kernel.Interval) error {
	if window.IsZero() {
		return ErrWindowIsRequired
	}

	c.window = window
	return nil
}

func (c *CreateOrderCommand) setVehicleTypes(vehicleTypes []kernel.VehicleType) error {
	if len(vehicleTypes) == 0 {
		return ErrVehicleTypesAreRequired
	}

	c.vehicleTypes = slices.Clone(vehicleTypes)
	return nil
}
