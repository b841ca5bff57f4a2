package commands

import (
	"errors"
	"strings"

	"deliveryplanner/internal/core/domain/model/courier"
	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/pkg/guard"
)

var (
	ErrCreateCourierCommandIsNotConstructed = errors.New(
		"CreateCourierCommand must be created via NewCreateCourierCommand or NewCreateTaxiCommand constructor",
	)
	ErrCourierNameIsRequired = errors.New("courier name is required")
)

// CreateCourierCommand registers a shop courier or a taxi.
//
// Example:
//
//	shift, _ := kernel.NewDailyWindow(9*time.Hour, 18*time.Hour)
//	cmd, err := NewCreateCourierCommand(kernel.NewUUID(), "Alice", kernel.Bicycle, shopID, shift, params)
//	if err != nil {
//	    return fmt.Errorf("invalid courier data: %w", err)
//	}
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID   kernel.UUID
	name        string
	vehicleType kernel.VehicleType
	isTaxi      bool
	shopID      kernel.UUID
	work        kernel.DailyWindow
	tariff      courier.TariffParams

	guard guard.ConstructorGuard
}

// NewCreateCourierCommand describes a courier working for shopID.
func NewCreateCourierCommand(
	courierID kernel.UUID,
	name string,
	vehicleType kernel.VehicleType,
	shopID kernel.UUID,
	work kernel.DailyWindow,
	tariff courier.TariffParams,
) (CreateCourierCommand, error) {
	cmd := CreateCourierCommand{
		work:   work,
		tariff: tariff,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setName(name),
		cmd.setVehicleType(vehicleType),
		cmd.setShopID(shopID),
	); err != nil {
		return CreateCourierCommand{}, err
	}

	return cmd, nil
}

// NewCreateTaxiCommand describes an on-demand taxi available to every shop.
func NewCreateTaxiCommand(
	courierID kernel.UUID,
	name string,
	vehicleType kernel.VehicleType,
	tariff courier.TariffParams,
) (CreateCourierCommand, error) {
	cmd := CreateCourierCommand{
		isTaxi: true,
		work:   kernel.FullDay(),
		tariff: tariff,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setName(name),
		cmd.setVehicleType(vehicleType),
	); err != nil {
		return CreateCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through a constructor.
func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

func (c CreateCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c CreateCourierCommand) Name() string {
	return c.name
}

func (c CreateCourierCommand) VehicleType() kernel.VehicleType {
	return c.vehicleType
}

func (c CreateCourierCommand) IsTaxi() bool {
	return c.isTaxi
}

// ShopID returns the home shop; zero for taxis.
func (c CreateCourierCommand) ShopID() kernel.UUID {
	return c.shopID
}

func (c CreateCourierCommand) Work() kernel.DailyWindow {
	return c.work
}

func (c CreateCourierCommand) Tariff() courier.TariffParams {
	return c.tariff
}

func (c *CreateCourierCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.courierID = id
	return nil
}

func (c *CreateCourierCommand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrCourierNameIsRequired
	}
	c.name = name
	return nil
}

func (c *CreateCourierCommand) setVehicleType(vehicleType kernel.VehicleType) error {
	if err := vehicleType.Validate(); err != nil {
		return err
	}
	c.vehicleType = vehicleType
	return nil
}

func (c *CreateCourierCommand) setShopID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shopID = id
	return nil
}
