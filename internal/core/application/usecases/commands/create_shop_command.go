package commands

import (
	"errors"
	"strings"

	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/pkg/guard"
)

var (
	ErrCreateShopCommandIsNotConstructed = errors.New(
		"CreateShopCommand must be created via NewCreateShopCommand constructor",
	)
	ErrShopNameIsRequired = errors.New("shop name is required")
)

// CreateShopCommand registers a shop orders are shipped from.
//
// Example:
//
//	hours, _ := kernel.NewDailyWindow(8*time.Hour, 22*time.Hour)
//	cmd, err := NewCreateShopCommand(kernel.NewUUID(), "Central", location, hours)
//	if err != nil {
//	    return fmt.Errorf("invalid shop data: %w", err)
//	}
type CreateShopCommand struct { //nolint:recvcheck //using for validation
	shopID       kernel.UUID
	name         string
	location     kernel.Location
	workingHours kernel.DailyWindow

	guard guard.ConstructorGuard
}

// NewCreateShopCommand validates the identifier, name and location.
func NewCreateShopCommand(
	shopID kernel.UUID,
	name string,
	location kernel.Location,
	workingHours kernel.DailyWindow,
) (CreateShopCommand, error) {
	cmd := CreateShopCommand{
		workingHours: workingHours,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShopID(shopID),
		cmd.setName(name),
		cmd.setLocation(location),
	); err != nil {
		return CreateShopCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShopCommand) Validate() error {
	return c.guard.Validate(ErrCreateShopCommandIsNotConstructed)
}

func (c CreateShopCommand) ShopID() kernel.UUID {
	return c.shopID
}

func (c CreateShopCommand) Name() string {
	return c.name
}

func (c CreateShopCommand) Location() kernel.Location {
	return c.location
}

func (c CreateShopCommand) WorkingHours() kernel.DailyWindow {
	return c.workingHours
}

func (c *CreateShopCommand) setShopID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shopID = id
	return nil
}

func (c *CreateShopCommand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrShopNameIsRequired
	}
	c.name = name
	return nil
}

func (c *CreateShopCommand) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}
