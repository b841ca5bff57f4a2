package commands

import (
	"errors"

	"deliveryplanner/internal/core/domain/model/courier"
	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/pkg/guard"
)

var (
	ErrSetCourierStatusCommandIsNotConstructed = errors.New(
		"SetCourierStatusCommand must be created via NewSetCourierStatusCommand constructor",
	)
)

// SetCourierStatusCommand reports a courier back at the shop, out on a route
// or off work. Only Ready shop couriers are bound to new routes.
//
// Example:
//
//	cmd, err := NewSetCourierStatusCommand(courierID, courier.Busy)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type SetCourierStatusCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	status    courier.Status

	guard guard.ConstructorGuard
}

func NewSetCourierStatusCommand(courierID kernel.UUID, status courier.Status) (SetCourierStatusCommand, error) {
	if err := errors.Join(courierID.Validate(), status.Validate()); err != nil {
		return SetCourierStatusCommand{}, err
	}
	return SetCourierStatusCommand{
		courierID: courierID,
		status:    status,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetCourierStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierStatusCommandIsNotConstructed)
}

func (c SetCourierStatusCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c SetCourierStatusCommand) Status() courier.Status {
	return c.status
}
