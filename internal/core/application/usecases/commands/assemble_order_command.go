package commands

import (
	"errors"

	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/pkg/guard"
)

var (
	ErrAssembleOrderCommandIsNotConstructed = errors.New(
		"AssembleOrderCommand must be created via NewAssembleOrderCommand constructor",
	)
)

// AssembleOrderCommand marks a picked order as Assembled, ready to leave the
// shop on the next route.
type AssembleOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssembleOrderCommand(orderID kernel.UUID) (AssembleOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AssembleOrderCommand{}, err
	}
	return AssembleOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssembleOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssembleOrderCommandIsNotConstructed)
}

func (c AssembleOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
