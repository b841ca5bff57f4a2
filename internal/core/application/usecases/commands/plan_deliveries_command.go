package commands

import (
	"errors"
	"time"

	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/pkg/guard"
)

var (
	ErrPlanDeliveriesCommandIsNotConstructed = errors.New(
		"PlanDeliveriesCommand must be created via NewPlanDeliveriesCommand constructor",
	)
	ErrReferenceTimeIsRequired = errors.New("reference time is required")
)

// PlanDeliveriesCommand runs one planning cycle for a shop as of referenceTime.
//
// Example:
//
//	cmd, err := NewPlanDeliveriesCommand(shopID, time.Now())
//	if err != nil {
//	    return err
//	}
//	p, err := handler.Handle(ctx, cmd)
type PlanDeliveriesCommand struct { //nolint:recvcheck //using for validation
	shopID        kernel.UUID
	referenceTime time.Time

	guard guard.ConstructorGuard
}

func NewPlanDeliveriesCommand(shopID kernel.UUID, referenceTime time.Time) (PlanDeliveriesCommand, error) {
	cmd := PlanDeliveriesCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setShopID(shopID),
		cmd.setReferenceTime(referenceTime),
	); err != nil {
		return PlanDeliveriesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlanDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrPlanDeliveriesCommandIsNotConstructed)
}

func (c PlanDeliveriesCommand) ShopID() kernel.UUID {
	return c.shopID
}

func (c PlanDeliveriesCommand) ReferenceTime() time.Time {
	return c.referenceTime
}

func (c *PlanDeliveriesCommand) setShopID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shopID = id
	return nil
}

func (c *PlanDeliveriesCommand) setReferenceTime(t time.Time) error {
	if t.IsZero() {
		return ErrReferenceTimeIsRequired
	}
	c.referenceTime = t
	return nil
}
