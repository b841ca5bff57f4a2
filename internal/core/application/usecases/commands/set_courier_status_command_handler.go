package commands

import (
	"context"

	"deliveryplanner/internal/core/domain/model/courier"
)

// SetCourierStatusCommandHandler applies a status change to one courier.
type SetCourierStatusCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewSetCourierStatusCommandHandler(uowFactory CourierUoWFactory) SetCourierStatusCommandHandler {
	return SetCourierStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the courier, changes its status and stores it.
func (h SetCourierStatusCommandHandler) Handle(ctx context.Context, cmd SetCourierStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()

	c, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	switch cmd.Status() {
	case courier.Ready:
		c.MakeReady()
	case courier.Busy:
		c.MakeBusy()
	case courier.Offline:
		c.GoOffline()
	}

	if err = courierRepo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
