package commands

import (
	"context"

	"deliveryplanner/internal/core/domain/model/courier"
)

// CreateCourierCommandHandler persists new couriers and taxis.
//
// Example:
//
//	handler := NewCreateCourierCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("courier creation failed: %w", err)
//	}
type CreateCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewCreateCourierCommandHandler creates a handler for courier creation operations.
func NewCreateCourierCommandHandler(uowFactory CourierUoWFactory) CreateCourierCommandHandler {
	return CreateCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle validates the tariff, checks the home shop of shop couriers and stores
// the courier in Ready status.
func (h CreateCourierCommandHandler) Handle(ctx context.Context, cmd CreateCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	tariff, err := courier.NewTariff(cmd.Tariff())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var c *courier.Courier
	if cmd.IsTaxi() {
		c, err = courier.NewTaxi(cmd.CourierID(), cmd.Name(), cmd.VehicleType(), tariff)
	} else {
		if _, err = uow.ShopRepository().Get(ctx, cmd.ShopID()); err != nil {
			return err
		}
		c, err = courier.NewCourier(cmd.CourierID(), cmd.Name(), cmd.VehicleType(), cmd.ShopID(), cmd.Work(), tariff)
	}
	if err != nil {
		return err
	}

	if err = uow.CourierRepository().Add(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
