package commands

import (
	"context"

	"deliveryplanner/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Checks that the shop exists and stores the order in Receipted status.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// The next planning run of the shop considers the order
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
// Returns errs.ObjectNotFoundError when the shop does not exist.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	if _, err := uow.ShopRepository().Get(ctx, cmd.ShopID()); err != nil {
		return err
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		cmd.ShopID(),
		cmd.Location(),
		cmd.Weight(),
		cmd.Window(),
		cmd.VehicleTypes(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
