package commands

import (
	"context"
)

// AssembleOrderCommandHandler moves an order from Receipted to Assembled.
//
// Example:
//
//	handler := NewAssembleOrderCommandHandler(uowFactory)
//	cmd, _ := NewAssembleOrderCommand(orderID)
//	var notFound *errs.ObjectNotFoundError
//	switch err := handler.Handle(ctx, cmd); {
//	case errors.As(err, &notFound):
//	    log.Println("Unknown order")
//	case err != nil:
//	    log.Printf("Assembly failed: %v", err)
//	}
type AssembleOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAssembleOrderCommandHandler(uowFactory OrderUoWFactory) AssembleOrderCommandHandler {
	return AssembleOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order, applies the status transition and stores it.
// Assembling an order twice or a completed order is an error.
func (h AssembleOrderCommandHandler) Handle(ctx context.Context, cmd AssembleOrderCommand) error {
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

	ordersRepo := uow.OrderRepository()

	o, err := ordersRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.Assemble(); err != nil {
		return err
	}

	if err = ordersRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
