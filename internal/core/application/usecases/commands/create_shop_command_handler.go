package commands

import (
	"context"

	"deliveryplanner/internal/core/domain/model/shop"
)

// CreateShopCommandHandler persists new shops.
type CreateShopCommandHandler struct {
	uowFactory ShopUoWFactory
}

func NewCreateShopCommandHandler(uowFactory ShopUoWFactory) CreateShopCommandHandler {
	return CreateShopCommandHandler{uowFactory: uowFactory}
}

// Handle creates the shop inside a transaction.
func (h CreateShopCommandHandler) Handle(ctx context.Context, cmd CreateShopCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	s, err := shop.NewShop(cmd.ShopID(), cmd.Name(), cmd.Location(), cmd.WorkingHours())
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

	if err = uow.ShopRepository().Add(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
