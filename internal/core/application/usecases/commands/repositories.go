// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"deliveryplanner/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ShopRepoFactory provides access to shop repository within a transaction.
	ShopRepoFactory interface {
		ShopRepository() ports.ShopRepository
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CourierRepoFactory provides access to courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// PlanRepoFactory provides access to plan repository within a transaction.
	PlanRepoFactory interface {
		PlanRepository() ports.PlanRepository
	}

	// ShopUoW manages transactions for shop-only operations.
	ShopUoW interface {
		TxManager
		ShopRepoFactory
	}

	// ShopUoWFactory creates new shop unit of work instances.
	ShopUoWFactory interface {
		Create() ShopUoW
	}

	// OrderUoW manages transactions for order operations. The shop repository
	// is there to check that the order's shop exists.
	OrderUoW interface {
		TxManager
		ShopRepoFactory
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CourierUoW manages transactions for courier operations.
	CourierUoW interface {
		TxManager
		ShopRepoFactory
		CourierRepoFactory
	}

	// CourierUoWFactory creates new courier unit of work instances.
	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// UoW manages transactions across every aggregate. A planning run reads
	// shops, orders and couriers and writes orders and plans.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orders, err := uow.OrderRepository().GetPlannable(ctx, shopID)
	//   // ... plan, update orders, save the plan
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ShopRepoFactory
		OrderRepoFactory
		CourierRepoFactory
		PlanRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
