package ports

import (
	"context"

	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/core/domain/model/shop"
)

// ShopRepository defines the persistence contract for shops.
type ShopRepository interface {
	// Add persists a new shop.
	Add(ctx context.Context, aggregate *shop.Shop) error

	// Get retrieves a shop by identifier.
	// Returns errs.ObjectNotFoundError when the shop does not exist.
	Get(ctx context.Context, id kernel.UUID) (*shop.Shop, error)

	// GetAll returns every shop, used by the periodic planning job.
	GetAll(ctx context.Context) ([]*shop.Shop, error)
}
