package ports

import (
	"context"

	"deliveryplanner/internal/core/domain/model/courier"
	"deliveryplanner/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier or taxi.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists status and lunch changes.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAvailableFor returns the couriers a shop can plan with: its own
	// couriers in any status plus every taxi.
	//
	// Example:
	//   couriers, err := repo.GetAvailableFor(ctx, shopID)
	//   if err != nil {
	//       return fmt.Errorf("failed to load couriers: %w", err)
	//   }
	GetAvailableFor(ctx context.Context, shopID kernel.UUID) ([]*courier.Courier, error)
}
