package queries

import (
	"context"

	"deliveryplanner/internal/core/domain/model/courier"
	"deliveryplanner/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShopCouriersQueryHandler reads couriers from the database.
type GetShopCouriersQueryHandler struct {
	db *gorm.DB
}

// NewGetShopCouriersQueryHandler creates a handler for courier retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetShopCouriersQueryHandler(db *gorm.DB) GetShopCouriersQueryHandler {
	return GetShopCouriersQueryHandler{db: db}
}

// Handle returns the shop's couriers sorted by name, then taxis sorted by
// name.
func (h GetShopCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetShopCouriersQuery,
) ([]GetShopCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	couriers := make([]GetShopCouriersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			vehicle_type,
			is_taxi,
			status
		FROM couriers
		WHERE shop_id = ? OR is_taxi
		ORDER BY is_taxi, name, id
	`, query.ShopID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetShopCouriersQueryResponse
		var id uuid.UUID
		var vehicleType, status string

		err = rows.Scan(
			&id,
			&resp.Name,
			&vehicleType,
			&resp.IsTaxi,
			&status,
		)
		if err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = courierID

		if resp.VehicleType, err = kernel.ParseVehicleType(vehicleType); err != nil {
			return nil, err
		}
		if resp.Status, err = courier.ParseStatus(status); err != nil {
			return nil, err
		}
		couriers = append(couriers, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}
