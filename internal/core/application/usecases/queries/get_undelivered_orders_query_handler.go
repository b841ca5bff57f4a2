package queries

import (
	"context"

	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUndeliveredOrdersQueryHandler reads rejected open orders from the
// database.
type GetUndeliveredOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUndeliveredOrdersQueryHandler creates a handler on a GORM connection.
func NewGetUndeliveredOrdersQueryHandler(db *gorm.DB) GetUndeliveredOrdersQueryHandler {
	return GetUndeliveredOrdersQueryHandler{db: db}
}

// Handle returns Receipted and Assembled orders of the shop whose last
// rejection reason is not "none", earliest deadline first.
func (h GetUndeliveredOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUndeliveredOrdersQuery,
) ([]GetUndeliveredOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetUndeliveredOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			location_latitude,
			location_longitude,
			window_to,
			status,
			rejection
		FROM orders
		WHERE shop_id = ? AND status IN ? AND rejection <> ?
		ORDER BY window_to, id
	`, query.ShopID().Bytes(), []int{int(order.Receipted), int(order.Assembled)}, order.None.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetUndeliveredOrdersQueryResponse
		var id uuid.UUID
		var latitude, longitude float64
		var status int
		var rejection string

		err = rows.Scan(
			&id,
			&latitude,
			&longitude,
			&resp.Deadline,
			&status,
			&rejection,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		location, locErr := kernel.NewLocation(latitude, longitude)
		if locErr != nil {
			return nil, locErr
		}
		resp.Location = location
		resp.Status = order.Status(status)
		resp.Rejection = order.ParseRejectionReason(rejection)
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
