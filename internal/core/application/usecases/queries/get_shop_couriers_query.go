package queries

import (
	"errors"

	"deliveryplanner/internal/core/domain/model/courier"
	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/pkg/guard"
)

var (
	ErrGetShopCouriersQueryIsNotConstructed = errors.New(
		"GetShopCouriersQuery must be created via NewGetShopCouriersQuery constructor",
	)
)

// GetShopCouriersQuery lists the couriers a shop plans with: its own couriers
// and every taxi.
type GetShopCouriersQuery struct {
	shopID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetShopCouriersQuery(shopID kernel.UUID) (GetShopCouriersQuery, error) {
	if err := shopID.Validate(); err != nil {
		return GetShopCouriersQuery{}, err
	}
	return GetShopCouriersQuery{shopID: shopID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShopCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetShopCouriersQueryIsNotConstructed)
}

func (q GetShopCouriersQuery) ShopID() kernel.UUID {
	return q.shopID
}

// GetShopCouriersQueryResponse is the read model of a courier.
//
// Example:
//
//	response := GetShopCouriersQueryResponse{
//	    ID:          courierID,
//	    Name:        "Express Courier",
//	    VehicleType: kernel.Scooter,
//	    Status:      courier.Ready,
//	}
type GetShopCouriersQueryResponse struct {
	ID          kernel.UUID
	Name        string
	VehicleType kernel.VehicleType
	IsTaxi      bool
	Status      courier.Status
}
