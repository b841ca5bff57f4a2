// Package orderrepo maps orders to the "orders" table.
package orderrepo

import (
	"time"

	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OrderDTO is the row of an order. Allowed vehicle types are a text array of
// their lower-case names.
type OrderDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ShopID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_orders_shop_status"`
	Location     LocationDTO    `gorm:"embedded;embeddedPrefix:location_"`
	Weight       float64        `gorm:"type:double precision;not null"`
	WindowFrom   time.Time      `gorm:"not null"`
	WindowTo     time.Time      `gorm:"not null"`
	VehicleTypes pq.StringArray `gorm:"type:text[];not null"`
	Status       int            `gorm:"not null;index:idx_orders_shop_status"`
	Rejection    string         `gorm:"type:varchar(64);not null;default:'none'"`
}

// TableName overrides GORM's default "order_dtos".
func (OrderDTO) TableName() string {
	return "orders"
}

// LocationDTO is an embedded latitude/longitude pair.
type LocationDTO struct {
	Latitude  float64 `gorm:"type:double precision;not null"`
	Longitude float64 `gorm:"type:double precision;not null"`
}

func fromDomain(o *order.Order) OrderDTO {
	vehicles := make(pq.StringArray, 0, len(o.VehicleTypes()))
	for _, vt := range o.VehicleTypes() {
		vehicles = append(vehicles, vt.String())
	}

	return OrderDTO{
		ID:     o.ID().Bytes(),
		ShopID: o.ShopID().Bytes(),
		Location: LocationDTO{
			Latitude:  o.Location().Latitude(),
			Longitude: o.Location().Longitude(),
		},
		Weight:       o.Weight(),
		WindowFrom:   o.Window().From(),
		WindowTo:     o.Window().To(),
		VehicleTypes: vehicles,
		Status:       int(o.Status()),
		Rejection:    o.Rejection().String(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return nil, err
	}
	loc, err := kernel.NewLocation(dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}
	window, err := kernel.NewInterval(dto.WindowFrom, dto.WindowTo)
	if err != nil {
		return nil, err
	}
	vehicles := make([]kernel.VehicleType, 0, len(dto.VehicleTypes))
	for _, name := range dto.VehicleTypes {
		vt, err := kernel.ParseVehicleType(name)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vt)
	}

	return order.RestoreOrder(
		id,
		shopID,
		loc,
		dto.Weight,
		window,
		vehicles,
		order.Status(dto.Status),
		order.ParseRejectionReason(dto.Rejection),
	)
}
