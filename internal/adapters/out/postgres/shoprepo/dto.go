// Package shoprepo maps shops to the "shops" table.
package shoprepo

import (
	"time"

	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/core/domain/model/shop"

	"github.com/google/uuid"
)

// ShopDTO is the row of a shop. Working hours are stored as offsets from
// midnight in seconds.
type ShopDTO struct {
	ID       uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name     string      `gorm:"type:varchar(255);not null"`
	Location LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	OpensAt  int64       `gorm:"not null"`
	ClosesAt int64       `gorm:"not null"`
}

// TableName overrides GORM's default "shop_dtos".
func (ShopDTO) TableName() string {
	return "shops"
}

// LocationDTO is an embedded latitude/longitude pair.
type LocationDTO struct {
	Latitude  float64 `gorm:"type:double precision;not null"`
	Longitude float64 `gorm:"type:double precision;not null"`
}

func fromDomain(s *shop.Shop) ShopDTO {
	return ShopDTO{
		ID:   s.ID().Bytes(),
		Name: s.Name(),
		Location: LocationDTO{
			Latitude:  s.Location().Latitude(),
			Longitude: s.Location().Longitude(),
		},
		OpensAt:  int64(s.WorkingHours().Start() / time.Second),
		ClosesAt: int64(s.WorkingHours().End() / time.Second),
	}
}

func toDomain(dto ShopDTO) (*shop.Shop, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	loc, err := kernel.NewLocation(dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}
	hours, err := kernel.NewDailyWindow(time.Duration(dto.OpensAt)*time.Second, time.Duration(dto.ClosesAt)*time.Second)
	if err != nil {
		return nil, err
	}
	return shop.NewShop(id, dto.Name, loc, hours)
}
