// Package courierrepo maps couriers and taxis to the "couriers" table.
package courierrepo

import (
	"time"

	"deliveryplanner/internal/core/domain/model/courier"
	"deliveryplanner/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO is the row of a courier. Shift and lunch are offsets from
// midnight in seconds; a taxi has no shop.
type CourierDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name        string     `gorm:"type:varchar(255);not null"`
	VehicleType string     `gorm:"type:varchar(32);not null"`
	IsTaxi      bool       `gorm:"not null;index"`
	ShopID      *uuid.UUID `gorm:"type:uuid;index"`
	Status      string     `gorm:"type:varchar(32);not null"`
	WorkStart   int64      `gorm:"not null"`
	WorkEnd     int64      `gorm:"not null"`
	LunchStart  *int64
	LunchEnd    *int64
	Tariff      TariffDTO `gorm:"embedded;embeddedPrefix:tariff_"`
}

// TableName overrides GORM's default "courier_dtos".
func (CourierDTO) TableName() string {
	return "couriers"
}

// TariffDTO is the embedded tariff of a courier.
type TariffDTO struct {
	MaxWeight          float64 `gorm:"type:double precision;not null"`
	MaxDistanceKm      float64 `gorm:"type:double precision;not null"`
	ServiceTimeSeconds int64   `gorm:"not null"`
	BaseCost           float64 `gorm:"type:double precision;not null"`
	CostPerKm          float64 `gorm:"type:double precision;not null"`
	CostPerHour        float64 `gorm:"type:double precision;not null"`
}

func fromDomain(c *courier.Courier) CourierDTO {
	var shopID *uuid.UUID
	if !c.IsTaxi() {
		raw := c.ShopID().Bytes()
		shopID = &raw
	}

	var lunchStart, lunchEnd *int64
	if lunch, ok := c.Lunch(); ok {
		start, end := seconds(lunch.Start()), seconds(lunch.End())
		lunchStart, lunchEnd = &start, &end
	}

	p := c.Tariff().Params()
	return CourierDTO{
		ID:          c.ID().Bytes(),
		Name:        c.Name(),
		VehicleType: c.VehicleType().String(),
		IsTaxi:      c.IsTaxi(),
		ShopID:      shopID,
		Status:      c.Status().String(),
		WorkStart:   seconds(c.Work().Start()),
		WorkEnd:     seconds(c.Work().End()),
		LunchStart:  lunchStart,
		LunchEnd:    lunchEnd,
		Tariff: TariffDTO{
			MaxWeight:          p.MaxWeight,
			MaxDistanceKm:      p.MaxDistanceKm,
			ServiceTimeSeconds: seconds(p.ServiceTime),
			BaseCost:           p.BaseCost,
			CostPerKm:          p.CostPerKm,
			CostPerHour:        p.CostPerHour,
		},
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var shopID kernel.UUID
	if dto.ShopID != nil {
		if shopID, err = kernel.UUIDFromBytes((*dto.ShopID)[:]); err != nil {
			return nil, err
		}
	}

	vt, err := kernel.ParseVehicleType(dto.VehicleType)
	if err != nil {
		return nil, err
	}
	status, err := courier.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	work, err := kernel.NewDailyWindow(duration(dto.WorkStart), duration(dto.WorkEnd))
	if err != nil {
		return nil, err
	}

	var lunch *kernel.DailyWindow
	if dto.LunchStart != nil && dto.LunchEnd != nil {
		w, lunchErr := kernel.NewDailyWindow(duration(*dto.LunchStart), duration(*dto.LunchEnd))
		if lunchErr != nil {
			return nil, lunchErr
		}
		lunch = &w
	}

	tariff, err := courier.NewTariff(courier.TariffParams{
		MaxWeight:     dto.Tariff.MaxWeight,
		MaxDistanceKm: dto.Tariff.MaxDistanceKm,
		ServiceTime:   duration(dto.Tariff.ServiceTimeSeconds),
		BaseCost:      dto.Tariff.BaseCost,
		CostPerKm:     dto.Tariff.CostPerKm,
		CostPerHour:   dto.Tariff.CostPerHour,
	})
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(id, dto.Name, vt, dto.IsTaxi, shopID, status, work, lunch, tariff)
}

func seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}

func duration(s int64) time.Duration {
	return time.Duration(s) * time.Second
}
