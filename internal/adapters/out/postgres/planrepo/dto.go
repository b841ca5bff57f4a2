// Package planrepo stores planning runs in the "plans" and "plan_routes"
// tables. Plans are written once and read through queries.
package planrepo

import (
	"time"

	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/core/domain/model/plan"
	"deliveryplanner/internal/core/domain/model/route"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Route kinds stored in PlanRouteDTO.Kind.
const (
	KindAssembled = "assembled"
	KindReceipted = "receipted"
)

// PlanDTO is the header row of a planning run.
type PlanDTO struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ShopID              uuid.UUID      `gorm:"type:uuid;not null;index:idx_plans_shop_created"`
	ReferenceTime       time.Time      `gorm:"not null"`
	CreatedAt           time.Time      `gorm:"not null;index:idx_plans_shop_created"`
	UndeliveredIDs      pq.StringArray `gorm:"type:text[]"`
	NeverDeliverableIDs pq.StringArray `gorm:"type:text[]"`
	CandidateRoutes     int
	Failures            int
	DurationMs          int64
	Routes              []PlanRouteDTO `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default "plan_dtos".
func (PlanDTO) TableName() string {
	return "plans"
}

// PlanRouteDTO is one route of a plan. Orders and stop times are parallel
// arrays in delivery order.
type PlanRouteDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	PlanID       uuid.UUID      `gorm:"type:uuid;not null;index"`
	Seq          int            `gorm:"not null"`
	Kind         string         `gorm:"type:varchar(16);not null"`
	CourierID    *uuid.UUID     `gorm:"type:uuid"`
	VehicleType  string         `gorm:"type:varchar(32);not null"`
	IsTaxi       bool           `gorm:"not null"`
	Loop         bool           `gorm:"not null"`
	OrderIDs     pq.StringArray `gorm:"type:text[];not null"`
	StopTimes    pq.StringArray `gorm:"type:text[];not null"`
	DispatchFrom time.Time      `gorm:"not null"`
	DispatchTo   time.Time      `gorm:"not null"`
	Cost         float64        `gorm:"type:double precision;not null"`
	DistanceKm   float64        `gorm:"type:double precision;not null"`
}

// TableName overrides GORM's default "plan_route_dtos".
func (PlanRouteDTO) TableName() string {
	return "plan_routes"
}

func fromDomain(p *plan.Plan, createdAt time.Time) PlanDTO {
	dto := PlanDTO{
		ID:                  p.ID.Bytes(),
		ShopID:              p.ShopID.Bytes(),
		ReferenceTime:       p.ReferenceTime,
		CreatedAt:           createdAt,
		UndeliveredIDs:      orderIDs(p.Undelivered),
		NeverDeliverableIDs: orderIDs(p.NeverDeliverable),
		CandidateRoutes:     p.Stats.CandidateRoutes,
		Failures:            len(p.Failures),
		DurationMs:          p.Stats.Duration.Milliseconds(),
	}

	seq := 0
	add := func(kind string, routes []*route.Route) {
		for _, r := range routes {
			dto.Routes = append(dto.Routes, routeFromDomain(r, dto.ID, seq, kind))
			seq++
		}
	}
	add(KindAssembled, p.Assembled)
	add(KindReceipted, p.Receipted)
	return dto
}

func routeFromDomain(r *route.Route, planID uuid.UUID, seq int, kind string) PlanRouteDTO {
	var courierID *uuid.UUID
	if c, ok := r.Courier(); ok {
		raw := c.ID().Bytes()
		courierID = &raw
	}

	ids := make(pq.StringArray, 0, r.Len())
	for _, id := range r.OrderIDs() {
		ids = append(ids, id.String())
	}
	times := make(pq.StringArray, 0, r.Len())
	for _, t := range r.StopTimes() {
		times = append(times, t.UTC().Format(time.RFC3339))
	}

	return PlanRouteDTO{
		ID:           kernel.NewUUID().Bytes(),
		PlanID:       planID,
		Seq:          seq,
		Kind:         kind,
		CourierID:    courierID,
		VehicleType:  r.VehicleType().String(),
		IsTaxi:       r.Carrier().IsTaxi(),
		Loop:         r.IsLoop(),
		OrderIDs:     ids,
		StopTimes:    times,
		DispatchFrom: r.Window().From(),
		DispatchTo:   r.Window().To(),
		Cost:         r.Cost(),
		DistanceKm:   r.DistanceKm(),
	}
}

type identified interface {
	ID() kernel.UUID
}

func orderIDs[T identified](items []T) pq.StringArray {
	out := make(pq.StringArray, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID().String())
	}
	return out
}
