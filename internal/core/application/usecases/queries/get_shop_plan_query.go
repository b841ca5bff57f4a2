package queries

import (
	"errors"
	"time"

	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/pkg/guard"
)

var (
	ErrGetShopPlanQueryIsNotConstructed = errors.New(
		"GetShopPlanQuery must be created via NewGetShopPlanQuery constructor",
	)
)

// GetShopPlanQuery reads the most recent stored plan of a shop.
//
// Example:
//
//	query, _ := NewGetShopPlanQuery(shopID)
//	latest, err := handler.Handle(ctx, query)
//	var notFound *errs.ObjectNotFoundError
//	if errors.As(err, &notFound) {
//	    // the shop was never planned
//	}
type GetShopPlanQuery struct {
	shopID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetShopPlanQuery(shopID kernel.UUID) (GetShopPlanQuery, error) {
	if err := shopID.Validate(); err != nil {
		return GetShopPlanQuery{}, err
	}
	return GetShopPlanQuery{shopID: shopID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShopPlanQuery) Validate() error {
	return q.guard.Validate(ErrGetShopPlanQueryIsNotConstructed)
}

func (q GetShopPlanQuery) ShopID() kernel.UUID {
	return q.shopID
}

// GetShopPlanQueryResponse is a stored plan with its routes in plan order:
// assembled routes first, then receipted previews.
type GetShopPlanQueryResponse struct {
	ID                 kernel.UUID
	ShopID             kernel.UUID
	ReferenceTime      time.Time
	CreatedAt          time.Time
	Routes             []PlanRouteView
	UndeliveredIDs     []kernel.UUID
	NeverDeliverable   []kernel.UUID
	CandidateRoutes    int
	Failures           int
	PlanningDurationMs int64
}

// PlanRouteView is one stored route. CourierID is nil for receipted previews,
// which are not bound to a courier.
type PlanRouteView struct {
	Kind         string
	CourierID    *kernel.UUID
	VehicleType  kernel.VehicleType
	IsTaxi       bool
	Loop         bool
	OrderIDs     []kernel.UUID
	StopTimes    []time.Time
	DispatchFrom time.Time
	DispatchTo   time.Time
	Cost         float64
	DistanceKm   float64
}
