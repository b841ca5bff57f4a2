package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetShopPlanQueryHandler reads stored plans.
type GetShopPlanQueryHandler struct {
	db *gorm.DB
}

func NewGetShopPlanQueryHandler(db *gorm.DB) GetShopPlanQueryHandler {
	return GetShopPlanQueryHandler{db: db}
}

// Handle returns the plan with the latest creation time.
// Returns errs.ObjectNotFoundError when the shop has no stored plan.
func (h GetShopPlanQueryHandler) Handle(ctx context.Context, query GetShopPlanQuery) (*GetShopPlanQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var (
		planID, shopID     uuid.UUID
		undelivered, never pq.StringArray
		resp               GetShopPlanQueryResponse
	)
	err := db.Raw(`
		SELECT
			id,
			shop_id,
			reference_time,
			created_at,
			undelivered_ids,
			never_deliverable_ids,
			candidate_routes,
			failures,
			duration_ms
		FROM plans
		WHERE shop_id = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, query.ShopID().Bytes()).Row().Scan(
		&planID,
		&shopID,
		&resp.ReferenceTime,
		&resp.CreatedAt,
		&undelivered,
		&never,
		&resp.CandidateRoutes,
		&resp.Failures,
		&resp.PlanningDurationMs,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("plan of shop", query.ShopID().String())
	}
	if err != nil {
		return nil, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(planID[:]); err != nil {
		return nil, err
	}
	if resp.ShopID, err = kernel.UUIDFromBytes(shopID[:]); err != nil {
		return nil, err
	}
	if resp.UndeliveredIDs, err = parseIDs(undelivered); err != nil {
		return nil, err
	}
	if resp.NeverDeliverable, err = parseIDs(never); err != nil {
		return nil, err
	}
	if resp.Routes, err = h.routes(ctx, planID); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (h GetShopPlanQueryHandler) routes(ctx context.Context, planID uuid.UUID) ([]PlanRouteView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			kind,
			courier_id,
			vehicle_type,
			is_taxi,
			loop,
			order_ids,
			stop_times,
			dispatch_from,
			dispatch_to,
			cost,
			distance_km
		FROM plan_routes
		WHERE plan_id = ?
		ORDER BY seq
	`, planID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]PlanRouteView, 0)
	for rows.Next() {
		var view PlanRouteView
		var courierID uuid.NullUUID
		var vehicleType string
		var orderIDs, stopTimes pq.StringArray

		err = rows.Scan(
			&view.Kind,
			&courierID,
			&vehicleType,
			&view.IsTaxi,
			&view.Loop,
			&orderIDs,
			&stopTimes,
			&view.DispatchFrom,
			&view.DispatchTo,
			&view.Cost,
			&view.DistanceKm,
		)
		if err != nil {
			return nil, err
		}

		if courierID.Valid {
			id, idErr := kernel.UUIDFromBytes(courierID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			view.CourierID = &id
		}
		if view.VehicleType, err = kernel.ParseVehicleType(vehicleType); err != nil {
			return nil, err
		}
		if view.OrderIDs, err = parseIDs(orderIDs); err != nil {
			return nil, err
		}
		if view.StopTimes, err = parseTimes(stopTimes); err != nil {
			return nil, err
		}
		routes = append(routes, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return routes, nil
}

func parseIDs(raw []string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseTimes(raw []string) ([]time.Time, error) {
	times := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, nil
}
