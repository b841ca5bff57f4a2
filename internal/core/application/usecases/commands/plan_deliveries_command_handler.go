package commands

import (
	"context"
	"io"
	"log/slog"
	"time"

	"deliveryplanner/internal/core/domain/model/courier"
	"deliveryplanner/internal/core/domain/model/order"
	"deliveryplanner/internal/core/domain/model/plan"
	"deliveryplanner/internal/core/domain/model/shop"
)

// Planner builds a plan for one shop. services.PhaseOrchestrator implements it.
type Planner interface {
	Plan(
		ctx context.Context,
		s *shop.Shop,
		orders []*order.Order,
		couriers []*courier.Courier,
		referenceTime time.Time,
	) (*plan.Plan, error)
}

// PlanObserver is told about every finished run. metrics.PlanRecorder
// implements it.
type PlanObserver interface {
	ObservePlan(p *plan.Plan)
	ObservePlanError()
}

// PlanDeliveriesCommandHandler runs a planning cycle inside one transaction:
// the rejection reasons written on orders and the stored plan always match.
//
// Example:
//
//	handler := NewPlanDeliveriesCommandHandler(uowFactory, planner, metrics.PlanRecorder{}, logger)
//	p, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("planning failed: %w", err)
//	}
//	fmt.Printf("%d orders ship now\n", p.ShippedOrders())
type PlanDeliveriesCommandHandler struct {
	uowFactory UoWFactory
	planner    Planner
	observer   PlanObserver
	logger     *slog.Logger
}

// NewPlanDeliveriesCommandHandler wires the handler. observer and logger may
// be nil.
func NewPlanDeliveriesCommandHandler(
	uowFactory UoWFactory,
	planner Planner,
	observer PlanObserver,
	logger *slog.Logger,
) PlanDeliveriesCommandHandler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return PlanDeliveriesCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
		observer:   observer,
		logger:     logger.With("component", "plan_deliveries"),
	}
}

// Handle loads the shop, its plannable orders and the couriers available to
// it, plans, stores every order's rejection reason and the plan, and commits.
//
// A shop without plannable orders yields an empty plan and writes nothing. A
// shop without any courier or taxi gets every order back undelivered with
// order.NoCourierAvailable. Returns errs.ObjectNotFoundError for an unknown
// shop.
func (h PlanDeliveriesCommandHandler) Handle(ctx context.Context, cmd PlanDeliveriesCommand) (*plan.Plan, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	p, err := h.handle(ctx, cmd)
	if h.observer != nil {
		if err != nil {
			h.observer.ObservePlanError()
		} else if p != nil {
			h.observer.ObservePlan(p)
		}
	}
	return p, err
}

func (h PlanDeliveriesCommandHandler) handle(ctx context.Context, cmd PlanDeliveriesCommand) (*plan.Plan, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	s, err := uow.ShopRepository().Get(ctx, cmd.ShopID())
	if err != nil {
		return nil, err
	}

	ordersRepo := uow.OrderRepository()
	orders, err := ordersRepo.GetPlannable(ctx, s.ID())
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		h.logger.Debug("nothing to plan", "shop_id", s.ID().String())
		return plan.New(s.ID(), cmd.ReferenceTime()), nil
	}

	couriers, err := uow.CourierRepository().GetAvailableFor(ctx, s.ID())
	if err != nil {
		return nil, err
	}

	var result *plan.Plan
	if len(couriers) == 0 {
		h.logger.Warn("shop has no couriers", "shop_id", s.ID().String(), "orders", len(orders))
		result = plan.New(s.ID(), cmd.ReferenceTime())
		for _, o := range orders {
			o.Reject(order.NoCourierAvailable)
		}
		result.Undelivered = orders
	} else {
		result, err = h.planner.Plan(ctx, s, orders, couriers, cmd.ReferenceTime())
		if err != nil {
			return nil, err
		}
	}

	for _, o := range orders {
		if err = ordersRepo.Update(ctx, o); err != nil {
			return nil, err
		}
	}

	if err = uow.PlanRepository().Save(ctx, result); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return result, nil
}
