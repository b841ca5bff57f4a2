package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"deliveryplanner/internal/core/domain/model/courier"
	"deliveryplanner/internal/core/domain/model/geo"
	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/core/domain/model/order"
	"deliveryplanner/internal/core/domain/model/plan"
	"deliveryplanner/internal/core/domain/model/route"
	"deliveryplanner/internal/core/domain/model/shop"
	"deliveryplanner/internal/core/ports"
)

// DefaultLateOrderGrace is added to the deadline of behind-time orders while
// they are planned.
const DefaultLateOrderGrace = 2 * time.Hour

// PlannerOptions tunes a PhaseOrchestrator.
type PlannerOptions struct {
	Limits         OrderLimits
	LateOrderGrace time.Duration
	// Loop plans routes that return to the shop.
	Loop bool
}

// DefaultPlannerOptions returns the default limits and grace, open routes.
func DefaultPlannerOptions() PlannerOptions {
	return PlannerOptions{
		Limits:         DefaultOrderLimits(),
		LateOrderGrace: DefaultLateOrderGrace,
	}
}

// PhaseOrchestrator runs a planning cycle for one shop: classification, route
// search and cover building for on-time and behind-time orders.
type PhaseOrchestrator struct {
	classifier *OrderClassifier
	dispatcher *ParallelDispatcher
	cover      *CoverBuilder
	provider   *DistanceTimeProvider
	opts       PlannerOptions
	logger     *slog.Logger
}

// NewPlanner wires a PhaseOrchestrator and its collaborators around a geo cache.
func NewPlanner(cache ports.GeoCache, opts PlannerOptions, logger *slog.Logger) (*PhaseOrchestrator, error) {
	provider, err := NewDistanceTimeProvider(cache)
	if err != nil {
		return nil, err
	}
	enumerator := NewRouteEnumerator(provider, NewPermutationTable(), opts.Limits, logger)
	return NewPhaseOrchestrator(
		NewOrderClassifier(provider, logger),
		NewParallelDispatcher(enumerator, logger),
		NewCoverBuilder(provider, logger),
		provider,
		opts,
		logger,
	), nil
}

// NewPhaseOrchestrator creates an orchestrator from its collaborators.
func NewPhaseOrchestrator(
	classifier *OrderClassifier,
	dispatcher *ParallelDispatcher,
	cover *CoverBuilder,
	provider *DistanceTimeProvider,
	opts PlannerOptions,
	logger *slog.Logger,
) *PhaseOrchestrator {
	if opts.LateOrderGrace <= 0 {
		opts.LateOrderGrace = DefaultLateOrderGrace
	}
	return &PhaseOrchestrator{
		classifier: classifier,
		dispatcher: dispatcher,
		cover:      cover,
		provider:   provider,
		opts:       opts,
		logger:     loggerOrDiscard(logger).With("component", "phase_orchestrator"),
	}
}

// Plan assigns orders to couriers for the shop at referenceTime.
//
// Missing shop, orders or couriers fail with ErrInvalidPlanRequest. Anything
// else yields a plan: a phase that fails is recorded in plan.Failures and its
// orders are returned undelivered with order.Internal.
//
// Branches, by which classification buckets are non-empty:
//   - on-time only: search and refined cover
//   - behind-time only: singleton routes per (order, courier), urgency cover,
//     immediate dispatch
//   - both, no Assembled on-time order: behind-time solve, then on-time solve
//     with the couriers it left
//   - both otherwise: first-fixed search led by behind-time orders, cover with
//     assembled orders after the lead, immediate dispatch, then on-time solve
//     over what is left
//
// Behind-time deadlines are widened to max(deadline, referenceTime) plus the
// late order grace while planning and restored before Plan returns.
func (p *PhaseOrchestrator) Plan(
	ctx context.Context,
	s *shop.Shop,
	orders []*order.Order,
	couriers []*courier.Courier,
	referenceTime time.Time,
) (*plan.Plan, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlanRequest, err)
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("%w: no orders", ErrInvalidPlanRequest)
	}
	if len(couriers) == 0 {
		return nil, fmt.Errorf("%w: no couriers", ErrInvalidPlanRequest)
	}

	started := time.Now()
	run := &planRun{
		orch: p,
		shop: s,
		ref:  referenceTime,
		pool: NewCourierPool(couriers),
		plan: plan.New(s.ID(), referenceTime),
	}

	var cls Classification
	if _, ok := run.phase(plan.PhaseClassify, orders, func() (phaseResult, error) {
		var err error
		cls, err = p.classifier.Classify(ctx, s, orders, couriers, referenceTime)
		return phaseResult{}, err
	}); ok {
		run.plan.NeverDeliverable = cls.NeverDeliverable
		run.plan.Undelivered = append(run.plan.Undelivered, cls.NoCourierNow...)
		p.solve(ctx, run, cls)
	}

	run.plan.Stats.Duration = time.Since(started)
	p.report(run.plan)
	return run.plan, nil
}

func (p *PhaseOrchestrator) solve(ctx context.Context, run *planRun, cls Classification) {
	if len(cls.BehindTime) > 0 {
		restore := widenDeadlines(cls.BehindTime, run.ref, p.opts.LateOrderGrace)
		defer restore()
	}

	switch {
	case len(cls.BehindTime) == 0 && len(cls.OnTime) > 0:
		run.solveOnTime(ctx, cls.OnTime)
	case len(cls.BehindTime) > 0 && len(cls.OnTime) == 0:
		run.solveBehindTime(ctx, cls.BehindTime)
	case len(cls.BehindTime) > 0:
		if !anyAssembled(cls.OnTime) {
			run.solveBehindTime(ctx, cls.BehindTime)
			run.solveOnTime(ctx, cls.OnTime)
			return
		}
		run.solveJoint(ctx, cls.OnTime, cls.BehindTime)
	}
}

func (p *PhaseOrchestrator) report(result *plan.Plan) {
	for _, o := range result.Rejected() {
		p.logger.Warn("order not planned",
			"shop_id", result.ShopID.String(),
			"order_id", o.ID().String(),
			"reason", o.Rejection().String(),
			"deadline", o.Deadline(),
			"reference_time", result.ReferenceTime,
		)
	}
	p.logger.Info("plan built",
		"shop_id", result.ShopID.String(),
		"assembled_routes", len(result.Assembled),
		"receipted_routes", len(result.Receipted),
		"undelivered", len(result.Undelivered),
		"never_deliverable", len(result.NeverDeliverable),
		"candidate_routes", result.Stats.CandidateRoutes,
		"failures", len(result.Failures),
		"duration", result.Stats.Duration,
	)
}

// widenDeadlines overrides the deadlines and returns the function restoring
// them in reverse order.
func widenDeadlines(orders []*order.Order, referenceTime time.Time, grace time.Duration) func() {
	restores := make([]func(), 0, len(orders))
	for _, o := range orders {
		base := o.Deadline()
		if base.Before(referenceTime) {
			base = referenceTime
		}
		restores = append(restores, o.OverrideDeadline(base.Add(grace)))
	}
	return func() {
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}
	}
}

type phaseResult struct {
	assembled   []*route.Route
	receipted   []*route.Route
	undelivered []*order.Order
}

// planRun is the mutable state of one Plan call.
type planRun struct {
	orch *PhaseOrchestrator
	shop *shop.Shop
	ref  time.Time
	pool *CourierPool
	plan *plan.Plan
}

// phase runs fn behind a boundary. On success its result is merged into the
// plan; on error or panic the failure is recorded and orders are returned
// undelivered with order.Internal.
func (r *planRun) phase(name plan.Phase, orders []*order.Order, fn func() (phaseResult, error)) (res phaseResult, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.fail(name, orders, fmt.Errorf("panic: %v", rec))
			res, ok = phaseResult{}, false
		}
	}()

	res, err := fn()
	if err != nil {
		r.fail(name, orders, err)
		return phaseResult{}, false
	}

	// A covered behind-time order still carries Late from classification.
	for _, rt := range res.assembled {
		for _, o := range rt.Orders() {
			o.ClearRejection()
		}
	}
	r.plan.Assembled = append(r.plan.Assembled, res.assembled...)
	r.plan.Receipted = append(r.plan.Receipted, res.receipted...)
	r.plan.Undelivered = append(r.plan.Undelivered, res.undelivered...)
	return res, true
}

func (r *planRun) fail(name plan.Phase, orders []*order.Order, err error) {
	ids := make([]kernel.UUID, len(orders))
	idStrings := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID()
		idStrings[i] = o.ID().String()
		o.Reject(order.Internal)
	}
	courierIDs := make([]string, 0)
	for _, c := range r.pool.Remaining() {
		courierIDs = append(courierIDs, c.ID().String())
	}

	r.orch.logger.Error("planning phase failed",
		"shop_id", r.shop.ID().String(),
		"phase", string(name),
		"order_ids", idStrings,
		"courier_ids", courierIDs,
		"error", err,
	)
	r.plan.Failures = append(r.plan.Failures, plan.Failure{Phase: name, Orders: ids, Err: err})
	r.plan.Undelivered = append(r.plan.Undelivered, orders...)
}

func (r *planRun) recordDispatch(name plan.Phase, d DispatchResult) {
	r.plan.Stats.CandidateRoutes += len(d.Routes)
	r.plan.Stats.Families += d.Families
	r.plan.Stats.FailedFamilies += len(d.Failures)
	for _, f := range d.Failures {
		r.plan.Failures = append(r.plan.Failures, plan.Failure{Phase: name, Scope: f.Family.String(), Err: f.Err})
	}
}

func (r *planRun) solveOnTime(ctx context.Context, orders []*order.Order) {
	r.phase(plan.PhaseOnTime, orders, func() (phaseResult, error) {
		dispatch, err := r.orch.dispatcher.Dispatch(ctx, DispatchRequest{
			Shop:          r.shop,
			Orders:        orders,
			Couriers:      r.pool.Remaining(),
			Loop:          r.orch.opts.Loop,
			ReferenceTime: r.ref,
		})
		r.recordDispatch(plan.PhaseOnTime, dispatch)
		if errors.Is(err, ErrNoRoutesFound) {
			return phaseResult{undelivered: rejectUncovered(orders, nil, noRoutesReason(dispatch))}, nil
		}
		if err != nil {
			return phaseResult{}, err
		}

		refined, err := r.orch.cover.BuildRefined(ctx, CoverRequest{
			Shop:          r.shop,
			ReferenceTime: r.ref,
			Routes:        dispatch.Routes,
			Orders:        orders,
			Pool:          r.pool,
			Sort:          SortByCostPerOrder,
		})
		if err != nil {
			return phaseResult{}, err
		}

		res := phaseResult{assembled: refined.Final.Routes}
		shown := make(map[kernel.UUID]bool, len(orders))
		for id := range refined.Final.Covered {
			shown[id] = true
		}
		if refined.Refined {
			for _, rt := range refined.First.Routes {
				if !rt.HasReceipted() || overlaps(rt, shown) {
					continue
				}
				res.receipted = append(res.receipted, rt)
				for _, id := range rt.OrderIDs() {
					shown[id] = true
				}
			}
		}
		res.undelivered = rejectUncovered(orders, shown, order.NotCovered)
		return res, nil
	})
}

func (r *planRun) solveBehindTime(ctx context.Context, orders []*order.Order) {
	r.phase(plan.PhaseBehindTime, orders, func() (phaseResult, error) {
		routes := r.singletons(ctx, orders)
		r.plan.Stats.CandidateRoutes += len(routes)
		if len(routes) == 0 {
			return phaseResult{undelivered: rejectUncovered(orders, nil, order.NoCourierAvailable)}, nil
		}

		cover, err := r.orch.cover.Build(ctx, CoverRequest{
			Shop:          r.shop,
			ReferenceTime: r.ref,
			Routes:        routes,
			Orders:        orders,
			Pool:          r.pool,
			Sort:          SortByUrgency,
		})
		if err != nil {
			return phaseResult{}, err
		}
		for _, rt := range cover.Routes {
			rt.ForceImmediateDispatch()
		}
		return phaseResult{
			assembled:   cover.Routes,
			undelivered: rejectUncovered(orders, cover.Covered, order.NotCovered),
		}, nil
	})
}

// singletons builds one route per (order, real courier) pair the courier can
// serve. A vehicle type without a matrix is recorded and skipped.
func (r *planRun) singletons(ctx context.Context, orders []*order.Order) []*route.Route {
	couriers := r.pool.Remaining()
	var routes []*route.Route
	for _, vt := range kernel.VehicleTypes() {
		var carriers []*courier.Courier
		for _, c := range couriers {
			if c.VehicleType() == vt && c.IsAvailable() {
				carriers = append(carriers, c)
			}
		}
		pool := eligible(orders, vt)
		if len(carriers) == 0 || len(pool) == 0 {
			continue
		}

		matrix, err := r.orch.provider.MatrixFor(ctx, r.shop, pool, vt)
		if err != nil {
			r.plan.Failures = append(r.plan.Failures, plan.Failure{Phase: plan.PhaseBehindTime, Scope: vt.String(), Err: err})
			continue
		}
		for _, o := range pool {
			for _, c := range carriers {
				if rt := r.singleton(o, c, matrix); rt != nil {
					routes = append(routes, rt)
				}
			}
		}
	}
	return routes
}

func (r *planRun) singleton(o *order.Order, c *courier.Courier, matrix *geo.Matrix) *route.Route {
	stops := []*order.Order{o}
	result, err := c.CheckDelivery(courier.DeliveryRequest{
		ReferenceTime: r.ref,
		Shop:          r.shop,
		Orders:        stops,
		Loop:          r.orch.opts.Loop,
		Matrix:        matrix,
	})
	if err != nil || !result.IsComplete(1) {
		return nil
	}
	rt, err := route.NewRoute(r.shop, c, stops, r.orch.opts.Loop, r.ref, result)
	if err != nil {
		return nil
	}
	return rt
}

func (r *planRun) solveJoint(ctx context.Context, onTime, behind []*order.Order) {
	all := make([]*order.Order, 0, len(behind)+len(onTime))
	all = append(all, behind...)
	all = append(all, onTime...)

	var covered map[kernel.UUID]bool
	_, ok := r.phase(plan.PhaseJoint, all, func() (phaseResult, error) {
		dispatch, err := r.orch.dispatcher.Dispatch(ctx, DispatchRequest{
			Shop:          r.shop,
			Orders:        onTime,
			FirstFixed:    true,
			Leaders:       behind,
			Couriers:      r.pool.Remaining(),
			Loop:          r.orch.opts.Loop,
			ReferenceTime: r.ref,
		})
		r.recordDispatch(plan.PhaseJoint, dispatch)
		if errors.Is(err, ErrNoRoutesFound) {
			return phaseResult{undelivered: rejectUncovered(behind, nil, noRoutesReason(dispatch))}, nil
		}
		if err != nil {
			return phaseResult{}, err
		}

		cover, err := r.orch.cover.Build(ctx, CoverRequest{
			Shop:          r.shop,
			ReferenceTime: r.ref,
			Routes:        dispatch.Routes,
			Orders:        all,
			Pool:          r.pool,
			Sort:          SortByUrgency,
			Policy:        RequireAssembledAfterLead,
		})
		if err != nil {
			return phaseResult{}, err
		}
		for _, rt := range cover.Routes {
			rt.ForceImmediateDispatch()
		}
		covered = cover.Covered
		return phaseResult{
			assembled:   cover.Routes,
			undelivered: rejectUncovered(behind, cover.Covered, order.NotCovered),
		}, nil
	})
	if !ok {
		return
	}

	var leftover []*order.Order
	for _, o := range onTime {
		if !covered[o.ID()] {
			leftover = append(leftover, o)
		}
	}
	if len(leftover) > 0 {
		r.solveOnTime(ctx, leftover)
	}
}

// rejectUncovered returns the orders not in covered, giving reason to those
// that carry no rejection yet.
func rejectUncovered(orders []*order.Order, covered map[kernel.UUID]bool, reason order.RejectionReason) []*order.Order {
	var out []*order.Order
	for _, o := range orders {
		if covered[o.ID()] {
			continue
		}
		if o.Rejection() == order.None {
			o.Reject(reason)
		}
		out = append(out, o)
	}
	return out
}

func noRoutesReason(d DispatchResult) order.RejectionReason {
	if d.Families == 0 {
		return order.NoCourierAvailable
	}
	if len(d.Failures) == d.Families {
		for _, f := range d.Failures {
			if !errors.Is(f.Err, ErrMatrixUnavailable) {
				return order.NotCovered
			}
		}
		return order.GeoDataUnavailable
	}
	return order.NotCovered
}

func anyAssembled(orders []*order.Order) bool {
	for _, o := range orders {
		if o.IsAssembled() {
			return true
		}
	}
	return false
}
