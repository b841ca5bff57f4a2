package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"deliveryplanner/internal/core/domain/model/courier"
	"deliveryplanner/internal/core/domain/model/geo"
	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/core/domain/model/order"
	"deliveryplanner/internal/core/domain/model/route"
	"deliveryplanner/internal/core/domain/model/shop"
)

// SortMode is the order candidate routes are walked in.
type SortMode int

const (
	// SortByCostPerOrder walks the cheapest routes per order first.
	SortByCostPerOrder SortMode = iota
	// SortByUrgency groups routes by their first order, then walks the ones
	// that reach their second stop (or only stop) soonest, then the cheapest.
	SortByUrgency
)

// AssembledPolicy restricts which routes may ship.
type AssembledPolicy int

const (
	AllowReceipted AssembledPolicy = iota
	// RequireAssembled skips routes with any order still being picked.
	RequireAssembled
	// RequireAssembledAfterLead is RequireAssembled ignoring the first stop.
	RequireAssembledAfterLead
)

// CoverRequest is one greedy cover over the candidate routes of a phase.
type CoverRequest struct {
	Shop          *shop.Shop
	ReferenceTime time.Time
	Routes        []*route.Route
	// Orders is the phase's order set; it is also what re-validation matrices
	// are built over.
	Orders []*order.Order
	Pool   *CourierPool
	Sort   SortMode
	Policy AssembledPolicy
}

// Cover is a set of bound routes with pairwise disjoint orders.
type Cover struct {
	Routes    []*route.Route
	Covered   map[kernel.UUID]bool
	Discarded int
}

// IsCovered reports whether an accepted route serves the order.
func (c Cover) IsCovered(id kernel.UUID) bool {
	return c.Covered[id]
}

// HasReceipted reports whether any accepted route carries a Receipted order.
func (c Cover) HasReceipted() bool {
	for _, r := range c.Routes {
		if r.HasReceipted() {
			return true
		}
	}
	return false
}

// RefinedCover is the outcome of the two-pass cover. First is the unrestricted
// pass; Final is what ships. Refined reports whether Final was rebuilt with
// assembled orders only.
type RefinedCover struct {
	First   Cover
	Final   Cover
	Refined bool
}

// CoverBuilder binds real couriers to candidate routes greedily.
type CoverBuilder struct {
	provider *DistanceTimeProvider
	logger   *slog.Logger
}

// NewCoverBuilder creates a cover builder; a nil logger discards output.
func NewCoverBuilder(provider *DistanceTimeProvider, logger *slog.Logger) *CoverBuilder {
	return &CoverBuilder{
		provider: provider,
		logger:   loggerOrDiscard(logger).With("component", "cover_builder"),
	}
}

// Build walks the sorted routes and accepts every route that passes the
// assembled policy, shares no order with an accepted route and can be bound to
// a real courier. Taxis bind directly and are never consumed; shop couriers
// are re-checked against their real constraints and consumed. A route that
// cannot be bound is discarded. The walk stops once every phase order is
// covered.
func (b *CoverBuilder) Build(ctx context.Context, req CoverRequest) (Cover, error) {
	if len(req.Routes) == 0 || len(req.Orders) == 0 {
		return Cover{}, ErrNothingToCover
	}

	phase := make(map[kernel.UUID]bool, len(req.Orders))
	for _, o := range req.Orders {
		phase[o.ID()] = true
	}

	w := &coverWalk{
		builder:  b,
		req:      req,
		matrices: make(map[kernel.VehicleType]*geo.Matrix),
		failed:   make(map[kernel.VehicleType]bool),
	}
	cover := Cover{Covered: make(map[kernel.UUID]bool, len(req.Orders))}
	coveredCount := 0

	for _, r := range sortRoutes(req.Routes, req.Sort) {
		if coveredCount == len(phase) {
			break
		}
		if !req.Policy.allows(r) || overlaps(r, cover.Covered) {
			continue
		}

		bound, ok := w.bind(ctx, r)
		if !ok {
			cover.Discarded++
			continue
		}

		cover.Routes = append(cover.Routes, bound)
		for _, id := range bound.OrderIDs() {
			cover.Covered[id] = true
			if phase[id] {
				coveredCount++
			}
		}
	}

	return cover, nil
}

// BuildRefined runs Build without restriction on a copy of the pool. If that
// pass ships a Receipted order, the cover is rebuilt on the real pool with
// assembled orders only, so orders still being picked cannot hold back the
// ones that are ready. Otherwise the first pass is final and its couriers are
// consumed from the real pool.
func (b *CoverBuilder) BuildRefined(ctx context.Context, req CoverRequest) (RefinedCover, error) {
	realPool := req.Pool

	req.Policy = AllowReceipted
	req.Pool = realPool.Clone()
	first, err := b.Build(ctx, req)
	if err != nil {
		return RefinedCover{}, err
	}

	if !first.HasReceipted() {
		for _, r := range first.Routes {
			if c, ok := r.Courier(); ok {
				realPool.Consume(c)
			}
		}
		return RefinedCover{First: first, Final: first}, nil
	}

	req.Policy = RequireAssembled
	req.Pool = realPool
	final, err := b.Build(ctx, req)
	if err != nil {
		return RefinedCover{}, err
	}
	return RefinedCover{First: first, Final: final, Refined: true}, nil
}

type coverWalk struct {
	builder  *CoverBuilder
	req      CoverRequest
	matrices map[kernel.VehicleType]*geo.Matrix
	failed   map[kernel.VehicleType]bool
}

func (w *coverWalk) bind(ctx context.Context, r *route.Route) (*route.Route, bool) {
	pool := w.req.Pool

	if real, ok := r.Courier(); ok {
		if real.IsTaxi() {
			return r, true
		}
		if pool.IsConsumed(real) || !real.IsAvailable() {
			return nil, false
		}
		pool.Consume(real)
		return r, true
	}

	vt := r.VehicleType()
	if r.Carrier().IsTaxi() {
		taxi, ok := pool.Taxi(vt, r.Carrier().ID())
		if !ok {
			return nil, false
		}
		bound, err := r.WithCourier(taxi)
		if err != nil {
			return nil, false
		}
		return bound, true
	}

	candidates := pool.Available(vt)
	if len(candidates) == 0 {
		return nil, false
	}
	matrix, ok := w.matrix(ctx, vt)
	if !ok {
		return nil, false
	}

	orders := r.Orders()
	for _, c := range candidates {
		result, err := c.CheckDelivery(courier.DeliveryRequest{
			ReferenceTime: w.req.ReferenceTime,
			Shop:          w.req.Shop,
			Orders:        orders,
			Loop:          r.IsLoop(),
			Matrix:        matrix,
		})
		if err != nil {
			w.builder.logger.Warn("courier check failed",
				"shop_id", w.req.Shop.ID().String(),
				"courier_id", c.ID().String(),
				"error", err,
			)
			continue
		}
		if !result.IsComplete(len(orders)) {
			continue
		}
		bound, err := r.BindTo(c, result)
		if err != nil {
			continue
		}
		pool.Consume(c)
		return bound, true
	}
	return nil, false
}

func (w *coverWalk) matrix(ctx context.Context, vt kernel.VehicleType) (*geo.Matrix, bool) {
	if m, ok := w.matrices[vt]; ok {
		return m, true
	}
	if w.failed[vt] {
		return nil, false
	}
	m, err := w.builder.provider.MatrixFor(ctx, w.req.Shop, w.req.Orders, vt)
	if err != nil {
		w.builder.logger.Warn("cannot re-validate routes",
			"shop_id", w.req.Shop.ID().String(),
			"vehicle_type", vt.String(),
			"error", err,
		)
		w.failed[vt] = true
		return nil, false
	}
	w.matrices[vt] = m
	return m, true
}

func (p AssembledPolicy) allows(r *route.Route) bool {
	switch p {
	case RequireAssembled:
		return r.AssembledOnly()
	case RequireAssembledAfterLead:
		return r.AssembledOnlyAfterLead()
	default:
		return true
	}
}

func overlaps(r *route.Route, covered map[kernel.UUID]bool) bool {
	for _, id := range r.OrderIDs() {
		if covered[id] {
			return true
		}
	}
	return false
}

func sortRoutes(routes []*route.Route, mode SortMode) []*route.Route {
	sorted := append([]*route.Route(nil), routes...)
	switch mode {
	case SortByUrgency:
		sort.SliceStable(sorted, func(i, j int) bool {
			a, b := sorted[i], sorted[j]
			if c := a.Lead().ID().Compare(b.Lead().ID()); c != 0 {
				return c < 0
			}
			if ta, tb := a.UrgencyTime(), b.UrgencyTime(); !ta.Equal(tb) {
				return ta.Before(tb)
			}
			return a.CostPerOrder() < b.CostPerOrder()
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CostPerOrder() < sorted[j].CostPerOrder()
		})
	}
	return sorted
}

func (m SortMode) String() string {
	if m == SortByUrgency {
		return "urgency"
	}
	return "cost_per_order"
}
