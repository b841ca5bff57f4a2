package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"deliveryplanner/internal/core/domain/model/courier"
	"deliveryplanner/internal/core/domain/model/geo"
	"deliveryplanner/internal/core/domain/model/order"
	"deliveryplanner/internal/core/domain/model/route"
	"deliveryplanner/internal/core/domain/model/shop"
)

// EnumerationRequest asks for the candidate routes of one carrier.
type EnumerationRequest struct {
	Shop *shop.Shop
	// Pool holds orders the carrier's vehicle type may carry.
	Pool []*order.Order
	// FirstFixed switches to first-fixed search: every route starts with one
	// of Leaders followed by pool orders.
	FirstFixed bool
	Leaders    []*order.Order
	// Carrier is normally an exploration profile.
	Carrier       courier.DeliveryChecker
	Loop          bool
	ReferenceTime time.Time
}

// RouteEnumerator searches every order subset up to an adaptive depth and,
// for each subset, every stop order, keeping the best route per subset.
type RouteEnumerator struct {
	provider *DistanceTimeProvider
	perms    *PermutationTable
	limits   OrderLimits
	logger   *slog.Logger
}

// NewRouteEnumerator creates an enumerator; a nil logger discards output.
func NewRouteEnumerator(
	provider *DistanceTimeProvider,
	perms *PermutationTable,
	limits OrderLimits,
	logger *slog.Logger,
) *RouteEnumerator {
	return &RouteEnumerator{
		provider: provider,
		perms:    perms,
		limits:   limits,
		logger:   loggerOrDiscard(logger).With("component", "route_enumerator"),
	}
}

// Enumerate returns the kept routes of every subset size from 1 to the depth
// chosen by the order limits. A subset whose best ordering cannot deliver all
// of its stops yields nothing: its deliverable prefix is a smaller subset and
// is enumerated on its own. An empty pool yields no routes and no error.
//
// Context cancellation is checked between subset sizes.
func (e *RouteEnumerator) Enumerate(ctx context.Context, req EnumerationRequest) ([]*route.Route, error) {
	firstFixed := req.FirstFixed
	if (firstFixed && len(req.Leaders) == 0) || (!firstFixed && len(req.Pool) == 0) {
		return nil, nil
	}

	all := make([]*order.Order, 0, len(req.Leaders)+len(req.Pool))
	if firstFixed {
		all = append(all, req.Leaders...)
	}
	all = append(all, req.Pool...)

	matrix, err := e.provider.MatrixFor(ctx, req.Shop, all, req.Carrier.VehicleType())
	if err != nil {
		return nil, err
	}

	depth := e.limits.Depth(len(all))
	e.logger.Debug("enumerating routes",
		"shop_id", req.Shop.ID().String(),
		"vehicle_type", req.Carrier.VehicleType().String(),
		"taxi", req.Carrier.IsTaxi(),
		"candidates", len(all),
		"depth", depth,
		"first_fixed", firstFixed,
	)

	s := &subsetSearch{req: req, matrix: matrix}
	if firstFixed {
		err = e.enumerateFirstFixed(ctx, s, depth)
	} else {
		err = e.enumeratePlain(ctx, s, depth)
	}
	if err != nil {
		return nil, err
	}
	return s.routes, nil
}

func (e *RouteEnumerator) enumeratePlain(ctx context.Context, s *subsetSearch, depth int) error {
	pool := s.req.Pool
	for size := 1; size <= min(depth, len(pool)); size++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		perms, err := e.perms.Permutations(size)
		if err != nil {
			return err
		}
		subset := make([]*order.Order, size)
		err = forEachCombination(len(pool), size, func(idx []int) error {
			for i, j := range idx {
				subset[i] = pool[j]
			}
			return s.keepBest(subset, perms)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *RouteEnumerator) enumerateFirstFixed(ctx context.Context, s *subsetSearch, depth int) error {
	pool := s.req.Pool
	for size := 1; size <= min(depth, len(pool)+1); size++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		perms, err := e.perms.PermutationsFirstFixed(size)
		if err != nil {
			return err
		}
		subset := make([]*order.Order, size)
		for _, leader := range s.req.Leaders {
			subset[0] = leader
			err = forEachCombination(len(pool), size-1, func(idx []int) error {
				for i, j := range idx {
					subset[i+1] = pool[j]
				}
				return s.keepBest(subset, perms)
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

type subsetSearch struct {
	req    EnumerationRequest
	matrix *geo.Matrix
	routes []*route.Route
}

// keepBest evaluates every ordering of subset and keeps the one delivering the
// most stops, the cheapest among equals, if it delivers them all.
func (s *subsetSearch) keepBest(subset []*order.Order, perms [][]int) error {
	var (
		best        courier.DeliveryResult
		bestOrdered []*order.Order
		found       bool
		ordered     = make([]*order.Order, len(subset))
	)

	for _, perm := range perms {
		for i, j := range perm {
			ordered[i] = subset[j]
		}
		result, err := s.req.Carrier.CheckDelivery(courier.DeliveryRequest{
			ReferenceTime: s.req.ReferenceTime,
			Shop:          s.req.Shop,
			Orders:        ordered,
			Loop:          s.req.Loop,
			Matrix:        s.matrix,
		})
		if err != nil {
			return fmt.Errorf("check delivery: %w", err)
		}
		if !found || betterResult(result, best) {
			best = result
			bestOrdered = append(bestOrdered[:0], ordered...)
			found = true
		}
	}

	// A partial best is dropped: its delivered prefix is itself a smaller
	// subset, searched on its own, whose best route costs no more.
	if !found || !best.IsComplete(len(subset)) {
		return nil
	}

	r, err := route.NewRoute(s.req.Shop, s.req.Carrier, bestOrdered, s.req.Loop, s.req.ReferenceTime, best)
	if err != nil {
		return err
	}
	s.routes = append(s.routes, r)
	return nil
}

func betterResult(candidate, best courier.DeliveryResult) bool {
	if candidate.Delivered != best.Delivered {
		return candidate.Delivered > best.Delivered
	}
	return candidate.Delivered > 0 && candidate.Cost < best.Cost
}

// forEachCombination calls fn with every k-element increasing index
// combination of [0..n-1] in lexicographic order. idx is reused between calls.
func forEachCombination(n, k int, fn func(idx []int) error) error {
	if k < 0 || k > n {
		return nil
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		if err := fn(idx); err != nil {
			return err
		}
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return nil
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
