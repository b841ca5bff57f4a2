package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"deliveryplanner/internal/core/domain/model/courier"
	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/core/domain/model/order"
	"deliveryplanner/internal/core/domain/model/route"
	"deliveryplanner/internal/core/domain/model/shop"

	"golang.org/x/sync/errgroup"
)

// Family is a group of interchangeable carriers explored once.
type Family struct {
	VehicleType kernel.VehicleType
	Taxi        bool
}

func (f Family) String() string {
	if f.Taxi {
		return f.VehicleType.String() + "/taxi"
	}
	return f.VehicleType.String() + "/courier"
}

// FamilyFailure is the error one family's search ended with.
type FamilyFailure struct {
	Family Family
	Err    error
}

// DispatchRequest is one parallel search over all families of a phase.
type DispatchRequest struct {
	Shop          *shop.Shop
	Orders        []*order.Order
	FirstFixed    bool
	Leaders       []*order.Order
	Couriers      []*courier.Courier
	Loop          bool
	ReferenceTime time.Time
}

// DispatchResult collects the routes of every family that succeeded.
type DispatchResult struct {
	Routes   []*route.Route
	Families int
	Failures []FamilyFailure
}

// ParallelDispatcher runs one RouteEnumerator per route family concurrently.
type ParallelDispatcher struct {
	enumerator *RouteEnumerator
	logger     *slog.Logger
}

// NewParallelDispatcher creates a dispatcher; a nil logger discards output.
func NewParallelDispatcher(enumerator *RouteEnumerator, logger *slog.Logger) *ParallelDispatcher {
	return &ParallelDispatcher{
		enumerator: enumerator,
		logger:     loggerOrDiscard(logger).With("component", "parallel_dispatcher"),
	}
}

type familyTask struct {
	family         Family
	representative courier.ExplorationProfile
	routes         []*route.Route
	err            error
}

// Dispatch groups couriers into families keyed by vehicle type and taxi flag.
// A taxi family is represented by its first taxi; a courier family by its
// first available courier, and is skipped when none is available. Each family
// writes only its own slot; a failing family contributes no routes and does not
// stop the others. ErrNoRoutesFound is returned when no family produced a route.
func (d *ParallelDispatcher) Dispatch(ctx context.Context, req DispatchRequest) (DispatchResult, error) {
	tasks := families(req.Couriers)

	var g errgroup.Group
	for _, task := range tasks {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					task.err = fmt.Errorf("route family %s panicked: %v", task.family, r)
				}
			}()
			task.routes, task.err = d.enumerator.Enumerate(ctx, EnumerationRequest{
				Shop:          req.Shop,
				Pool:          eligible(req.Orders, task.family.VehicleType),
				FirstFixed:    req.FirstFixed,
				Leaders:       eligible(req.Leaders, task.family.VehicleType),
				Carrier:       task.representative,
				Loop:          req.Loop,
				ReferenceTime: req.ReferenceTime,
			})
			return nil
		})
	}
	_ = g.Wait()

	result := DispatchResult{Families: len(tasks)}
	for _, task := range tasks {
		if task.err != nil {
			d.logger.Warn("route family failed",
				"shop_id", req.Shop.ID().String(),
				"family", task.family.String(),
				"error", task.err,
			)
			result.Failures = append(result.Failures, FamilyFailure{Family: task.family, Err: task.err})
			continue
		}
		result.Routes = append(result.Routes, task.routes...)
	}

	if len(result.Routes) == 0 {
		return result, fmt.Errorf("%w: %d families, %d failed", ErrNoRoutesFound, result.Families, len(result.Failures))
	}
	return result, nil
}

func families(couriers []*courier.Courier) []*familyTask {
	byFamily := make(map[Family]*familyTask)
	var tasks []*familyTask
	for _, c := range couriers {
		if !c.IsAvailable() {
			continue
		}
		f := Family{VehicleType: c.VehicleType(), Taxi: c.IsTaxi()}
		if _, ok := byFamily[f]; ok {
			continue
		}
		task := &familyTask{family: f, representative: c.ExplorationProfile()}
		byFamily[f] = task
		tasks = append(tasks, task)
	}
	return tasks
}

func eligible(orders []*order.Order, vt kernel.VehicleType) []*order.Order {
	var out []*order.Order
	for _, o := range orders {
		if o.AllowsVehicle(vt) {
			out = append(out, o)
		}
	}
	return out
}
