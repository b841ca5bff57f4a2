package route

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"deliveryplanner/internal/core/domain/model/courier"
	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/core/domain/model/order"
	"deliveryplanner/internal/core/domain/model/shop"
	"deliveryplanner/internal/pkg/errs"
)

// ImmediateDispatchWindow is how long a late route may wait for pickup.
const ImmediateDispatchWindow = time.Minute

var (
	// ErrRouteIsRejected is returned when building a route from a rejected check.
	ErrRouteIsRejected = errors.New("route has no deliverable stops")
	// ErrCarrierIsRequired is returned when a route has no carrier.
	ErrCarrierIsRequired = errs.NewValueIsRequiredError("carrier")
)

// Route is one trip of one carrier from the shop through an ordered sequence
// of orders. Routes live for a single planning cycle.
//
// During enumeration the carrier is a courier.ExplorationProfile; a route that
// ships is bound to a real *courier.Courier with BindTo.
type Route struct {
	orders       []*order.Order
	shop         *shop.Shop
	carrier      courier.Carrier
	loop         bool
	calculatedAt time.Time
	stopTimes    []time.Time
	window       kernel.Interval
	cost         float64
	distanceKm   float64
}

// NewRoute keeps the deliverable prefix of orders described by result.
//
// The dispatch window starts at departure and stays open for as long as every
// stop still meets its deadline: end = start + min(deadline - stop time).
func NewRoute(
	s *shop.Shop,
	carrier courier.Carrier,
	orders []*order.Order,
	loop bool,
	calculatedAt time.Time,
	result courier.DeliveryResult,
) (*Route, error) {
	if carrier == nil {
		return nil, ErrCarrierIsRequired
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if result.IsRejected() {
		return nil, fmt.Errorf("%w: %s", ErrRouteIsRejected, result.Reason)
	}
	if result.Delivered > len(orders) || len(result.StopTimes) != result.Delivered {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"delivery result",
			fmt.Errorf("%d stops delivered, %d times, %d orders", result.Delivered, len(result.StopTimes), len(orders)),
		)
	}

	prefix := slices.Clone(orders[:result.Delivered])
	slack := time.Duration(-1)
	for i, o := range prefix {
		d := o.Deadline().Sub(result.StopTimes[i])
		if d < 0 {
			d = 0
		}
		if slack < 0 || d < slack {
			slack = d
		}
	}

	window, err := kernel.NewInterval(result.Departure, result.Departure.Add(slack))
	if err != nil {
		return nil, err
	}

	return &Route{
		orders:       prefix,
		shop:         s,
		carrier:      carrier,
		loop:         loop,
		calculatedAt: calculatedAt,
		stopTimes:    slices.Clone(result.StopTimes),
		window:       window,
		cost:         result.Cost,
		distanceKm:   result.DistanceKm,
	}, nil
}

// BindTo returns a copy of the route bound to a real courier, with the timing
// and cost of the courier's own check.
func (r *Route) BindTo(c *courier.Courier, result courier.DeliveryResult) (*Route, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return NewRoute(r.shop, c, r.orders, r.loop, r.calculatedAt, result)
}

// WithCourier returns a copy of the route bound to c, keeping the candidate's
// timing. It is meant for carriers whose check is identical to the candidate's,
// such as a taxi bound to a route its own profile produced.
func (r *Route) WithCourier(c *courier.Courier) (*Route, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	bound := *r
	bound.carrier = c
	return &bound, nil
}

// Orders returns the stops in delivery order.
func (r *Route) Orders() []*order.Order {
	return slices.Clone(r.orders)
}

// Lead returns the first stop.
func (r *Route) Lead() *order.Order {
	return r.orders[0]
}

// Len returns the number of stops.
func (r *Route) Len() int {
	return len(r.orders)
}

func (r *Route) Shop() *shop.Shop {
	return r.shop
}

func (r *Route) Carrier() courier.Carrier {
	return r.carrier
}

// Courier returns the bound courier; ok is false while the route is still
// only a candidate.
func (r *Route) Courier() (c *courier.Courier, ok bool) {
	c, ok = r.carrier.(*courier.Courier)
	return c, ok
}

func (r *Route) VehicleType() kernel.VehicleType {
	return r.carrier.VehicleType()
}

func (r *Route) IsLoop() bool {
	return r.loop
}

func (r *Route) CalculatedAt() time.Time {
	return r.calculatedAt
}

// StopTimes returns the handover time of every stop.
func (r *Route) StopTimes() []time.Time {
	return slices.Clone(r.stopTimes)
}

// Window returns the dispatch window [start, end].
func (r *Route) Window() kernel.Interval {
	return r.window
}

func (r *Route) Cost() float64 {
	return r.cost
}

func (r *Route) DistanceKm() float64 {
	return r.distanceKm
}

// CostPerOrder is the cover ranking key.
func (r *Route) CostPerOrder() float64 {
	return r.cost / float64(len(r.orders))
}

// AssembledOnly reports whether every stop is an Assembled order.
func (r *Route) AssembledOnly() bool {
	return r.assembledFrom(0)
}

// AssembledOnlyAfterLead is AssembledOnly ignoring the first stop, used when
// a late order leads the route.
func (r *Route) AssembledOnlyAfterLead() bool {
	return r.assembledFrom(1)
}

func (r *Route) assembledFrom(i int) bool {
	for _, o := range r.orders[i:] {
		if !o.IsAssembled() {
			return false
		}
	}
	return true
}

// HasReceipted reports whether any stop is still being picked.
func (r *Route) HasReceipted() bool {
	return !r.AssembledOnly()
}

// ForceImmediateDispatch closes the dispatch window one minute after it opens.
func (r *Route) ForceImmediateDispatch() {
	r.window = r.window.WithTo(r.window.From().Add(ImmediateDispatchWindow))
}

// UrgencyTime is the second stop time, or the only stop time of a singleton.
func (r *Route) UrgencyTime() time.Time {
	if len(r.stopTimes) > 1 {
		return r.stopTimes[1]
	}
	return r.stopTimes[0]
}

// Contains reports whether the route serves the order.
func (r *Route) Contains(id kernel.UUID) bool {
	return slices.ContainsFunc(r.orders, func(o *order.Order) bool { return o.ID().IsEqual(id) })
}

// OrderIDs returns the stop identifiers in delivery order.
func (r *Route) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(r.orders))
	for i, o := range r.orders {
		ids[i] = o.ID()
	}
	return ids
}

func (r *Route) String() string {
	ids := make([]string, len(r.orders))
	for i, o := range r.orders {
		ids[i] = o.ID().String()
	}
	return fmt.Sprintf("Route(%s, %s, cost=%.2f, [%s])",
		r.carrier.VehicleType(), r.window, r.cost, strings.Join(ids, " "))
}
