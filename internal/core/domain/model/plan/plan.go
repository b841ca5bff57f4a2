package plan

import (
	"fmt"
	"time"

	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/core/domain/model/order"
	"deliveryplanner/internal/core/domain/model/route"
)

// Phase names a stage of one planning run.
type Phase string

const (
	PhaseClassify   Phase = "classify"
	PhaseOnTime     Phase = "on_time"
	PhaseBehindTime Phase = "behind_time"
	PhaseJoint      Phase = "joint"
)

// Failure records a collaborator error or an aborted phase. Orders lists the
// orders the failure made undeliverable; it is empty for failures other parts
// of the run could compensate, such as one vehicle type missing its matrix.
type Failure struct {
	Phase  Phase
	Scope  string
	Orders []kernel.UUID
	Err    error
}

func (f Failure) Error() string {
	if f.Scope == "" {
		return fmt.Sprintf("%s: %v", f.Phase, f.Err)
	}
	return fmt.Sprintf("%s/%s: %v", f.Phase, f.Scope, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Stats summarises the search effort of a run.
type Stats struct {
	CandidateRoutes int
	Families        int
	FailedFamilies  int
	Duration        time.Duration
}

// Plan is the outcome of one planning run for one shop.
//
// Every input order ends up in exactly one of Assembled, Receipted,
// Undelivered or NeverDeliverable; orders served by Receipted routes are only
// previewed and do not ship in this cycle.
type Plan struct {
	ID            kernel.UUID
	ShopID        kernel.UUID
	ReferenceTime time.Time
	// Assembled routes ship now.
	Assembled []*route.Route
	// Receipted routes are recommendations that include orders still being picked.
	Receipted []*route.Route
	// Undelivered orders could not be put on a route in this cycle.
	Undelivered []*order.Order
	// NeverDeliverable orders break a capacity limit of every vehicle type allowed to carry them.
	NeverDeliverable []*order.Order
	Failures         []Failure
	Stats            Stats
}

// New starts an empty plan.
func New(shopID kernel.UUID, referenceTime time.Time) *Plan {
	return &Plan{
		ID:            kernel.NewUUID(),
		ShopID:        shopID,
		ReferenceTime: referenceTime,
	}
}

// Routes returns assembled routes followed by receipted previews.
func (p *Plan) Routes() []*route.Route {
	out := make([]*route.Route, 0, len(p.Assembled)+len(p.Receipted))
	out = append(out, p.Assembled...)
	return append(out, p.Receipted...)
}

// ShippedOrders counts orders on assembled routes.
func (p *Plan) ShippedOrders() int {
	n := 0
	for _, r := range p.Assembled {
		n += r.Len()
	}
	return n
}

// Rejected returns undelivered and never deliverable orders.
func (p *Plan) Rejected() []*order.Order {
	out := make([]*order.Order, 0, len(p.Undelivered)+len(p.NeverDeliverable))
	out = append(out, p.Undelivered...)
	return append(out, p.NeverDeliverable...)
}

// HasFailures reports whether any phase or collaborator failed.
func (p *Plan) HasFailures() bool {
	return len(p.Failures) > 0
}
