package services

import (
	"context"
	"log/slog"
	"time"

	"deliveryplanner/internal/core/domain/model/courier"
	"deliveryplanner/internal/core/domain/model/geo"
	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/core/domain/model/order"
	"deliveryplanner/internal/core/domain/model/shop"
)

// Bucket is the deliverability class of an order. Lower buckets win when an
// order's vehicle types disagree.
type Bucket int

const (
	BucketOnTime Bucket = iota
	BucketBehindTime
	BucketNoCourierNow
	BucketNeverDeliverable
)

func (b Bucket) String() string {
	switch b {
	case BucketOnTime:
		return "on_time"
	case BucketBehindTime:
		return "behind_time"
	case BucketNoCourierNow:
		return "no_courier_now"
	default:
		return "never_deliverable"
	}
}

// Classification partitions the input orders. Every order is in exactly one
// slice.
type Classification struct {
	OnTime           []*order.Order
	BehindTime       []*order.Order
	NoCourierNow     []*order.Order
	NeverDeliverable []*order.Order
}

// Len counts all classified orders.
func (c Classification) Len() int {
	return len(c.OnTime) + len(c.BehindTime) + len(c.NoCourierNow) + len(c.NeverDeliverable)
}

// OrderClassifier sorts orders by whether a single trip from the shop could
// reach them in time.
type OrderClassifier struct {
	provider *DistanceTimeProvider
	logger   *slog.Logger
}

// NewOrderClassifier creates a classifier; a nil logger discards output.
func NewOrderClassifier(provider *DistanceTimeProvider, logger *slog.Logger) *OrderClassifier {
	return &OrderClassifier{
		provider: provider,
		logger:   loggerOrDiscard(logger).With("component", "order_classifier"),
	}
}

type outcome struct {
	bucket Bucket
	reason order.RejectionReason
}

// Classify checks the shop-to-order hop of every plannable order for each of
// its vehicle types that has at least one courier:
//   - taxis are checked directly
//   - a shop courier is checked when Ready; otherwise its exploration profile
//     decides whether the type would work once a courier is back
//
// Orders whose types have no courier at all go to NoCourierNow with
// NoVehicleType; orders not Receipted or Assembled go to NeverDeliverable with
// NotPlannable. Each order's rejection reason is set to match its bucket.
func (c *OrderClassifier) Classify(
	ctx context.Context,
	s *shop.Shop,
	orders []*order.Order,
	couriers []*courier.Courier,
	referenceTime time.Time,
) (Classification, error) {
	if err := s.Validate(); err != nil {
		return Classification{}, err
	}

	byType := make(map[kernel.VehicleType][]*courier.Courier)
	for _, cr := range couriers {
		byType[cr.VehicleType()] = append(byType[cr.VehicleType()], cr)
	}

	var plannable []*order.Order
	for _, o := range orders {
		if o.Status().IsPlannable() {
			plannable = append(plannable, o)
		}
	}

	matrices := make(map[kernel.VehicleType]*geo.Matrix)
	if len(plannable) > 0 {
		for _, vt := range kernel.VehicleTypes() {
			if len(byType[vt]) == 0 || !anyAllows(plannable, vt) {
				continue
			}
			m, err := c.provider.MatrixFor(ctx, s, plannable, vt)
			if err != nil {
				c.logger.Warn("matrix unavailable for classification",
					"shop_id", s.ID().String(),
					"vehicle_type", vt.String(),
					"error", err,
				)
				continue
			}
			matrices[vt] = m
		}
	}

	var result Classification
	for _, o := range orders {
		out := c.classify(s, o, byType, matrices, referenceTime)
		if out.reason == order.None {
			o.ClearRejection()
		} else {
			o.Reject(out.reason)
		}

		switch out.bucket {
		case BucketOnTime:
			result.OnTime = append(result.OnTime, o)
		case BucketBehindTime:
			result.BehindTime = append(result.BehindTime, o)
		case BucketNoCourierNow:
			result.NoCourierNow = append(result.NoCourierNow, o)
		default:
			result.NeverDeliverable = append(result.NeverDeliverable, o)
		}
	}
	return result, nil
}

func (c *OrderClassifier) classify(
	s *shop.Shop,
	o *order.Order,
	byType map[kernel.VehicleType][]*courier.Courier,
	matrices map[kernel.VehicleType]*geo.Matrix,
	referenceTime time.Time,
) outcome {
	if !o.Status().IsPlannable() {
		return outcome{bucket: BucketNeverDeliverable, reason: order.NotPlannable}
	}

	var (
		best    outcome
		checked bool
	)
	consider := func(out outcome) {
		if !checked || out.bucket < best.bucket {
			best = out
			checked = true
		}
	}

	for _, vt := range o.VehicleTypes() {
		carriers := byType[vt]
		if len(carriers) == 0 {
			continue
		}
		matrix, ok := matrices[vt]
		if !ok {
			consider(outcome{bucket: BucketNoCourierNow, reason: order.GeoDataUnavailable})
			continue
		}
		req := courier.DeliveryRequest{
			ReferenceTime: referenceTime,
			Shop:          s,
			Orders:        []*order.Order{o},
			Matrix:        matrix,
		}
		for _, cr := range carriers {
			consider(c.check(cr, req))
			if best.bucket == BucketOnTime {
				return best
			}
		}
	}

	if !checked {
		return outcome{bucket: BucketNoCourierNow, reason: order.NoVehicleType}
	}
	return best
}

func (c *OrderClassifier) check(cr *courier.Courier, req courier.DeliveryRequest) outcome {
	if cr.IsAvailable() {
		return c.outcomeOf(cr.CheckDelivery(req))
	}

	out := c.outcomeOf(cr.ExplorationProfile().CheckDelivery(req))
	if out.bucket == BucketOnTime || out.bucket == BucketBehindTime {
		return outcome{bucket: BucketNoCourierNow, reason: order.NoCourierAvailable}
	}
	return out
}

func (c *OrderClassifier) outcomeOf(result courier.DeliveryResult, err error) outcome {
	if err != nil {
		c.logger.Warn("delivery check failed", "error", err)
		return outcome{bucket: BucketNoCourierNow, reason: order.GeoDataUnavailable}
	}
	if !result.IsRejected() {
		return outcome{bucket: BucketOnTime, reason: order.None}
	}
	switch {
	case result.Reason == order.Late:
		return outcome{bucket: BucketBehindTime, reason: order.Late}
	case result.Reason.IsCapacityLimit():
		return outcome{bucket: BucketNeverDeliverable, reason: result.Reason}
	default:
		return outcome{bucket: BucketNoCourierNow, reason: result.Reason}
	}
}

func anyAllows(orders []*order.Order, vt kernel.VehicleType) bool {
	for _, o := range orders {
		if o.AllowsVehicle(vt) {
			return true
		}
	}
	return false
}
