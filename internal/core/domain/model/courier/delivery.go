package courier

import (
	"errors"
	"fmt"
	"time"

	"deliveryplanner/internal/core/domain/model/geo"
	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/core/domain/model/order"
	"deliveryplanner/internal/core/domain/model/shop"
)

// ErrInvalidDeliveryRequest is returned by CheckDelivery when the request is
// missing its shop, matrix or stops.
var ErrInvalidDeliveryRequest = errors.New("invalid delivery request")

// Carrier is anything a route can be planned for: a real courier or taxi, or
// the exploration profile of one.
type Carrier interface {
	ID() kernel.UUID
	VehicleType() kernel.VehicleType
	IsTaxi() bool
}

// DeliveryChecker evaluates an ordered sequence of stops.
type DeliveryChecker interface {
	Carrier
	CheckDelivery(req DeliveryRequest) (DeliveryResult, error)
}

// DeliveryRequest is one feasibility question: can the carrier leave Shop at
// ReferenceTime and serve Orders in this exact order?
type DeliveryRequest struct {
	ReferenceTime time.Time
	Shop          *shop.Shop
	Orders        []*order.Order
	// Loop routes return to the shop after the last stop.
	Loop bool
	// Matrix must contain the shop and every order, for the carrier's vehicle type.
	Matrix *geo.Matrix
}

// DeliveryResult describes the longest deliverable prefix of the requested
// stops. Delivered == 0 is a rejection and Reason says why; a partial prefix
// carries the reason the next stop was cut.
type DeliveryResult struct {
	// Delivered is the length of the deliverable prefix.
	Delivered int
	// Cost prices the prefix, including the way back for loop routes.
	Cost float64
	// DistanceKm is the length of the prefix trip.
	DistanceKm float64
	// StopTimes holds the handover time of every delivered stop.
	StopTimes []time.Time
	// Departure is when the carrier leaves the shop.
	Departure time.Time
	// Finish is when the carrier is done: after the last service, or back at
	// the shop for loop routes.
	Finish time.Time
	Reason order.RejectionReason
}

// IsRejected reports whether no stop can be delivered.
func (r DeliveryResult) IsRejected() bool {
	return r.Delivered == 0
}

// IsComplete reports whether all n requested stops can be delivered.
func (r DeliveryResult) IsComplete(n int) bool {
	return r.Delivered == n && n > 0
}

// availability is what separates a real courier from an exploration profile.
type availability struct {
	available bool
	work      kernel.DailyWindow
	lunch     *kernel.DailyWindow
}

func evaluate(tariff Tariff, avail availability, req DeliveryRequest) (DeliveryResult, error) {
	if req.Shop == nil || req.Matrix == nil || len(req.Orders) == 0 {
		return DeliveryResult{}, ErrInvalidDeliveryRequest
	}

	shopIdx, ok := req.Matrix.IndexOf(req.Shop.ID())
	if !ok {
		return DeliveryResult{}, fmt.Errorf("%w: shop %s", geo.ErrPointNotInMatrix, req.Shop.ID())
	}
	stopIdx := make([]int, len(req.Orders))
	for i, o := range req.Orders {
		idx, found := req.Matrix.IndexOf(o.ID())
		if !found {
			return DeliveryResult{}, fmt.Errorf("%w: order %s", geo.ErrPointNotInMatrix, o.ID())
		}
		stopIdx[i] = idx
	}

	if !avail.available {
		return DeliveryResult{Reason: order.NoCourierAvailable}, nil
	}

	departure, open := req.Shop.EarliestDeparture(req.ReferenceTime)
	if !open {
		return DeliveryResult{Reason: order.ShopClosed}, nil
	}
	shift := avail.work.On(req.ReferenceTime)
	if departure.Before(shift.From()) {
		departure = shift.From()
	}
	if departure.After(shift.To()) {
		return DeliveryResult{Reason: order.OutOfShift}, nil
	}
	if departure.After(req.Shop.OpeningOn(req.ReferenceTime).To()) {
		return DeliveryResult{Reason: order.ShopClosed}, nil
	}
	var lunch *kernel.Interval
	if avail.lunch != nil {
		l := avail.lunch.On(req.ReferenceTime)
		lunch = &l
	}

	var (
		at       = departure
		prev     = shopIdx
		distance float64
		weight   float64
		stops    = make([]time.Time, 0, len(req.Orders))
		reason   = order.None
	)

	for i, o := range req.Orders {
		leg := req.Matrix.At(prev, stopIdx[i])

		weight += o.Weight()
		if weight > tariff.maxWeight {
			reason = order.OverWeight
			break
		}

		total := distance + leg.DistanceKm
		if req.Loop {
			total += req.Matrix.At(stopIdx[i], shopIdx).DistanceKm
		}
		if total > tariff.maxDistanceKm {
			reason = order.OverDistance
			break
		}

		arrival := at.Add(leg.Time)
		if arrival.Before(o.Window().From()) {
			arrival = o.Window().From()
		}
		if arrival.After(shift.To()) || (lunch != nil && lunch.Contains(arrival)) {
			reason = order.OutOfShift
			break
		}
		if arrival.After(o.Deadline()) {
			reason = order.Late
			break
		}

		stops = append(stops, arrival)
		distance += leg.DistanceKm
		at = arrival.Add(tariff.serviceTime)
		prev = stopIdx[i]
	}

	if len(stops) == 0 {
		return DeliveryResult{Reason: reason, Departure: departure}, nil
	}

	if req.Loop {
		back := req.Matrix.At(prev, shopIdx)
		distance += back.DistanceKm
		at = at.Add(back.Time)
	}

	return DeliveryResult{
		Delivered:  len(stops),
		Cost:       tariff.Cost(distance, at.Sub(departure)),
		DistanceKm: distance,
		StopTimes:  stops,
		Departure:  departure,
		Finish:     at,
		Reason:     reason,
	}, nil
}
