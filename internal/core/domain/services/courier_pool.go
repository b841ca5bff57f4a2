package services

import (
	"deliveryplanner/internal/core/domain/model/courier"
	"deliveryplanner/internal/core/domain/model/kernel"
)

// CourierPool is the set of real couriers a planning run may bind. Binding a
// shop courier consumes it; taxis are never consumed. Not safe for concurrent
// use: cover building walks it one route at a time.
type CourierPool struct {
	couriers []*courier.Courier
	consumed map[kernel.UUID]bool
}

// NewCourierPool keeps the couriers in the given order.
func NewCourierPool(couriers []*courier.Courier) *CourierPool {
	return &CourierPool{
		couriers: append([]*courier.Courier(nil), couriers...),
		consumed: make(map[kernel.UUID]bool),
	}
}

// Clone copies the pool including its consumption state.
func (p *CourierPool) Clone() *CourierPool {
	clone := NewCourierPool(p.couriers)
	for id := range p.consumed {
		clone.consumed[id] = true
	}
	return clone
}

// Remaining returns every courier not consumed yet, taxis included.
func (p *CourierPool) Remaining() []*courier.Courier {
	var out []*courier.Courier
	for _, c := range p.couriers {
		if !p.consumed[c.ID()] {
			out = append(out, c)
		}
	}
	return out
}

// Taxi returns a taxi of the vehicle type, preferring the one with preferID.
func (p *CourierPool) Taxi(vt kernel.VehicleType, preferID kernel.UUID) (*courier.Courier, bool) {
	var first *courier.Courier
	for _, c := range p.couriers {
		if !c.IsTaxi() || c.VehicleType() != vt {
			continue
		}
		if c.ID().IsEqual(preferID) {
			return c, true
		}
		if first == nil {
			first = c
		}
	}
	return first, first != nil
}

// Available returns unconsumed, available shop couriers of the vehicle type.
func (p *CourierPool) Available(vt kernel.VehicleType) []*courier.Courier {
	var out []*courier.Courier
	for _, c := range p.couriers {
		if c.IsTaxi() || c.VehicleType() != vt || !c.IsAvailable() || p.consumed[c.ID()] {
			continue
		}
		out = append(out, c)
	}
	return out
}

// IsConsumed reports whether c is already bound.
func (p *CourierPool) IsConsumed(c *courier.Courier) bool {
	return p.consumed[c.ID()]
}

// Consume takes a shop courier out of the pool. Taxis are left in.
func (p *CourierPool) Consume(c *courier.Courier) {
	if c.IsTaxi() {
		return
	}
	p.consumed[c.ID()] = true
}
