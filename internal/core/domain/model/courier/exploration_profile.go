package courier

import (
	"fmt"

	"deliveryplanner/internal/core/domain/model/kernel"
)

// ExplorationProfile is the capability of a courier without its availability:
// vehicle type, taxi flag and tariff. Route enumeration plans with profiles so
// that every vehicle type is explored once, with no shift or lunch cutting the
// search. A profile is never bound to a route that ships; cover building
// re-checks every route against a real Courier.
type ExplorationProfile struct {
	id          kernel.UUID
	vehicleType kernel.VehicleType
	isTaxi      bool
	tariff      Tariff
}

// ID returns the identifier of the courier the profile was taken from.
func (p ExplorationProfile) ID() kernel.UUID {
	return p.id
}

func (p ExplorationProfile) VehicleType() kernel.VehicleType {
	return p.vehicleType
}

func (p ExplorationProfile) IsTaxi() bool {
	return p.isTaxi
}

func (p ExplorationProfile) Tariff() Tariff {
	return p.tariff
}

// CheckDelivery evaluates the stops with full-day availability.
func (p ExplorationProfile) CheckDelivery(req DeliveryRequest) (DeliveryResult, error) {
	return evaluate(p.tariff, availability{available: true, work: kernel.FullDay()}, req)
}

func (p ExplorationProfile) String() string {
	return fmt.Sprintf("profile(%s, taxi=%t)", p.vehicleType, p.isTaxi)
}
