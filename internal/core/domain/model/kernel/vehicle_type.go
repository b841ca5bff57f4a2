package kernel

import (
	"fmt"
	"strings"

	"deliveryplanner/internal/pkg/errs"
)

// VehicleType is the means of transport of a courier or taxi. Orders list the
// vehicle types allowed to carry them, and the planner searches routes per type.
type VehicleType int

const (
	// UnknownVehicle catches uninitialised values.
	UnknownVehicle VehicleType = iota
	Foot
	Bicycle
	Scooter
	Car
	Truck
)

var vehicleNames = map[VehicleType]string{
	Foot:    "foot",
	Bicycle: "bicycle",
	Scooter: "scooter",
	Car:     "car",
	Truck:   "truck",
}

// VehicleTypes lists every valid vehicle type in declaration order.
func VehicleTypes() []VehicleType {
	return []VehicleType{Foot, Bicycle, Scooter, Car, Truck}
}

// ParseVehicleType accepts the lower-case names produced by String.
func ParseVehicleType(s string) (VehicleType, error) {
	for vt, name := range vehicleNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return vt, nil
		}
	}
	return UnknownVehicle, errs.NewValueIsInvalidErrorWithCause("vehicle type", fmt.Errorf("%q is not a known vehicle type", s))
}

// Validate rejects UnknownVehicle and out-of-range values.
func (v VehicleType) Validate() error {
	if _, ok := vehicleNames[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("vehicle type", fmt.Errorf("%d is not a valid vehicle type", v))
	}
	return nil
}

func (v VehicleType) String() string {
	if name, ok := vehicleNames[v]; ok {
		return name
	}
	return "unknown"
}
