package order

import (
	"fmt"

	"deliveryplanner/internal/pkg/errs"
)

// Status is the warehouse lifecycle state of an order.
//
// State transitions:
//
//	Receipted ──> Assembled ──> Completed
//
// Only Receipted and Assembled orders take part in planning; Assembled orders
// can ship right away, Receipted ones are still being picked.
type Status int

const (
	// Unknown catches uninitialised Status values.
	Unknown Status = iota

	// Receipted means the order arrived at the shop but is not picked yet.
	Receipted

	// Assembled means picking is complete and the order is ready to ship.
	Assembled

	// Completed means the order has been delivered. Final state.
	Completed
)

var statusNames = map[Status]string{
	Receipted: "Receipted",
	Assembled: "Assembled",
	Completed: "Completed",
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// IsPlannable reports whether orders in this status may be put on a route.
func (s Status) IsPlannable() bool {
	return s == Receipted || s == Assembled
}

// Assemble transitions Receipted -> Assembled.
func (s Status) Assemble() (Status, error) {
	if s != Receipted {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to assemble", s),
		)
	}
	return Assembled, nil
}

// Complete transitions Assembled -> Completed.
func (s Status) Complete() (Status, error) {
	if s != Assembled {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s),
		)
	}
	return Completed, nil
}
