package courier

import (
	"fmt"

	"deliveryplanner/internal/pkg/errs"
)

// Status is the availability state of a courier.
//
// Only Ready couriers can be bound to a new route. Taxis ignore Status: they
// are an on-demand resource and always available.
type Status int

const (
	// UnknownStatus catches uninitialised Status values.
	UnknownStatus Status = iota
	// Ready means the courier is at the shop and can leave on a new route.
	Ready
	// Busy means the courier is out on a route.
	Busy
	// Offline means the courier is not working right now.
	Offline
)

var statusNames = map[Status]string{
	Ready:   "ready",
	Busy:    "busy",
	Offline: "offline",
}

// ParseStatus accepts the names produced by String.
func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("courier status", fmt.Errorf("%q is not a known status", s))
}

// Validate rejects UnknownStatus and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("courier status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}
