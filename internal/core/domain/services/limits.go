package services

import (
	"fmt"
	"math"

	"deliveryplanner/internal/pkg/errs"
)

// Unbounded means a route length is searched for any number of orders.
const Unbounded = math.MaxInt

var defaultOrderLimits = [MaxRouteStops + 1]int{
	1: Unbounded,
	2: 1000,
	3: 120,
	4: 45,
	5: 28,
	6: 20,
	7: 16,
	8: 14,
}

// OrderLimits maps a route length k to the largest number of candidate orders
// for which routes of length k are still searched. Limits never grow with k.
type OrderLimits struct {
	limits [MaxRouteStops + 1]int
}

// DefaultOrderLimits returns the built-in table.
func DefaultOrderLimits() OrderLimits {
	return OrderLimits{limits: defaultOrderLimits}
}

// NewOrderLimits applies overrides on top of the defaults.
//
// Example:
//
//	limits, err := services.NewOrderLimits(map[int]int{8: 12, 7: 15})
func NewOrderLimits(overrides map[int]int) (OrderLimits, error) {
	l := DefaultOrderLimits()
	for k, limit := range overrides {
		if err := checkStops(k); err != nil {
			return OrderLimits{}, err
		}
		if limit < 1 {
			return OrderLimits{}, errs.NewValueIsOutOfRangeError(fmt.Sprintf("order limit for length %d", k), limit, 1, Unbounded)
		}
		l.limits[k] = limit
	}

	for k := 2; k <= MaxRouteStops; k++ {
		if l.limits[k] > l.limits[k-1] {
			return OrderLimits{}, errs.NewValueIsInvalidErrorWithCause(
				"order limits",
				fmt.Errorf("limit for length %d (%d) exceeds limit for length %d (%d)", k, l.limits[k], k-1, l.limits[k-1]),
			)
		}
	}
	return l, nil
}

// Limit returns the limit for route length k, or 0 outside [1..MaxRouteStops].
func (l OrderLimits) Limit(k int) int {
	if k < 1 || k > MaxRouteStops {
		return 0
	}
	return l.limits[k]
}

// Depth returns the longest route length to search among n candidate orders:
// the largest k in [2..MaxRouteStops] with n <= limit(k), and 2 when none fits.
func (l OrderLimits) Depth(n int) int {
	for k := MaxRouteStops; k >= 2; k-- {
		if n <= l.limits[k] {
			return k
		}
	}
	return 2
}

// Map returns the table keyed by route length.
func (l OrderLimits) Map() map[int]int {
	out := make(map[int]int, MaxRouteStops)
	for k := 1; k <= MaxRouteStops; k++ {
		out[k] = l.limits[k]
	}
	return out
}
