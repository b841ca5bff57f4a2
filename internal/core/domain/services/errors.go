package services

import "errors"

var (
	// ErrMatrixUnavailable is returned when the geo cache cannot supply the
	// distance/time matrix for a vehicle type.
	ErrMatrixUnavailable = errors.New("distance matrix unavailable")
	// ErrNoRoutesFound is returned when no route family produced a candidate.
	ErrNoRoutesFound = errors.New("no routes found")
	// ErrNothingToCover is returned when a cover is requested without routes or orders.
	ErrNothingToCover = errors.New("nothing to cover")
	// ErrInvalidPlanRequest is returned for a planning run without shop, orders or couriers.
	ErrInvalidPlanRequest = errors.New("invalid plan request")
)
