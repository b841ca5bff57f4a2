// Package geo holds the per-vehicle-type distance/time matrix that route
// feasibility is evaluated against.
package geo
