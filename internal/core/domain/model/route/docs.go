// Package route provides the Route: an ordered trip of one carrier, with its
// per-stop times, dispatch window and cost. Routes are candidates while their
// carrier is an exploration profile and ship once bound to a real courier.
package route
