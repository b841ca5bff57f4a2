// Package shop provides the Shop aggregate: the departure point of every route
// planned in one cycle, with its location and daily working hours.
package shop
