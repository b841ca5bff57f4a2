// Package kernel holds the value objects shared by every aggregate of the
// planner: identifiers, geographic locations, time intervals, recurring daily
// windows and vehicle types.
//
// All types are immutable; constructors validate their input and return typed
// errors from the errs package.
package kernel
