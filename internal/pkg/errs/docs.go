// Package errs provides the typed errors shared by the planner's domain model,
// services and adapters.
//
// Each error type pairs a sentinel (ErrValueIsRequired, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrObjectNotFound) with a struct carrying details, a
// constructor with and without a cause, Error() and Unwrap(), so callers can
// branch with errors.Is and inspect details with errors.As.
package errs
