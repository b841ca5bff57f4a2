// Package order provides the Order aggregate: a customer order with a delivery
// window, weight, allowed vehicle types and warehouse status.
//
// Key business rules:
//   - Orders are created Receipted, become Assembled once picked and Completed
//     once delivered
//   - Only Receipted and Assembled orders are planned
//   - The planner records a RejectionReason on every order it cannot deliver
//     on time in the current cycle
//   - Deadlines can be widened for one planning phase through
//     OverrideDeadline, which hands back the restoring function
package order
