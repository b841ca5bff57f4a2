// Package services implements the route planner: domain services that turn a
// shop's orders and couriers into a set of delivery routes.
//
// The package includes:
//   - OrderClassifier: splits orders into on-time, behind-time, no courier now
//     and never deliverable
//   - PermutationTable and OrderLimits: bounded exhaustive search support
//   - DistanceTimeProvider: per-call distance/time matrices from the geo cache
//   - RouteEnumerator: best route per order subset for one carrier
//   - ParallelDispatcher: one enumerator per route family, concurrently
//   - CoverBuilder: greedy disjoint cover binding real couriers to routes
//   - PhaseOrchestrator: sequences the above across planning phases
//
// Search is exhaustive only up to MaxRouteStops stops and the depth shrinks as
// the number of candidate orders grows. The cover is a greedy, deterministic
// approximation, not an optimum.
package services
