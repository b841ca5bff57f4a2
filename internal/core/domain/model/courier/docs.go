// Package courier provides the Courier aggregate root and the feasibility
// check every route is evaluated with.
//
// The package includes:
//   - Courier: a real, consumable delivery resource (shop courier or taxi)
//   - ExplorationProfile: the same capability without availability, used only
//     to enumerate candidate routes
//   - Tariff: capacity limits and the cost formula
//   - DeliveryRequest/DeliveryResult: the feasibility question and its answer
//
// Key business rules:
//   - A route departs no earlier than the reference time, the shop opening and
//     the courier's shift start
//   - Stops are served in order; an early arrival waits for the delivery window
//   - The deliverable prefix ends at the first stop that breaks the weight,
//     distance, shift, lunch or deadline constraint
//   - Taxis are always available; shop couriers must be Ready
package courier
