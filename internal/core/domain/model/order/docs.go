// Package order provides domain entities and business logic for order management
// in the fulfillment system. It implements the Order aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Order: The aggregate root managing identity, lines, amounts, and lifecycle
//   - Status: the canonical status vocabulary shared by all carriers
//   - Carrier: the closed set of external logistics providers
//   - PaymentMethod: how the customer settles the order amount
//
// Key business rules:
//   - Status changes happen only through Transition and the carrier/rider couplings
//   - Transitioning to the current status is a no-op: nothing logged, no side effects
//   - Entering the cancelled/returned family from outside it signals a restock;
//     moving within the family never signals a second one
//   - Every accepted transition emits one change-log entry
//   - Terminal states carry no hard block, so manual corrections stay possible
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
