// Package order holds the Order aggregate and the lifecycle state machine.
//
// The package includes:
//   - Order: canonical order record with its parties, line items, billing and state
//   - Status and Event: the transition table, including replay detection
//   - Authorize: which actor may trigger which event
//
// Key business rules:
//   - PLACED -> ACCEPTED -> DELIVERY_ASSIGNED -> CODE_ISSUED -> DELIVERED
//   - CANCELLED is reachable from PLACED or ACCEPTED only
//   - re-issuing a verification code is its own audited event
//   - an illegal or replayed event leaves the order untouched
package order
