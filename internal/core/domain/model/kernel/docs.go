// Package kernel provides the value objects shared by the order lifecycle domain.
//
// The package includes:
//   - OrderID: the caller-supplied, stable identifier of an order
//   - Actor and Role: the authenticated identity behind every trigger
//   - Party: the contact card of a customer, restaurant or delivery partner
//   - Money: decimal amounts used for bill totals and fees
//   - UUID: generated identifiers for history entries and outbox messages
//
// Values are immutable and validated at construction.
package kernel
