// Package projection derives the per-actor views of an order: the restaurant queue, the
// customer status, the delivery-candidate queue and the delivery-assigned queue.
// Views are never authoritative; Derive recomputes them from the canonical order.
package projection
