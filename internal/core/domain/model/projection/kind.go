package projection

import "eatify/internal/core/domain/model/order"

// Kind names one of the per-actor projections of an order.
type Kind int

const (
	Restaurant Kind = iota + 1
	Customer
	DeliveryCandidate
	DeliveryAssigned
)

func (k Kind) String() string {
	switch k {
	case Restaurant:
		return "restaurant"
	case Customer:
		return "customer"
	case DeliveryCandidate:
		return "delivery_candidate"
	case DeliveryAssigned:
		return "delivery_assigned"
	default:
		return "unknown"
	}
}

// Kinds lists every kind in the fixed write order: restaurant, customer, delivery.
func Kinds() []Kind {
	return []Kind{Restaurant, Customer, DeliveryCandidate, DeliveryAssigned}
}

// ExpectedKinds returns the projections that must exist for an order in status s.
func ExpectedKinds(s order.Status) []Kind {
	switch s {
	case order.Placed:
		return []Kind{Restaurant, Customer}
	case order.Accepted:
		return []Kind{Restaurant, Customer, DeliveryCandidate}
	case order.DeliveryAssigned, order.CodeIssued:
		return []Kind{Restaurant, Customer, DeliveryAssigned}
	default:
		return nil
	}
}

// Presence records which kinds exist for one order id.
type Presence map[Kind]bool

// Diff compares actual presence with what status s requires.
func (p Presence) Diff(s order.Status) (missing, extra []Kind) {
	expected := make(map[Kind]bool)
	for _, k := range ExpectedKinds(s) {
		expected[k] = true
	}
	for _, k := range Kinds() {
		switch {
		case expected[k] && !p[k]:
			missing = append(missing, k)
		case !expected[k] && p[k]:
			extra = append(extra, k)
		}
	}
	return missing, extra
}

// Present returns the kinds that exist, in write order.
func (p Presence) Present() []Kind {
	var kinds []Kind
	for _, k := range Kinds() {
		if p[k] {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func (p Presence) IsEmpty() bool {
	return len(p.Present()) == 0
}
