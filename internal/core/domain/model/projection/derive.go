package projection

import (
	"eatify/internal/core/domain/model/order"
)

const (
	restaurantPending  = "Pending"
	restaurantAccepted = "Accepted"
	restaurantOnTheWay = "Out for delivery"

	customerPlaced   = "Order yet to be accepted by restaurant"
	customerAccepted = "Order accepted by restaurant"
	customerAssigned = "Delivery partner assigned"
	customerOnTheWay = "Order on it's way to you"
)

// Set is the full projection state of one order. A nil member means the projection
// must not exist.
type Set struct {
	Restaurant        *RestaurantView
	Customer          *CustomerView
	DeliveryCandidate *DeliveryCandidateView
	DeliveryAssigned  *DeliveryAssignedView
}

func (s Set) Has(k Kind) bool {
	switch k {
	case Restaurant:
		return s.Restaurant != nil
	case Customer:
		return s.Customer != nil
	case DeliveryCandidate:
		return s.DeliveryCandidate != nil
	case DeliveryAssigned:
		return s.DeliveryAssigned != nil
	default:
		return false
	}
}

// Derive computes the projections an order should have right now.
func Derive(o *order.Order) Set {
	var set Set
	for _, k := range ExpectedKinds(o.Status()) {
		switch k {
		case Restaurant:
			v := restaurantView(o)
			set.Restaurant = &v
		case Customer:
			v := customerView(o)
			set.Customer = &v
		case DeliveryCandidate:
			v := candidateView(o)
			set.DeliveryCandidate = &v
		case DeliveryAssigned:
			v := assignedView(o)
			set.DeliveryAssigned = &v
		}
	}
	return set
}

func restaurantView(o *order.Order) RestaurantView {
	v := RestaurantView{
		OrderID:         o.ID(),
		RestaurantName:  o.Restaurant().Name(),
		RestaurantEmail: o.Restaurant().Email(),
		CustomerName:    o.Customer().Name(),
		CustomerAddress: o.Customer().Address(),
		Items:           items(o),
		BillTotal:       o.Billing().BillTotal(),
		DeliveryFee:     o.Billing().DeliveryFee(),
		PaymentMethod:   o.Billing().PaymentMethod(),
		Status:          o.Status(),
		StatusText:      restaurantStatusText(o.Status()),
		PlacedAt:        o.CreatedAt(),
		Version:         o.Version(),
	}
	if p := o.Partner(); p != nil {
		v.DeliveryPartnerName = p.Name()
	}
	return v
}

func customerView(o *order.Order) CustomerView {
	v := CustomerView{
		OrderID:        o.ID(),
		CustomerEmail:  o.Customer().Email(),
		CustomerName:   o.Customer().Name(),
		RestaurantName: o.Restaurant().Name(),
		Items:          items(o),
		BillTotal:      o.Billing().BillTotal(),
		DeliveryFee:    o.Billing().DeliveryFee(),
		PaymentMethod:  o.Billing().PaymentMethod(),
		Status:         o.Status(),
		StatusText:     customerStatusText(o.Status()),
		PlacedAt:       o.CreatedAt(),
		Version:        o.Version(),
	}
	if p := o.Partner(); p != nil {
		v.DeliveryPartnerName = p.Name()
		v.DeliveryPartnerContact = p.Phone()
	}
	return v
}

func candidateView(o *order.Order) DeliveryCandidateView {
	return DeliveryCandidateView{
		OrderID:           o.ID(),
		RestaurantName:    o.Restaurant().Name(),
		RestaurantAddress: o.Restaurant().Address(),
		RestaurantPhone:   o.Restaurant().Phone(),
		CustomerName:      o.Customer().Name(),
		CustomerAddress:   o.Customer().Address(),
		CustomerPhone:     o.Customer().Phone(),
		Items:             items(o),
		BillTotal:         o.Billing().BillTotal(),
		DeliveryFee:       o.Billing().DeliveryFee(),
		PaymentMethod:     o.Billing().PaymentMethod(),
		PlacedAt:          o.CreatedAt(),
		Version:           o.Version(),
	}
}

func assignedView(o *order.Order) DeliveryAssignedView {
	v := DeliveryAssignedView{
		DeliveryCandidateView: candidateView(o),
		Status:                o.Status(),
		StatusText:            customerStatusText(o.Status()),
	}
	if p := o.Partner(); p != nil {
		v.PartnerEmail = p.Email()
		v.PartnerName = p.Name()
	}
	return v
}

func items(o *order.Order) []Item {
	lineItems := o.LineItems()
	out := make([]Item, 0, len(lineItems))
	for _, li := range lineItems {
		out = append(out, Item{Name: li.Name(), Quantity: li.Quantity()})
	}
	return out
}

func restaurantStatusText(s order.Status) string {
	switch s {
	case order.Placed:
		return restaurantPending
	case order.CodeIssued:
		return restaurantOnTheWay
	default:
		return restaurantAccepted
	}
}

func customerStatusText(s order.Status) string {
	switch s {
	case order.Placed:
		return customerPlaced
	case order.Accepted:
		return customerAccepted
	case order.DeliveryAssigned:
		return customerAssigned
	default:
		return customerOnTheWay
	}
}
