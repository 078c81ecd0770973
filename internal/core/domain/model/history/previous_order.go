// Package history holds PreviousOrder, the immutable archival entry a participant keeps
// once an order has been delivered.
package history

import (
	"fmt"
	"time"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/order"
	"eatify/internal/pkg/errs"
)

const dateLayout = "2006-01-02"

type Item struct {
	Name     string
	Quantity int
}

// PreviousOrder is unique per (owner role, owner email, order id) and never changes.
type PreviousOrder struct {
	id              kernel.UUID
	ownerRole       kernel.Role
	ownerEmail      string
	orderID         kernel.OrderID
	orderDate       string
	customerName    string
	restaurantName  string
	items           []Item
	itemsTotal      kernel.Money
	deliveryFee     kernel.Money
	deliveryPartner string
	paymentMethod   string
	archivedAt      time.Time
}

// FromOrder folds a delivered order into the entry kept by one owner.
func FromOrder(o *order.Order, ownerRole kernel.Role, ownerEmail string, now time.Time) (PreviousOrder, error) {
	if o.Status() != order.Delivered {
		return PreviousOrder{}, errs.NewInvalidTransitionError(o.Status().String(), "archive")
	}
	if ownerEmail == "" {
		return PreviousOrder{}, errs.NewValueIsRequiredError("ownerEmail")
	}

	entry := PreviousOrder{
		id:             kernel.NewUUID(),
		ownerRole:      ownerRole,
		ownerEmail:     ownerEmail,
		orderID:        o.ID(),
		orderDate:      o.CreatedAt().Format(dateLayout),
		customerName:   o.Customer().Name(),
		restaurantName: o.Restaurant().Name(),
		itemsTotal:     o.Billing().ItemsTotal(),
		deliveryFee:    o.Billing().DeliveryFee(),
		paymentMethod:  o.Billing().PaymentMethod(),
		archivedAt:     now.UTC(),
	}
	if p := o.Partner(); p != nil {
		entry.deliveryPartner = p.Name()
	}
	for _, li := range o.LineItems() {
		entry.items = append(entry.items, Item{Name: li.Name(), Quantity: li.Quantity()})
	}
	return entry, nil
}

// Snapshot is the persisted form of a PreviousOrder.
type Snapshot struct {
	ID              kernel.UUID
	OwnerRole       kernel.Role
	OwnerEmail      string
	OrderID         kernel.OrderID
	OrderDate       string
	CustomerName    string
	RestaurantName  string
	Items           []Item
	ItemsTotal      kernel.Money
	DeliveryFee     kernel.Money
	DeliveryPartner string
	PaymentMethod   string
	ArchivedAt      time.Time
}

func Restore(s Snapshot) (PreviousOrder, error) {
	if err := s.ID.Validate(); err != nil {
		return PreviousOrder{}, err
	}
	if err := s.OrderID.Validate(); err != nil {
		return PreviousOrder{}, err
	}
	if _, err := time.Parse(dateLayout, s.OrderDate); err != nil {
		return PreviousOrder{}, errs.NewValueIsInvalidErrorWithCause("orderDate", fmt.Errorf("%q: %w", s.OrderDate, err))
	}
	return PreviousOrder{
		id:              s.ID,
		ownerRole:       s.OwnerRole,
		ownerEmail:      s.OwnerEmail,
		orderID:         s.OrderID,
		orderDate:       s.OrderDate,
		customerName:    s.CustomerName,
		restaurantName:  s.RestaurantName,
		items:           append([]Item(nil), s.Items...),
		itemsTotal:      s.ItemsTotal,
		deliveryFee:     s.DeliveryFee,
		deliveryPartner: s.DeliveryPartner,
		paymentMethod:   s.PaymentMethod,
		archivedAt:      s.ArchivedAt,
	}, nil
}

func (p PreviousOrder) Snapshot() Snapshot {
	return Snapshot{
		ID:              p.id,
		OwnerRole:       p.ownerRole,
		OwnerEmail:      p.ownerEmail,
		OrderID:         p.orderID,
		OrderDate:       p.orderDate,
		CustomerName:    p.customerName,
		RestaurantName:  p.restaurantName,
		Items:           p.Items(),
		ItemsTotal:      p.itemsTotal,
		DeliveryFee:     p.deliveryFee,
		DeliveryPartner: p.deliveryPartner,
		PaymentMethod:   p.paymentMethod,
		ArchivedAt:      p.archivedAt,
	}
}

func (p PreviousOrder) ID() kernel.UUID           { return p.id }
func (p PreviousOrder) OwnerRole() kernel.Role    { return p.ownerRole }
func (p PreviousOrder) OwnerEmail() string        { return p.ownerEmail }
func (p PreviousOrder) OrderID() kernel.OrderID   { return p.orderID }
func (p PreviousOrder) OrderDate() string         { return p.orderDate }
func (p PreviousOrder) CustomerName() string      { return p.customerName }
func (p PreviousOrder) RestaurantName() string    { return p.restaurantName }
func (p PreviousOrder) ItemsTotal() kernel.Money  { return p.itemsTotal }
func (p PreviousOrder) DeliveryFee() kernel.Money { return p.deliveryFee }
func (p PreviousOrder) DeliveryPartner() string   { return p.deliveryPartner }
func (p PreviousOrder) PaymentMethod() string     { return p.paymentMethod }
func (p PreviousOrder) ArchivedAt() time.Time     { return p.archivedAt }

func (p PreviousOrder) Items() []Item {
	return append([]Item(nil), p.items...)
}

// BillTotal is what the customer paid.
func (p PreviousOrder) BillTotal() kernel.Money {
	return p.itemsTotal.Add(p.deliveryFee)
}

// Earnings sums what an owner of role earned (restaurant: items, delivery: fees) or
// spent (customer: full bill) across entries.
func Earnings(role kernel.Role, entries []PreviousOrder) kernel.Money {
	var total kernel.Money
	for _, e := range entries {
		switch role {
		case kernel.RoleRestaurant:
			total = total.Add(e.itemsTotal)
		case kernel.RoleDelivery:
			total = total.Add(e.deliveryFee)
		case kernel.RoleCustomer:
			total = total.Add(e.BillTotal())
		}
	}
	return total
}
