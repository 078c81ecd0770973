package projection

import (
	"time"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/order"
)

type Item struct {
	Name     string
	Quantity int
}

// RestaurantView is the restaurant queue entry. It names the delivery partner but never
// carries the partner's phone or email.
type RestaurantView struct {
	OrderID             kernel.OrderID
	RestaurantName      string
	RestaurantEmail     string
	CustomerName        string
	CustomerAddress     string
	Items               []Item
	BillTotal           kernel.Money
	DeliveryFee         kernel.Money
	PaymentMethod       string
	Status              order.Status
	StatusText          string
	DeliveryPartnerName string
	PlacedAt            time.Time
	Version             int64
}

// CustomerView is what the customer tracks, including the partner's contact once assigned.
type CustomerView struct {
	OrderID                kernel.OrderID
	CustomerEmail          string
	CustomerName           string
	RestaurantName         string
	Items                  []Item
	BillTotal              kernel.Money
	DeliveryFee            kernel.Money
	PaymentMethod          string
	Status                 order.Status
	StatusText             string
	DeliveryPartnerName    string
	DeliveryPartnerContact string
	PlacedAt               time.Time
	Version                int64
}

// DeliveryCandidateView is an accepted order any delivery partner may claim.
type DeliveryCandidateView struct {
	OrderID           kernel.OrderID
	RestaurantName    string
	RestaurantAddress string
	RestaurantPhone   string
	CustomerName      string
	CustomerAddress   string
	CustomerPhone     string
	Items             []Item
	BillTotal         kernel.Money
	DeliveryFee       kernel.Money
	PaymentMethod     string
	PlacedAt          time.Time
	Version           int64
}

// DeliveryAssignedView is a claimed order on the assigned partner's queue.
type DeliveryAssignedView struct {
	DeliveryCandidateView
	PartnerEmail string
	PartnerName  string
	Status       order.Status
	StatusText   string
}
