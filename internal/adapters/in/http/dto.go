package http

import (
	"errors"
	"time"

	"eatify/internal/core/application/usecases/commands"
	"eatify/internal/core/application/usecases/queries"
	"eatify/internal/core/domain/model/history"
	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/order"
	"eatify/internal/core/domain/model/projection"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type Party struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

func (p Party) toDomain() (kernel.Party, error) {
	return kernel.NewParty(p.Name, p.Email, p.Phone, p.Address)
}

type LineItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type Billing struct {
	BillTotal     string `json:"billTotal"`
	DeliveryFee   string `json:"deliveryFee"`
	PaymentMethod string `json:"paymentMethod"`
}

type CreateOrderRequest struct {
	OrderID    string     `json:"orderId"`
	Customer   Party      `json:"customer"`
	Restaurant Party      `json:"restaurant"`
	Items      []LineItem `json:"items"`
	Billing    Billing    `json:"billing"`
}

func (r CreateOrderRequest) toCommand(actor kernel.Actor) (commands.CreateOrderCommand, error) {
	id, idErr := kernel.NewOrderID(r.OrderID)
	customer, customerErr := r.Customer.toDomain()
	restaurant, restaurantErr := r.Restaurant.toDomain()
	billing, billingErr := r.billing()

	items := make([]order.LineItem, 0, len(r.Items))
	var itemErrs []error
	for _, item := range r.Items {
		li, err := order.NewLineItem(item.Name, item.Quantity)
		if err != nil {
			itemErrs = append(itemErrs, err)
			continue
		}
		items = append(items, li)
	}

	if err := errors.Join(idErr, customerErr, restaurantErr, billingErr, errors.Join(itemErrs...)); err != nil {
		return commands.CreateOrderCommand{}, err
	}

	return commands.NewCreateOrderCommand(actor, id, customer, restaurant, items, billing)
}

func (r CreateOrderRequest) billing() (order.Billing, error) {
	total, totalErr := kernel.MoneyFromString(r.Billing.BillTotal)
	fee, feeErr := kernel.MoneyFromString(r.Billing.DeliveryFee)
	if err := errors.Join(totalErr, feeErr); err != nil {
		return order.Billing{}, err
	}
	return order.NewBilling(total, fee, r.Billing.PaymentMethod)
}

type AssignPartnerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type ConfirmDeliveryRequest struct {
	Code string `json:"code"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

type VerifyPaymentRequest struct {
	GatewayOrderID string `json:"gatewayOrderId"`
	PaymentID      string `json:"paymentId"`
	Signature      string `json:"signature"`
}

type VerifyPaymentResponse struct {
	Valid bool `json:"valid"`
}

type IssuedCodeResponse struct {
	OrderID   string    `json:"orderId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type EarningsResponse struct {
	Total  string `json:"total"`
	Orders int    `json:"orders"`
}

// OrderView is one projection, shaped for the role that reads it. Fields a role must not
// see are never set.
type OrderView struct {
	OrderID                string     `json:"orderId"`
	Status                 string     `json:"status,omitempty"`
	StatusText             string     `json:"statusText,omitempty"`
	RestaurantName         string     `json:"restaurantName"`
	RestaurantAddress      string     `json:"restaurantAddress,omitempty"`
	RestaurantPhone        string     `json:"restaurantPhone,omitempty"`
	CustomerName           string     `json:"customerName"`
	CustomerAddress        string     `json:"customerAddress,omitempty"`
	CustomerPhone          string     `json:"customerPhone,omitempty"`
	DeliveryPartnerName    string     `json:"deliveryPartnerName,omitempty"`
	DeliveryPartnerContact string     `json:"deliveryPartnerContact,omitempty"`
	Items                  []LineItem `json:"items"`
	BillTotal              string     `json:"billTotal"`
	DeliveryFee            string     `json:"deliveryFee"`
	PaymentMethod          string     `json:"paymentMethod"`
	PlacedAt               time.Time  `json:"placedAt"`
}

type ProjectionResponse struct {
	Kind  string    `json:"kind"`
	Order OrderView `json:"order"`
}

type ProjectionListResponse struct {
	Kind   string      `json:"kind"`
	Orders []OrderView `json:"orders"`
}

type PreviousOrderResponse struct {
	OrderID         string     `json:"orderId"`
	OrderDate       string     `json:"orderDate"`
	CustomerName    string     `json:"customerName"`
	RestaurantName  string     `json:"restaurantName"`
	DeliveryPartner string     `json:"deliveryPartner,omitempty"`
	Items           []LineItem `json:"items"`
	ItemsTotal      string     `json:"itemsTotal"`
	DeliveryFee     string     `json:"deliveryFee"`
	BillTotal       string     `json:"billTotal"`
	PaymentMethod   string     `json:"paymentMethod"`
	ArchivedAt      time.Time  `json:"archivedAt"`
}

func toLineItems(items []projection.Item) []LineItem {
	res := make([]LineItem, 0, len(items))
	for _, item := range items {
		res = append(res, LineItem{Name: item.Name, Quantity: item.Quantity})
	}
	return res
}

func restaurantView(v projection.RestaurantView) OrderView {
	return OrderView{
		OrderID:             v.OrderID.String(),
		Status:              v.Status.String(),
		StatusText:          v.StatusText,
		RestaurantName:      v.RestaurantName,
		CustomerName:        v.CustomerName,
		CustomerAddress:     v.CustomerAddress,
		DeliveryPartnerName: v.DeliveryPartnerName,
		Items:               toLineItems(v.Items),
		BillTotal:           v.BillTotal.String(),
		DeliveryFee:         v.DeliveryFee.String(),
		PaymentMethod:       v.PaymentMethod,
		PlacedAt:            v.PlacedAt,
	}
}

func customerView(v projection.CustomerView) OrderView {
	return OrderView{
		OrderID:                v.OrderID.String(),
		Status:                 v.Status.String(),
		StatusText:             v.StatusText,
		RestaurantName:         v.RestaurantName,
		CustomerName:           v.CustomerName,
		DeliveryPartnerName:    v.DeliveryPartnerName,
		DeliveryPartnerContact: v.DeliveryPartnerContact,
		Items:                  toLineItems(v.Items),
		BillTotal:              v.BillTotal.String(),
		DeliveryFee:            v.DeliveryFee.String(),
		PaymentMethod:          v.PaymentMethod,
		PlacedAt:               v.PlacedAt,
	}
}

func candidateView(v projection.DeliveryCandidateView) OrderView {
	return OrderView{
		OrderID:           v.OrderID.String(),
		RestaurantName:    v.RestaurantName,
		RestaurantAddress: v.RestaurantAddress,
		RestaurantPhone:   v.RestaurantPhone,
		CustomerName:      v.CustomerName,
		CustomerAddress:   v.CustomerAddress,
		CustomerPhone:     v.CustomerPhone,
		Items:             toLineItems(v.Items),
		BillTotal:         v.BillTotal.String(),
		DeliveryFee:       v.DeliveryFee.String(),
		PaymentMethod:     v.PaymentMethod,
		PlacedAt:          v.PlacedAt,
	}
}

func assignedView(v projection.DeliveryAssignedView) OrderView {
	res := candidateView(v.DeliveryCandidateView)
	res.Status = v.Status.String()
	res.StatusText = v.StatusText
	res.DeliveryPartnerName = v.PartnerName
	return res
}

func toProjectionResponse(result queries.ProjectionResult) ProjectionResponse {
	res := ProjectionResponse{Kind: result.Kind.String()}
	switch {
	case result.Restaurant != nil:
		res.Order = restaurantView(*result.Restaurant)
	case result.Customer != nil:
		res.Order = customerView(*result.Customer)
	case result.DeliveryCandidate != nil:
		res.Order = candidateView(*result.DeliveryCandidate)
	case result.DeliveryAssigned != nil:
		res.Order = assignedView(*result.DeliveryAssigned)
	}
	return res
}

func toProjectionListResponse(list queries.ProjectionList) ProjectionListResponse {
	res := ProjectionListResponse{Kind: list.Kind.String(), Orders: make([]OrderView, 0, list.Len())}
	for _, v := range list.Restaurant {
		res.Orders = append(res.Orders, restaurantView(v))
	}
	for _, v := range list.Customer {
		res.Orders = append(res.Orders, customerView(v))
	}
	for _, v := range list.DeliveryCandidates {
		res.Orders = append(res.Orders, candidateView(v))
	}
	for _, v := range list.DeliveryAssigned {
		res.Orders = append(res.Orders, assignedView(v))
	}
	return res
}

func toPreviousOrderResponses(entries []history.PreviousOrder) []PreviousOrderResponse {
	res := make([]PreviousOrderResponse, 0, len(entries))
	for _, e := range entries {
		items := make([]LineItem, 0, len(e.Items()))
		for _, item := range e.Items() {
			items = append(items, LineItem{Name: item.Name, Quantity: item.Quantity})
		}
		res = append(res, PreviousOrderResponse{
			OrderID:         e.OrderID().String(),
			OrderDate:       e.OrderDate(),
			CustomerName:    e.CustomerName(),
			RestaurantName:  e.RestaurantName(),
			DeliveryPartner: e.DeliveryPartner(),
			Items:           items,
			ItemsTotal:      e.ItemsTotal().String(),
			DeliveryFee:     e.DeliveryFee().String(),
			BillTotal:       e.BillTotal().String(),
			PaymentMethod:   e.PaymentMethod(),
			ArchivedAt:      e.ArchivedAt(),
		})
	}
	return res
}
