// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// Parties and line items are stored as JSONB since they are only ever read with the order.
package orderrepo

import (
	"errors"
	"time"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID            string          `gorm:"primaryKey"`
	Customer      PartyDTO        `gorm:"serializer:json;type:jsonb"`
	Restaurant    PartyDTO        `gorm:"serializer:json;type:jsonb"`
	Partner       *PartyDTO       `gorm:"serializer:json;type:jsonb"`
	LineItems     []LineItemDTO   `gorm:"serializer:json;type:jsonb"`
	BillTotal     decimal.Decimal `gorm:"type:numeric(12,2)"`
	DeliveryFee   decimal.Decimal `gorm:"type:numeric(12,2)"`
	PaymentMethod string
	Status        string
	CreatedAt     time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime:false"`
	Version       int64
	CodeReissues  int
	CancelReason  string
	ArchivedAt    *time.Time
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

type PartyDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type LineItemDTO struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

func partyFromDomain(p kernel.Party) PartyDTO {
	return PartyDTO{Name: p.Name(), Email: p.Email(), Phone: p.Phone(), Address: p.Address()}
}

func (dto PartyDTO) toDomain() (kernel.Party, error) {
	return kernel.NewParty(dto.Name, dto.Email, dto.Phone, dto.Address)
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()

	var partner *PartyDTO
	if s.Partner != nil {
		p := partyFromDomain(*s.Partner)
		partner = &p
	}

	items := make([]LineItemDTO, 0, len(s.LineItems))
	for _, li := range s.LineItems {
		items = append(items, LineItemDTO{Name: li.Name(), Quantity: li.Quantity()})
	}

	return OrderDTO{
		ID:            s.ID.String(),
		Customer:      partyFromDomain(s.Customer),
		Restaurant:    partyFromDomain(s.Restaurant),
		Partner:       partner,
		LineItems:     items,
		BillTotal:     s.Billing.BillTotal().Decimal(),
		DeliveryFee:   s.Billing.DeliveryFee().Decimal(),
		PaymentMethod: s.Billing.PaymentMethod(),
		Status:        s.Status.String(),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		Version:       s.Version,
		CodeReissues:  s.CodeReissues,
		CancelReason:  s.CancelReason,
		ArchivedAt:    s.ArchivedAt,
	}
}

// toDomain rebuilds the aggregate through order.RestoreOrder so stored rows are validated
// the same way as new ones.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.NewOrderID(dto.ID)
	if err != nil {
		return nil, err
	}

	customer, customerErr := dto.Customer.toDomain()
	restaurant, restaurantErr := dto.Restaurant.toDomain()
	status, statusErr := order.ParseStatus(dto.Status)
	billTotal, billErr := kernel.NewMoney(dto.BillTotal)
	deliveryFee, feeErr := kernel.NewMoney(dto.DeliveryFee)
	if err = errors.Join(customerErr, restaurantErr, statusErr, billErr, feeErr); err != nil {
		return nil, err
	}

	var partner *kernel.Party
	if dto.Partner != nil {
		p, partnerErr := dto.Partner.toDomain()
		if partnerErr != nil {
			return nil, partnerErr
		}
		partner = &p
	}

	items := make([]order.LineItem, 0, len(dto.LineItems))
	for _, item := range dto.LineItems {
		li, itemErr := order.NewLineItem(item.Name, item.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, li)
	}

	billing, err := order.NewBilling(billTotal, deliveryFee, dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	var archivedAt *time.Time
	if dto.ArchivedAt != nil {
		at := dto.ArchivedAt.UTC()
		archivedAt = &at
	}

	return order.RestoreOrder(order.Snapshot{
		ID:           id,
		Customer:     customer,
		Restaurant:   restaurant,
		Partner:      partner,
		LineItems:    items,
		Billing:      billing,
		Status:       status,
		CreatedAt:    dto.CreatedAt.UTC(),
		UpdatedAt:    dto.UpdatedAt.UTC(),
		Version:      dto.Version,
		CodeReissues: dto.CodeReissues,
		CancelReason: dto.CancelReason,
		ArchivedAt:   archivedAt,
	})
}
