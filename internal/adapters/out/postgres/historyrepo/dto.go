// Package historyrepo stores the archived per-owner order summaries.
package historyrepo

import (
	"errors"
	"time"

	"eatify/internal/core/domain/model/history"
	"eatify/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PreviousOrderDTO is unique per owner role, owner email and order id.
type PreviousOrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerRole       string    `gorm:"uniqueIndex:uq_previous_orders_owner_order"`
	OwnerEmail      string    `gorm:"uniqueIndex:uq_previous_orders_owner_order"`
	OrderID         string    `gorm:"uniqueIndex:uq_previous_orders_owner_order"`
	OrderDate       string
	CustomerName    string
	RestaurantName  string
	Items           []ItemDTO       `gorm:"serializer:json;type:jsonb"`
	ItemsTotal      decimal.Decimal `gorm:"type:numeric(12,2)"`
	DeliveryFee     decimal.Decimal `gorm:"type:numeric(12,2)"`
	DeliveryPartner string
	PaymentMethod   string
	ArchivedAt      time.Time
}

func (PreviousOrderDTO) TableName() string {
	return "previous_orders"
}

type ItemDTO struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

func fromDomain(entry history.PreviousOrder) PreviousOrderDTO {
	s := entry.Snapshot()
	items := make([]ItemDTO, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, ItemDTO{Name: item.Name, Quantity: item.Quantity})
	}
	return PreviousOrderDTO{
		ID:              s.ID.Raw(),
		OwnerRole:       string(s.OwnerRole),
		OwnerEmail:      s.OwnerEmail,
		OrderID:         s.OrderID.String(),
		OrderDate:       s.OrderDate,
		CustomerName:    s.CustomerName,
		RestaurantName:  s.RestaurantName,
		Items:           items,
		ItemsTotal:      s.ItemsTotal.Decimal(),
		DeliveryFee:     s.DeliveryFee.Decimal(),
		DeliveryPartner: s.DeliveryPartner,
		PaymentMethod:   s.PaymentMethod,
		ArchivedAt:      s.ArchivedAt,
	}
}

func toDomain(dto PreviousOrderDTO) (history.PreviousOrder, error) {
	id, err := kernel.UUIDFromString(dto.ID.String())
	if err != nil {
		return history.PreviousOrder{}, err
	}
	role, roleErr := kernel.ParseRole(dto.OwnerRole)
	itemsTotal, totalErr := kernel.NewMoney(dto.ItemsTotal)
	deliveryFee, feeErr := kernel.NewMoney(dto.DeliveryFee)
	if err = errors.Join(roleErr, totalErr, feeErr); err != nil {
		return history.PreviousOrder{}, err
	}

	items := make([]history.Item, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, history.Item{Name: item.Name, Quantity: item.Quantity})
	}

	return history.Restore(history.Snapshot{
		ID:              id,
		OwnerRole:       role,
		OwnerEmail:      dto.OwnerEmail,
		OrderID:         kernel.OrderID(dto.OrderID),
		OrderDate:       dto.OrderDate,
		CustomerName:    dto.CustomerName,
		RestaurantName:  dto.RestaurantName,
		Items:           items,
		ItemsTotal:      itemsTotal,
		DeliveryFee:     deliveryFee,
		DeliveryPartner: dto.DeliveryPartner,
		PaymentMethod:   dto.PaymentMethod,
		ArchivedAt:      dto.ArchivedAt.UTC(),
	})
}
