// Package projectionrepo persists the per-actor order projections, one table per kind.
package projectionrepo

import (
	"errors"
	"time"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/order"
	"eatify/internal/core/domain/model/projection"

	"github.com/shopspring/decimal"
)

type ItemDTO struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// BillingDTO is embedded in every view table.
type BillingDTO struct {
	Items         []ItemDTO       `gorm:"serializer:json;type:jsonb"`
	BillTotal     decimal.Decimal `gorm:"type:numeric(12,2)"`
	DeliveryFee   decimal.Decimal `gorm:"type:numeric(12,2)"`
	PaymentMethod string
}

type RestaurantViewDTO struct {
	OrderID             string `gorm:"primaryKey"`
	RestaurantName      string
	RestaurantEmail     string
	CustomerName        string
	CustomerAddress     string
	BillingDTO          `gorm:"embedded"`
	Status              string
	StatusText          string
	DeliveryPartnerName string
	PlacedAt            time.Time
	Version             int64
}

func (RestaurantViewDTO) TableName() string { return "restaurant_views" }

type CustomerViewDTO struct {
	OrderID                string `gorm:"primaryKey"`
	CustomerEmail          string
	CustomerName           string
	RestaurantName         string
	BillingDTO             `gorm:"embedded"`
	Status                 string
	StatusText             string
	DeliveryPartnerName    string
	DeliveryPartnerContact string
	PlacedAt               time.Time
	Version                int64
}

func (CustomerViewDTO) TableName() string { return "customer_views" }

type DeliveryCandidateViewDTO struct {
	OrderID           string `gorm:"primaryKey"`
	RestaurantName    string
	RestaurantAddress string
	RestaurantPhone   string
	CustomerName      string
	CustomerAddress   string
	CustomerPhone     string
	BillingDTO        `gorm:"embedded"`
	PlacedAt          time.Time
	Version           int64
}

func (DeliveryCandidateViewDTO) TableName() string { return "delivery_candidate_views" }

type DeliveryAssignedViewDTO struct {
	DeliveryCandidateViewDTO `gorm:"embedded"`
	PartnerEmail             string
	PartnerName              string
	Status                   string
	StatusText               string
}

func (DeliveryAssignedViewDTO) TableName() string { return "delivery_assigned_views" }

// tables lists the view tables in write order.
func tables() map[projection.Kind]string {
	return map[projection.Kind]string{
		projection.Restaurant:        RestaurantViewDTO{}.TableName(),
		projection.Customer:          CustomerViewDTO{}.TableName(),
		projection.DeliveryCandidate: DeliveryCandidateViewDTO{}.TableName(),
		projection.DeliveryAssigned:  DeliveryAssignedViewDTO{}.TableName(),
	}
}

func billingFromDomain(items []projection.Item, total, fee kernel.Money, method string) BillingDTO {
	dtoItems := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		dtoItems = append(dtoItems, ItemDTO{Name: item.Name, Quantity: item.Quantity})
	}
	return BillingDTO{
		Items:         dtoItems,
		BillTotal:     total.Decimal(),
		DeliveryFee:   fee.Decimal(),
		PaymentMethod: method,
	}
}

func (dto BillingDTO) toDomain() (items []projection.Item, total, fee kernel.Money, err error) {
	items = make([]projection.Item, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, projection.Item{Name: item.Name, Quantity: item.Quantity})
	}
	total, totalErr := kernel.NewMoney(dto.BillTotal)
	fee, feeErr := kernel.NewMoney(dto.DeliveryFee)
	return items, total, fee, errors.Join(totalErr, feeErr)
}

func restaurantFromDomain(v projection.RestaurantView) RestaurantViewDTO {
	return RestaurantViewDTO{
		OrderID:             v.OrderID.String(),
		RestaurantName:      v.RestaurantName,
		RestaurantEmail:     v.RestaurantEmail,
		CustomerName:        v.CustomerName,
		CustomerAddress:     v.CustomerAddress,
		BillingDTO:          billingFromDomain(v.Items, v.BillTotal, v.DeliveryFee, v.PaymentMethod),
		Status:              v.Status.String(),
		StatusText:          v.StatusText,
		DeliveryPartnerName: v.DeliveryPartnerName,
		PlacedAt:            v.PlacedAt,
		Version:             v.Version,
	}
}

func (dto RestaurantViewDTO) toDomain() (projection.RestaurantView, error) {
	items, total, fee, err := dto.BillingDTO.toDomain()
	status, statusErr := order.ParseStatus(dto.Status)
	if err = errors.Join(err, statusErr); err != nil {
		return projection.RestaurantView{}, err
	}
	return projection.RestaurantView{
		OrderID:             kernel.OrderID(dto.OrderID),
		RestaurantName:      dto.RestaurantName,
		RestaurantEmail:     dto.RestaurantEmail,
		CustomerName:        dto.CustomerName,
		CustomerAddress:     dto.CustomerAddress,
		Items:               items,
		BillTotal:           total,
		DeliveryFee:         fee,
		PaymentMethod:       dto.PaymentMethod,
		Status:              status,
		StatusText:          dto.StatusText,
		DeliveryPartnerName: dto.DeliveryPartnerName,
		PlacedAt:            dto.PlacedAt.UTC(),
		Version:             dto.Version,
	}, nil
}

func customerFromDomain(v projection.CustomerView) CustomerViewDTO {
	return CustomerViewDTO{
		OrderID:                v.OrderID.String(),
		CustomerEmail:          v.CustomerEmail,
		CustomerName:           v.CustomerName,
		RestaurantName:         v.RestaurantName,
		BillingDTO:             billingFromDomain(v.Items, v.BillTotal, v.DeliveryFee, v.PaymentMethod),
		Status:                 v.Status.String(),
		StatusText:             v.StatusText,
		DeliveryPartnerName:    v.DeliveryPartnerName,
		DeliveryPartnerContact: v.DeliveryPartnerContact,
		PlacedAt:               v.PlacedAt,
		Version:                v.Version,
	}
}

func (dto CustomerViewDTO) toDomain() (projection.CustomerView, error) {
	items, total, fee, err := dto.BillingDTO.toDomain()
	status, statusErr := order.ParseStatus(dto.Status)
	if err = errors.Join(err, statusErr); err != nil {
		return projection.CustomerView{}, err
	}
	return projection.CustomerView{
		OrderID:                kernel.OrderID(dto.OrderID),
		CustomerEmail:          dto.CustomerEmail,
		CustomerName:           dto.CustomerName,
		RestaurantName:         dto.RestaurantName,
		Items:                  items,
		BillTotal:              total,
		DeliveryFee:            fee,
		PaymentMethod:          dto.PaymentMethod,
		Status:                 status,
		StatusText:             dto.StatusText,
		DeliveryPartnerName:    dto.DeliveryPartnerName,
		DeliveryPartnerContact: dto.DeliveryPartnerContact,
		PlacedAt:               dto.PlacedAt.UTC(),
		Version:                dto.Version,
	}, nil
}

func candidateFromDomain(v projection.DeliveryCandidateView) DeliveryCandidateViewDTO {
	return DeliveryCandidateViewDTO{
		OrderID:           v.OrderID.String(),
		RestaurantName:    v.RestaurantName,
		RestaurantAddress: v.RestaurantAddress,
		RestaurantPhone:   v.RestaurantPhone,
		CustomerName:      v.CustomerName,
		CustomerAddress:   v.CustomerAddress,
		CustomerPhone:     v.CustomerPhone,
		BillingDTO:        billingFromDomain(v.Items, v.BillTotal, v.DeliveryFee, v.PaymentMethod),
		PlacedAt:          v.PlacedAt,
		Version:           v.Version,
	}
}

func (dto DeliveryCandidateViewDTO) toDomain() (projection.DeliveryCandidateView, error) {
	items, total, fee, err := dto.BillingDTO.toDomain()
	if err != nil {
		return projection.DeliveryCandidateView{}, err
	}
	return projection.DeliveryCandidateView{
		OrderID:           kernel.OrderID(dto.OrderID),
		RestaurantName:    dto.RestaurantName,
		RestaurantAddress: dto.RestaurantAddress,
		RestaurantPhone:   dto.RestaurantPhone,
		CustomerName:      dto.CustomerName,
		CustomerAddress:   dto.CustomerAddress,
		CustomerPhone:     dto.CustomerPhone,
		Items:             items,
		BillTotal:         total,
		DeliveryFee:       fee,
		PaymentMethod:     dto.PaymentMethod,
		PlacedAt:          dto.PlacedAt.UTC(),
		Version:           dto.Version,
	}, nil
}

func assignedFromDomain(v projection.DeliveryAssignedView) DeliveryAssignedViewDTO {
	return DeliveryAssignedViewDTO{
		DeliveryCandidateViewDTO: candidateFromDomain(v.DeliveryCandidateView),
		PartnerEmail:             v.PartnerEmail,
		PartnerName:              v.PartnerName,
		Status:                   v.Status.String(),
		StatusText:               v.StatusText,
	}
}

func (dto DeliveryAssignedViewDTO) toDomain() (projection.DeliveryAssignedView, error) {
	candidate, err := dto.DeliveryCandidateViewDTO.toDomain()
	status, statusErr := order.ParseStatus(dto.Status)
	if err = errors.Join(err, statusErr); err != nil {
		return projection.DeliveryAssignedView{}, err
	}
	return projection.DeliveryAssignedView{
		DeliveryCandidateView: candidate,
		PartnerEmail:          dto.PartnerEmail,
		PartnerName:           dto.PartnerName,
		Status:                status,
		StatusText:            dto.StatusText,
	}, nil
}
