package services

import (
	"time"

	"eatify/internal/core/domain/model/history"
	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/order"
	"eatify/internal/pkg/errs"
)

// Archiver folds a terminal order into the history entries of its participants.
type Archiver struct{}

func NewArchiver() Archiver {
	return Archiver{}
}

// Fold returns one PreviousOrder per customer, delivery partner and restaurant for a
// delivered order, and no entries for a cancelled one. Non-terminal orders are rejected.
func (a Archiver) Fold(o *order.Order, now time.Time) ([]history.PreviousOrder, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	switch o.Status() {
	case order.Cancelled:
		return nil, nil
	case order.Delivered:
	default:
		return nil, errs.NewInvalidTransitionError(o.Status().String(), "archive")
	}

	partner := o.Partner()
	if partner == nil {
		return nil, errs.NewValueIsRequiredError("deliveryPartner")
	}

	owners := []struct {
		role  kernel.Role
		email string
	}{
		{kernel.RoleCustomer, o.Customer().Email()},
		{kernel.RoleDelivery, partner.Email()},
		{kernel.RoleRestaurant, o.Restaurant().Email()},
	}

	entries := make([]history.PreviousOrder, 0, len(owners))
	for _, owner := range owners {
		entry, err := history.FromOrder(o, owner.role, owner.email, now)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
