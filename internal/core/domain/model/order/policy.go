package order

import (
	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/pkg/errs"
)

// Authorize checks that actor owns the decision behind e for this order.
//
//   - accept: the owning restaurant
//   - assign: any delivery actor (the claim)
//   - issue_code, reissue_code, confirm: the assigned delivery partner
//   - cancel: the owning restaurant or the system
func (o *Order) Authorize(actor kernel.Actor, e Event) error {
	allowed := false

	switch e {
	case Accept:
		allowed = actor.Is(kernel.RoleRestaurant) && actor.Owns(o.restaurant)
	case Assign:
		allowed = actor.Is(kernel.RoleDelivery)
	case IssueCode, ReissueCode, Confirm:
		allowed = actor.Is(kernel.RoleDelivery) && o.partner != nil && actor.Owns(*o.partner)
	case Cancel:
		allowed = actor.Is(kernel.RoleSystem) ||
			(actor.Is(kernel.RoleRestaurant) && actor.Owns(o.restaurant))
	}

	if !allowed {
		return errs.NewForbiddenError(actor.String(), e.String())
	}
	return nil
}

// IsVisibleTo reports whether actor is a party to the order.
func (o *Order) IsVisibleTo(actor kernel.Actor) bool {
	switch actor.Role() {
	case kernel.RoleSystem:
		return true
	case kernel.RoleCustomer:
		return actor.Owns(o.customer)
	case kernel.RoleRestaurant:
		return actor.Owns(o.restaurant)
	case kernel.RoleDelivery:
		return o.partner == nil || actor.Owns(*o.partner)
	default:
		return false
	}
}
