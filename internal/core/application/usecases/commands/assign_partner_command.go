package commands

import (
	"errors"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/pkg/errs"
	"eatify/internal/pkg/guard"
)

var ErrAssignPartnerCommandIsNotConstructed = errors.New(
	"AssignPartnerCommand must be created via NewAssignPartnerCommand constructor",
)

// AssignPartnerCommand is a delivery actor claiming an accepted order for itself.
type AssignPartnerCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.OrderID
	partner kernel.Party

	guard guard.ConstructorGuard
}

func NewAssignPartnerCommand(
	actor kernel.Actor,
	orderID kernel.OrderID,
	partner kernel.Party,
) (AssignPartnerCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AssignPartnerCommand{}, err
	}
	if err := requireParty("deliveryPartner", partner); err != nil {
		return AssignPartnerCommand{}, err
	}
	if err := partner.RequirePhone("deliveryPartner.phone"); err != nil {
		return AssignPartnerCommand{}, err
	}
	if !actor.Is(kernel.RoleDelivery) || !actor.Owns(partner) {
		return AssignPartnerCommand{}, errs.NewForbiddenError(actor.String(), "assign "+partner.Email())
	}

	return AssignPartnerCommand{
		actor:   actor,
		orderID: orderID,
		partner: partner,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AssignPartnerCommand) Validate() error {
	return c.guard.Validate(ErrAssignPartnerCommandIsNotConstructed)
}

func (c AssignPartnerCommand) Actor() kernel.Actor     { return c.actor }
func (c AssignPartnerCommand) OrderID() kernel.OrderID { return c.orderID }
func (c AssignPartnerCommand) Partner() kernel.Party   { return c.partner }
