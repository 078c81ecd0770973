package commands

import (
	"errors"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.OrderID

	guard guard.ConstructorGuard
}

func NewAcceptOrderCommand(actor kernel.Actor, orderID kernel.OrderID) (AcceptOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AcceptOrderCommand{}, err
	}

	return AcceptOrderCommand{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

func (c AcceptOrderCommand) Actor() kernel.Actor     { return c.actor }
func (c AcceptOrderCommand) OrderID() kernel.OrderID { return c.orderID }
