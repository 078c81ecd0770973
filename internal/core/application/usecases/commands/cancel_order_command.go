package commands

import (
	"errors"
	"strings"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.OrderID
	reason  string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand accepts an empty reason.
func NewCancelOrderCommand(actor kernel.Actor, orderID kernel.OrderID, reason string) (CancelOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		actor:   actor,
		orderID: orderID,
		reason:  strings.TrimSpace(reason),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) Actor() kernel.Actor     { return c.actor }
func (c CancelOrderCommand) OrderID() kernel.OrderID { return c.orderID }
func (c CancelOrderCommand) Reason() string          { return c.reason }
