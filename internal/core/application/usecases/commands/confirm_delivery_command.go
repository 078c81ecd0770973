package commands

import (
	"errors"
	"strings"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/pkg/errs"
	"eatify/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

type ConfirmDeliveryCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.OrderID
	code    string

	guard guard.ConstructorGuard
}

func NewConfirmDeliveryCommand(actor kernel.Actor, orderID kernel.OrderID, code string) (ConfirmDeliveryCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ConfirmDeliveryCommand{}, err
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return ConfirmDeliveryCommand{}, errs.NewValueIsRequiredError("code")
	}

	return ConfirmDeliveryCommand{
		actor:   actor,
		orderID: orderID,
		code:    code,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

func (c ConfirmDeliveryCommand) Actor() kernel.Actor     { return c.actor }
func (c ConfirmDeliveryCommand) OrderID() kernel.OrderID { return c.orderID }
func (c ConfirmDeliveryCommand) Code() string            { return c.code }
