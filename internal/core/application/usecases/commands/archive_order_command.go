package commands

import (
	"errors"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/pkg/guard"
)

var ErrArchiveOrderCommandIsNotConstructed = errors.New(
	"ArchiveOrderCommand must be created via NewArchiveOrderCommand constructor",
)

type ArchiveOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID

	guard guard.ConstructorGuard
}

func NewArchiveOrderCommand(orderID kernel.OrderID) (ArchiveOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ArchiveOrderCommand{}, err
	}

	return ArchiveOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ArchiveOrderCommand) Validate() error {
	return c.guard.Validate(ErrArchiveOrderCommandIsNotConstructed)
}

func (c ArchiveOrderCommand) OrderID() kernel.OrderID { return c.orderID }
