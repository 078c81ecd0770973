package commands

import (
	"errors"
	"time"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/pkg/guard"
)

var (
	ErrIssueCodeCommandIsNotConstructed = errors.New(
		"IssueCodeCommand must be created via NewIssueCodeCommand constructor",
	)
	ErrReissueCodeCommandIsNotConstructed = errors.New(
		"ReissueCodeCommand must be created via NewReissueCodeCommand constructor",
	)
)

type IssueCodeCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.OrderID

	guard guard.ConstructorGuard
}

func NewIssueCodeCommand(actor kernel.Actor, orderID kernel.OrderID) (IssueCodeCommand, error) {
	if err := orderID.Validate(); err != nil {
		return IssueCodeCommand{}, err
	}

	return IssueCodeCommand{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c IssueCodeCommand) Validate() error {
	return c.guard.Validate(ErrIssueCodeCommandIsNotConstructed)
}

func (c IssueCodeCommand) Actor() kernel.Actor     { return c.actor }
func (c IssueCodeCommand) OrderID() kernel.OrderID { return c.orderID }

// ReissueCodeCommand replaces the live code of a CODE_ISSUED order. Every reissue is
// counted on the order and published as order.code_reissued.
type ReissueCodeCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.OrderID

	guard guard.ConstructorGuard
}

func NewReissueCodeCommand(actor kernel.Actor, orderID kernel.OrderID) (ReissueCodeCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ReissueCodeCommand{}, err
	}

	return ReissueCodeCommand{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c ReissueCodeCommand) Validate() error {
	return c.guard.Validate(ErrReissueCodeCommandIsNotConstructed)
}

func (c ReissueCodeCommand) Actor() kernel.Actor     { return c.actor }
func (c ReissueCodeCommand) OrderID() kernel.OrderID { return c.orderID }

// IssuedCode is what the issuer learns. The digits only travel through the notifier.
type IssuedCode struct {
	OrderID   kernel.OrderID
	ExpiresAt time.Time
}
