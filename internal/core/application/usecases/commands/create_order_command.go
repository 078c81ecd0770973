package commands

import (
	"errors"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/order"
	"eatify/internal/pkg/errs"
	"eatify/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places a paid order on behalf of the customer who owns it.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(actor, "O1", customer, restaurant, items, billing)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor      kernel.Actor
	orderID    kernel.OrderID
	customer   kernel.Party
	restaurant kernel.Party
	lineItems  []order.LineItem
	billing    order.Billing

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates every field and joins the failures.
// The actor must be a customer whose email matches the customer party.
func NewCreateOrderCommand(
	actor kernel.Actor,
	orderID kernel.OrderID,
	customer kernel.Party,
	restaurant kernel.Party,
	lineItems []order.LineItem,
	billing order.Billing,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		actor:      actor,
		restaurant: restaurant,
		billing:    billing,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomer(customer),
		cmd.setLineItems(lineItems),
		requireParty("restaurant", restaurant),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() kernel.Actor        { return c.actor }
func (c CreateOrderCommand) OrderID() kernel.OrderID    { return c.orderID }
func (c CreateOrderCommand) Customer() kernel.Party     { return c.customer }
func (c CreateOrderCommand) Restaurant() kernel.Party   { return c.restaurant }
func (c CreateOrderCommand) Billing() order.Billing     { return c.billing }
func (c CreateOrderCommand) LineItems() []order.LineItem {
	return append([]order.LineItem(nil), c.lineItems...)
}

func (c *CreateOrderCommand) setOrderID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setCustomer(customer kernel.Party) error {
	if err := requireParty("customer", customer); err != nil {
		return err
	}
	if !c.actor.Is(kernel.RoleCustomer) || !c.actor.Owns(customer) {
		return errs.NewForbiddenError(c.actor.String(), "place an order for "+customer.Email())
	}
	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setLineItems(items []order.LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("lineItems")
	}
	c.lineItems = append([]order.LineItem(nil), items...)
	return nil
}

func requireParty(param string, p kernel.Party) error {
	if p.IsZero() {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}
