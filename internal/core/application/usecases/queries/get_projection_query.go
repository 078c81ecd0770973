package queries

import (
	"errors"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/pkg/guard"
)

var ErrGetProjectionQueryIsNotConstructed = errors.New(
	"GetProjectionQuery must be created via NewGetProjectionQuery constructor",
)

// GetProjectionQuery asks for the caller's view of one order.
//
// Example:
//
//	query, err := NewGetProjectionQuery(actor, "O1")
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, query)
type GetProjectionQuery struct {
	actor   kernel.Actor
	orderID kernel.OrderID

	guard guard.ConstructorGuard
}

// NewGetProjectionQuery validates the order id. The actor is trusted as forwarded by the gateway.
func NewGetProjectionQuery(actor kernel.Actor, orderID kernel.OrderID) (GetProjectionQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetProjectionQuery{}, err
	}
	return GetProjectionQuery{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetProjectionQuery) Validate() error {
	return q.guard.Validate(ErrGetProjectionQueryIsNotConstructed)
}

func (q GetProjectionQuery) Actor() kernel.Actor     { return q.actor }
func (q GetProjectionQuery) OrderID() kernel.OrderID { return q.orderID }
