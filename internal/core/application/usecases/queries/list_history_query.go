package queries

import (
	"errors"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/pkg/errs"
	"eatify/internal/pkg/guard"
)

var (
	ErrListHistoryQueryIsNotConstructed = errors.New(
		"ListHistoryQuery must be created via NewListHistoryQuery constructor",
	)
	ErrGetEarningsQueryIsNotConstructed = errors.New(
		"GetEarningsQuery must be created via NewGetEarningsQuery constructor",
	)
)

// ListHistoryQuery lists the archived orders of the caller.
type ListHistoryQuery struct {
	actor kernel.Actor

	guard guard.ConstructorGuard
}

// NewListHistoryQuery rejects the system actor, which owns no history.
func NewListHistoryQuery(actor kernel.Actor) (ListHistoryQuery, error) {
	if actor.Is(kernel.RoleSystem) || actor.Email() == "" {
		return ListHistoryQuery{}, errs.NewForbiddenError(actor.String(), "list history")
	}
	return ListHistoryQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q ListHistoryQuery) Validate() error {
	return q.guard.Validate(ErrListHistoryQueryIsNotConstructed)
}

func (q ListHistoryQuery) Actor() kernel.Actor { return q.actor }

// GetEarningsQuery sums the caller's history: items totals for a restaurant,
// delivery fees for a partner, bill totals for a customer.
type GetEarningsQuery struct {
	actor kernel.Actor

	guard guard.ConstructorGuard
}

func NewGetEarningsQuery(actor kernel.Actor) (GetEarningsQuery, error) {
	if actor.Is(kernel.RoleSystem) || actor.Email() == "" {
		return GetEarningsQuery{}, errs.NewForbiddenError(actor.String(), "read earnings")
	}
	return GetEarningsQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetEarningsQuery) Validate() error {
	return q.guard.Validate(ErrGetEarningsQueryIsNotConstructed)
}

func (q GetEarningsQuery) Actor() kernel.Actor { return q.actor }

// GetEarningsResponse is the total together with how many orders it covers.
type GetEarningsResponse struct {
	Total  kernel.Money
	Orders int
}
