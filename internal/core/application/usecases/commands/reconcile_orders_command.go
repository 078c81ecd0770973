package commands

import (
	"errors"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/pkg/errs"
	"eatify/internal/pkg/guard"
)

const DefaultReconcileLimit = 100

var ErrReconcileOrdersCommandIsNotConstructed = errors.New(
	"ReconcileOrdersCommand must be created via NewReconcileOrdersCommand constructor",
)

type ReconcileOrdersCommand struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

// NewReconcileOrdersCommand is reserved to the system actor. A non-positive limit
// falls back to DefaultReconcileLimit.
func NewReconcileOrdersCommand(actor kernel.Actor, limit int) (ReconcileOrdersCommand, error) {
	if !actor.Is(kernel.RoleSystem) {
		return ReconcileOrdersCommand{}, errs.NewForbiddenError(actor.String(), "reconcile")
	}
	if limit <= 0 {
		limit = DefaultReconcileLimit
	}

	return ReconcileOrdersCommand{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (c ReconcileOrdersCommand) Validate() error {
	return c.guard.Validate(ErrReconcileOrdersCommandIsNotConstructed)
}

func (c ReconcileOrdersCommand) Limit() int { return c.limit }

// ReconcileReport counts what one sweep changed.
type ReconcileReport struct {
	Archived       int `json:"archived"`
	Repaired       int `json:"repaired"`
	OrphansRemoved int `json:"orphansRemoved"`
}
