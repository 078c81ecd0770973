package queries

import (
	"errors"
	"strings"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/pkg/guard"
)

// CandidatesFilter switches a delivery actor's listing to the claimable queue.
const CandidatesFilter = "candidates"

var ErrListActiveQueryIsNotConstructed = errors.New(
	"ListActiveQuery must be created via NewListActiveQuery constructor",
)

// ListActiveQuery lists the caller's active orders. The meaning of filter depends on
// the role: a restaurant name for restaurants, CandidatesFilter for delivery partners,
// ignored for customers.
type ListActiveQuery struct {
	actor  kernel.Actor
	filter string

	guard guard.ConstructorGuard
}

func NewListActiveQuery(actor kernel.Actor, filter string) ListActiveQuery {
	return ListActiveQuery{
		actor:  actor,
		filter: strings.TrimSpace(filter),
		guard:  guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q ListActiveQuery) Validate() error {
	return q.guard.Validate(ErrListActiveQueryIsNotConstructed)
}

func (q ListActiveQuery) Actor() kernel.Actor { return q.actor }
func (q ListActiveQuery) Filter() string      { return q.filter }
