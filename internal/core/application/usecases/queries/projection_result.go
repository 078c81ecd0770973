// Package queries contains read operations for retrieving system state.
// Queries never touch the canonical order row: they read the per-actor projections
// and the history written by the lifecycle commands.
package queries

import (
	"eatify/internal/core/domain/model/projection"
)

// ProjectionResult carries exactly one projection, chosen by the caller's role.
// Kind tells which field is set.
//
// Example:
//
//	result, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	switch result.Kind {
//	case projection.Customer:
//	    render(result.Customer)
//	}
type ProjectionResult struct {
	Kind              projection.Kind
	Restaurant        *projection.RestaurantView
	Customer          *projection.CustomerView
	DeliveryCandidate *projection.DeliveryCandidateView
	DeliveryAssigned  *projection.DeliveryAssignedView
}

// ProjectionList carries the active projections of one kind.
type ProjectionList struct {
	Kind               projection.Kind
	Restaurant         []projection.RestaurantView
	Customer           []projection.CustomerView
	DeliveryCandidates []projection.DeliveryCandidateView
	DeliveryAssigned   []projection.DeliveryAssignedView
}

// Len returns the number of views in the list, whatever their kind.
func (l ProjectionList) Len() int {
	return len(l.Restaurant) + len(l.Customer) + len(l.DeliveryCandidates) + len(l.DeliveryAssigned)
}
