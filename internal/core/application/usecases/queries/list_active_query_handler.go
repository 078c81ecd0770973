package queries

import (
	"context"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/projection"
	"eatify/internal/core/ports"
	"eatify/internal/pkg/errs"
)

// ListActiveQueryHandler runs a fresh query against the projection store on every call.
// The order of the returned views is unspecified.
type ListActiveQueryHandler struct {
	reader ports.ProjectionReader
}

func NewListActiveQueryHandler(reader ports.ProjectionReader) ListActiveQueryHandler {
	return ListActiveQueryHandler{reader: reader}
}

func (h ListActiveQueryHandler) Handle(ctx context.Context, query ListActiveQuery) (ProjectionList, error) {
	if err := query.Validate(); err != nil {
		return ProjectionList{}, err
	}

	actor := query.Actor()
	switch actor.Role() {
	case kernel.RoleRestaurant:
		views, err := h.reader.ListRestaurantViews(ctx, actor.Email(), query.Filter())
		return ProjectionList{Kind: projection.Restaurant, Restaurant: views}, err

	case kernel.RoleCustomer:
		views, err := h.reader.ListCustomerViews(ctx, actor.Email())
		return ProjectionList{Kind: projection.Customer, Customer: views}, err

	case kernel.RoleDelivery:
		if query.Filter() == CandidatesFilter {
			views, err := h.reader.ListDeliveryCandidateViews(ctx)
			return ProjectionList{Kind: projection.DeliveryCandidate, DeliveryCandidates: views}, err
		}
		views, err := h.reader.ListDeliveryAssignedViews(ctx, actor.Email())
		return ProjectionList{Kind: projection.DeliveryAssigned, DeliveryAssigned: views}, err

	default:
		return ProjectionList{}, errs.NewForbiddenError(actor.String(), "list active orders")
	}
}
