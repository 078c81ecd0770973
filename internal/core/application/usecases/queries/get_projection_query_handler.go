package queries

import (
	"context"
	"errors"
	"strings"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/projection"
	"eatify/internal/core/ports"
	"eatify/internal/pkg/errs"
)

// GetProjectionQueryHandler resolves the projection a caller is entitled to see:
//
//   - customer: the customer view of an order it placed
//   - restaurant: the restaurant view of an order addressed to it
//   - delivery: the assigned view of an order it claimed, or the candidate view
//     of an order nobody has claimed yet
//
// Anything else, including a view owned by somebody else, is reported as not found
// so callers cannot probe for other parties' order ids.
type GetProjectionQueryHandler struct {
	reader ports.ProjectionReader
}

// NewGetProjectionQueryHandler creates a handler reading from the projection store.
func NewGetProjectionQueryHandler(reader ports.ProjectionReader) GetProjectionQueryHandler {
	return GetProjectionQueryHandler{reader: reader}
}

// Handle returns *errs.ObjectNotFoundError when no visible projection exists.
func (h GetProjectionQueryHandler) Handle(ctx context.Context, query GetProjectionQuery) (ProjectionResult, error) {
	if err := query.Validate(); err != nil {
		return ProjectionResult{}, err
	}

	actor, id := query.Actor(), query.OrderID()
	notFound := errs.NewObjectNotFoundError("orderId", id.String())

	switch actor.Role() {
	case kernel.RoleCustomer:
		v, err := h.reader.GetCustomerView(ctx, id)
		if err != nil {
			return ProjectionResult{}, err
		}
		if !sameEmail(v.CustomerEmail, actor.Email()) {
			return ProjectionResult{}, notFound
		}
		return ProjectionResult{Kind: projection.Customer, Customer: &v}, nil

	case kernel.RoleRestaurant:
		v, err := h.reader.GetRestaurantView(ctx, id)
		if err != nil {
			return ProjectionResult{}, err
		}
		if !sameEmail(v.RestaurantEmail, actor.Email()) {
			return ProjectionResult{}, notFound
		}
		return ProjectionResult{Kind: projection.Restaurant, Restaurant: &v}, nil

	case kernel.RoleDelivery:
		assigned, err := h.reader.GetDeliveryAssignedView(ctx, id)
		switch {
		case err == nil:
			if !sameEmail(assigned.PartnerEmail, actor.Email()) {
				return ProjectionResult{}, notFound
			}
			return ProjectionResult{Kind: projection.DeliveryAssigned, DeliveryAssigned: &assigned}, nil
		case !errors.Is(err, errs.ErrObjectNotFound):
			return ProjectionResult{}, err
		}

		candidate, err := h.reader.GetDeliveryCandidateView(ctx, id)
		if err != nil {
			return ProjectionResult{}, err
		}
		return ProjectionResult{Kind: projection.DeliveryCandidate, DeliveryCandidate: &candidate}, nil

	default:
		return ProjectionResult{}, notFound
	}
}

func sameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
