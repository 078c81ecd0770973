package ports

import (
	"context"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/projection"
)

// ProjectionRepository is the write side of the per-actor projections. Only the lifecycle
// commands use it, always in the order restaurant, customer, delivery.
type ProjectionRepository interface {
	SaveRestaurant(ctx context.Context, view projection.RestaurantView) error
	SaveCustomer(ctx context.Context, view projection.CustomerView) error
	SaveDeliveryCandidate(ctx context.Context, view projection.DeliveryCandidateView) error
	SaveDeliveryAssigned(ctx context.Context, view projection.DeliveryAssignedView) error

	// Remove deletes one projection; a missing row is not an error.
	Remove(ctx context.Context, kind projection.Kind, id kernel.OrderID) error

	Presence(ctx context.Context, id kernel.OrderID) (projection.Presence, error)

	// ListOrderIDs returns distinct order ids found in any projection.
	ListOrderIDs(ctx context.Context, limit int) ([]kernel.OrderID, error)
}

// ProjectionReader serves the read side. Missing views yield *errs.ObjectNotFoundError.
type ProjectionReader interface {
	GetRestaurantView(ctx context.Context, id kernel.OrderID) (projection.RestaurantView, error)
	GetCustomerView(ctx context.Context, id kernel.OrderID) (projection.CustomerView, error)
	GetDeliveryCandidateView(ctx context.Context, id kernel.OrderID) (projection.DeliveryCandidateView, error)
	GetDeliveryAssignedView(ctx context.Context, id kernel.OrderID) (projection.DeliveryAssignedView, error)

	// ListRestaurantViews filters by owner email and, when non-empty, restaurant name.
	ListRestaurantViews(ctx context.Context, restaurantEmail, restaurantName string) ([]projection.RestaurantView, error)
	ListCustomerViews(ctx context.Context, customerEmail string) ([]projection.CustomerView, error)
	ListDeliveryCandidateViews(ctx context.Context) ([]projection.DeliveryCandidateView, error)
	ListDeliveryAssignedViews(ctx context.Context, partnerEmail string) ([]projection.DeliveryAssignedView, error)
}
