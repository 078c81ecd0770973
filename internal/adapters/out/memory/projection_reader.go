package memory

import (
	"context"
	"strings"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/projection"
	"eatify/internal/core/ports"
	"eatify/internal/pkg/errs"
)

var _ ports.ProjectionReader = &ProjectionReader{}

// ProjectionReader serves the read side straight from committed state.
type ProjectionReader struct {
	store *Store
}

func NewProjectionReader(store *Store) *ProjectionReader {
	return &ProjectionReader{store: store}
}

func lookup[V any](r *ProjectionReader, pick func(s *state) map[kernel.OrderID]V, id kernel.OrderID) (V, error) {
	var (
		view V
		ok   bool
	)
	r.store.read(func(s *state) {
		view, ok = pick(s)[id]
	})
	if !ok {
		return view, errs.NewObjectNotFoundError("orderId", id.String())
	}
	return view, nil
}

func collect[V any](r *ProjectionReader, pick func(s *state) map[kernel.OrderID]V, keep func(V) bool) []V {
	views := make([]V, 0)
	r.store.read(func(s *state) {
		for _, v := range pick(s) {
			if keep(v) {
				views = append(views, v)
			}
		}
	})
	return views
}

func (r *ProjectionReader) GetRestaurantView(_ context.Context, id kernel.OrderID) (projection.RestaurantView, error) {
	return lookup(r, func(s *state) map[kernel.OrderID]projection.RestaurantView { return s.restaurants }, id)
}

func (r *ProjectionReader) GetCustomerView(_ context.Context, id kernel.OrderID) (projection.CustomerView, error) {
	return lookup(r, func(s *state) map[kernel.OrderID]projection.CustomerView { return s.customers }, id)
}

func (r *ProjectionReader) GetDeliveryCandidateView(
	_ context.Context,
	id kernel.OrderID,
) (projection.DeliveryCandidateView, error) {
	return lookup(r, func(s *state) map[kernel.OrderID]projection.DeliveryCandidateView { return s.candidates }, id)
}

func (r *ProjectionReader) GetDeliveryAssignedView(
	_ context.Context,
	id kernel.OrderID,
) (projection.DeliveryAssignedView, error) {
	return lookup(r, func(s *state) map[kernel.OrderID]projection.DeliveryAssignedView { return s.assigned }, id)
}

func (r *ProjectionReader) ListRestaurantViews(
	_ context.Context,
	restaurantEmail, restaurantName string,
) ([]projection.RestaurantView, error) {
	return collect(r,
		func(s *state) map[kernel.OrderID]projection.RestaurantView { return s.restaurants },
		func(v projection.RestaurantView) bool {
			return strings.EqualFold(v.RestaurantEmail, restaurantEmail) &&
				(restaurantName == "" || v.RestaurantName == restaurantName)
		}), nil
}

func (r *ProjectionReader) ListCustomerViews(_ context.Context, customerEmail string) ([]projection.CustomerView, error) {
	return collect(r,
		func(s *state) map[kernel.OrderID]projection.CustomerView { return s.customers },
		func(v projection.CustomerView) bool {
			return strings.EqualFold(v.CustomerEmail, customerEmail)
		}), nil
}

func (r *ProjectionReader) ListDeliveryCandidateViews(_ context.Context) ([]projection.DeliveryCandidateView, error) {
	return collect(r,
		func(s *state) map[kernel.OrderID]projection.DeliveryCandidateView { return s.candidates },
		func(projection.DeliveryCandidateView) bool { return true }), nil
}

func (r *ProjectionReader) ListDeliveryAssignedViews(
	_ context.Context,
	partnerEmail string,
) ([]projection.DeliveryAssignedView, error) {
	return collect(r,
		func(s *state) map[kernel.OrderID]projection.DeliveryAssignedView { return s.assigned },
		func(v projection.DeliveryAssignedView) bool {
			return strings.EqualFold(v.PartnerEmail, partnerEmail)
		}), nil
}
