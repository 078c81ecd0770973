package memory

import (
	"context"
	"sort"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/projection"
	"eatify/internal/core/ports"
)

var _ ports.ProjectionRepository = &ProjectionRepository{}

type ProjectionRepository struct {
	uow *UnitOfWork
}

func (r *ProjectionRepository) SaveRestaurant(_ context.Context, view projection.RestaurantView) error {
	return r.uow.write(func(s *state) error {
		s.restaurants[view.OrderID] = view
		return nil
	})
}

func (r *ProjectionRepository) SaveCustomer(_ context.Context, view projection.CustomerView) error {
	return r.uow.write(func(s *state) error {
		s.customers[view.OrderID] = view
		return nil
	})
}

func (r *ProjectionRepository) SaveDeliveryCandidate(_ context.Context, view projection.DeliveryCandidateView) error {
	return r.uow.write(func(s *state) error {
		s.candidates[view.OrderID] = view
		return nil
	})
}

func (r *ProjectionRepository) SaveDeliveryAssigned(_ context.Context, view projection.DeliveryAssignedView) error {
	return r.uow.write(func(s *state) error {
		s.assigned[view.OrderID] = view
		return nil
	})
}

func (r *ProjectionRepository) Remove(_ context.Context, kind projection.Kind, id kernel.OrderID) error {
	return r.uow.write(func(s *state) error {
		switch kind {
		case projection.Restaurant:
			delete(s.restaurants, id)
		case projection.Customer:
			delete(s.customers, id)
		case projection.DeliveryCandidate:
			delete(s.candidates, id)
		case projection.DeliveryAssigned:
			delete(s.assigned, id)
		}
		return nil
	})
}

func (r *ProjectionRepository) Presence(_ context.Context, id kernel.OrderID) (projection.Presence, error) {
	presence := projection.Presence{}
	r.uow.store.read(func(s *state) {
		presence = presenceOf(s, id)
	})
	return presence, nil
}

func (r *ProjectionRepository) ListOrderIDs(_ context.Context, limit int) ([]kernel.OrderID, error) {
	seen := make(map[kernel.OrderID]struct{})
	r.uow.store.read(func(s *state) {
		for id := range s.restaurants {
			seen[id] = struct{}{}
		}
		for id := range s.customers {
			seen[id] = struct{}{}
		}
		for id := range s.candidates {
			seen[id] = struct{}{}
		}
		for id := range s.assigned {
			seen[id] = struct{}{}
		}
	})

	ids := make([]kernel.OrderID, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func presenceOf(s *state, id kernel.OrderID) projection.Presence {
	presence := projection.Presence{}
	if _, ok := s.restaurants[id]; ok {
		presence[projection.Restaurant] = true
	}
	if _, ok := s.customers[id]; ok {
		presence[projection.Customer] = true
	}
	if _, ok := s.candidates[id]; ok {
		presence[projection.DeliveryCandidate] = true
	}
	if _, ok := s.assigned[id]; ok {
		presence[projection.DeliveryAssigned] = true
	}
	return presence
}
