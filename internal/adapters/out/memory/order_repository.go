package memory

import (
	"context"
	"fmt"
	"sort"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/order"
	"eatify/internal/core/ports"
	"eatify/internal/pkg/errs"
)

var _ ports.OrderRepository = &OrderRepository{}

type OrderRepository struct {
	uow *UnitOfWork
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	snapshot := aggregate.Snapshot()

	return r.uow.write(func(s *state) error {
		if _, ok := s.orders[snapshot.ID]; ok {
			return errs.NewObjectAlreadyExistsError("orderId", snapshot.ID.String())
		}
		s.orders[snapshot.ID] = snapshot
		return nil
	})
}

// Update compares status and version at commit time, under the store lock.
func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	snapshot := aggregate.Snapshot()
	previous := aggregate.PreviousVersion()

	return r.uow.write(func(s *state) error {
		stored, ok := s.orders[snapshot.ID]
		if !ok {
			return errs.NewObjectNotFoundError("orderId", snapshot.ID.String())
		}
		if stored.Status != expected || stored.Version != previous {
			return fmt.Errorf("%w: order %s is %s at version %d",
				order.ErrConcurrentModification, snapshot.ID, stored.Status, stored.Version)
		}
		s.orders[snapshot.ID] = snapshot
		return nil
	})
}

func (r *OrderRepository) Get(_ context.Context, id kernel.OrderID) (*order.Order, error) {
	var (
		snapshot order.Snapshot
		ok       bool
	)
	r.uow.store.read(func(s *state) {
		snapshot, ok = s.orders[id]
	})
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id.String())
	}
	return order.RestoreOrder(snapshot)
}

// GetForUpdate buffers a check that the stored status and version are unchanged at commit.
func (r *OrderRepository) GetForUpdate(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	o, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	status, version := o.Status(), o.Version()
	err = r.uow.write(func(s *state) error {
		stored, ok := s.orders[id]
		if !ok {
			return errs.NewObjectNotFoundError("orderId", id.String())
		}
		if stored.Status != status || stored.Version != version {
			return fmt.Errorf("%w: order %s is %s at version %d",
				order.ErrConcurrentModification, id, stored.Status, stored.Version)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// GetMany skips ids that do not exist.
func (r *OrderRepository) GetMany(_ context.Context, ids []kernel.OrderID) ([]*order.Order, error) {
	var snapshots []order.Snapshot
	r.uow.store.read(func(s *state) {
		for _, id := range ids {
			if snapshot, ok := s.orders[id]; ok {
				snapshots = append(snapshots, snapshot)
			}
		}
	})

	orders := make([]*order.Order, 0, len(snapshots))
	for _, snapshot := range snapshots {
		o, err := order.RestoreOrder(snapshot)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *OrderRepository) ListTerminalUnarchived(_ context.Context, limit int) ([]kernel.OrderID, error) {
	return r.list(limit, func(snapshot order.Snapshot) bool {
		return snapshot.Status.IsTerminal() && snapshot.ArchivedAt == nil
	}), nil
}

func (r *OrderRepository) ListActiveIDs(_ context.Context, limit int) ([]kernel.OrderID, error) {
	return r.list(limit, func(snapshot order.Snapshot) bool {
		return !snapshot.Status.IsTerminal()
	}), nil
}

// list returns matching ids oldest first.
func (r *OrderRepository) list(limit int, match func(order.Snapshot) bool) []kernel.OrderID {
	var matched []order.Snapshot
	r.uow.store.read(func(s *state) {
		for _, snapshot := range s.orders {
			if match(snapshot) {
				matched = append(matched, snapshot)
			}
		}
	})

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	ids := make([]kernel.OrderID, 0, len(matched))
	for _, snapshot := range matched {
		if limit > 0 && len(ids) == limit {
			break
		}
		ids = append(ids, snapshot.ID)
	}
	return ids
}
