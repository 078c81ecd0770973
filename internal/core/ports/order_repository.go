package ports

import (
	"context"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/order"
)

// OrderRepository stores the canonical order.
type OrderRepository interface {
	// Add inserts a new order; a duplicate id yields *errs.ObjectAlreadyExistsError.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update is the guarded update: it writes the aggregate only if the stored row still has
	// status expected and version aggregate.PreviousVersion(), otherwise it returns an error
	// wrapping order.ErrConcurrentModification.
	Update(ctx context.Context, aggregate *order.Order, expected order.Status) error

	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// GetForUpdate reads the order and holds it until the unit of work ends: the commit fails
	// with order.ErrConcurrentModification if another unit changed the order in between.
	GetForUpdate(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	GetMany(ctx context.Context, ids []kernel.OrderID) ([]*order.Order, error)

	// ListTerminalUnarchived returns DELIVERED or CANCELLED orders with no archive stamp.
	ListTerminalUnarchived(ctx context.Context, limit int) ([]kernel.OrderID, error)

	ListActiveIDs(ctx context.Context, limit int) ([]kernel.OrderID, error)
}
