package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/order"
	"eatify/internal/core/ports"
	"eatify/internal/pkg/errs"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ports.OrderRepository = &GormOrderRepository{}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("orderId", dto.ID, err)
		}
		return err
	}

	return nil
}

// Update writes the aggregate only if the row still carries the expected status and the
// version the aggregate was loaded at.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND version = ?", dto.ID, expected.String(), aggregate.PreviousVersion()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.conflict(ctx, aggregate.ID())
	}

	return nil
}

// conflict explains a guarded update that matched no row.
func (r *GormOrderRepository) conflict(ctx context.Context, id kernel.OrderID) error {
	var stored OrderDTO
	err := r.db.WithContext(ctx).Select("status", "version").First(&stored, "id = ?", id.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("orderId", id.String())
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: order %s is %s at version %d",
		order.ErrConcurrentModification, id, stored.Status, stored.Version)
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate reads the order with a row lock held until the surrounding transaction ends.
// A guarded update from another transaction waits for it.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetMany retrieves the orders that exist among ids.
func (r *GormOrderRepository) GetMany(ctx context.Context, ids []kernel.OrderID) ([]*order.Order, error) {
	if len(ids) == 0 {
		return []*order.Order{}, nil
	}

	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}

	query, args, err := sq.Select("*").
		From(OrderDTO{}.TableName()).
		Where("id = ANY(?)", pq.Array(raw)).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dtos []OrderDTO
	if err = r.db.WithContext(ctx).Raw(query, args...).Scan(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// ListTerminalUnarchived returns delivered or cancelled orders awaiting archival, oldest first.
func (r *GormOrderRepository) ListTerminalUnarchived(ctx context.Context, limit int) ([]kernel.OrderID, error) {
	return r.listIDs(ctx, limit, sq.And{
		sq.Eq{"status": []string{order.Delivered.String(), order.Cancelled.String()}},
		sq.Eq{"archived_at": nil},
	})
}

// ListActiveIDs returns non-terminal orders, oldest first.
func (r *GormOrderRepository) ListActiveIDs(ctx context.Context, limit int) ([]kernel.OrderID, error) {
	active := make([]string, 0, len(order.ActiveStatuses()))
	for _, s := range order.ActiveStatuses() {
		active = append(active, s.String())
	}
	return r.listIDs(ctx, limit, sq.Eq{"status": active})
}

func (r *GormOrderRepository) listIDs(ctx context.Context, limit int, pred sq.Sqlizer) ([]kernel.OrderID, error) {
	builder := sq.Select("id").
		From(OrderDTO{}.TableName()).
		Where(pred).
		OrderBy("created_at ASC", "id ASC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var raw []string
	if err = r.db.WithContext(ctx).Raw(query, args...).Scan(&raw).Error; err != nil {
		return nil, err
	}

	ids := make([]kernel.OrderID, 0, len(raw))
	for _, s := range raw {
		ids = append(ids, kernel.OrderID(s))
	}
	return ids, nil
}
