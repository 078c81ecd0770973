package projectionrepo

import (
	"context"
	"fmt"
	"strings"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/projection"
	"eatify/internal/core/ports"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ports.ProjectionRepository = &GormProjectionRepository{}

// GormProjectionRepository upserts views keyed by order id.
type GormProjectionRepository struct {
	db *gorm.DB
}

func NewGormProjectionRepository(db *gorm.DB) *GormProjectionRepository {
	return &GormProjectionRepository{db: db}
}

func (r *GormProjectionRepository) SaveRestaurant(ctx context.Context, view projection.RestaurantView) error {
	dto := restaurantFromDomain(view)
	return r.upsert(ctx, &dto)
}

func (r *GormProjectionRepository) SaveCustomer(ctx context.Context, view projection.CustomerView) error {
	dto := customerFromDomain(view)
	return r.upsert(ctx, &dto)
}

func (r *GormProjectionRepository) SaveDeliveryCandidate(ctx context.Context, view projection.DeliveryCandidateView) error {
	dto := candidateFromDomain(view)
	return r.upsert(ctx, &dto)
}

func (r *GormProjectionRepository) SaveDeliveryAssigned(ctx context.Context, view projection.DeliveryAssignedView) error {
	dto := assignedFromDomain(view)
	return r.upsert(ctx, &dto)
}

func (r *GormProjectionRepository) upsert(ctx context.Context, dto any) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			UpdateAll: true,
		}).
		Create(dto).Error
}

func (r *GormProjectionRepository) Remove(ctx context.Context, kind projection.Kind, id kernel.OrderID) error {
	table, ok := tables()[kind]
	if !ok {
		return fmt.Errorf("unknown projection kind %d", kind)
	}
	return r.db.WithContext(ctx).Exec("DELETE FROM "+table+" WHERE order_id = ?", id.String()).Error
}

// Presence checks all four tables in one round trip.
func (r *GormProjectionRepository) Presence(ctx context.Context, id kernel.OrderID) (projection.Presence, error) {
	parts := make([]string, 0, len(projection.Kinds()))
	args := make([]any, 0, len(projection.Kinds()))
	for _, kind := range projection.Kinds() {
		parts = append(parts, fmt.Sprintf("SELECT %d AS kind FROM %s WHERE order_id = ?", int(kind), tables()[kind]))
		args = append(args, id.String())
	}

	var kinds []int
	if err := r.db.WithContext(ctx).Raw(strings.Join(parts, " UNION ALL "), args...).Scan(&kinds).Error; err != nil {
		return nil, err
	}

	presence := projection.Presence{}
	for _, k := range kinds {
		presence[projection.Kind(k)] = true
	}
	return presence, nil
}

func (r *GormProjectionRepository) ListOrderIDs(ctx context.Context, limit int) ([]kernel.OrderID, error) {
	parts := make([]string, 0, len(projection.Kinds()))
	for _, kind := range projection.Kinds() {
		parts = append(parts, "SELECT order_id FROM "+tables()[kind])
	}

	builder := sq.Select("order_id").
		From("(" + strings.Join(parts, " UNION ") + ") AS ids").
		OrderBy("order_id ASC")
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
