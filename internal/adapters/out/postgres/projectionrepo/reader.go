package projectionrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/projection"
	"eatify/internal/core/ports"
	"eatify/internal/pkg/errs"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

var _ ports.ProjectionReader = &GormProjectionReader{}

// GormProjectionReader serves queries outside any unit of work.
type GormProjectionReader struct {
	db *gorm.DB
}

func NewGormProjectionReader(db *gorm.DB) *GormProjectionReader {
	return &GormProjectionReader{db: db}
}

type viewDTO[V any] interface {
	TableName() string
	toDomain() (V, error)
}

func get[V any, D viewDTO[V]](ctx context.Context, db *gorm.DB, id kernel.OrderID) (V, error) {
	var (
		dto  D
		zero V
	)
	if err := db.WithContext(ctx).First(&dto, "order_id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, errs.NewObjectNotFoundError("orderId", id.String())
		}
		return zero, err
	}
	return dto.toDomain()
}

// list runs a squirrel-built select against the view table, newest first.
func list[V any, D viewDTO[V]](ctx context.Context, db *gorm.DB, pred sq.Sqlizer) ([]V, error) {
	var table D
	builder := sq.Select("*").From(table.TableName()).OrderBy("placed_at DESC", "order_id ASC")
	if pred != nil {
		builder = builder.Where(pred)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dtos []D
	if err = db.WithContext(ctx).Raw(query, args...).Scan(&dtos).Error; err != nil {
		return nil, err
	}

	views := make([]V, 0, len(dtos))
	for _, dto := range dtos {
		v, convErr := dto.toDomain()
		if convErr != nil {
			return nil, convErr
		}
		views = append(views, v)
	}
	return views, nil
}

func (r *GormProjectionReader) GetRestaurantView(ctx context.Context, id kernel.OrderID) (projection.RestaurantView, error) {
	return get[projection.RestaurantView, RestaurantViewDTO](ctx, r.db, id)
}

func (r *GormProjectionReader) GetCustomerView(ctx context.Context, id kernel.OrderID) (projection.CustomerView, error) {
	return get[projection.CustomerView, CustomerViewDTO](ctx, r.db, id)
}

func (r *GormProjectionReader) GetDeliveryCandidateView(
	ctx context.Context,
	id kernel.OrderID,
) (projection.DeliveryCandidateView, error) {
	return get[projection.DeliveryCandidateView, DeliveryCandidateViewDTO](ctx, r.db, id)
}

func (r *GormProjectionReader) GetDeliveryAssignedView(
	ctx context.Context,
	id kernel.OrderID,
) (projection.DeliveryAssignedView, error) {
	return get[projection.DeliveryAssignedView, DeliveryAssignedViewDTO](ctx, r.db, id)
}

func (r *GormProjectionReader) ListRestaurantViews(
	ctx context.Context,
	restaurantEmail, restaurantName string,
) ([]projection.RestaurantView, error) {
	pred := sq.And{sq.Eq{"restaurant_email": strings.ToLower(restaurantEmail)}}
	if restaurantName != "" {
		pred = append(pred, sq.Eq{"restaurant_name": restaurantName})
	}
	return list[projection.RestaurantView, RestaurantViewDTO](ctx, r.db, pred)
}

func (r *GormProjectionReader) ListCustomerViews(ctx context.Context, customerEmail string) ([]projection.CustomerView, error) {
	return list[projection.CustomerView, CustomerViewDTO](ctx, r.db,
		sq.Eq{"customer_email": strings.ToLower(customerEmail)})
}

func (r *GormProjectionReader) ListDeliveryCandidateViews(ctx context.Context) ([]projection.DeliveryCandidateView, error) {
	return list[projection.DeliveryCandidateView, DeliveryCandidateViewDTO](ctx, r.db, nil)
}

func (r *GormProjectionReader) ListDeliveryAssignedViews(
	ctx context.Context,
	partnerEmail string,
) ([]projection.DeliveryAssignedView, error) {
	return list[projection.DeliveryAssignedView, DeliveryAssignedViewDTO](ctx, r.db,
		sq.Eq{"partner_email": strings.ToLower(partnerEmail)})
}
