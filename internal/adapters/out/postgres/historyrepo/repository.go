package historyrepo

import (
	"context"
	"strings"

	"eatify/internal/core/domain/model/history"
	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ports.HistoryRepository = &GormHistoryRepository{}

type GormHistoryRepository struct {
	db *gorm.DB
}

func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Append is insert-or-ignore on the owner and order id.
func (r *GormHistoryRepository) Append(ctx context.Context, entry history.PreviousOrder) (bool, error) {
	dto := fromDomain(entry)
	dto.OwnerEmail = strings.ToLower(dto.OwnerEmail)

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_role"}, {Name: "owner_email"}, {Name: "order_id"}},
			DoNothing: true,
		}).
		Create(&dto)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ListByOwner returns the newest entries first.
func (r *GormHistoryRepository) ListByOwner(
	ctx context.Context,
	role kernel.Role,
	email string,
) ([]history.PreviousOrder, error) {
	var dtos []PreviousOrderDTO
	err := r.db.WithContext(ctx).
		Where("owner_role = ? AND owner_email = ?", string(role), strings.ToLower(email)).
		Order("archived_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]history.PreviousOrder, 0, len(dtos))
	for _, dto := range dtos {
		entry, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
