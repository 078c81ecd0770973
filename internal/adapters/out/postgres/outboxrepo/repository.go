// Package outboxrepo stores lifecycle events until the relay publishes them.
package outboxrepo

import (
	"context"
	"fmt"
	"time"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/outbox"
	"eatify/internal/core/ports"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ ports.OutboxRepository = &GormOutboxRepository{}

type MessageDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoutingKey  string
	Payload     []byte `gorm:"type:jsonb"`
	RetryCount  int
	MaxRetries  int
	LastError   string
	NextRetryAt time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(msg outbox.Message) MessageDTO {
	return MessageDTO{
		ID:          msg.ID.Raw(),
		RoutingKey:  msg.RoutingKey,
		Payload:     msg.Payload,
		RetryCount:  msg.RetryCount,
		MaxRetries:  msg.MaxRetries,
		LastError:   msg.LastError,
		NextRetryAt: msg.NextRetryAt,
		CreatedAt:   msg.CreatedAt,
	}
}

func toDomain(dto MessageDTO) (outbox.Message, error) {
	id, err := kernel.UUIDFromString(dto.ID.String())
	if err != nil {
		return outbox.Message{}, err
	}
	return outbox.Message{
		ID:          id,
		RoutingKey:  dto.RoutingKey,
		Payload:     dto.Payload,
		RetryCount:  dto.RetryCount,
		MaxRetries:  dto.MaxRetries,
		LastError:   dto.LastError,
		NextRetryAt: dto.NextRetryAt.UTC(),
		CreatedAt:   dto.CreatedAt.UTC(),
	}, nil
}

type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Add(ctx context.Context, msg outbox.Message) error {
	dto := fromDomain(msg)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Pending retrieves messages that are due at now and still have retries left.
func (r *GormOutboxRepository) Pending(ctx context.Context, now time.Time, limit int) ([]outbox.Message, error) {
	builder := sq.Select(
		"id",
		"routing_key",
		"payload",
		"retry_count",
		"max_retries",
		"last_error",
		"next_retry_at",
		"created_at",
	).
		From(MessageDTO{}.TableName()).
		Where(sq.LtOrEq{"next_retry_at": now}).
		Where(sq.Expr("retry_count < max_retries")).
		OrderBy("next_retry_at ASC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dtos []MessageDTO
	if err = r.db.WithContext(ctx).Raw(query, args...).Scan(&dtos).Error; err != nil {
		return nil, fmt.Errorf("failed to query outbox messages: %w", err)
	}

	messages := make([]outbox.Message, 0, len(dtos))
	for _, dto := range dtos {
		msg, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// Delete removes a message after successful delivery.
func (r *GormOutboxRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return r.db.WithContext(ctx).Delete(&MessageDTO{}, "id = ?", id.Raw()).Error
}

// SaveRetry updates retry count and error information.
func (r *GormOutboxRepository) SaveRetry(ctx context.Context, msg outbox.Message) error {
	return r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id = ?", msg.ID.Raw()).
		Updates(map[string]any{
			"retry_count":   msg.RetryCount,
			"last_error":    msg.LastError,
			"next_retry_at": msg.NextRetryAt,
		}).Error
}
