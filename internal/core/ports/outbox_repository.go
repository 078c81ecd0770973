package ports

import (
	"context"
	"time"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/outbox"
)

type OutboxRepository interface {
	Add(ctx context.Context, msg outbox.Message) error

	// Pending returns up to limit messages due at now that still have retries left.
	Pending(ctx context.Context, now time.Time, limit int) ([]outbox.Message, error)

	Delete(ctx context.Context, id kernel.UUID) error

	// SaveRetry persists the retry bookkeeping of msg.
	SaveRetry(ctx context.Context, msg outbox.Message) error
}

// EventPublisher delivers relayed outbox messages to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
}
