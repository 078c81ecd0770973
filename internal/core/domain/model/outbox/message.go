// Package outbox models lifecycle events committed together with the state change
// and relayed to the message broker afterwards.
package outbox

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/order"
)

const (
	DefaultMaxRetries = 5
	baseBackoff       = 30 * time.Second
)

// LifecycleEvent is the payload published for every committed transition.
type LifecycleEvent struct {
	OrderID    string    `json:"orderId"`
	Event      string    `json:"event"`
	Status     string    `json:"status"`
	Actor      string    `json:"actor"`
	Version    int64     `json:"version"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Message struct {
	ID          kernel.UUID
	RoutingKey  string
	Payload     []byte
	RetryCount  int
	MaxRetries  int
	LastError   string
	NextRetryAt time.Time
	CreatedAt   time.Time
}

// NewLifecycleMessage records that o reached its current state through routingKey.
func NewLifecycleMessage(routingKey string, o *order.Order, actor kernel.Actor, now time.Time) (Message, error) {
	payload, err := json.Marshal(LifecycleEvent{
		OrderID:    o.ID().String(),
		Event:      routingKey,
		Status:     o.Status().String(),
		Actor:      actor.String(),
		Version:    o.Version(),
		OccurredAt: now.UTC(),
	})
	if err != nil {
		return Message{}, fmt.Errorf("marshal lifecycle event: %w", err)
	}

	return Message{
		ID:          kernel.NewUUID(),
		RoutingKey:  routingKey,
		Payload:     payload,
		MaxRetries:  DefaultMaxRetries,
		NextRetryAt: now.UTC(),
		CreatedAt:   now.UTC(),
	}, nil
}

// Failed returns the retry bookkeeping after a failed publish: 30s, 60s, 120s, ...
func (m Message) Failed(cause error, now time.Time) Message {
	m.RetryCount++
	m.LastError = cause.Error()
	backoff := time.Duration(math.Pow(2, float64(m.RetryCount-1))) * baseBackoff
	m.NextRetryAt = now.UTC().Add(backoff)
	return m
}

func (m Message) IsExhausted() bool {
	return m.RetryCount >= m.MaxRetries
}
