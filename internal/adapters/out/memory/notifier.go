package memory

import (
	"context"
	"log/slog"
	"sync"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/ports"
)

var (
	_ ports.Notifier       = &LogNotifier{}
	_ ports.EventPublisher = &LogPublisher{}
)

// LogNotifier stands in for the mail collaborator when no broker is configured.
// It logs every notification and remembers the last one per order.
type LogNotifier struct {
	logger *slog.Logger

	mu   sync.Mutex
	last map[kernel.OrderID]ports.CodeNotification
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger, last: make(map[kernel.OrderID]ports.CodeNotification)}
}

func (n *LogNotifier) Notify(ctx context.Context, notification ports.CodeNotification) error {
	n.mu.Lock()
	n.last[notification.OrderID] = notification
	n.mu.Unlock()

	n.logger.InfoContext(ctx, "verification code issued",
		"order_id", notification.OrderID,
		"recipient", notification.Recipient,
		"code", notification.Code,
		"expires_at", notification.ExpiresAt,
	)
	return nil
}

// Last returns the most recent notification for id.
func (n *LogNotifier) Last(id kernel.OrderID) (ports.CodeNotification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	notification, ok := n.last[id]
	return notification, ok
}

// PublishedEvent is one message handed to LogPublisher.
type PublishedEvent struct {
	RoutingKey string
	Payload    []byte
}

type LogPublisher struct {
	logger *slog.Logger

	mu     sync.Mutex
	events []PublishedEvent
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	p.mu.Lock()
	p.events = append(p.events, PublishedEvent{RoutingKey: routingKey, Payload: payload})
	p.mu.Unlock()

	p.logger.DebugContext(ctx, "event published", "routing_key", routingKey, "bytes", len(payload))
	return nil
}

func (p *LogPublisher) Events() []PublishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]PublishedEvent(nil), p.events...)
}
