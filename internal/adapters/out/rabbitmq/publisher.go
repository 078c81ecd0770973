package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eatify/internal/core/ports"

	"github.com/streadway/amqp"
)

var (
	_ ports.EventPublisher = &EventPublisher{}
	_ ports.Notifier       = &Notifier{}
)

// EventPublisher publishes outbox payloads to the topic exchange.
type EventPublisher struct {
	client *Client
}

func NewEventPublisher(client *Client) *EventPublisher {
	return &EventPublisher{client: client}
}

func (p *EventPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.client.publish(EventsExchange, routingKey, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         payload,
	})
}

// codeMessage is the notification wire format consumed by the mail collaborator.
type codeMessage struct {
	OrderID   string    `json:"orderId"`
	Code      string    `json:"code"`
	Recipient string    `json:"recipient"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Notifier hands verification codes to the mail collaborator through a durable queue.
type Notifier struct {
	client *Client
}

func NewNotifier(client *Client) *Notifier {
	return &Notifier{client: client}
}

func (n *Notifier) Notify(ctx context.Context, notification ports.CodeNotification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(codeMessage{
		OrderID:   notification.OrderID.String(),
		Code:      notification.Code,
		Recipient: notification.Recipient,
		ExpiresAt: notification.ExpiresAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal code notification: %w", err)
	}

	return n.client.publish("", NotificationsQueue, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}
