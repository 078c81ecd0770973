// Package rabbitmq delivers relayed lifecycle events and verification-code notifications
// over AMQP.
package rabbitmq

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/streadway/amqp"
)

const (
	// EventsExchange is the topic exchange lifecycle events are published to, keyed
	// order.placed, order.accepted and so on.
	EventsExchange = "eatify.orders"

	// NotificationsQueue feeds the mail collaborator.
	NotificationsQueue = "eatify.verification_codes"
)

// Client represents a RabbitMQ client. One channel is shared, publishes are serialized.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex
}

// NewClient dials url and declares the exchange and queue the service publishes to.
func NewClient(url string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	c := &Client{conn: conn, channel: channel}
	if err = c.declare(); err != nil {
		_ = c.Close()
		return nil, err
	}

	slog.Info("RabbitMQ connected")
	return c, nil
}

func (c *Client) declare() error {
	if err := c.channel.ExchangeDeclare(EventsExchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", EventsExchange, err)
	}
	if _, err := c.channel.QueueDeclare(NotificationsQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", NotificationsQueue, err)
	}
	return nil
}

// Channel returns the underlying AMQP channel.
func (c *Client) Channel() *amqp.Channel {
	return c.channel
}

func (c *Client) publish(exchange, routingKey string, msg amqp.Publishing) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.channel.Publish(exchange, routingKey, false, false, msg)
}

// Close closes the channel and connection for graceful shutdown.
func (c *Client) Close() error {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			return err
		}
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
