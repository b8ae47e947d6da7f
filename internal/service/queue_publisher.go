// Package service provides the RabbitMQ publisher for client lifecycle
// events.  Errors are returned with the failing step attached; logging them
// is left to the caller.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/client-accounts/internal/queue"
)

// dialTimeout bounds how long a write request can be held up by an
// unreachable broker.
const dialTimeout = 2 * time.Second

// QueuePublisher publishes ClientEvents to a durable queue on the default
// exchange.  Each call opens its own connection; event volume follows write
// traffic, which is low for this service.
type QueuePublisher struct {
	url   string
	queue string
}

func NewQueuePublisher(url, queue string) *QueuePublisher {
	return &QueuePublisher{url: url, queue: queue}
}

// Publish sends event as a persistent JSON message.  It never panics.
func (p *QueuePublisher) Publish(ctx context.Context, event q.ClientEvent) error {
	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(dialTimeout)})
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		return fmt.Errorf("declare queue %s: %w", p.queue, err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Type:         event.Type,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		pub,
	); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

// NopPublisher discards events.  It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, q.ClientEvent) error { return nil }
