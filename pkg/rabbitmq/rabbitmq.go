// Package rabbitmq publishes and consumes order events over AMQP.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"loadlab/internal/models"

	"github.com/sirupsen/logrus"
	amqp "github.com/streadway/amqp"
)

// DefaultQueue receives order.created events.
const DefaultQueue = "order_queue"

// EventTypeOrderCreated is set as the AMQP message type.
const EventTypeOrderCreated = "order.created"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	logger  *logrus.Logger
	mu      sync.Mutex // guards channel for publishing
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL    string
	Queue  string
	Logger *logrus.Logger
}

// NewClient creates a new RabbitMQ client.
// It connects to RabbitMQ, opens a channel and declares the durable event queue.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Queue == "" {
		cfg.Queue = DefaultQueue
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close() // Close connection if channel creation fails
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareQueue(ch, cfg.Queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	cfg.Logger.WithField("queue", cfg.Queue).Info("RabbitMQ client connected")

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   cfg.Queue,
		logger:  cfg.Logger,
	}, nil
}

func declareQueue(ch *amqp.Channel, name string) error {
	_, err := ch.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s: %w", name, err)
	}
	return nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}

// EncodeOrderCreated turns event into a persistent JSON message.
func EncodeOrderCreated(event models.OrderCreatedEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal order event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		Type:         EventTypeOrderCreated,
		MessageId:    event.OrderID,
		Body:         body,
		DeliveryMode: amqp.Persistent, // Make message persistent
		Timestamp:    time.Now(),
	}, nil
}

// PublishOrderCreated publishes an order creation event to the client's queue.
func (c *Client) PublishOrderCreated(ctx context.Context, event models.OrderCreatedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := EncodeOrderCreated(event)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel == nil {
		return errors.New("RabbitMQ channel is not available")
	}
	// Default exchange, routed by queue name.
	if err := c.channel.Publish("", c.queue, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.WithFields(logrus.Fields{"order_id": event.OrderID, "queue": c.queue}).Debug("order event published")
	return nil
}

// EventHandler processes one decoded order event.
type EventHandler func(ctx context.Context, event models.OrderCreatedEvent) error

// ConsumeOrderEvents starts a goroutine that feeds queued events to handler until ctx ends
// or the channel closes.
func (c *Client) ConsumeOrderEvents(ctx context.Context, handler EventHandler) error {
	if c.channel == nil {
		return errors.New("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		c.queue,
		"",    // consumer tag
		false, // auto-ack: set to false to manually acknowledge messages
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.WithField("queue", c.queue).Info("waiting for order events")

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				Dispatch(ctx, msg, handler, c.logger)
			}
		}
	}()
	return nil
}

// Dispatch decodes msg and acknowledges it according to the handler's outcome.
// Undecodable messages are dropped; handler failures are requeued.
func Dispatch(ctx context.Context, msg amqp.Delivery, handler EventHandler, logger *logrus.Logger) {
	entry := logger.WithField("delivery_tag", msg.DeliveryTag)

	var event models.OrderCreatedEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		entry.WithError(err).Warn("dropping malformed order event")
		if nackErr := msg.Nack(false, false); nackErr != nil {
			entry.WithError(nackErr).Error("failed to nack message")
		}
		return
	}

	if err := handler(ctx, event); err != nil {
		entry.WithError(err).WithField("order_id", event.OrderID).Error("order event handler failed")
		// Be careful with requeueing to avoid infinite loops for unprocessable messages.
		if nackErr := msg.Nack(false, !msg.Redelivered); nackErr != nil {
			entry.WithError(nackErr).Error("failed to nack message")
		}
		return
	}

	if ackErr := msg.Ack(false); ackErr != nil {
		entry.WithError(ackErr).Error("failed to ack message")
	}
}

// LogOrderEvent returns a handler that writes each event to logger.
func LogOrderEvent(logger *logrus.Logger) EventHandler {
	return func(_ context.Context, event models.OrderCreatedEvent) error {
		logger.WithFields(logrus.Fields{
			"order_id":   event.OrderID,
			"user_id":    event.UserID,
			"total":      event.Total,
			"item_count": event.ItemCount,
		}).Info("order event received")
		return nil
	}
}
