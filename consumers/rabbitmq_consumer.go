package consumers

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/davidjirca/dreamhome/events"
	"github.com/davidjirca/dreamhome/repositories"
)

// RabbitMQConsumer listens for property mutation events published by
// other instances and invalidates the local caches so stale search
// results are never served past the next lookup.
type RabbitMQConsumer struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	queueName  string
	cache      repositories.CacheRepository
}

// NewRabbitMQConsumer connects to RabbitMQ and declares the property
// events queue.
func NewRabbitMQConsumer(rabbitURL, queueName string, cache repositories.CacheRepository) (*RabbitMQConsumer, error) {
	log.Printf("Connecting to RabbitMQ at %s", rabbitURL)

	conn, err := amqp.Dial(rabbitURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if queueName == "" {
		queueName = "properties_queue"
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &RabbitMQConsumer{
		connection: conn,
		channel:    ch,
		queueName:  queueName,
		cache:      cache,
	}, nil
}

// Start begins consuming messages. Processing happens on a background
// goroutine; the call returns once the consumer is registered.
func (c *RabbitMQConsumer) Start() error {
	log.Printf("Starting RabbitMQ consumer for queue '%s'", c.queueName)

	// One message at a time.
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := c.channel.Consume(
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack (handled manually)
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			c.processMessage(msg)
		}
	}()

	return nil
}

// processMessage invalidates the caches touched by one mutation event.
// Malformed messages are rejected without requeue.
func (c *RabbitMQConsumer) processMessage(msg amqp.Delivery) {
	var event events.PropertyEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("Error unmarshaling property event: %v", err)
		msg.Nack(false, false)
		return
	}

	propertyID, err := uuid.Parse(event.PropertyID)
	if err != nil {
		log.Printf("Error: invalid property_id in event: %q", event.PropertyID)
		msg.Nack(false, false)
		return
	}

	switch event.Action {
	case "create", "update", "delete", "publish":
		c.cache.DeleteProperty(propertyID)
		c.cache.InvalidateSearches()
		log.Printf("Caches invalidated: action=%s, property_id=%s", event.Action, propertyID)
	default:
		log.Printf("Unknown action: %s", event.Action)
		msg.Nack(false, false)
		return
	}

	if err := msg.Ack(false); err != nil {
		log.Printf("Error acknowledging message: %v", err)
	}
}

// Close shuts down the channel and connection.
func (c *RabbitMQConsumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.connection != nil {
		return c.connection.Close()
	}
	return nil
}
