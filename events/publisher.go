package events

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// PropertyEvent is the message published for every property mutation.
// Consumers use it to keep their search caches coherent.
type PropertyEvent struct {
	Action     string `json:"action"` // "create", "update", "delete", "publish"
	PropertyID string `json:"property_id"`
}

// PropertyPublisher publishes property mutation events. Publishing is
// best-effort: a broker outage never fails the originating operation.
type PropertyPublisher interface {
	PublishPropertyEvent(action string, propertyID uuid.UUID)
	Close() error
}

// rabbitMQPublisher implements PropertyPublisher on RabbitMQ.
type rabbitMQPublisher struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	queueName  string
}

// NewRabbitMQPublisher connects to RabbitMQ and declares the property
// events queue.
func NewRabbitMQPublisher(rabbitURL, queueName string) (PropertyPublisher, error) {
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

	log.Printf("Queue '%s' declared successfully", queueName)

	return &rabbitMQPublisher{
		connection: conn,
		channel:    ch,
		queueName:  queueName,
	}, nil
}

// PublishPropertyEvent sends one mutation event. Errors are logged, not
// returned: the store write already succeeded and must not be rolled back
// because the broker is down.
func (p *rabbitMQPublisher) PublishPropertyEvent(action string, propertyID uuid.UUID) {
	event := PropertyEvent{
		Action:     action,
		PropertyID: propertyID.String(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling property event: %v", err)
		return
	}

	err = p.channel.Publish(
		"",          // exchange
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		log.Printf("Error publishing property event: action=%s, id=%s, error=%v", action, propertyID, err)
		return
	}

	log.Printf("Property event published: action=%s, id=%s", action, propertyID)
}

// Close shuts down the channel and connection.
func (p *rabbitMQPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.connection != nil {
		return p.connection.Close()
	}
	return nil
}
