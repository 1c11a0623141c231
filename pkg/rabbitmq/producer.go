/**
 * @description
 * This package provides a producer for publishing checkout decision events to
 * RabbitMQ. The portal treats the broker as optional telemetry: when RabbitMQ
 * is unreachable a no-op fallback publisher keeps the checkout flow intact.
 *
 * @dependencies
 * - context, encoding/json, time: Standard Go libraries.
 * - github.com/rabbitmq/amqp091-go: The RabbitMQ client library.
 */
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// DecisionEvent is published after every completed submit attempt, whether
// the firewall allowed, declined, or the call failed in transit.
type DecisionEvent struct {
	TransactionID string    `json:"transaction_id"`
	MerchantID    string    `json:"merchant_id"`
	Decision      string    `json:"decision"`
	TrustScore    *int      `json:"trust_score,omitempty"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Timestamp     time.Time `json:"timestamp"`
}

// EventProducer holds the RabbitMQ connection and channel for publishing.
type EventProducer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

// Publisher is the interface implemented by types that can publish events.
type Publisher interface {
	PublishDecisionEvent(ctx context.Context, exchange string, event DecisionEvent) error
	Close()
}

// EventProducerFallback is a no-op publisher used when RabbitMQ is not
// configured or unavailable at startup.
type EventProducerFallback struct{}

func (p *EventProducerFallback) PublishDecisionEvent(ctx context.Context, exchange string, event DecisionEvent) error {
	log.Printf("level=warn component=rabbitmq_producer mode=fallback msg=\"decision event publish skipped\" transaction_id=%s", event.TransactionID)
	return nil
}

func (p *EventProducerFallback) Close() {}

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.Trim(clean, "\"'")
	if idx := strings.Index(strings.ToLower(clean), "amqp"); idx > 0 {
		clean = clean[idx:]
	}
	u, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}

// NewEventProducer creates and returns a new EventProducer.
func NewEventProducer(amqpURL string) (*EventProducer, error) {
	cleanURL, err := sanitizeAMQPURL(amqpURL)
	if err != nil {
		return nil, err
	}

	// Bounded dial timeout so startup does not hang indefinitely
	conn, err := amqp091.DialConfig(cleanURL, amqp091.Config{Dial: amqp091.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &EventProducer{conn: conn, channel: ch}, nil
}

// PublishDecisionEvent publishes a decision event to a durable topic
// exchange under the checkout.decision.recorded routing key.
func (p *EventProducer) PublishDecisionEvent(ctx context.Context, exchange string, event DecisionEvent) error {
	if err := p.channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		log.Printf("level=warn component=rabbitmq_producer msg=\"exchange declare failed; reopening channel\" exchange=%s err=%v", exchange, err)
		ch, chErr := p.conn.Channel()
		if chErr != nil {
			return chErr
		}
		p.channel = ch
		if err := p.channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
			return err
		}
	}

	jsonBody, err := json.Marshal(event)
	if err != nil {
		log.Printf("level=error component=rabbitmq_producer msg=\"json marshal failed\" transaction_id=%s err=%v", event.TransactionID, err)
		return err
	}

	return p.channel.PublishWithContext(ctx,
		exchange,
		"checkout.decision.recorded",
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Timestamp:   time.Now(),
			Body:        jsonBody,
		},
	)
}

// Close gracefully closes the channel and connection to RabbitMQ.
func (p *EventProducer) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
