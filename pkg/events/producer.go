package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"nailbook/pkg/logger"
)

// Publisher pushes booking lifecycle events to the notification stream.
// Publishing is best-effort: a broker outage never fails the booking
// operation that triggered the event.
type Publisher interface {
	Publish(ctx context.Context, event BookingEvent) error
	Close() error
}

type kafkaPublisher struct {
	writer *kafka.Writer
	log    *logger.Logger
	mu     sync.Mutex
	closed bool
}

// NewPublisher returns a Kafka-backed publisher, or a no-op one when no
// brokers are configured.
func NewPublisher(log *logger.Logger, brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		log.Info("Event publishing disabled, no Kafka brokers configured")
		return nopPublisher{}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // key by order ID for per-booking ordering
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}

	log.Info("Event publishing enabled", "topic", topic, "brokers", len(brokers))
	return &kafkaPublisher{writer: writer, log: log}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event BookingEvent) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return fmt.Errorf("publisher is closed")
	}
	p.mu.Unlock()

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-id", Value: []byte(event.ID)},
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, BookingEvent) error { return nil }
func (nopPublisher) Close() error                                { return nil }

// Nop returns a publisher that drops everything. Used in tests.
func Nop() Publisher { return nopPublisher{} }
