package events

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Publisher emits order lifecycle events. Publishing is best-effort:
// a broker outage must never fail the request that triggered the event.
type Publisher interface {
	Publish(eventType string, orderID uuid.UUID, payload any)
	Close() error
}

// kafkaPublisher writes events to a Kafka topic through a buffered inbox
// drained by a single goroutine, so request handlers never block on the
// broker.
type kafkaPublisher struct {
	writer *kafka.Writer
	inbox  chan kafka.Message
	done   chan struct{}
	logger zerolog.Logger
}

// NewKafkaPublisher creates a publisher and starts its drain loop.
func NewKafkaPublisher(brokers []string, topic string, logger zerolog.Logger) Publisher {
	p := &kafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
		inbox:  make(chan kafka.Message, 256),
		done:   make(chan struct{}),
		logger: logger.With().Str("component", "event-publisher").Logger(),
	}

	go p.run()
	return p
}

func (p *kafkaPublisher) run() {
	defer close(p.done)
	for msg := range p.inbox {
		if err := p.writer.WriteMessages(context.Background(), msg); err != nil {
			p.logger.Warn().
				Err(err).
				Str("key", string(msg.Key)).
				Msg("failed to publish order event")
		}
	}
	_ = p.writer.Close()
}

// Publish enqueues an event. Drops it with a warning when the inbox is
// full rather than blocking the caller.
func (p *kafkaPublisher) Publish(eventType string, orderID uuid.UUID, payload any) {
	env, err := NewEnvelope(eventType, orderID, payload)
	if err != nil {
		p.logger.Warn().Err(err).Str("event_type", eventType).Msg("failed to build event envelope")
		return
	}

	value, err := json.Marshal(env)
	if err != nil {
		p.logger.Warn().Err(err).Str("event_type", eventType).Msg("failed to marshal event")
		return
	}

	msg := kafka.Message{Key: []byte(env.OrderID), Value: value, Time: env.OccurredAt}

	select {
	case p.inbox <- msg:
	default:
		p.logger.Warn().
			Str("event_type", eventType).
			Str("order_id", env.OrderID).
			Msg("event inbox full, dropping event")
	}
}

// Close flushes the inbox and shuts the writer down.
func (p *kafkaPublisher) Close() error {
	close(p.inbox)
	<-p.done
	return nil
}

// NopPublisher discards all events. Used when no brokers are configured
// and in tests.
type NopPublisher struct{}

func (NopPublisher) Publish(string, uuid.UUID, any) {}
func (NopPublisher) Close() error                   { return nil }
