// Package events publishes user audit events to Kafka. Publishing is best
// effort: callers log a failure and carry on.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/upark/upark-api/internal/config"
	"github.com/upark/upark-api/internal/constants"
)

// Event is the payload written for every audit event.
type Event struct {
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id"`
	Username   string    `json:"username,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent stamps an event with the current time.
func NewEvent(eventType string, userID int64, username string) Event {
	return Event{
		Type:       eventType,
		UserID:     userID,
		Username:   username,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers audit events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events as JSON messages keyed by user id.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

// NewKafkaPublisher creates a publisher writing to topic on the given brokers.
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("events: no kafka brokers configured")
	}
	if topic == "" {
		topic = constants.DefaultEventsTopic
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}

	return newKafkaPublisherWithWriter(w, topic), nil
}

func newKafkaPublisherWithWriter(w messageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: w, topic: topic}
}

// Publish writes one event, bounded by EventPublishTimeout.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: marshal failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.EventPublishTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.UserID, 10)),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("events: write to %s failed: %w", p.topic, err)
	}

	log.Debug().
		Str("topic", p.topic).
		Str("type", event.Type).
		Int64("user_id", event.UserID).
		Msg("Event published")

	return nil
}

// Close flushes pending writes and releases the connection.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every event. It is used when events are disabled.
type NoopPublisher struct{}

// Publish does nothing.
func (NoopPublisher) Publish(context.Context, Event) error { return nil }

// Close does nothing.
func (NoopPublisher) Close() error { return nil }

// NewPublisher returns a Kafka publisher when events are enabled and a
// NoopPublisher otherwise.
func NewPublisher(cfg *config.AppConfig) (Publisher, error) {
	if !cfg.Events.Enabled {
		log.Info().Msg("Audit events disabled")
		return NoopPublisher{}, nil
	}

	p, err := NewKafkaPublisher(cfg.Events.Brokers, cfg.Events.Topic)
	if err != nil {
		return nil, err
	}

	log.Info().
		Strs("brokers", cfg.Events.Brokers).
		Str("topic", p.topic).
		Msg("Publishing audit events to Kafka")

	return p, nil
}
