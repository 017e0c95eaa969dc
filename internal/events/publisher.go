package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"example.com/supplementstack/internal/observability"
)

// Publisher emits resolution events.
type Publisher interface {
	PublishResolved(ctx context.Context, evt RecommendationResolved) error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

// PublishResolved does nothing.
func (NoopPublisher) PublishResolved(context.Context, RecommendationResolved) error { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, topic string, msgs ...kafka.Message) error
}

// KafkaPublisher writes events as JSON with an event_type header. Messages
// are keyed by stack id.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

// NewKafkaPublisher constructs a publisher writing to topic.
func NewKafkaPublisher(writer messageWriter, topic string) *KafkaPublisher {
	if topic == "" {
		topic = TopicRecommendations
	}
	return &KafkaPublisher{writer: writer, topic: topic}
}

// PublishResolved implements Publisher.
func (p *KafkaPublisher) PublishResolved(ctx context.Context, evt RecommendationResolved) error {
	err := p.publish(ctx, evt.StackID, TypeRecommendationResolved, evt)
	observability.RecordEventPublished(TypeRecommendationResolved, err)
	return err
}

// PublishCatalogUpdated announces a catalog change on topic. Consumers
// invalidate their catalog snapshots in response.
func (p *KafkaPublisher) PublishCatalogUpdated(ctx context.Context, topic string, evt CatalogUpdated) error {
	if topic == "" {
		topic = TopicCatalog
	}
	err := p.write(ctx, topic, "catalog", TypeCatalogUpdated, evt)
	observability.RecordEventPublished(TypeCatalogUpdated, err)
	return err
}

func (p *KafkaPublisher) publish(ctx context.Context, key, eventType string, payload any) error {
	return p.write(ctx, p.topic, key, eventType, payload)
}

func (p *KafkaPublisher) write(ctx context.Context, topic, key, eventType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", eventType, err)
	}
	msg := kafka.Message{
		Key:   []byte(key),
		Value: body,
		Time:  time.Now().UTC(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
			{Key: "content_type", Value: []byte("application/json")},
		},
	}
	if err := p.writer.WriteMessages(ctx, topic, msg); err != nil {
		return fmt.Errorf("write %s to %s: %w", eventType, topic, err)
	}
	return nil
}
