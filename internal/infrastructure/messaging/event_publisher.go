package messaging

import (
	"context"
	"fmt"

	"github.com/mes-platform/labor-service/pkg/cloudevents"

	"github.com/mes-platform/labor-service/internal/domain"
)

// Producer publishes CloudEvents to a topic.
type Producer interface {
	PublishEvent(ctx context.Context, topic string, event *cloudevents.MESCloudEvent) error
}

// KafkaEventPublisher implements domain.EventPublisher over a Kafka producer.
// Aggregate events flow through the outbox instead; this path exists for
// events with no backing aggregate, such as cost allocations.
type KafkaEventPublisher struct {
	producer Producer
	factory  *cloudevents.EventFactory
}

// NewKafkaEventPublisher creates a KafkaEventPublisher
func NewKafkaEventPublisher(producer Producer, factory *cloudevents.EventFactory) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer, factory: factory}
}

// Publish publishes one domain event
func (p *KafkaEventPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	ce := ToCloudEvent(ctx, p.factory, event)
	if ce == nil {
		return fmt.Errorf("unmapped event type: %s", event.EventType())
	}
	return p.producer.PublishEvent(ctx, TopicFor(event), ce)
}

// PublishAll publishes a batch of domain events
func (p *KafkaEventPublisher) PublishAll(ctx context.Context, events []domain.DomainEvent) error {
	for _, event := range events {
		if err := p.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
