package kafka

import (
	"context"
	"log/slog"

	"github.com/mes-platform/labor-service/pkg/cloudevents"
	"github.com/mes-platform/labor-service/pkg/logging"
	"github.com/mes-platform/labor-service/pkg/metrics"
	"github.com/mes-platform/labor-service/pkg/resilience"
)

// CircuitBreakerProducer wraps Producer with circuit breaker protection
type CircuitBreakerProducer struct {
	producer       *Producer
	circuitBreaker *resilience.CircuitBreaker
	metrics        *metrics.Metrics
}

// NewCircuitBreakerProducer creates a new circuit breaker protected Kafka producer
func NewCircuitBreakerProducer(producer *Producer, m *metrics.Metrics, logger *logging.Logger) *CircuitBreakerProducer {
	config := resilience.DefaultCircuitBreakerConfig("kafka-producer")
	config.MaxRequests = 5

	var slogLogger *slog.Logger
	if logger != nil && logger.Logger != nil {
		slogLogger = logger.Logger
	} else {
		slogLogger = slog.Default()
	}

	return &CircuitBreakerProducer{
		producer:       producer,
		circuitBreaker: resilience.NewCircuitBreaker(config, slogLogger),
		metrics:        m,
	}
}

// PublishEvent publishes a CloudEvent with circuit breaker protection
func (p *CircuitBreakerProducer) PublishEvent(ctx context.Context, topic string, event *cloudevents.MESCloudEvent) error {
	_, err := p.circuitBreaker.Execute(ctx, func() (interface{}, error) {
		return nil, p.producer.PublishEvent(ctx, topic, event)
	})
	p.recordState()
	return err
}

// PublishBatch publishes multiple events with circuit breaker protection
func (p *CircuitBreakerProducer) PublishBatch(ctx context.Context, topic string, events []*cloudevents.MESCloudEvent) error {
	_, err := p.circuitBreaker.Execute(ctx, func() (interface{}, error) {
		return nil, p.producer.PublishBatch(ctx, topic, events)
	})
	p.recordState()
	return err
}

func (p *CircuitBreakerProducer) recordState() {
	if p.metrics != nil {
		p.metrics.SetCircuitBreakerState(p.circuitBreaker.Name(), int(p.circuitBreaker.State()))
	}
}

// Close closes the underlying producer
func (p *CircuitBreakerProducer) Close() error {
	return p.producer.Close()
}

// Underlying returns the underlying Producer
func (p *CircuitBreakerProducer) Underlying() *Producer {
	return p.producer
}
