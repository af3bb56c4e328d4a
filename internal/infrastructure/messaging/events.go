package messaging

import (
	"context"

	"github.com/mes-platform/labor-service/pkg/cloudevents"
	"github.com/mes-platform/labor-service/pkg/kafka"

	"github.com/mes-platform/labor-service/internal/domain"
)

// ToCloudEvent converts a domain event into its CloudEvent envelope. Unknown
// event types return nil and are skipped by callers.
func ToCloudEvent(ctx context.Context, factory *cloudevents.EventFactory, event domain.DomainEvent) *cloudevents.MESCloudEvent {
	switch e := event.(type) {
	case *domain.PlanSubmittedEvent:
		ce := factory.CreateEvent(ctx, e.EventType(), "plan/"+e.PlanID, e)
		ce.WorkOrderID = e.WorkOrderID
		ce.StageCode = e.StageCode
		return ce
	case *domain.PlanApprovedEvent:
		ce := factory.CreateEvent(ctx, e.EventType(), "plan/"+e.PlanID, e)
		ce.StageCode = e.StageCode
		return ce
	case *domain.PlanRejectedEvent:
		ce := factory.CreateEvent(ctx, e.EventType(), "plan/"+e.PlanID, e)
		ce.StageCode = e.StageCode
		return ce
	case *domain.PlanCancelledEvent:
		ce := factory.CreateEvent(ctx, e.EventType(), "plan/"+e.PlanID, e)
		ce.StageCode = e.StageCode
		return ce
	case *domain.WorkReportedEvent:
		return factory.CreateEvent(ctx, e.EventType(), "plan/"+e.PlanID, e)
	case *domain.CostAllocatedEvent:
		ce := factory.CreateEvent(ctx, e.EventType(), "work-order/"+e.WorkOrderID, e)
		ce.WorkOrderID = e.WorkOrderID
		ce.StageCode = e.StageCode
		return ce
	default:
		return nil
	}
}

// TopicFor returns the Kafka topic an event belongs on. Costing events have
// their own topic with a longer retention for audit.
func TopicFor(event domain.DomainEvent) string {
	if _, ok := event.(*domain.CostAllocatedEvent); ok {
		return kafka.Topics.CostingEvents
	}
	return kafka.Topics.LaborEvents
}
