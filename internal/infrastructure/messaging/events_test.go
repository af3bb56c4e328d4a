package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/mes-platform/labor-service/pkg/cloudevents"

	"github.com/mes-platform/labor-service/internal/domain"
)

func TestToCloudEventPlanSubmitted(t *testing.T) {
	factory := cloudevents.NewEventFactory(cloudevents.SourceLabor)
	event := &domain.PlanSubmittedEvent{
		PlanID:      "plan-1",
		WorkOrderID: "wo-1",
		WorkCode:    "work-1",
		StageCode:   "stage-1",
		SubmittedBy: "emp-1",
		SubmittedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}

	ce := ToCloudEvent(context.Background(), factory, event)
	if ce == nil {
		t.Fatal("expected a cloud event")
	}
	if ce.Type != "mes.labor.plan-submitted" {
		t.Fatalf("unexpected type %q", ce.Type)
	}
	if ce.Subject != "plan/plan-1" {
		t.Fatalf("unexpected subject %q", ce.Subject)
	}
	if ce.Source != cloudevents.SourceLabor {
		t.Fatalf("unexpected source %q", ce.Source)
	}
	if ce.WorkOrderID != "wo-1" || ce.StageCode != "stage-1" {
		t.Fatalf("unexpected extensions: %#v", ce)
	}
	if ce.ID == "" || ce.SpecVersion != "1.0" {
		t.Fatalf("malformed envelope: %#v", ce)
	}
}

func TestToCloudEventCostAllocated(t *testing.T) {
	factory := cloudevents.NewEventFactory(cloudevents.SourceLabor)
	event := &domain.CostAllocatedEvent{
		WorkOrderID: "wo-2",
		StageCode:   "stage-2",
		Kind:        "standard",
		TotalAmount: 480,
		WorkerCount: 3,
		AllocatedAt: time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC),
	}

	ce := ToCloudEvent(context.Background(), factory, event)
	if ce == nil {
		t.Fatal("expected a cloud event")
	}
	if ce.Type != "mes.labor.cost-allocated" {
		t.Fatalf("unexpected type %q", ce.Type)
	}
	if ce.Subject != "work-order/wo-2" {
		t.Fatalf("unexpected subject %q", ce.Subject)
	}
	if ce.WorkOrderID != "wo-2" || ce.StageCode != "stage-2" {
		t.Fatalf("unexpected extensions: %#v", ce)
	}
}

type unknownEvent struct{}

func (unknownEvent) EventType() string     { return "mes.labor.unknown" }
func (unknownEvent) OccurredAt() time.Time { return time.Time{} }

func TestToCloudEventUnknownType(t *testing.T) {
	factory := cloudevents.NewEventFactory(cloudevents.SourceLabor)
	if ce := ToCloudEvent(context.Background(), factory, unknownEvent{}); ce != nil {
		t.Fatalf("expected nil for unknown event, got %#v", ce)
	}
}

func TestTopicFor(t *testing.T) {
	if topic := TopicFor(&domain.CostAllocatedEvent{}); topic != "mes.costing.events" {
		t.Fatalf("unexpected costing topic %q", topic)
	}
	if topic := TopicFor(&domain.PlanApprovedEvent{}); topic != "mes.labor.events" {
		t.Fatalf("unexpected labor topic %q", topic)
	}
}
