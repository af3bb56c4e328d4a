package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mes-platform/labor-service/pkg/cloudevents"
	platformMongo "github.com/mes-platform/labor-service/pkg/mongodb"
	"github.com/mes-platform/labor-service/pkg/outbox"
	outboxMongo "github.com/mes-platform/labor-service/pkg/outbox/mongodb"

	"github.com/mes-platform/labor-service/internal/domain"
	"github.com/mes-platform/labor-service/internal/infrastructure/messaging"
)

// WorkPlanRepository implements domain.WorkPlanRepository over MongoDB. Save
// writes the aggregate and its pending domain events to the outbox in one
// transaction.
type WorkPlanRepository struct {
	collection   *platformMongo.InstrumentedCollection
	db           *mongo.Database
	outboxRepo   *outboxMongo.OutboxRepository
	eventFactory *cloudevents.EventFactory
}

// NewWorkPlanRepository creates a WorkPlanRepository on the "work_plans" collection
func NewWorkPlanRepository(db *platformMongo.InstrumentedDatabase, eventFactory *cloudevents.EventFactory) *WorkPlanRepository {
	repo := &WorkPlanRepository{
		collection:   db.Collection("work_plans"),
		db:           db.Database(),
		outboxRepo:   outboxMongo.NewOutboxRepository(db.Database()),
		eventFactory: eventFactory,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	repo.ensureIndexes(ctx)
	_ = repo.outboxRepo.EnsureIndexes(ctx)

	return repo
}

func (r *WorkPlanRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "planId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "stageCode", Value: 1}, {Key: "workCode", Value: 1}, {Key: "workOrderId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "stageCode", Value: 1}, {Key: "planDate", Value: 1}}},
		{Keys: bson.D{{Key: "assignments.employeeId", Value: 1}}},
	}
	r.collection.EnsureIndexes(ctx, indexes)
}

// Save upserts the plan and stores its domain events in the outbox within the
// same transaction, then clears them from the aggregate.
func (r *WorkPlanRepository) Save(ctx context.Context, plan *domain.WorkPlan) error {
	plan.UpdatedAt = time.Now()

	session, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		opts := options.Update().SetUpsert(true)
		filter := bson.M{"planId": plan.PlanID}
		update := bson.M{"$set": plan}

		if _, err := r.collection.UpdateOne(sessCtx, filter, update, opts); err != nil {
			return nil, fmt.Errorf("failed to save plan: %w", err)
		}

		domainEvents := plan.GetDomainEvents()
		if len(domainEvents) > 0 {
			outboxEvents := make([]*outbox.OutboxEvent, 0, len(domainEvents))

			for _, event := range domainEvents {
				cloudEvent := messaging.ToCloudEvent(sessCtx, r.eventFactory, event)
				if cloudEvent == nil {
					continue
				}

				outboxEvent, err := outbox.NewOutboxEventFromCloudEvent(
					plan.PlanID,
					"WorkPlan",
					messaging.TopicFor(event),
					cloudEvent,
				)
				if err != nil {
					return nil, fmt.Errorf("failed to create outbox event: %w", err)
				}

				outboxEvents = append(outboxEvents, outboxEvent)
			}

			if err := r.outboxRepo.SaveAll(sessCtx, outboxEvents); err != nil {
				return nil, fmt.Errorf("failed to save outbox events: %w", err)
			}
		}

		plan.ClearDomainEvents()

		return nil, nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// FindByID retrieves a plan by its plan ID
func (r *WorkPlanRepository) FindByID(ctx context.Context, planID string) (*domain.WorkPlan, error) {
	var plan domain.WorkPlan
	err := r.collection.FindOne(ctx, bson.M{"planId": planID}).Decode(&plan)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// FindLatestForWork retrieves the most recently created plan for a unit of work
func (r *WorkPlanRepository) FindLatestForWork(ctx context.Context, stageCode, workCode, workOrderID string) (*domain.WorkPlan, error) {
	filter := bson.M{
		"stageCode":   stageCode,
		"workCode":    workCode,
		"workOrderId": workOrderID,
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var plan domain.WorkPlan
	err := r.collection.FindOne(ctx, filter, opts).Decode(&plan)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// FindByStageAndDate retrieves all plans on a stage for a calendar date
func (r *WorkPlanRepository) FindByStageAndDate(ctx context.Context, stageCode string, date time.Time) ([]*domain.WorkPlan, error) {
	start, end := dayBounds(date)
	filter := bson.M{
		"stageCode": stageCode,
		"planDate":  bson.M{"$gte": start, "$lt": end},
	}

	plans, err := platformMongo.FindAll[*domain.WorkPlan](ctx, r.collection, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find plans: %w", err)
	}
	return plans, nil
}

// HasApprovedSubmission reports whether an approved plan on the (stage,
// shift, date) already assigns the employee
func (r *WorkPlanRepository) HasApprovedSubmission(ctx context.Context, stageCode, shiftCode string, date time.Time, employeeID string) (bool, error) {
	start, end := dayBounds(date)
	filter := bson.M{
		"stageCode":              stageCode,
		"shiftCode":              shiftCode,
		"planDate":               bson.M{"$gte": start, "$lt": end},
		"status":                 domain.PlanStatusApproved,
		"assignments.employeeId": employeeID,
	}

	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count approved submissions: %w", err)
	}
	return count > 0, nil
}

func dayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
