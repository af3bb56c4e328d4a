package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	platformMongo "github.com/mes-platform/labor-service/pkg/mongodb"

	"github.com/mes-platform/labor-service/internal/domain"
)

// reassignmentDocument is one stored journal entry.
type reassignmentDocument struct {
	EmployeeID string                   `bson:"employeeId"`
	Date       time.Time                `bson:"date"`
	Event      domain.ReassignmentEvent `bson:",inline"`
}

// ReassignmentRepository implements domain.ReassignmentRepository over MongoDB
type ReassignmentRepository struct {
	collection *platformMongo.InstrumentedCollection
}

// NewReassignmentRepository creates a ReassignmentRepository on the "reassignments" collection
func NewReassignmentRepository(db *platformMongo.InstrumentedDatabase) *ReassignmentRepository {
	repo := &ReassignmentRepository{collection: db.Collection("reassignments")}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	repo.collection.EnsureIndexes(ctx, []mongo.IndexModel{{
		Keys: bson.D{{Key: "employeeId", Value: 1}, {Key: "date", Value: 1}},
	}})

	return repo
}

// JournalFor retrieves an employee's reassignment journal for a calendar
// date, in chronological order
func (r *ReassignmentRepository) JournalFor(ctx context.Context, employeeID string, date time.Time) ([]domain.ReassignmentEvent, error) {
	start, end := dayBounds(date)
	filter := bson.M{
		"employeeId": employeeID,
		"date":       bson.M{"$gte": start, "$lt": end},
	}

	docs, err := platformMongo.FindAll[reassignmentDocument](ctx, r.collection, filter,
		options.Find().SetSort(bson.D{{Key: "occurredAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find reassignments: %w", err)
	}

	events := make([]domain.ReassignmentEvent, len(docs))
	for i, doc := range docs {
		events[i] = doc.Event
	}
	return events, nil
}
