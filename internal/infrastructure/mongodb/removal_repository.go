package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	platformMongo "github.com/mes-platform/labor-service/pkg/mongodb"

	"github.com/mes-platform/labor-service/internal/domain"
)

// RemovalRepository implements domain.RemovalRepository over MongoDB
type RemovalRepository struct {
	collection *platformMongo.InstrumentedCollection
}

// NewRemovalRepository creates a RemovalRepository on the "removals" collection
func NewRemovalRepository(db *platformMongo.InstrumentedDatabase) *RemovalRepository {
	repo := &RemovalRepository{collection: db.Collection("removals")}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	repo.collection.EnsureIndexes(ctx, []mongo.IndexModel{{
		Keys: bson.D{{Key: "stageCode", Value: 1}, {Key: "workCode", Value: 1}, {Key: "workOrderId", Value: 1}},
	}})

	return repo
}

// FindForWork retrieves the removal record for a unit of work, if any
func (r *RemovalRepository) FindForWork(ctx context.Context, stageCode, workCode, workOrderID string) (*domain.RemovalRecord, error) {
	filter := bson.M{
		"stageCode":   stageCode,
		"workCode":    workCode,
		"workOrderId": workOrderID,
	}

	var record domain.RemovalRecord
	err := r.collection.FindOne(ctx, filter).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
