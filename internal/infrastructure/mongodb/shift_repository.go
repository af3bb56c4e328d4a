package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	platformMongo "github.com/mes-platform/labor-service/pkg/mongodb"

	"github.com/mes-platform/labor-service/internal/domain"
)

// shiftDocument is the stored form of a shift configuration row.
type shiftDocument struct {
	StageCode string                 `bson:"stageCode"`
	Shift     domain.ShiftDefinition `bson:",inline"`
}

// ShiftRepository implements domain.ShiftRepository over MongoDB
type ShiftRepository struct {
	collection *platformMongo.InstrumentedCollection
}

// NewShiftRepository creates a ShiftRepository on the "shifts" collection
func NewShiftRepository(db *platformMongo.InstrumentedDatabase) *ShiftRepository {
	repo := &ShiftRepository{collection: db.Collection("shifts")}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	repo.collection.EnsureIndexes(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "stageCode", Value: 1}, {Key: "shiftCode", Value: 1}},
		Options: options.Index().SetUnique(true),
	}})

	return repo
}

// FindByCode retrieves a shift definition for a stage
func (r *ShiftRepository) FindByCode(ctx context.Context, stageCode, shiftCode string) (*domain.ShiftDefinition, error) {
	var doc shiftDocument
	err := r.collection.FindOne(ctx, bson.M{"stageCode": stageCode, "shiftCode": shiftCode}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc.Shift, nil
}
