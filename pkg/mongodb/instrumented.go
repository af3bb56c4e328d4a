package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mes-platform/labor-service/pkg/metrics"
)

// InstrumentedDatabase hands out instrumented collections for one database
type InstrumentedDatabase struct {
	db      *mongo.Database
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// NewInstrumentedDatabase creates an instrumented view over db
func NewInstrumentedDatabase(db *mongo.Database, m *metrics.Metrics) *InstrumentedDatabase {
	return &InstrumentedDatabase{db: db, metrics: m, tracer: otel.Tracer("mongodb")}
}

// Collection returns an instrumented collection
func (d *InstrumentedDatabase) Collection(name string) *InstrumentedCollection {
	return NewInstrumentedCollection(d.db.Collection(name), d.metrics, d.tracer)
}

// Database returns the underlying database handle, for sessions and
// transactions
func (d *InstrumentedDatabase) Database() *mongo.Database {
	return d.db
}

// InstrumentedCollection wraps a mongo.Collection with metrics and tracing
type InstrumentedCollection struct {
	coll    *mongo.Collection
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// NewInstrumentedCollection creates an instrumented collection wrapper
func NewInstrumentedCollection(coll *mongo.Collection, m *metrics.Metrics, tracer trace.Tracer) *InstrumentedCollection {
	return &InstrumentedCollection{coll: coll, metrics: m, tracer: tracer}
}

// Collection returns the underlying mongo.Collection
func (c *InstrumentedCollection) Collection() *mongo.Collection {
	return c.coll
}

func (c *InstrumentedCollection) instrument(ctx context.Context, operation string) (context.Context, func(err error)) {
	start := time.Now()

	var span trace.Span
	if c.tracer != nil {
		ctx, span = c.tracer.Start(ctx, "mongodb."+operation,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("db.system", "mongodb"),
				attribute.String("db.operation", operation),
				attribute.String("db.mongodb.collection", c.coll.Name()),
			),
		)
	}

	return ctx, func(err error) {
		duration := time.Since(start)
		if c.metrics != nil {
			c.metrics.RecordMongoDBOperation(c.coll.Name(), operation, err == nil, duration)
		}
		if span != nil {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			span.End()
		}
	}
}

// FindOne executes a find-one query with instrumentation
func (c *InstrumentedCollection) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult {
	ctx, done := c.instrument(ctx, "findOne")
	result := c.coll.FindOne(ctx, filter, opts...)
	done(result.Err())
	return result
}

// Find executes a find query with instrumentation
func (c *InstrumentedCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	ctx, done := c.instrument(ctx, "find")
	cursor, err := c.coll.Find(ctx, filter, opts...)
	done(err)
	return cursor, err
}

// InsertOne inserts a document with instrumentation
func (c *InstrumentedCollection) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	ctx, done := c.instrument(ctx, "insertOne")
	result, err := c.coll.InsertOne(ctx, document, opts...)
	done(err)
	return result, err
}

// InsertMany inserts documents with instrumentation
func (c *InstrumentedCollection) InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error) {
	ctx, done := c.instrument(ctx, "insertMany")
	result, err := c.coll.InsertMany(ctx, documents, opts...)
	done(err)
	return result, err
}

// UpdateOne updates a document with instrumentation
func (c *InstrumentedCollection) UpdateOne(ctx context.Context, filter, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	ctx, done := c.instrument(ctx, "updateOne")
	result, err := c.coll.UpdateOne(ctx, filter, update, opts...)
	done(err)
	return result, err
}

// ReplaceOne replaces a document with instrumentation
func (c *InstrumentedCollection) ReplaceOne(ctx context.Context, filter, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error) {
	ctx, done := c.instrument(ctx, "replaceOne")
	result, err := c.coll.ReplaceOne(ctx, filter, replacement, opts...)
	done(err)
	return result, err
}

// DeleteOne deletes a document with instrumentation
func (c *InstrumentedCollection) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	ctx, done := c.instrument(ctx, "deleteOne")
	result, err := c.coll.DeleteOne(ctx, filter, opts...)
	done(err)
	return result, err
}

// DeleteMany deletes documents with instrumentation
func (c *InstrumentedCollection) DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	ctx, done := c.instrument(ctx, "deleteMany")
	result, err := c.coll.DeleteMany(ctx, filter, opts...)
	done(err)
	return result, err
}

// CountDocuments counts documents with instrumentation
func (c *InstrumentedCollection) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	ctx, done := c.instrument(ctx, "countDocuments")
	count, err := c.coll.CountDocuments(ctx, filter, opts...)
	done(err)
	return count, err
}

// Indexes returns the collection's index view
func (c *InstrumentedCollection) Indexes() mongo.IndexView {
	return c.coll.Indexes()
}

// EnsureIndexes creates the given index models if they do not exist
func (c *InstrumentedCollection) EnsureIndexes(ctx context.Context, models []mongo.IndexModel) error {
	if len(models) == 0 {
		return nil
	}
	_, err := c.coll.Indexes().CreateMany(ctx, models)
	return err
}

// FindAll is a convenience helper that decodes all documents matching filter into results
func FindAll[T any](ctx context.Context, c *InstrumentedCollection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []T
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
