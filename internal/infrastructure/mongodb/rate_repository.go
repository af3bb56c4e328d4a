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

// salaryDocument is one stored monthly salary row.
type salaryDocument struct {
	WorkerID      string  `bson:"workerId"`
	MonthlySalary float64 `bson:"monthlySalary"`
}

// holidayDocument is one configured holiday.
type holidayDocument struct {
	Date time.Time `bson:"date"`
}

// RateRepository implements domain.RateRepository over the pay reference
// collections: skill rates, monthly salaries and holidays.
type RateRepository struct {
	rates    *platformMongo.InstrumentedCollection
	salaries *platformMongo.InstrumentedCollection
	holidays *platformMongo.InstrumentedCollection
}

// NewRateRepository creates a RateRepository
func NewRateRepository(db *platformMongo.InstrumentedDatabase) *RateRepository {
	repo := &RateRepository{
		rates:    db.Collection("skill_rates"),
		salaries: db.Collection("salaries"),
		holidays: db.Collection("holidays"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	repo.rates.EnsureIndexes(ctx, []mongo.IndexModel{{
		Keys: bson.D{{Key: "skillCode", Value: 1}, {Key: "effectiveFrom", Value: 1}},
	}})
	repo.salaries.EnsureIndexes(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "workerId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}})
	repo.holidays.EnsureIndexes(ctx, []mongo.IndexModel{{
		Keys: bson.D{{Key: "date", Value: 1}},
	}})

	return repo
}

// RatesForSkills retrieves all rate rows for the given skills
func (r *RateRepository) RatesForSkills(ctx context.Context, skillCodes []string) ([]domain.SkillRate, error) {
	if len(skillCodes) == 0 {
		return nil, nil
	}

	rates, err := platformMongo.FindAll[domain.SkillRate](ctx, r.rates, bson.M{"skillCode": bson.M{"$in": skillCodes}})
	if err != nil {
		return nil, fmt.Errorf("failed to find skill rates: %w", err)
	}
	return rates, nil
}

// SalariesFor retrieves the monthly salaries for the given workers. Workers
// with no salary row are absent from the result.
func (r *RateRepository) SalariesFor(ctx context.Context, workerIDs []string) (domain.SalaryTable, error) {
	table := make(domain.SalaryTable, len(workerIDs))
	if len(workerIDs) == 0 {
		return table, nil
	}

	docs, err := platformMongo.FindAll[salaryDocument](ctx, r.salaries, bson.M{"workerId": bson.M{"$in": workerIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to find salaries: %w", err)
	}

	for _, doc := range docs {
		table[doc.WorkerID] = doc.MonthlySalary
	}
	return table, nil
}

// HolidaysIn retrieves the configured holidays of a year
func (r *RateRepository) HolidaysIn(ctx context.Context, year int) ([]time.Time, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	docs, err := platformMongo.FindAll[holidayDocument](ctx, r.holidays, bson.M{"date": bson.M{"$gte": start, "$lt": end}})
	if err != nil {
		return nil, fmt.Errorf("failed to find holidays: %w", err)
	}

	dates := make([]time.Time, len(docs))
	for i, doc := range docs {
		dates[i] = doc.Date
	}
	return dates, nil
}
