package domain

import (
	"context"
	"time"
)

// WorkPlanRepository defines the interface for plan persistence
type WorkPlanRepository interface {
	Save(ctx context.Context, plan *WorkPlan) error
	FindByID(ctx context.Context, planID string) (*WorkPlan, error)
	FindLatestForWork(ctx context.Context, stageCode, workCode, workOrderID string) (*WorkPlan, error)
	FindByStageAndDate(ctx context.Context, stageCode string, date time.Time) ([]*WorkPlan, error)
	// HasApprovedSubmission reports whether an approved planning submission
	// for the (stage, shift, date) already includes the employee.
	HasApprovedSubmission(ctx context.Context, stageCode, shiftCode string, date time.Time, employeeID string) (bool, error)
}

// RemovalRepository defines the interface for removal record lookup
type RemovalRepository interface {
	FindForWork(ctx context.Context, stageCode, workCode, workOrderID string) (*RemovalRecord, error)
}

// ShiftRepository defines the interface for shift definition lookup
type ShiftRepository interface {
	FindByCode(ctx context.Context, stageCode, shiftCode string) (*ShiftDefinition, error)
}

// ReassignmentRepository defines the interface for the reassignment journal
type ReassignmentRepository interface {
	JournalFor(ctx context.Context, employeeID string, date time.Time) ([]ReassignmentEvent, error)
}

// RateRepository defines the interface for pay reference data
type RateRepository interface {
	RatesForSkills(ctx context.Context, skillCodes []string) ([]SkillRate, error)
	SalariesFor(ctx context.Context, workerIDs []string) (SalaryTable, error)
	HolidaysIn(ctx context.Context, year int) ([]time.Time, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	PublishAll(ctx context.Context, events []DomainEvent) error
}
