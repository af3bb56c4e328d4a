package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Errors
var (
	ErrPlanNotDraft    = errors.New("plan is not in draft")
	ErrPlanNotPending  = errors.New("plan is not pending approval")
	ErrPlanNotApproved = errors.New("plan is not approved")
	ErrPlanFinalized   = errors.New("plan has already been finalized")
)

// PlanAssignment is one worker's planned interval inside a plan.
type PlanAssignment struct {
	EmployeeID string   `bson:"employeeId" json:"employeeId"`
	WorkCode   string   `bson:"workCode" json:"workCode"`
	Interval   Interval `bson:"interval" json:"interval"`
}

// WorkPlan is the aggregate root for the work-planning bounded context. Its
// methods enforce the Draft -> PendingApproval -> Approved|Rejected lifecycle
// and explicit cancellation; every accepted transition appends a domain
// event. A fresh aggregate is created on every re-plan, so eligibility always
// inspects the latest one.
type WorkPlan struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	PlanID       string             `bson:"planId"`
	WorkOrderID  string             `bson:"workOrderId"`
	WorkCode     string             `bson:"workCode"`
	StageCode    string             `bson:"stageCode"`
	ShiftCode    string             `bson:"shiftCode"`
	PlanDate     time.Time          `bson:"planDate"`
	Status       PlanStatus         `bson:"status"`
	Assignments  []PlanAssignment   `bson:"assignments"`
	Reports      []WorkReportRecord `bson:"reports"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
	DomainEvents []DomainEvent      `bson:"-"`
}

// NewWorkPlan creates a plan in Draft for a unit of work on a stage, shift
// and date.
func NewWorkPlan(planID, workOrderID, workCode, stageCode, shiftCode string, planDate time.Time) *WorkPlan {
	now := time.Now()
	return &WorkPlan{
		PlanID:       planID,
		WorkOrderID:  workOrderID,
		WorkCode:     workCode,
		StageCode:    stageCode,
		ShiftCode:    shiftCode,
		PlanDate:     planDate,
		Status:       PlanStatusDraft,
		Assignments:  make([]PlanAssignment, 0),
		Reports:      make([]WorkReportRecord, 0),
		CreatedAt:    now,
		UpdatedAt:    now,
		DomainEvents: make([]DomainEvent, 0),
	}
}

// Record returns the plan as the flat record form the eligibility check
// consumes.
func (p *WorkPlan) Record() *WorkPlanRecord {
	return &WorkPlanRecord{
		ID:          p.PlanID,
		WorkOrderID: p.WorkOrderID,
		WorkCode:    p.WorkCode,
		StageCode:   p.StageCode,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
	}
}

// Assign adds a worker interval to a draft plan.
func (p *WorkPlan) Assign(employeeID string, interval Interval) error {
	if p.Status != PlanStatusDraft {
		return ErrPlanNotDraft
	}
	p.Assignments = append(p.Assignments, PlanAssignment{
		EmployeeID: employeeID,
		WorkCode:   p.WorkCode,
		Interval:   interval,
	})
	p.UpdatedAt = time.Now()
	return nil
}

// PlannedSlots returns one employee's assignments as work slots for coverage
// and conflict checks.
func (p *WorkPlan) PlannedSlots(employeeID string) []WorkSlot {
	slots := make([]WorkSlot, 0, len(p.Assignments))
	for _, a := range p.Assignments {
		if a.EmployeeID == employeeID {
			slots = append(slots, WorkSlot{WorkCode: a.WorkCode, Interval: a.Interval})
		}
	}
	return slots
}

// Submit moves a draft to pending approval.
func (p *WorkPlan) Submit(submittedBy string) error {
	if p.Status != PlanStatusDraft {
		return ErrPlanNotDraft
	}

	now := time.Now()
	p.Status = PlanStatusPendingApproval
	p.UpdatedAt = now

	p.AddDomainEvent(&PlanSubmittedEvent{
		PlanID:      p.PlanID,
		WorkOrderID: p.WorkOrderID,
		WorkCode:    p.WorkCode,
		StageCode:   p.StageCode,
		SubmittedBy: submittedBy,
		SubmittedAt: now,
	})

	return nil
}

// Approve accepts a pending plan.
func (p *WorkPlan) Approve(approvedBy string) error {
	if p.Status != PlanStatusPendingApproval {
		return ErrPlanNotPending
	}

	now := time.Now()
	p.Status = PlanStatusApproved
	p.UpdatedAt = now

	p.AddDomainEvent(&PlanApprovedEvent{
		PlanID:     p.PlanID,
		WorkCode:   p.WorkCode,
		StageCode:  p.StageCode,
		ApprovedBy: approvedBy,
		ApprovedAt: now,
	})

	return nil
}

// Reject declines a pending plan.
func (p *WorkPlan) Reject(rejectedBy, reason string) error {
	if p.Status != PlanStatusPendingApproval {
		return ErrPlanNotPending
	}

	now := time.Now()
	p.Status = PlanStatusRejected
	p.UpdatedAt = now

	p.AddDomainEvent(&PlanRejectedEvent{
		PlanID:     p.PlanID,
		WorkCode:   p.WorkCode,
		StageCode:  p.StageCode,
		RejectedBy: rejectedBy,
		Reason:     reason,
		RejectedAt: now,
	})

	return nil
}

// Cancel withdraws a plan that has not reached a terminal state.
func (p *WorkPlan) Cancel(cancelledBy string) error {
	switch p.Status {
	case PlanStatusRejected, PlanStatusCancelled:
		return ErrPlanFinalized
	}

	now := time.Now()
	p.Status = PlanStatusCancelled
	p.UpdatedAt = now

	p.AddDomainEvent(&PlanCancelledEvent{
		PlanID:      p.PlanID,
		WorkCode:    p.WorkCode,
		StageCode:   p.StageCode,
		CancelledBy: cancelledBy,
		CancelledAt: now,
	})

	return nil
}

// Report files a worker's reported outcome against an approved plan.
func (p *WorkPlan) Report(report WorkReportRecord) error {
	if p.Status != PlanStatusApproved {
		return ErrPlanNotApproved
	}

	report.PlanningID = p.PlanID
	now := time.Now()
	p.Reports = append(p.Reports, report)
	p.UpdatedAt = now

	p.AddDomainEvent(&WorkReportedEvent{
		PlanID:           p.PlanID,
		WorkCode:         p.WorkCode,
		WorkerID:         report.Worker.ID,
		Deviation:        report.Worker.IsDeviation(),
		HoursWorkedToday: report.HoursWorkedToday,
		Completion:       string(report.Completion),
		ReportedAt:       now,
	})

	return nil
}

// AddDomainEvent adds a domain event
func (p *WorkPlan) AddDomainEvent(event DomainEvent) {
	p.DomainEvents = append(p.DomainEvents, event)
}

// ClearDomainEvents clears all domain events
func (p *WorkPlan) ClearDomainEvents() {
	p.DomainEvents = make([]DomainEvent, 0)
}

// GetDomainEvents returns all domain events
func (p *WorkPlan) GetDomainEvents() []DomainEvent {
	return p.DomainEvents
}
