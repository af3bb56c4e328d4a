package domain

import "time"

// PlanStatus is the lifecycle state of a work plan record.
type PlanStatus string

const (
	PlanStatusDraft           PlanStatus = "draft"
	PlanStatusPendingApproval PlanStatus = "pending_approval"
	PlanStatusApproved        PlanStatus = "approved"
	PlanStatusRejected        PlanStatus = "rejected"
	PlanStatusCancelled       PlanStatus = "cancelled"
)

// CompletionStatus is the outcome recorded against a plan.
type CompletionStatus string

const (
	CompletionCompleted    CompletionStatus = "completed"
	CompletionNotCompleted CompletionStatus = "not_completed"
)

// WorkerRef identifies the worker a report or cost share belongs to, or marks
// the entry as a deviation where no worker could be matched. Deviation
// entries always receive a zero cost share.
type WorkerRef struct {
	ID              string `bson:"id,omitempty" json:"id,omitempty"`
	Deviation       bool   `bson:"deviation,omitempty" json:"deviation,omitempty"`
	DeviationReason string `bson:"deviationReason,omitempty" json:"deviationReason,omitempty"`
}

// WorkerByID references a matched worker.
func WorkerByID(id string) WorkerRef {
	return WorkerRef{ID: id}
}

// DeviationEntry marks an unmatched report entry.
func DeviationEntry(reason string) WorkerRef {
	return WorkerRef{Deviation: true, DeviationReason: reason}
}

// IsDeviation reports whether the entry has no matched worker.
func (w WorkerRef) IsDeviation() bool {
	return w.Deviation
}

// WorkPlanRecord is one planning record for a unit of work. A new record is
// created on every re-plan; eligibility inspects the latest record only.
type WorkPlanRecord struct {
	ID          string     `bson:"id" json:"id"`
	WorkOrderID string     `bson:"workOrderId" json:"workOrderId"`
	WorkCode    string     `bson:"workCode" json:"workCode"`
	StageCode   string     `bson:"stageCode" json:"stageCode"`
	Status      PlanStatus `bson:"status" json:"status"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
}

// WorkReportRecord is the reported outcome of a plan for one worker.
type WorkReportRecord struct {
	PlanningID       string           `bson:"planningId" json:"planningId"`
	Worker           WorkerRef        `bson:"worker" json:"worker"`
	HoursWorkedToday float64          `bson:"hoursWorkedToday" json:"hoursWorkedToday"`
	Completion       CompletionStatus `bson:"completion" json:"completion"`
}

// RemovalRecord marks a (stage, work, work order) tuple as permanently
// withdrawn from production. Its presence blocks planning unconditionally.
type RemovalRecord struct {
	StageCode   string    `bson:"stageCode" json:"stageCode"`
	WorkCode    string    `bson:"workCode" json:"workCode"`
	WorkOrderID string    `bson:"workOrderId" json:"workOrderId"`
	Reason      string    `bson:"reason" json:"reason"`
	RemovedAt   time.Time `bson:"removedAt" json:"removedAt"`
}
