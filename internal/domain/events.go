package domain

import "time"

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
}

// PlanSubmittedEvent is published when a draft plan is submitted for approval
type PlanSubmittedEvent struct {
	PlanID      string    `json:"planId"`
	WorkOrderID string    `json:"workOrderId"`
	WorkCode    string    `json:"workCode"`
	StageCode   string    `json:"stageCode"`
	SubmittedBy string    `json:"submittedBy"`
	SubmittedAt time.Time `json:"submittedAt"`
}

func (e *PlanSubmittedEvent) EventType() string     { return "mes.labor.plan-submitted" }
func (e *PlanSubmittedEvent) OccurredAt() time.Time { return e.SubmittedAt }

// PlanApprovedEvent is published when a pending plan is approved
type PlanApprovedEvent struct {
	PlanID     string    `json:"planId"`
	WorkCode   string    `json:"workCode"`
	StageCode  string    `json:"stageCode"`
	ApprovedBy string    `json:"approvedBy"`
	ApprovedAt time.Time `json:"approvedAt"`
}

func (e *PlanApprovedEvent) EventType() string     { return "mes.labor.plan-approved" }
func (e *PlanApprovedEvent) OccurredAt() time.Time { return e.ApprovedAt }

// PlanRejectedEvent is published when a pending plan is rejected
type PlanRejectedEvent struct {
	PlanID     string    `json:"planId"`
	WorkCode   string    `json:"workCode"`
	StageCode  string    `json:"stageCode"`
	RejectedBy string    `json:"rejectedBy"`
	Reason     string    `json:"reason"`
	RejectedAt time.Time `json:"rejectedAt"`
}

func (e *PlanRejectedEvent) EventType() string     { return "mes.labor.plan-rejected" }
func (e *PlanRejectedEvent) OccurredAt() time.Time { return e.RejectedAt }

// PlanCancelledEvent is published when a plan is explicitly cancelled
type PlanCancelledEvent struct {
	PlanID      string    `json:"planId"`
	WorkCode    string    `json:"workCode"`
	StageCode   string    `json:"stageCode"`
	CancelledBy string    `json:"cancelledBy"`
	CancelledAt time.Time `json:"cancelledAt"`
}

func (e *PlanCancelledEvent) EventType() string     { return "mes.labor.plan-cancelled" }
func (e *PlanCancelledEvent) OccurredAt() time.Time { return e.CancelledAt }

// WorkReportedEvent is published when a worker's outcome is reported against
// an approved plan
type WorkReportedEvent struct {
	PlanID           string    `json:"planId"`
	WorkCode         string    `json:"workCode"`
	WorkerID         string    `json:"workerId,omitempty"`
	Deviation        bool      `json:"deviation,omitempty"`
	HoursWorkedToday float64   `json:"hoursWorkedToday"`
	Completion       string    `json:"completion"`
	ReportedAt       time.Time `json:"reportedAt"`
}

func (e *WorkReportedEvent) EventType() string     { return "mes.labor.work-reported" }
func (e *WorkReportedEvent) OccurredAt() time.Time { return e.ReportedAt }

// CostAllocatedEvent is published when a work's cost is distributed
type CostAllocatedEvent struct {
	WorkOrderID string    `json:"workOrderId"`
	StageCode   string    `json:"stageCode"`
	WorkCode    string    `json:"workCode,omitempty"`
	Kind        string    `json:"kind"`
	TotalAmount float64   `json:"totalAmount"`
	WorkerCount int       `json:"workerCount"`
	AllocatedAt time.Time `json:"allocatedAt"`
}

func (e *CostAllocatedEvent) EventType() string     { return "mes.labor.cost-allocated" }
func (e *CostAllocatedEvent) OccurredAt() time.Time { return e.AllocatedAt }
