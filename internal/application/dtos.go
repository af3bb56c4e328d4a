package application

import "time"

// PlanDTO represents a work plan in responses
type PlanDTO struct {
	PlanID      string          `json:"planId"`
	WorkOrderID string          `json:"workOrderId"`
	WorkCode    string          `json:"workCode"`
	StageCode   string          `json:"stageCode"`
	ShiftCode   string          `json:"shiftCode"`
	PlanDate    time.Time       `json:"planDate"`
	Status      string          `json:"status"`
	Assignments []AssignmentDTO `json:"assignments"`
	Reports     []ReportDTO     `json:"reports"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// AssignmentDTO represents one worker interval in a plan
type AssignmentDTO struct {
	EmployeeID string `json:"employeeId"`
	WorkCode   string `json:"workCode"`
	From       string `json:"from"`
	To         string `json:"to"`
	Minutes    int    `json:"minutes"`
}

// ReportDTO represents one reported outcome against a plan
type ReportDTO struct {
	WorkerID         string  `json:"workerId,omitempty"`
	Deviation        bool    `json:"deviation,omitempty"`
	DeviationReason  string  `json:"deviationReason,omitempty"`
	HoursWorkedToday float64 `json:"hoursWorkedToday"`
	Completion       string  `json:"completion"`
}

// VerdictDTO represents a planning eligibility decision
type VerdictDTO struct {
	CanPlan  bool         `json:"canPlan"`
	Reason   string       `json:"reason"`
	LastPlan *LastPlanDTO `json:"lastPlan,omitempty"`
}

// LastPlanDTO summarizes the latest plan record behind a verdict
type LastPlanDTO struct {
	PlanID      string    `json:"planId"`
	WorkOrderID string    `json:"workOrderId"`
	WorkCode    string    `json:"workCode"`
	StageCode   string    `json:"stageCode"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WorkerStageDTO reports where a worker currently is and how much time the
// reassignment journal moved relative to the home stage
type WorkerStageDTO struct {
	EmployeeID       string `json:"employeeId"`
	Date             string `json:"date"`
	HomeStage        string `json:"homeStage"`
	CurrentStage     string `json:"currentStage"`
	ToOtherMinutes   int    `json:"toOtherMinutes"`
	FromOtherMinutes int    `json:"fromOtherMinutes"`
}

// FindingDTO represents one validation finding
type FindingDTO struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	FirstWork  string `json:"firstWork,omitempty"`
	SecondWork string `json:"secondWork,omitempty"`
	WorkerID   string `json:"workerId,omitempty"`
	SkillCode  string `json:"skillCode,omitempty"`
}

// CoverageDTO reports how much of a shift span one worker accounts for
type CoverageDTO struct {
	EmployeeID       string `json:"employeeId"`
	RequiredMinutes  int    `json:"requiredMinutes"`
	CoveredMinutes   int    `json:"coveredMinutes"`
	ShortfallMinutes int    `json:"shortfallMinutes"`
	Covered          bool   `json:"covered"`
}

// ShiftValidationDTO is the full validation report for a stage, shift and date
type ShiftValidationDTO struct {
	StageCode string        `json:"stageCode"`
	ShiftCode string        `json:"shiftCode"`
	Date      string        `json:"date"`
	Clean     bool          `json:"clean"`
	Findings  []FindingDTO  `json:"findings"`
	Coverage  []CoverageDTO `json:"coverage"`
}

// WorkerShareDTO is one worker's allocated amount
type WorkerShareDTO struct {
	WorkerID        string  `json:"workerId,omitempty"`
	Deviation       bool    `json:"deviation,omitempty"`
	DeviationReason string  `json:"deviationReason,omitempty"`
	Amount          float64 `json:"amount"`
}

// CostAllocationDTO is a distributed cost amount
type CostAllocationDTO struct {
	WorkOrderID string           `json:"workOrderId"`
	StageCode   string           `json:"stageCode"`
	Kind        string           `json:"kind"`
	TotalAmount float64          `json:"totalAmount"`
	Shares      []WorkerShareDTO `json:"shares"`
	Findings    []FindingDTO     `json:"findings,omitempty"`
}

// LostTimeAllocationDTO is the per-reason split of payable lost time
type LostTimeAllocationDTO struct {
	WorkOrderID string                 `json:"workOrderId"`
	StageCode   string                 `json:"stageCode"`
	Items       []LostTimeItemShareDTO `json:"items"`
}

// LostTimeItemShareDTO is one lost-time reason's distributed total
type LostTimeItemShareDTO struct {
	ReasonCode  string           `json:"reasonCode"`
	TotalAmount float64          `json:"totalAmount"`
	Shares      []WorkerShareDTO `json:"shares"`
}
